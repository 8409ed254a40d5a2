package cmd

import (
	"github.com/spf13/cobra"

	"github.com/terra-deployer/deployer/internal/config"
)

const DefaultExecuteConfigPath = "config/execute/config.json"

// executeCmd represents the command to execute a contract message
var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Execute a message on a contract",
	Long: `Sends msg to contractAddress, attaching coins if any, and prints the
transaction result.`,
	Args: cobra.NoArgs,
	RunE: runExecute,
}

func init() {
	rootCmd.AddCommand(executeCmd)

	executeCmd.Flags().String(
		"config",
		DefaultExecuteConfigPath,
		"Execute config file ({\"contractAddress\": ..., \"msg\": {...}, \"coins\": [...]})")
}

func runExecute(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	op, err := config.LoadOperation[config.ExecuteConfig](path)
	if err != nil {
		return err
	}
	return runOperation(cmd, args, op)
}
