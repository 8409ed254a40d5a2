package cmd

import (
	"github.com/spf13/cobra"

	"github.com/terra-deployer/deployer/internal/config"
)

const DefaultMigrateConfigPath = "config/migrate/config.json"

// migrateCmd represents the command to migrate a contract to new code
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate a contract to a new code ID",
	Long: `Moves contractAddress to codeID, passing msg to the new code's migrate
entry point. The signer must be the contract admin.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().String(
		"config",
		DefaultMigrateConfigPath,
		"Migrate config file ({\"contractAddress\": ..., \"codeID\": ..., \"msg\": {...}})")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	op, err := config.LoadOperation[config.MigrateConfig](path)
	if err != nil {
		return err
	}
	return runOperation(cmd, args, op)
}
