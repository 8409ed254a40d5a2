package cmd

import (
	"github.com/spf13/cobra"

	"github.com/terra-deployer/deployer/internal/config"
)

const DefaultStoreCodeConfigPath = "config/storecode/config.json"

// storeCodeCmd represents the command to upload contract bytecode
var storeCodeCmd = &cobra.Command{
	Use:   "store-code",
	Short: "Upload contract bytecode and print the new code ID",
	Long: `Reads the wasm file named by codePath in the operation config, uploads it
in a MsgStoreCode transaction signed by the network config's mnemonic and
prints the transaction result followed by "code_id: <id>".`,
	Args: cobra.NoArgs,
	RunE: runStoreCode,
}

func init() {
	rootCmd.AddCommand(storeCodeCmd)

	storeCodeCmd.Flags().String(
		"config",
		DefaultStoreCodeConfigPath,
		"Store code config file ({\"codePath\": ...})")
}

func runStoreCode(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	op, err := config.LoadOperation[config.StoreCodeConfig](path)
	if err != nil {
		return err
	}
	return runOperation(cmd, args, op)
}
