package cmd

import (
	"github.com/spf13/cobra"

	"github.com/terra-deployer/deployer/internal/config"
)

const DefaultInstantiateConfigPath = "config/instantiate/config.json"

// instantiateCmd represents the command to create a contract from a code ID
var instantiateCmd = &cobra.Command{
	Use:   "instantiate",
	Short: "Instantiate a contract and print its address",
	Long: `Creates a contract instance from codeID with msg as its init message. The
signer is the contract admin unless the config names another admin.

Prints the transaction result followed by "contract_address: <address>".`,
	Args: cobra.NoArgs,
	RunE: runInstantiate,
}

func init() {
	rootCmd.AddCommand(instantiateCmd)

	instantiateCmd.Flags().String(
		"config",
		DefaultInstantiateConfigPath,
		"Instantiate config file ({\"codeID\": ..., \"msg\": {...}})")
}

func runInstantiate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	op, err := config.LoadOperation[config.InstantiateConfig](path)
	if err != nil {
		return err
	}
	return runOperation(cmd, args, op)
}
