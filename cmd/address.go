package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// addressCmd prints the account address the network config signs with
var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the signer address derived from the network config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := configureLogging(cmd, args)
		defer logger.Sync()

		_, key, err := loadSigner(logger)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), key.Address())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addressCmd)
}
