package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/terra-deployer/deployer/internal"
	"github.com/terra-deployer/deployer/internal/clients"
	"github.com/terra-deployer/deployer/internal/config"
	"github.com/terra-deployer/deployer/internal/submitter"
)

// loadSigner reads the network config and derives the signing key from its mnemonic
func loadSigner(logger *zap.Logger) (*config.NetworkConfig, *clients.MnemonicKey, error) {
	network, err := config.LoadNetworkConfig(viper.GetString("network_config"))
	if err != nil {
		return nil, nil, err
	}

	key, err := clients.NewMnemonicKey(network.Mnemonic, network.KeyOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive signer: %w", err)
	}

	logger.Info("Configuration",
		zap.String("url", network.URL),
		zap.String("chainID", network.ChainID),
		zap.String("rpcURL", network.RPCURL),
		zap.String("dialect", network.Dialect),
		zap.String("address", key.Address()),
		zap.String("hdPath", key.HDPath()))

	return network, key, nil
}

// runOperation submits the operation's payload and prints the outcome
func runOperation(cmd *cobra.Command, args []string, op config.Operation) error {
	logger := configureLogging(cmd, args)
	defer logger.Sync()

	network, key, err := loadSigner(logger)
	if err != nil {
		return err
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)
	go func() {
		select {
		case <-c:
			logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	if network.RPCURL != "" {
		if err := preflight(ctx, logger, network); err != nil {
			return err
		}
	}

	lcd := clients.NewLCDClient(logger, network.URL, network.RequestTimeout)
	terraClient := clients.NewTerraClient(logger, lcd, key, network.ClientConfig())
	terraSubmitter := submitter.NewTerraSubmitter(logger, terraClient)
	workflow := internal.NewWorkflow(logger, terraSubmitter, terraClient.Dialect())

	result, err := workflow.Run(ctx, op.Payload())
	out := cmd.OutOrStdout()
	if err != nil {
		var rejection *internal.ChainRejectionError
		if errors.As(err, &rejection) && rejection.Outcome != nil {
			if printErr := printOutcome(out, rejection.Outcome); printErr != nil {
				logger.Warn("Failed to print transaction result", zap.Error(printErr))
			}
		}
		return err
	}

	if err := printOutcome(out, result.Outcome); err != nil {
		return err
	}
	if label, value, ok := result.Identifier(); ok {
		fmt.Fprintf(out, "%s: %s\n", label, value)
	}
	return nil
}

func preflight(ctx context.Context, logger *zap.Logger, network *config.NetworkConfig) error {
	nodeClient, err := clients.NewNodeClient(ctx, logger, network.RPCURL)
	if err != nil {
		return err
	}
	defer nodeClient.Close()

	checkCtx, checkCancel := context.WithTimeout(ctx, network.RequestTimeout)
	defer checkCancel()
	if err := nodeClient.CheckChainID(checkCtx, network.ChainID); err != nil {
		return fmt.Errorf("node preflight failed: %w", err)
	}
	return nil
}

func printOutcome(w io.Writer, outcome *clients.TxResult) error {
	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transaction result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
