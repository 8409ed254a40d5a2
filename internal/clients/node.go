package clients

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// NodeStatus is the subset of the Tendermint `status` result we check
type NodeStatus struct {
	NodeInfo struct {
		Network string `json:"network"`
		Moniker string `json:"moniker"`
		Version string `json:"version"`
	} `json:"node_info"`
	SyncInfo struct {
		LatestBlockHeight string `json:"latest_block_height"`
		CatchingUp        bool   `json:"catching_up"`
	} `json:"sync_info"`
}

// NodeClient queries a node's Tendermint JSON-RPC endpoint
type NodeClient struct {
	rpcClient *rpc.Client
	logger    *zap.Logger
}

// NewNodeClient creates a JSON-RPC client for the given Tendermint RPC URL
func NewNodeClient(ctx context.Context, logger *zap.Logger, rpcURL string) (*NodeClient, error) {
	client := &NodeClient{
		logger: logger.With(zap.String("component", "NodeClient")),
	}

	client.logger.Debug("Connecting to node RPC", zap.String("rpcURL", rpcURL))
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create RPC client: %w", err)
	}
	client.rpcClient = rpcClient

	return client, nil
}

// Close releases the underlying RPC connection
func (c *NodeClient) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// Status returns the node's status
func (c *NodeClient) Status(ctx context.Context) (*NodeStatus, error) {
	var status NodeStatus
	if err := c.rpcClient.CallContext(ctx, &status, "status"); err != nil {
		return nil, fmt.Errorf("failed to query node status: %w", err)
	}
	return &status, nil
}

// CheckChainID verifies that the node serves the expected chain
func (c *NodeClient) CheckChainID(ctx context.Context, chainID string) error {
	status, err := c.Status(ctx)
	if err != nil {
		return err
	}

	if status.NodeInfo.Network != chainID {
		return fmt.Errorf("node serves chain %q, expected %q", status.NodeInfo.Network, chainID)
	}
	if status.SyncInfo.CatchingUp {
		c.logger.Warn("Node is still catching up, inclusion may be slow",
			zap.String("latestBlockHeight", status.SyncInfo.LatestBlockHeight))
	}

	c.logger.Info("Node preflight passed",
		zap.String("network", status.NodeInfo.Network),
		zap.String("moniker", status.NodeInfo.Moniker),
		zap.String("latestBlockHeight", status.SyncInfo.LatestBlockHeight))
	return nil
}
