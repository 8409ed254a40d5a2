package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/terra-deployer/deployer/internal/clients"
)

// Coins accepts the forms terra.js accepts for a coin list:
// [{"denom": "uluna", "amount": "1000"}], {"uluna": "1000"} or "1000uluna,5uusd"
type Coins []clients.Coin

func (c *Coins) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = nil
		return nil
	}

	switch data[0] {
	case '[':
		var list []struct {
			Denom  string      `json:"denom"`
			Amount json.Number `json:"amount"`
		}
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("invalid coin list: %w", err)
		}
		coins := make(Coins, 0, len(list))
		for _, item := range list {
			coins = append(coins, clients.Coin{Denom: item.Denom, Amount: item.Amount.String()})
		}
		*c = coins

	case '{':
		var byDenom map[string]json.Number
		if err := json.Unmarshal(data, &byDenom); err != nil {
			return fmt.Errorf("invalid coin map: %w", err)
		}
		coins := make(Coins, 0, len(byDenom))
		for denom, amount := range byDenom {
			coins = append(coins, clients.Coin{Denom: denom, Amount: amount.String()})
		}
		// map order is random; keep the encoded message deterministic
		sort.Slice(coins, func(i, j int) bool { return coins[i].Denom < coins[j].Denom })
		*c = coins

	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		coins, err := clients.ParseCoins(s)
		if err != nil {
			return err
		}
		*c = coins

	default:
		return fmt.Errorf("invalid coins %s", string(data))
	}
	return nil
}
