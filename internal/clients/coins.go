package clients

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	denomPattern   = `[a-zA-Z][a-zA-Z0-9/:._-]{2,127}`
	coinPattern    = regexp.MustCompile(`^([0-9]+)(` + denomPattern + `)$`)
	decCoinPattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)(` + denomPattern + `)$`)
)

// Coin is an integer token amount, as carried in messages and fees
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

func (c Coin) String() string {
	return c.Amount + c.Denom
}

// DecCoin is a decimal token amount, used for gas prices
type DecCoin struct {
	Denom  string
	Amount decimal.Decimal
}

func (c DecCoin) String() string {
	return c.Amount.String() + c.Denom
}

// ParseCoins parses a comma separated list such as "1000uluna,5uusd"
func ParseCoins(s string) ([]Coin, error) {
	var coins []Coin
	for _, part := range splitCoinList(s) {
		m := coinPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("invalid coin %q", part)
		}
		coins = append(coins, Coin{Denom: m[2], Amount: m[1]})
	}
	return coins, nil
}

// ParseDecCoins parses a comma separated list such as "0.15uluna"
func ParseDecCoins(s string) ([]DecCoin, error) {
	var coins []DecCoin
	for _, part := range splitCoinList(s) {
		m := decCoinPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("invalid decimal coin %q", part)
		}
		amount, err := decimal.NewFromString(m[1])
		if err != nil {
			return nil, fmt.Errorf("invalid decimal coin %q: %w", part, err)
		}
		coins = append(coins, DecCoin{Denom: m[2], Amount: amount})
	}
	return coins, nil
}

// ValidateCoins checks that every coin has a denom and a non-negative integer amount
func ValidateCoins(coins []Coin) error {
	for _, c := range coins {
		if !coinPattern.MatchString(c.Amount + c.Denom) {
			return fmt.Errorf("invalid coin {denom: %q, amount: %q}", c.Denom, c.Amount)
		}
	}
	return nil
}

// FeeForGas returns ceil(price * gas) for each gas price
func FeeForGas(gasPrices []DecCoin, gas uint64) []Coin {
	fee := make([]Coin, 0, len(gasPrices))
	gasDec := decimal.NewFromUint64(gas)
	for _, price := range gasPrices {
		fee = append(fee, Coin{
			Denom:  price.Denom,
			Amount: price.Amount.Mul(gasDec).Ceil().String(),
		})
	}
	return fee
}

// AdjustGas scales a simulated gas amount, rounding up
func AdjustGas(gasUsed uint64, adjustment decimal.Decimal) uint64 {
	return uint64(decimal.NewFromUint64(gasUsed).Mul(adjustment).Ceil().IntPart())
}

func splitCoinList(s string) []string {
	var parts []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
