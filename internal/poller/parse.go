package poller

import (
	"fmt"
	"math/big"
	"strings"
)

// ParsePairs converts "sellID:buyID:amountIn" flag values into pair specs.
// Coin id 0 is the hub asset; amounts are smallest units.
func ParsePairs(inputs []string) ([]PairSpec, error) {
	pairs := make([]PairSpec, 0, len(inputs))
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		parts := strings.Split(input, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid pair %q: want sellID:buyID:amountIn", input)
		}

		sellID, err := parseCoinID(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid pair %q: %w", input, err)
		}
		buyID, err := parseCoinID(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid pair %q: %w", input, err)
		}
		amountIn, ok := new(big.Int).SetString(strings.TrimSpace(parts[2]), 10)
		if !ok || amountIn.Sign() <= 0 {
			return nil, fmt.Errorf("invalid pair %q: amount must be a positive integer", input)
		}

		pairs = append(pairs, PairSpec{SellID: sellID, BuyID: buyID, AmountIn: amountIn})
	}
	return pairs, nil
}

func parseCoinID(input string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(strings.TrimSpace(input), 10)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("coin id %q must be a non-negative integer", input)
	}
	return id, nil
}
