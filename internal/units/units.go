package units

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// FromBase converts a smallest-unit integer amount into its display value
// for the given token decimals. Display conversion happens only at this
// boundary; the pricing core never sees anything but integers.
func FromBase(amount *big.Int, decimals uint8) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -int32(decimals))
}

// ToBase converts a display value into smallest units, truncating any
// fraction finer than the token's granularity toward zero. Negative values
// are rejected; amounts are unsigned everywhere below this boundary.
func ToBase(value decimal.Decimal, decimals uint8) (*big.Int, error) {
	if value.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative: %s", value)
	}
	shifted := value.Shift(int32(decimals)).Truncate(0)
	return shifted.BigInt(), nil
}

// ParseToBase parses a human-readable decimal string into smallest units.
func ParseToBase(text string, decimals uint8) (*big.Int, error) {
	value, err := decimal.NewFromString(text)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", text, err)
	}
	return ToBase(value, decimals)
}
