package swapmath

import "math/big"

// MaxToleranceBps caps the accepted slippage tolerance at 50%. Anything
// larger is a configuration error, not a legitimate trade parameter.
const MaxToleranceBps = 5_000

// MinOut converts a quoted output into the minimum acceptable output for
// submission: floor( amount * (10000 - toleranceBps) / 10000 ). The bound
// must be passed unmodified to the settlement call.
func MinOut(amount *big.Int, toleranceBps uint64) (*big.Int, error) {
	if toleranceBps > MaxToleranceBps {
		return nil, ErrToleranceOutOfRange
	}
	if amount == nil || amount.Sign() <= 0 {
		return new(big.Int), nil
	}

	scaled := new(big.Int).Mul(amount, big.NewInt(FeeDenominatorBps-int64(toleranceBps)))
	return scaled.Quo(scaled, bpsDenominator), nil
}

// MaxIn converts a quoted input into the maximum acceptable input for
// submission: ceil( amount * (10000 + toleranceBps) / 10000 ).
func MaxIn(amount *big.Int, toleranceBps uint64) (*big.Int, error) {
	if toleranceBps > MaxToleranceBps {
		return nil, ErrToleranceOutOfRange
	}
	if amount == nil || amount.Sign() <= 0 {
		return new(big.Int), nil
	}

	scaled := new(big.Int).Mul(amount, big.NewInt(FeeDenominatorBps+int64(toleranceBps)))
	quotient, remainder := new(big.Int).QuoRem(scaled, bpsDenominator, new(big.Int))
	if remainder.Sign() != 0 {
		quotient.Add(quotient, big.NewInt(1))
	}
	return quotient, nil
}
