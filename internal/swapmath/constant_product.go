package swapmath

import "math/big"

// FeeDenominatorBps is the basis-point scale: 10000 bps = 100%.
const FeeDenominatorBps = 10_000

// DefaultFeeBps is the protocol swap fee applied when a pool carries no
// per-pool override.
const DefaultFeeBps = 100

var bpsDenominator = big.NewInt(FeeDenominatorBps)

// ComputeOutput returns the exact-in output of a constant-product pool with
// the fee deducted from the input leg:
//
//	floor( amountIn*(10000-feeBps) * reserveOut / (reserveIn*10000 + amountIn*(10000-feeBps)) )
//
// The result is floored, matching on-chain truncation: the rounding loss is
// borne by the trader, never the pool. Zero amount, zero reserves, and a fee
// of 10000 bps or more all yield zero; a pool with no executable liquidity
// is a "no quote" case, not an error. Inputs are never mutated.
func ComputeOutput(amountIn, reserveIn, reserveOut *big.Int, feeBps uint64) *big.Int {
	out := new(big.Int)
	if amountIn == nil || reserveIn == nil || reserveOut == nil {
		return out
	}
	if amountIn.Sign() <= 0 || reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return out
	}
	if feeBps >= FeeDenominatorBps {
		return out
	}

	effectiveIn := new(big.Int).Mul(amountIn, big.NewInt(FeeDenominatorBps-int64(feeBps)))
	numerator := new(big.Int).Mul(effectiveIn, reserveOut)
	denominator := new(big.Int).Mul(reserveIn, bpsDenominator)
	denominator.Add(denominator, effectiveIn)

	return out.Quo(numerator, denominator)
}

// ComputeInput returns the exact-out required input of a constant-product
// pool, before the fee is deducted:
//
//	ceil( reserveIn * amountOut * 10000 / ((reserveOut - amountOut) * (10000-feeBps)) )
//
// The result is ceiled: the caller must supply at least this much for the
// pool to produce amountOut, so under-rounding would starve the trade. The
// floor/ceil asymmetry against ComputeOutput always favors the pool and must
// not be reversed. Fails with ErrOutputExceedsReserves when the pool cannot
// produce amountOut at any input size.
func ComputeInput(amountOut, reserveIn, reserveOut *big.Int, feeBps uint64) (*big.Int, error) {
	if amountOut == nil || amountOut.Sign() <= 0 {
		return new(big.Int), nil
	}
	if reserveIn == nil || reserveOut == nil || reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return nil, ErrOutputExceedsReserves
	}
	if amountOut.Cmp(reserveOut) >= 0 {
		return nil, ErrOutputExceedsReserves
	}
	if feeBps >= FeeDenominatorBps {
		return nil, ErrFeeOutOfRange
	}

	numerator := new(big.Int).Mul(reserveIn, amountOut)
	numerator.Mul(numerator, bpsDenominator)

	denominator := new(big.Int).Sub(reserveOut, amountOut)
	denominator.Mul(denominator, big.NewInt(FeeDenominatorBps-int64(feeBps)))

	quotient, remainder := new(big.Int).QuoRem(numerator, denominator, new(big.Int))
	if remainder.Sign() != 0 {
		quotient.Add(quotient, big.NewInt(1))
	}
	return quotient, nil
}
