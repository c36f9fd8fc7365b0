package swapmath

import "errors"

var (
	// ErrOutputExceedsReserves is returned by ComputeInput when the requested
	// output is not available from the pool at any input size.
	ErrOutputExceedsReserves = errors.New("output amount exceeds pool reserves")

	// ErrFeeOutOfRange is returned when a fee of 10000 bps or more is supplied
	// to an operation that needs a positive post-fee input.
	ErrFeeOutOfRange = errors.New("fee basis points out of range")

	// ErrToleranceOutOfRange is returned for slippage tolerances above
	// MaxToleranceBps; values that large indicate a configuration error.
	ErrToleranceOutOfRange = errors.New("slippage tolerance out of range")
)
