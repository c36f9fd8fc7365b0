package router

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/NaniDAO/coinchan-sub006/internal/poolkey"
	"github.com/NaniDAO/coinchan-sub006/internal/swapmath"
)

// Pool is a read-only snapshot of one pair's reserves at quote time.
// ReserveHub is the hub-asset leg, ReserveAsset the paired-asset leg. Pools
// must be refreshed by the caller before each estimation; nothing here
// fetches or caches reserves, so a stale snapshot produces a stale quote.
type Pool struct {
	Key          poolkey.PoolKey
	ID           common.Hash
	ReserveHub   *big.Int
	ReserveAsset *big.Int
	FeeBps       uint64
}

// HasLiquidity reports whether both reserves are positive. A pool without
// executable liquidity still quotes — it quotes zero.
func (p Pool) HasLiquidity() bool {
	return p.ReserveHub != nil && p.ReserveHub.Sign() > 0 &&
		p.ReserveAsset != nil && p.ReserveAsset.Sign() > 0
}

// Route estimates swap amounts over one or two pool snapshots. A Route owns
// no state and is built fresh per query.
type Route interface {
	// EstimateOut returns the output for an exact input.
	EstimateOut(amountIn *big.Int) *big.Int
}

// Direct swaps within a single pool. ZeroForHub selects the direction:
// true means the input leg is the paired asset and the output leg the hub.
type Direct struct {
	Pool       Pool
	ZeroForHub bool
}

func (r Direct) reserves() (reserveIn, reserveOut *big.Int) {
	if r.ZeroForHub {
		return r.Pool.ReserveAsset, r.Pool.ReserveHub
	}
	return r.Pool.ReserveHub, r.Pool.ReserveAsset
}

// EstimateOut quotes an exact-in swap against the pool snapshot.
func (r Direct) EstimateOut(amountIn *big.Int) *big.Int {
	reserveIn, reserveOut := r.reserves()
	return swapmath.ComputeOutput(amountIn, reserveIn, reserveOut, r.Pool.FeeBps)
}

// RequiredIn quotes the exact-out input for the pool snapshot. Fails with
// swapmath.ErrOutputExceedsReserves when the output cannot be produced.
func (r Direct) RequiredIn(amountOut *big.Int) (*big.Int, error) {
	reserveIn, reserveOut := r.reserves()
	return swapmath.ComputeInput(amountOut, reserveIn, reserveOut, r.Pool.FeeBps)
}

// TwoHop routes a swap between two non-hub assets through the hub asset:
// First converts the sell asset into the hub amount, Second converts that
// hub amount into the buy asset. Each pool carries its own fee.
//
// TwoHop deliberately has no RequiredIn. Given a desired final output there
// is no closed form for the required input: the first hop's input depends on
// an intermediate hub amount that itself depends on the second pool's
// reserves, and recovering it would need a second search. Callers wanting
// exact-out coin-to-coin pricing must re-drive EstimateOut interactively;
// this is a scope boundary, not an oversight.
type TwoHop struct {
	First  Pool
	Second Pool
}

// EstimateOut quotes the exact-in two-hop swap as two sequential single-pool
// estimates. The intermediate hub amount carries only the truncation each
// hop already performs; no extra rounding is introduced between hops.
func (r TwoHop) EstimateOut(amountIn *big.Int) *big.Int {
	hubAmount := swapmath.ComputeOutput(amountIn, r.First.ReserveAsset, r.First.ReserveHub, r.First.FeeBps)
	if hubAmount.Sign() == 0 {
		return hubAmount
	}
	return swapmath.ComputeOutput(hubAmount, r.Second.ReserveHub, r.Second.ReserveAsset, r.Second.FeeBps)
}
