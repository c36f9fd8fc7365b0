package router

import (
	"math/big"
	"testing"

	"github.com/NaniDAO/coinchan-sub006/internal/swapmath"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad big int literal %q", s)
	}
	return v
}

func TestTwoHopMatchesSequentialSingleHops(t *testing.T) {
	poolA := Pool{
		ReserveAsset: mustBig(t, "1000000000000000000"), // 1e18
		ReserveHub:   mustBig(t, "500000000000000000"),  // 5e17
		FeeBps:       30,
	}
	poolB := Pool{
		ReserveHub:   mustBig(t, "500000000000000000"),  // 5e17
		ReserveAsset: mustBig(t, "2000000000000000000"), // 2e18
		FeeBps:       30,
	}
	amountIn := mustBig(t, "10000000000000000") // 1e16

	got := TwoHop{First: poolA, Second: poolB}.EstimateOut(amountIn)

	hub := swapmath.ComputeOutput(amountIn, poolA.ReserveAsset, poolA.ReserveHub, poolA.FeeBps)
	want := swapmath.ComputeOutput(hub, poolB.ReserveHub, poolB.ReserveAsset, poolB.FeeBps)

	if got.Cmp(want) != 0 {
		t.Fatalf("two-hop estimate mismatch: got %s want %s", got, want)
	}
	if got.Sign() <= 0 {
		t.Fatalf("expected a positive estimate, got %s", got)
	}
}

func TestTwoHopZeroWhenFirstHopEmpty(t *testing.T) {
	poolA := Pool{
		ReserveAsset: big.NewInt(0),
		ReserveHub:   big.NewInt(0),
		FeeBps:       30,
	}
	poolB := Pool{
		ReserveHub:   big.NewInt(1_000_000),
		ReserveAsset: big.NewInt(1_000_000),
		FeeBps:       30,
	}

	got := TwoHop{First: poolA, Second: poolB}.EstimateOut(big.NewInt(1_000))
	if got.Sign() != 0 {
		t.Fatalf("expected zero estimate through empty pool, got %s", got)
	}
}

func TestTwoHopZeroWhenSecondHopEmpty(t *testing.T) {
	poolA := Pool{
		ReserveAsset: big.NewInt(1_000_000),
		ReserveHub:   big.NewInt(1_000_000),
		FeeBps:       30,
	}
	poolB := Pool{}

	got := TwoHop{First: poolA, Second: poolB}.EstimateOut(big.NewInt(1_000))
	if got.Sign() != 0 {
		t.Fatalf("expected zero estimate through empty pool, got %s", got)
	}
}

func TestDirectRouteBothDirections(t *testing.T) {
	pool := Pool{
		ReserveHub:   big.NewInt(1_000_000),
		ReserveAsset: big.NewInt(2_000_000),
		FeeBps:       30,
	}

	buy := Direct{Pool: pool} // hub in, asset out
	out := buy.EstimateOut(big.NewInt(10_000))
	want := swapmath.ComputeOutput(big.NewInt(10_000), pool.ReserveHub, pool.ReserveAsset, 30)
	if out.Cmp(want) != 0 {
		t.Fatalf("buy direction mismatch: got %s want %s", out, want)
	}

	sell := Direct{Pool: pool, ZeroForHub: true} // asset in, hub out
	out = sell.EstimateOut(big.NewInt(10_000))
	want = swapmath.ComputeOutput(big.NewInt(10_000), pool.ReserveAsset, pool.ReserveHub, 30)
	if out.Cmp(want) != 0 {
		t.Fatalf("sell direction mismatch: got %s want %s", out, want)
	}
}

func TestDirectRequiredInRoundTrip(t *testing.T) {
	pool := Pool{
		ReserveHub:   big.NewInt(1_000_000),
		ReserveAsset: big.NewInt(2_000_000),
		FeeBps:       30,
	}
	route := Direct{Pool: pool}

	out := route.EstimateOut(big.NewInt(10_000))
	in, err := route.RequiredIn(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Cmp(big.NewInt(10_000)) > 0 {
		t.Fatalf("required input %s exceeds the input that produced the output", in)
	}
	if check := route.EstimateOut(in); check.Cmp(out) < 0 {
		t.Fatalf("required input %s does not reproduce output %s (got %s)", in, out, check)
	}
}

func TestHasLiquidity(t *testing.T) {
	if (Pool{}).HasLiquidity() {
		t.Fatalf("empty pool must not report liquidity")
	}
	pool := Pool{ReserveHub: big.NewInt(1), ReserveAsset: big.NewInt(1)}
	if !pool.HasLiquidity() {
		t.Fatalf("funded pool must report liquidity")
	}
}
