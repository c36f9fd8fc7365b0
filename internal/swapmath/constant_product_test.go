package swapmath

import (
	"errors"
	"math/big"
	"testing"
)

func TestComputeOutputConcrete(t *testing.T) {
	got := ComputeOutput(big.NewInt(10_000), big.NewInt(1_000_000), big.NewInt(2_000_000), 30)

	// floor( (10_000*9970*2_000_000) / (1_000_000*10000 + 10_000*9970) )
	want := big.NewInt(19_743)
	if got.Cmp(want) != 0 {
		t.Fatalf("output mismatch: got %s want %s", got, want)
	}
}

func TestComputeOutputZeroCases(t *testing.T) {
	cases := []struct {
		name                         string
		amountIn, reserveIn, reserveOut int64
		feeBps                       uint64
	}{
		{"zero amount", 0, 1000, 1000, 30},
		{"zero reserve in", 100, 0, 1000, 30},
		{"zero reserve out", 100, 1000, 0, 30},
		{"full fee", 100, 1000, 1000, 10_000},
	}
	for _, tc := range cases {
		got := ComputeOutput(big.NewInt(tc.amountIn), big.NewInt(tc.reserveIn), big.NewInt(tc.reserveOut), tc.feeBps)
		if got.Sign() != 0 {
			t.Fatalf("%s: expected zero output, got %s", tc.name, got)
		}
	}
	if got := ComputeOutput(nil, big.NewInt(1000), big.NewInt(1000), 30); got.Sign() != 0 {
		t.Fatalf("nil amount: expected zero output, got %s", got)
	}
}

func TestComputeOutputBoundedByReserve(t *testing.T) {
	reserveIn := big.NewInt(1_000)
	reserveOut := big.NewInt(2_000)

	amountIn := big.NewInt(1)
	huge := new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)
	for amountIn.Cmp(huge) < 0 {
		out := ComputeOutput(amountIn, reserveIn, reserveOut, 30)
		if out.Cmp(reserveOut) >= 0 {
			t.Fatalf("output %s not below reserve %s for input %s", out, reserveOut, amountIn)
		}
		amountIn = new(big.Int).Mul(amountIn, big.NewInt(10))
	}
}

func TestComputeOutputMonotonicInAmount(t *testing.T) {
	reserveIn := big.NewInt(5_000_000)
	reserveOut := big.NewInt(3_000_000)

	prev := new(big.Int)
	for amountIn := int64(1); amountIn <= 100_000; amountIn += 997 {
		out := ComputeOutput(big.NewInt(amountIn), reserveIn, reserveOut, 30)
		if out.Cmp(prev) < 0 {
			t.Fatalf("output decreased: %s after %s at amountIn=%d", out, prev, amountIn)
		}
		prev = out
	}
}

func TestComputeOutputFeeMonotonic(t *testing.T) {
	amountIn := big.NewInt(12_345)
	reserveIn := big.NewInt(1_000_000)
	reserveOut := big.NewInt(2_000_000)

	prev := ComputeOutput(amountIn, reserveIn, reserveOut, 0)
	for feeBps := uint64(1); feeBps < 10_000; feeBps += 73 {
		out := ComputeOutput(amountIn, reserveIn, reserveOut, feeBps)
		if out.Cmp(prev) > 0 {
			t.Fatalf("output increased with fee %d: %s > %s", feeBps, out, prev)
		}
		prev = out
	}
}

func TestComputeInputConcrete(t *testing.T) {
	got, err := ComputeInput(big.NewInt(19_743), big.NewInt(1_000_000), big.NewInt(2_000_000), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// ceil( 1_000_000*19_743*10000 / ((2_000_000-19_743)*9970) )
	want := big.NewInt(10_000)
	if got.Cmp(want) != 0 {
		t.Fatalf("input mismatch: got %s want %s", got, want)
	}
}

func TestComputeInputErrors(t *testing.T) {
	if _, err := ComputeInput(big.NewInt(2_000_000), big.NewInt(1_000_000), big.NewInt(2_000_000), 30); !errors.Is(err, ErrOutputExceedsReserves) {
		t.Fatalf("expected ErrOutputExceedsReserves, got %v", err)
	}
	if _, err := ComputeInput(big.NewInt(3_000_000), big.NewInt(1_000_000), big.NewInt(2_000_000), 30); !errors.Is(err, ErrOutputExceedsReserves) {
		t.Fatalf("expected ErrOutputExceedsReserves, got %v", err)
	}
	if _, err := ComputeInput(big.NewInt(100), big.NewInt(1_000_000), big.NewInt(2_000_000), 10_000); !errors.Is(err, ErrFeeOutOfRange) {
		t.Fatalf("expected ErrFeeOutOfRange, got %v", err)
	}

	got, err := ComputeInput(big.NewInt(0), big.NewInt(1_000_000), big.NewInt(2_000_000), 30)
	if err != nil {
		t.Fatalf("zero output should not error: %v", err)
	}
	if got.Sign() != 0 {
		t.Fatalf("zero output should need zero input, got %s", got)
	}
}

func TestRoundTripFavorsPool(t *testing.T) {
	reserveIn := big.NewInt(1_000_000_000)
	reserveOut := big.NewInt(777_000_333)

	for _, feeBps := range []uint64{0, 1, 30, 100, 500, 9_999} {
		for amountIn := int64(1); amountIn <= 10_000_000; amountIn *= 7 {
			x := big.NewInt(amountIn)
			out := ComputeOutput(x, reserveIn, reserveOut, feeBps)
			if out.Sign() == 0 {
				continue
			}
			back, err := ComputeInput(out, reserveIn, reserveOut, feeBps)
			if err != nil {
				t.Fatalf("fee=%d amountIn=%d: %v", feeBps, amountIn, err)
			}
			if back.Cmp(x) > 0 {
				t.Fatalf("fee=%d: round trip %s exceeds original %s", feeBps, back, x)
			}
		}
	}
}
