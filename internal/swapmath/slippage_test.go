package swapmath

import (
	"errors"
	"math/big"
	"testing"
)

func TestSlippageIdentityAtZero(t *testing.T) {
	amount := big.NewInt(123_456_789)

	minOut, err := MinOut(amount, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	maxIn, err := MaxIn(amount, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if minOut.Cmp(amount) != 0 || maxIn.Cmp(amount) != 0 {
		t.Fatalf("zero tolerance must be identity: min=%s max=%s amount=%s", minOut, maxIn, amount)
	}
}

func TestSlippageRounding(t *testing.T) {
	// 999 * 9950 / 10000 = 994.005 floors to 994.
	minOut, err := MinOut(big.NewInt(999), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minOut.Cmp(big.NewInt(994)) != 0 {
		t.Fatalf("minOut mismatch: got %s want 994", minOut)
	}

	// 999 * 10050 / 10000 = 1003.995 ceils to 1004.
	maxIn, err := MaxIn(big.NewInt(999), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if maxIn.Cmp(big.NewInt(1004)) != 0 {
		t.Fatalf("maxIn mismatch: got %s want 1004", maxIn)
	}
}

func TestSlippageBoundsBracketAmount(t *testing.T) {
	amount := big.NewInt(1_000_000_007)
	for _, tolBps := range []uint64{1, 50, 100, 500, MaxToleranceBps} {
		minOut, err := MinOut(amount, tolBps)
		if err != nil {
			t.Fatalf("tol=%d: %v", tolBps, err)
		}
		maxIn, err := MaxIn(amount, tolBps)
		if err != nil {
			t.Fatalf("tol=%d: %v", tolBps, err)
		}
		if minOut.Cmp(amount) > 0 || maxIn.Cmp(amount) < 0 {
			t.Fatalf("tol=%d: bounds do not bracket amount: min=%s max=%s", tolBps, minOut, maxIn)
		}
	}
}

func TestSlippageToleranceOutOfRange(t *testing.T) {
	if _, err := MinOut(big.NewInt(100), MaxToleranceBps+1); !errors.Is(err, ErrToleranceOutOfRange) {
		t.Fatalf("expected ErrToleranceOutOfRange, got %v", err)
	}
	if _, err := MaxIn(big.NewInt(100), MaxToleranceBps+1); !errors.Is(err, ErrToleranceOutOfRange) {
		t.Fatalf("expected ErrToleranceOutOfRange, got %v", err)
	}
}
