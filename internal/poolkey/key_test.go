package poolkey

import (
	"errors"
	"math/big"
	"testing"
)

func TestNewIsOrderIndependent(t *testing.T) {
	fee := big.NewInt(100)
	ab, err := New(big.NewInt(7), big.NewInt(3), fee)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := New(big.NewInt(3), big.NewInt(7), fee)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !ab.Equal(ba) {
		t.Fatalf("keys differ by argument order: %+v != %+v", ab, ba)
	}
	if ab.PoolID() != ba.PoolID() {
		t.Fatalf("pool ids differ by argument order")
	}
}

func TestNewPutsHubFirst(t *testing.T) {
	key, err := New(big.NewInt(42), HubAssetID(), big.NewInt(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key.ID0.Sign() != 0 {
		t.Fatalf("hub asset must be the first leg, got id0=%s", key.ID0)
	}
	if key.ID1.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("unexpected second leg: %s", key.ID1)
	}
}

func TestNewRejectsSameAsset(t *testing.T) {
	if _, err := New(big.NewInt(5), big.NewInt(5), big.NewInt(100)); !errors.Is(err, ErrInvalidAssetPair) {
		t.Fatalf("expected ErrInvalidAssetPair, got %v", err)
	}
	if _, err := New(HubAssetID(), HubAssetID(), big.NewInt(100)); !errors.Is(err, ErrInvalidAssetPair) {
		t.Fatalf("expected ErrInvalidAssetPair for hub/hub, got %v", err)
	}
	if _, err := New(nil, big.NewInt(1), big.NewInt(100)); !errors.Is(err, ErrInvalidAssetPair) {
		t.Fatalf("expected ErrInvalidAssetPair for nil id, got %v", err)
	}
}

func TestPoolIDDistinguishesKeys(t *testing.T) {
	base, err := New(big.NewInt(1), big.NewInt(2), big.NewInt(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	otherFee, err := New(big.NewInt(1), big.NewInt(2), big.NewInt(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.PoolID() == otherFee.PoolID() {
		t.Fatalf("different fee selectors must not share a pool id")
	}

	otherPair, err := New(big.NewInt(1), big.NewInt(3), big.NewInt(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.PoolID() == otherPair.PoolID() {
		t.Fatalf("different pairs must not share a pool id")
	}
}

func TestForPairCustomOverride(t *testing.T) {
	custom, err := New(big.NewInt(1), big.NewInt(999_999), big.NewInt(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	usdt := Token{
		ID:       big.NewInt(999_999),
		Decimals: 6,
		Custom:   &CustomPool{Key: custom, PoolID: custom.PoolID(), FeeBps: 30},
	}
	eth := Token{ID: HubAssetID(), Decimals: 18}

	key, id, feeBps, err := ForPair(eth, usdt, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !key.Equal(custom) || id != custom.PoolID() {
		t.Fatalf("custom override must be returned verbatim")
	}
	if feeBps != 30 {
		t.Fatalf("custom fee not honored: got %d", feeBps)
	}
}

func TestForPairDefault(t *testing.T) {
	eth := Token{ID: HubAssetID(), Decimals: 18}
	coin := Token{ID: big.NewInt(12), Decimals: 18}

	key, id, feeBps, err := ForPair(coin, eth, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if feeBps != 100 {
		t.Fatalf("fee mismatch: got %d", feeBps)
	}
	if id != key.PoolID() {
		t.Fatalf("pool id must derive from the canonical key")
	}
	if key.ID0.Sign() != 0 {
		t.Fatalf("hub leg must order first")
	}
}
