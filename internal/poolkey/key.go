package poolkey

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrInvalidAssetPair is returned when both legs of a pair resolve to the
// same asset id.
var ErrInvalidAssetPair = errors.New("pool key requires two distinct assets")

// HubAssetID is the sentinel coin id for the hub asset (the native ETH leg).
// Every indirect pair is routed through it.
func HubAssetID() *big.Int { return new(big.Int) }

// PoolKey is the canonical identity of a pool: the ordered asset pair plus
// the fee-or-hook selector. The hub asset, when present, is always the first
// leg; two non-hub assets are ordered by ascending id, so building a key
// from (a, b) and from (b, a) yields the same key and the same pool id.
type PoolKey struct {
	ID0       *big.Int
	ID1       *big.Int
	FeeOrHook *big.Int
}

// New canonicalizes an asset pair and selector into a PoolKey.
func New(idA, idB, feeOrHook *big.Int) (PoolKey, error) {
	if idA == nil || idB == nil {
		return PoolKey{}, ErrInvalidAssetPair
	}
	if idA.Cmp(idB) == 0 {
		return PoolKey{}, ErrInvalidAssetPair
	}
	if feeOrHook == nil {
		feeOrHook = new(big.Int)
	}

	first, second := idA, idB
	if idB.Cmp(idA) < 0 {
		first, second = idB, idA
	}

	return PoolKey{
		ID0:       new(big.Int).Set(first),
		ID1:       new(big.Int).Set(second),
		FeeOrHook: new(big.Int).Set(feeOrHook),
	}, nil
}

// PoolID derives the stable pool identifier: keccak256 over the canonical
// key encoded as three 32-byte big-endian words. Equal keys always hash to
// equal ids; the encoding is fixed-width so distinct keys never share a
// preimage.
func (k PoolKey) PoolID() common.Hash {
	var enc [96]byte
	word(enc[0:32], k.ID0)
	word(enc[32:64], k.ID1)
	word(enc[64:96], k.FeeOrHook)
	return crypto.Keccak256Hash(enc[:])
}

// Equal reports whether two keys identify the same pool.
func (k PoolKey) Equal(other PoolKey) bool {
	return cmpID(k.ID0, other.ID0) && cmpID(k.ID1, other.ID1) && cmpID(k.FeeOrHook, other.FeeOrHook)
}

func cmpID(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Cmp(b) == 0
}

func word(dst []byte, v *big.Int) {
	if v == nil {
		return
	}
	v.FillBytes(dst)
}
