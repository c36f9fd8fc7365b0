package dex

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/NaniDAO/coinchan-sub006/internal/chain"
	"github.com/NaniDAO/coinchan-sub006/internal/curve"
)

// SaleState is a snapshot of a live token sale: the curve parameters plus
// the quantity sold so far. The sold quantity is an input to the pricer,
// never stored inside it.
type SaleState struct {
	Creator  common.Address
	Curve    curve.SaleCurve
	NetSold  *big.Int
	Deadline uint64
}

// ReadSale loads sale-curve state for a coin id from the sale contract.
// A zero quadCap on chain means the curve is fully quadratic.
func ReadSale(ctx context.Context, chainClient *chain.Client, sale common.Address, coinID *big.Int) (SaleState, error) {
	if chainClient == nil {
		return SaleState{}, fmt.Errorf("chain client is nil")
	}
	if coinID == nil {
		return SaleState{}, fmt.Errorf("coin id is nil")
	}

	salesABI, err := SaleABI()
	if err != nil {
		return SaleState{}, fmt.Errorf("parse sale abi: %w", err)
	}

	values, err := callMethod(ctx, chainClient, sale, salesABI, "sales", nil, coinID)
	if err != nil {
		return SaleState{}, err
	}
	if len(values) != 7 {
		return SaleState{}, fmt.Errorf("sales return size %d", len(values))
	}

	creator, err := asAddress(values[0])
	if err != nil {
		return SaleState{}, fmt.Errorf("creator: %w", err)
	}
	saleCap, err := asBigInt(values[1])
	if err != nil {
		return SaleState{}, fmt.Errorf("sale cap: %w", err)
	}
	netSold, err := asBigInt(values[2])
	if err != nil {
		return SaleState{}, fmt.Errorf("net sold: %w", err)
	}
	ethTarget, err := asBigInt(values[3])
	if err != nil {
		return SaleState{}, fmt.Errorf("eth target: %w", err)
	}
	divisor, err := asBigInt(values[4])
	if err != nil {
		return SaleState{}, fmt.Errorf("divisor: %w", err)
	}
	quadCap, err := asBigInt(values[5])
	if err != nil {
		return SaleState{}, fmt.Errorf("quad cap: %w", err)
	}
	deadline, ok := values[6].(uint64)
	if !ok {
		return SaleState{}, fmt.Errorf("deadline: unexpected type %T", values[6])
	}

	if quadCap.Sign() == 0 {
		quadCap = nil
	}
	saleCurve, err := curve.NewSaleCurve(saleCap, divisor, ethTarget, quadCap)
	if err != nil {
		return SaleState{}, fmt.Errorf("sale curve for coin %s: %w", coinID, err)
	}

	return SaleState{
		Creator:  creator,
		Curve:    saleCurve,
		NetSold:  netSold,
		Deadline: deadline,
	}, nil
}
