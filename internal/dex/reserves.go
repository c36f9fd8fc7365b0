package dex

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/NaniDAO/coinchan-sub006/internal/chain"
)

// ReadReserves loads the current reserves for a pool id from the singleton
// AMM contract. The result is a point-in-time snapshot; callers quoting more
// than once must re-read before each quote.
func ReadReserves(ctx context.Context, chainClient *chain.Client, amm common.Address, poolID common.Hash) (reserve0, reserve1 *big.Int, err error) {
	if chainClient == nil {
		return nil, nil, fmt.Errorf("chain client is nil")
	}

	poolsABI, err := AMMABI()
	if err != nil {
		return nil, nil, fmt.Errorf("parse amm abi: %w", err)
	}

	values, err := callMethod(ctx, chainClient, amm, poolsABI, "pools", nil, poolID.Big())
	if err != nil {
		return nil, nil, err
	}
	if len(values) < 2 {
		return nil, nil, fmt.Errorf("pools return size %d", len(values))
	}

	reserve0, err = asBigInt(values[0])
	if err != nil {
		return nil, nil, fmt.Errorf("reserve0: %w", err)
	}
	reserve1, err = asBigInt(values[1])
	if err != nil {
		return nil, nil, fmt.Errorf("reserve1: %w", err)
	}
	return reserve0, reserve1, nil
}

// ReadERC20Balance reads an ERC20 balance, optionally at a block height.
// Custom pools backed by an external ERC20 expose their non-hub reserve this
// way rather than through the AMM pools slot.
func ReadERC20Balance(ctx context.Context, chainClient *chain.Client, token, owner common.Address, blockNumber *big.Int) (*big.Int, error) {
	if chainClient == nil {
		return nil, fmt.Errorf("chain client is nil")
	}

	erc20ABI, err := erc20ABIStringInstance()
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}

	values, err := callMethod(ctx, chainClient, token, erc20ABI, "balanceOf", blockNumber, owner)
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("balanceOf return size %d", len(values))
	}
	return asBigInt(values[0])
}

func callMethod(ctx context.Context, chainClient *chain.Client, contract common.Address, contractABI abi.ABI, method string, block *big.Int, args ...interface{}) ([]interface{}, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &contract, Data: data}
	resp, err := chainClient.CallContract(ctx, msg, block)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := contractABI.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

func asBigInt(value interface{}) (*big.Int, error) {
	v, ok := value.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected type %T", value)
	}
	return v, nil
}

func asAddress(value interface{}) (common.Address, error) {
	v, ok := value.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected type %T", value)
	}
	return v, nil
}
