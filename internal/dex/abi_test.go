package dex

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestAMMABIPoolsRoundTrip(t *testing.T) {
	poolsABI, err := AMMABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}

	method, ok := poolsABI.Methods["pools"]
	if !ok {
		t.Fatalf("pools method missing")
	}

	data, err := method.Outputs.Pack(
		big.NewInt(1_000_000),
		big.NewInt(2_000_000),
		uint32(1700000000),
		big.NewInt(0),
		big.NewInt(0),
		big.NewInt(0),
		big.NewInt(0),
	)
	if err != nil {
		t.Fatalf("pack pools: %v", err)
	}

	values, err := poolsABI.Unpack("pools", data)
	if err != nil {
		t.Fatalf("unpack pools: %v", err)
	}
	if len(values) != 7 {
		t.Fatalf("pools return size %d, want 7", len(values))
	}

	reserve0, err := asBigInt(values[0])
	if err != nil {
		t.Fatalf("reserve0: %v", err)
	}
	reserve1, err := asBigInt(values[1])
	if err != nil {
		t.Fatalf("reserve1: %v", err)
	}
	if reserve0.Cmp(big.NewInt(1_000_000)) != 0 || reserve1.Cmp(big.NewInt(2_000_000)) != 0 {
		t.Fatalf("reserves %s/%s, want 1000000/2000000", reserve0, reserve1)
	}
}

func TestSaleABISalesRoundTrip(t *testing.T) {
	salesABI, err := SaleABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}

	method, ok := salesABI.Methods["sales"]
	if !ok {
		t.Fatalf("sales method missing")
	}

	creator := common.HexToAddress("0x1111111111111111111111111111111111111111")
	data, err := method.Outputs.Pack(
		creator,
		big.NewInt(800_000),
		big.NewInt(1234),
		big.NewInt(10),
		big.NewInt(7),
		big.NewInt(600_000),
		uint64(1800000000),
	)
	if err != nil {
		t.Fatalf("pack sales: %v", err)
	}

	values, err := salesABI.Unpack("sales", data)
	if err != nil {
		t.Fatalf("unpack sales: %v", err)
	}
	if len(values) != 7 {
		t.Fatalf("sales return size %d, want 7", len(values))
	}

	gotCreator, err := asAddress(values[0])
	if err != nil {
		t.Fatalf("creator: %v", err)
	}
	if gotCreator != creator {
		t.Fatalf("creator %s, want %s", gotCreator.Hex(), creator.Hex())
	}

	deadline, ok := values[6].(uint64)
	if !ok {
		t.Fatalf("deadline: unexpected type %T", values[6])
	}
	if deadline != 1800000000 {
		t.Fatalf("deadline %d, want 1800000000", deadline)
	}
}
