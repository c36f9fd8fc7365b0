package dex

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const ammABIJSON = `[
  {
    "inputs": [{"internalType": "uint256", "name": "poolId", "type": "uint256"}],
    "name": "pools",
    "outputs": [
      {"internalType": "uint112", "name": "reserve0", "type": "uint112"},
      {"internalType": "uint112", "name": "reserve1", "type": "uint112"},
      {"internalType": "uint32", "name": "blockTimestampLast", "type": "uint32"},
      {"internalType": "uint256", "name": "price0CumulativeLast", "type": "uint256"},
      {"internalType": "uint256", "name": "price1CumulativeLast", "type": "uint256"},
      {"internalType": "uint256", "name": "kLast", "type": "uint256"},
      {"internalType": "uint256", "name": "supply", "type": "uint256"}
    ],
    "stateMutability": "view",
    "type": "function"
  }
]`

const saleABIJSON = `[
  {
    "inputs": [{"internalType": "uint256", "name": "coinId", "type": "uint256"}],
    "name": "sales",
    "outputs": [
      {"internalType": "address", "name": "creator", "type": "address"},
      {"internalType": "uint256", "name": "saleCap", "type": "uint256"},
      {"internalType": "uint256", "name": "netSold", "type": "uint256"},
      {"internalType": "uint256", "name": "ethTarget", "type": "uint256"},
      {"internalType": "uint256", "name": "divisor", "type": "uint256"},
      {"internalType": "uint256", "name": "quadCap", "type": "uint256"},
      {"internalType": "uint64", "name": "deadline", "type": "uint64"}
    ],
    "stateMutability": "view",
    "type": "function"
  }
]`

var (
	ammABI     abi.ABI
	ammABIOnce sync.Once
	ammABIErr  error

	saleABI     abi.ABI
	saleABIOnce sync.Once
	saleABIErr  error
)

// AMMABI returns the parsed singleton AMM ABI.
func AMMABI() (abi.ABI, error) {
	ammABIOnce.Do(func() {
		ammABI, ammABIErr = abi.JSON(strings.NewReader(ammABIJSON))
	})
	return ammABI, ammABIErr
}

// SaleABI returns the parsed sale-curve ABI.
func SaleABI() (abi.ABI, error) {
	saleABIOnce.Do(func() {
		saleABI, saleABIErr = abi.JSON(strings.NewReader(saleABIJSON))
	})
	return saleABI, saleABIErr
}
