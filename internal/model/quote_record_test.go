package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestQuoteRecordJSONRoundTrip(t *testing.T) {
	original := QuoteRecord{
		ChainID:     1,
		PoolID:      "0xabc123",
		Route:       "two-hop",
		CoinIn:      "12",
		CoinOut:     "77",
		AmountIn:    "10000000000000000",
		AmountOut:   "39280312000000000",
		MinOut:      "39083910440000000",
		FeeBps:      100,
		SlippageBps: 50,
		BlockNumber: 20000000,
		BlockTime:   1704067200,
		QuotedAt:    "2024-01-01T00:00:00Z",
	}

	b, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded QuoteRecord
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round-trip mismatch: %+v != %+v", original, decoded)
	}
}
