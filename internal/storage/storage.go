package storage

import "github.com/NaniDAO/coinchan-sub006/internal/model"

// Storage defines a sink for quote records.
type Storage interface {
	PutQuoteBatch(quotes []model.QuoteRecord) error
}
