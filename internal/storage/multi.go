package storage

import "github.com/NaniDAO/coinchan-sub006/internal/model"

// Multi fans a quote batch out to several sinks, stopping at the first
// failure.
type Multi []Storage

func (m Multi) PutQuoteBatch(quotes []model.QuoteRecord) error {
	for _, sink := range m {
		if err := sink.PutQuoteBatch(quotes); err != nil {
			return err
		}
	}
	return nil
}
