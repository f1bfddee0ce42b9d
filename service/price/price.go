package price

import (
	"context"
	"fmt"
)

type Table map[string]float64

type Fetcher interface {
	Prices(ctx context.Context) (map[string]float64, error)
}

// Service returns a fresh price table on every call; nothing is cached
// between calls. Manual prices override fetched ones.
type Service struct {
	f      Fetcher
	manual map[string]float64
}

func NewService(f Fetcher, manual map[string]float64) *Service {
	return &Service{f, manual}
}

func (s *Service) Prices(ctx context.Context) (Table, error) {
	res := make(Table)
	ps, err := s.f.Prices(ctx)
	if err != nil {
		err = fmt.Errorf("fetch prices: %w", err)
	}
	for k, v := range ps {
		res[k] = v
	}
	for k, v := range s.manual {
		res[k] = v
	}
	return res, err
}
