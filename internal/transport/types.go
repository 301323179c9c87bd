package transport

import (
	"context"

	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/model"
	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/query"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// QueryService answers the three index queries. A nil QueryService on
	// the handler means the index is disabled.
	QueryService interface {
		RangesOf(ctx context.Context, txid string, vout int64) (query.OutputRanges, error)
		OutputsContaining(ctx context.Context, ordinal uint64) ([]model.Outpoint, error)
		CurrentLocationOf(ctx context.Context, ordinal uint64) (model.Outpoint, error)
	}

	// HealthSource reports whether the index writer is still healthy.
	HealthSource interface {
		Healthy() bool
	}
)
