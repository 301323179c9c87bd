// Package query serves the three read operations of the ordinal index. All
// reads run against store snapshots so they never observe a half-applied
// block.
package query

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/model"
	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/ranges"
	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/store"
)

var (
	// ErrBadTxid is returned for a txid that is not 64 hex characters.
	ErrBadTxid = errors.New("malformed txid")

	// ErrBadVout is returned for an output index outside the uint32 range.
	ErrBadVout = errors.New("malformed output index")

	// ErrNotFound is returned for a well-formed query with no match.
	ErrNotFound = errors.New("no matching record")

	// ErrModeRequired is returned when a query needs the rewrite-spent
	// index mode and the index was built in another mode.
	ErrModeRequired = errors.New("query requires the rewrite-spent index mode")
)

// OutputRanges is the result of RangesOf.
type OutputRanges struct {
	Ranges      ranges.RangeList
	BlockHeight int32
	Spent       bool
	Inscription bool
}

// Service answers ordinal queries from the index store.
type Service struct {
	store  *store.Store
	mode   model.Mode
	logger *zap.Logger
}

func New(st *store.Store, mode model.Mode, logger *zap.Logger) *Service {
	return &Service{
		store:  st,
		mode:   mode,
		logger: logger,
	}
}

// RangesOf returns the satoshi ranges held by the given output.
func (s *Service) RangesOf(_ context.Context, txid string, vout int64) (OutputRanges, error) {
	op, err := parseOutpoint(txid, vout)
	if err != nil {
		return OutputRanges{}, err
	}

	entry, err := s.store.GetOutput(op)
	if errors.Is(err, store.ErrNotFound) {
		return OutputRanges{}, fmt.Errorf("%w: output %s", ErrNotFound, op)
	}
	if err != nil {
		return OutputRanges{}, err
	}
	return OutputRanges{
		Ranges:      entry.Ranges,
		BlockHeight: entry.BlockHeight,
		Spent:       entry.Spent,
		Inscription: entry.Inscription,
	}, nil
}

// OutputsContaining returns every output whose entry holds the ordinal,
// including spent ones where the mode retains them. The result follows the
// store's key order. An empty result is not an error.
func (s *Service) OutputsContaining(ctx context.Context, ordinal uint64) ([]model.Outpoint, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	defer snap.Release()

	ops := make([]model.Outpoint, 0)
	err = snap.ScanOutputs(ctx, func(op model.Outpoint, e model.OutputEntry) (bool, error) {
		if e.Ranges.Contains(ordinal) {
			ops = append(ops, op)
		}
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan for ordinal %d: %w", ordinal, err)
	}
	s.logger.Debug("ordinal history scan finished",
		zap.Uint64("ordinal", ordinal),
		zap.Int("matches", len(ops)),
	)
	return ops, nil
}

// CurrentLocationOf returns the unspent output currently holding the ordinal.
// When a reorg window leaves several unspent matches, the entry created at
// the greatest height wins; ties fall to the smallest (txid, vout).
func (s *Service) CurrentLocationOf(ctx context.Context, ordinal uint64) (model.Outpoint, error) {
	if s.mode != model.ModeRewriteSpent {
		return model.Outpoint{}, ErrModeRequired
	}

	snap, err := s.store.Snapshot()
	if err != nil {
		return model.Outpoint{}, err
	}
	defer snap.Release()

	var (
		best       model.Outpoint
		bestHeight int32
		found      bool
	)
	err = snap.ScanOutputs(ctx, func(op model.Outpoint, e model.OutputEntry) (bool, error) {
		if e.Spent || !e.Ranges.Contains(ordinal) {
			return true, nil
		}
		// The scan runs in (txid, vout) order, so on equal heights the
		// earlier match is already the lexicographic winner.
		if !found || e.BlockHeight > bestHeight {
			best = op
			bestHeight = e.BlockHeight
			found = true
		}
		return true, nil
	})
	if err != nil {
		return model.Outpoint{}, fmt.Errorf("scan for ordinal %d: %w", ordinal, err)
	}
	if !found {
		return model.Outpoint{}, fmt.Errorf("%w: ordinal %d has no unspent location", ErrNotFound, ordinal)
	}
	return best, nil
}

func parseOutpoint(txid string, vout int64) (model.Outpoint, error) {
	if len(txid) != chainhash.MaxHashStringSize {
		return model.Outpoint{}, fmt.Errorf("%w: want %d hex characters, got %d", ErrBadTxid, chainhash.MaxHashStringSize, len(txid))
	}
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return model.Outpoint{}, fmt.Errorf("%w: %v", ErrBadTxid, err)
	}
	if vout < 0 || vout > math.MaxUint32 {
		return model.Outpoint{}, fmt.Errorf("%w: %d", ErrBadVout, vout)
	}
	return model.Outpoint{TxID: *hash, Vout: uint32(vout)}, nil
}
