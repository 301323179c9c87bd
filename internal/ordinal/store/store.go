// Package store persists per-output satoshi ranges and index metadata in an
// ordered key-value database. All per-block mutations are staged in a Batch
// and committed atomically; readers work against snapshots.
package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store wraps the leveldb handle holding the ordinal index subspace.
type Store struct {
	db *leveldb.DB
}

// Open opens (or creates) the index database at the given path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open index db at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// OpenMem opens a memory-backed store. Used by tests.
func OpenMem() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Batch stages puts and deletes for one atomic commit.
type Batch struct {
	b leveldb.Batch
}

// NewBatch returns an empty batch.
func (s *Store) NewBatch() *Batch {
	return &Batch{}
}

// PutOutput stages an output entry write.
func (b *Batch) PutOutput(op model.Outpoint, e model.OutputEntry) {
	b.b.Put(outputKey(op), encodeEntry(e))
}

// DeleteOutput stages an output entry delete.
func (b *Batch) DeleteOutput(op model.Outpoint) {
	b.b.Delete(outputKey(op))
}

// SetLastOrdinal stages the exclusive upper bound of minted ordinals.
func (b *Batch) SetLastOrdinal(last uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], last)
	b.b.Put(keyLastOrdinal, buf[:])
}

// SetBestBlock stages the best indexed block pointer.
func (b *Batch) SetBestBlock(hash chainhash.Hash, height int32) {
	b.b.Put(keyBestBlock, encodeBestBlock(hash, height))
}

// DeleteBestBlock stages removal of the best block pointer. Used when the
// genesis block itself is disconnected.
func (b *Batch) DeleteBestBlock() {
	b.b.Delete(keyBestBlock)
}

// PutPendingPrune stages the list of outputs spent at the given height.
func (b *Batch) PutPendingPrune(height int32, ops []model.Outpoint) {
	b.b.Put(pendingPruneKey(height), encodeOutpoints(ops))
}

// DeletePendingPrune stages removal of a pending-prune record.
func (b *Batch) DeletePendingPrune(height int32) {
	b.b.Delete(pendingPruneKey(height))
}

// SetMode stages the index mode stamp.
func (b *Batch) SetMode(mode model.Mode) {
	b.b.Put(keyMode, []byte(mode))
}

// Len returns the number of staged operations.
func (b *Batch) Len() int {
	return b.b.Len()
}

// Commit writes the batch atomically and durably. A crash leaves the store
// either fully before or fully after the batch.
func (s *Store) Commit(b *Batch) error {
	if err := s.db.Write(&b.b, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// getter is satisfied by both *leveldb.DB and *leveldb.Snapshot.
type getter interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
}

func getOutput(g getter, op model.Outpoint) (model.OutputEntry, error) {
	value, err := g.Get(outputKey(op), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return model.OutputEntry{}, ErrNotFound
	}
	if err != nil {
		return model.OutputEntry{}, fmt.Errorf("get output %s: %w", op, err)
	}
	entry, err := decodeEntry(value)
	if err != nil {
		return model.OutputEntry{}, fmt.Errorf("decode output %s: %w", op, err)
	}
	return entry, nil
}

func lastOrdinal(g getter) (uint64, error) {
	value, err := g.Get(keyLastOrdinal, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get last ordinal: %w", err)
	}
	if len(value) != 8 {
		return 0, fmt.Errorf("corrupt last ordinal record: %d bytes", len(value))
	}
	return binary.BigEndian.Uint64(value), nil
}

// GetOutput reads a single output entry.
func (s *Store) GetOutput(op model.Outpoint) (model.OutputEntry, error) {
	return getOutput(s.db, op)
}

// LastOrdinal returns the exclusive upper bound of minted ordinals, zero on a
// fresh store.
func (s *Store) LastOrdinal() (uint64, error) {
	return lastOrdinal(s.db)
}

// BestBlock returns the best indexed block. ok is false on a fresh store.
func (s *Store) BestBlock() (hash chainhash.Hash, height int32, ok bool, err error) {
	value, err := s.db.Get(keyBestBlock, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return chainhash.Hash{}, 0, false, nil
	}
	if err != nil {
		return chainhash.Hash{}, 0, false, fmt.Errorf("get best block: %w", err)
	}
	hash, height, err = decodeBestBlock(value)
	if err != nil {
		return chainhash.Hash{}, 0, false, err
	}
	return hash, height, true, nil
}

// PendingPrune returns the outputs spent at the given height, or nil when no
// record exists.
func (s *Store) PendingPrune(height int32) ([]model.Outpoint, error) {
	value, err := s.db.Get(pendingPruneKey(height), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pending prune at %d: %w", height, err)
	}
	ops, err := decodeOutpoints(value)
	if err != nil {
		return nil, fmt.Errorf("decode pending prune at %d: %w", height, err)
	}
	return ops, nil
}

// Mode returns the persisted index mode stamp. ok is false on a fresh store.
func (s *Store) Mode() (model.Mode, bool, error) {
	value, err := s.db.Get(keyMode, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get mode stamp: %w", err)
	}
	return model.Mode(value), true, nil
}

// Snapshot is a consistent read-only view at some committed block.
type Snapshot struct {
	snap *leveldb.Snapshot
}

// Snapshot returns a read view isolated from subsequent commits. Callers must
// Release it.
func (s *Store) Snapshot() (*Snapshot, error) {
	snap, err := s.db.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("acquire snapshot: %w", err)
	}
	return &Snapshot{snap: snap}, nil
}

// Release frees the snapshot.
func (sn *Snapshot) Release() {
	sn.snap.Release()
}

// GetOutput reads a single output entry from the snapshot.
func (sn *Snapshot) GetOutput(op model.Outpoint) (model.OutputEntry, error) {
	return getOutput(sn.snap, op)
}

// LastOrdinal reads the minted upper bound from the snapshot.
func (sn *Snapshot) LastOrdinal() (uint64, error) {
	return lastOrdinal(sn.snap)
}

// ScanOutputs walks every output entry in key order, invoking fn for each.
// The walk stops when fn returns false, fn errors, or the context is
// canceled; cancellation is checked between iterator steps so a dropped
// client does not pin a full scan.
func (sn *Snapshot) ScanOutputs(ctx context.Context, fn func(model.Outpoint, model.OutputEntry) (bool, error)) error {
	iter := sn.snap.NewIterator(util.BytesPrefix(outputPrefix), nil)
	defer iter.Release()

	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		op, ok := outpointFromKey(iter.Key())
		if !ok {
			return fmt.Errorf("malformed output key %x", iter.Key())
		}
		entry, err := decodeEntry(iter.Value())
		if err != nil {
			return fmt.Errorf("decode output %s: %w", op, err)
		}
		cont, err := fn(op, entry)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	if err := iter.Error(); err != nil {
		return fmt.Errorf("scan outputs: %w", err)
	}
	return nil
}
