package store

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/model"
	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/ranges"
)

// Encoding version stamped into every output entry value. Bump on layout
// changes; a mismatch on read means the installation needs a reindex.
const entryCodecVersion = 1

const (
	flagSpent       = 1 << 0
	flagInscription = 1 << 1
)

// encodeEntry serializes an output entry. The range list is normalized first
// so that logically equal lists always produce identical bytes.
func encodeEntry(e model.OutputEntry) []byte {
	normalized := ranges.Normalize(e.Ranges)

	buf := make([]byte, 0, 2+binary.MaxVarintLen32+len(normalized)*2*binary.MaxVarintLen64)
	buf = append(buf, entryCodecVersion)

	var flags byte
	if e.Spent {
		flags |= flagSpent
	}
	if e.Inscription {
		flags |= flagInscription
	}
	buf = append(buf, flags)
	buf = binary.AppendUvarint(buf, uint64(uint32(e.BlockHeight)))
	buf = binary.AppendUvarint(buf, uint64(len(normalized)))
	for _, r := range normalized {
		buf = binary.AppendUvarint(buf, r.Start)
		buf = binary.AppendUvarint(buf, r.Size())
	}
	return buf
}

func decodeEntry(value []byte) (model.OutputEntry, error) {
	if len(value) < 2 {
		return model.OutputEntry{}, fmt.Errorf("output entry too short: %d bytes", len(value))
	}
	if value[0] != entryCodecVersion {
		return model.OutputEntry{}, fmt.Errorf("unsupported output entry version %d", value[0])
	}
	flags := value[1]
	rest := value[2:]

	height, n := binary.Uvarint(rest)
	if n <= 0 {
		return model.OutputEntry{}, fmt.Errorf("corrupt output entry height")
	}
	rest = rest[n:]

	count, n := binary.Uvarint(rest)
	if n <= 0 {
		return model.OutputEntry{}, fmt.Errorf("corrupt output entry range count")
	}
	rest = rest[n:]

	list := make(ranges.RangeList, 0, count)
	for i := uint64(0); i < count; i++ {
		start, n := binary.Uvarint(rest)
		if n <= 0 {
			return model.OutputEntry{}, fmt.Errorf("corrupt range start at index %d", i)
		}
		rest = rest[n:]
		size, n := binary.Uvarint(rest)
		if n <= 0 {
			return model.OutputEntry{}, fmt.Errorf("corrupt range size at index %d", i)
		}
		rest = rest[n:]
		list = append(list, ranges.SatRange{Start: start, End: start + size})
	}
	if len(rest) != 0 {
		return model.OutputEntry{}, fmt.Errorf("trailing %d bytes after output entry", len(rest))
	}

	return model.OutputEntry{
		Ranges:      list,
		BlockHeight: int32(uint32(height)),
		Spent:       flags&flagSpent != 0,
		Inscription: flags&flagInscription != 0,
	}, nil
}

func encodeOutpoints(ops []model.Outpoint) []byte {
	buf := make([]byte, 0, binary.MaxVarintLen32+len(ops)*(chainhash.HashSize+4))
	buf = binary.AppendUvarint(buf, uint64(len(ops)))
	for _, op := range ops {
		buf = append(buf, op.TxID[:]...)
		buf = binary.BigEndian.AppendUint32(buf, op.Vout)
	}
	return buf
}

func decodeOutpoints(value []byte) ([]model.Outpoint, error) {
	count, n := binary.Uvarint(value)
	if n <= 0 {
		return nil, fmt.Errorf("corrupt outpoint list header")
	}
	rest := value[n:]
	const recordLen = chainhash.HashSize + 4
	if uint64(len(rest)) != count*recordLen {
		return nil, fmt.Errorf("outpoint list length mismatch: %d records, %d bytes", count, len(rest))
	}
	ops := make([]model.Outpoint, 0, count)
	for i := uint64(0); i < count; i++ {
		var op model.Outpoint
		copy(op.TxID[:], rest[:chainhash.HashSize])
		op.Vout = binary.BigEndian.Uint32(rest[chainhash.HashSize:recordLen])
		rest = rest[recordLen:]
		ops = append(ops, op)
	}
	return ops, nil
}

func encodeBestBlock(hash chainhash.Hash, height int32) []byte {
	buf := make([]byte, chainhash.HashSize+4)
	copy(buf, hash[:])
	binary.BigEndian.PutUint32(buf[chainhash.HashSize:], uint32(height))
	return buf
}

func decodeBestBlock(value []byte) (chainhash.Hash, int32, error) {
	if len(value) != chainhash.HashSize+4 {
		return chainhash.Hash{}, 0, fmt.Errorf("corrupt best block record: %d bytes", len(value))
	}
	var hash chainhash.Hash
	copy(hash[:], value[:chainhash.HashSize])
	height := int32(binary.BigEndian.Uint32(value[chainhash.HashSize:]))
	return hash, height, nil
}
