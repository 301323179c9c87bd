package store

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/model"
)

// Every key of the index lives under a single tag byte so the subspace can
// coexist with other data in the same database.
const keyTag = 'o'

const (
	subOutput       = 'O' // o O <txid 32> <vout be32> -> output entry
	subLastOrdinal  = 'L' // o L -> last ordinal (be64)
	subBestBlock    = 'B' // o B -> block hash (32) + height (be32)
	subPendingPrune = 'P' // o P <height be32> -> outpoint list
	subMode         = 'M' // o M -> mode string
)

var (
	keyLastOrdinal = []byte{keyTag, subLastOrdinal}
	keyBestBlock   = []byte{keyTag, subBestBlock}
	keyMode        = []byte{keyTag, subMode}

	outputPrefix = []byte{keyTag, subOutput}
)

func outputKey(op model.Outpoint) []byte {
	key := make([]byte, 2+chainhash.HashSize+4)
	key[0] = keyTag
	key[1] = subOutput
	copy(key[2:], op.TxID[:])
	binary.BigEndian.PutUint32(key[2+chainhash.HashSize:], op.Vout)
	return key
}

func outpointFromKey(key []byte) (model.Outpoint, bool) {
	if len(key) != 2+chainhash.HashSize+4 || key[0] != keyTag || key[1] != subOutput {
		return model.Outpoint{}, false
	}
	var op model.Outpoint
	copy(op.TxID[:], key[2:2+chainhash.HashSize])
	op.Vout = binary.BigEndian.Uint32(key[2+chainhash.HashSize:])
	return op, true
}

func pendingPruneKey(height int32) []byte {
	key := make([]byte, 2+4)
	key[0] = keyTag
	key[1] = subPendingPrune
	binary.BigEndian.PutUint32(key[2:], uint32(height))
	return key
}
