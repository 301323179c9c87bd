package bitcoin

import (
	"encoding/hex"
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/model"
	"github.com/goodnatureofminers/satindex-backend/pkg/safe"
)

// btcToSatoshis converts a BTC amount to satoshis with overflow checks.
func btcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

// BuildBlock maps a verbose btcjson block result into a model.Block.
func BuildBlock(src *btcjson.GetBlockVerboseTxResult) (*model.Block, error) {
	hash, err := chainhash.NewHashFromStr(src.Hash)
	if err != nil {
		return nil, fmt.Errorf("block hash %q: %w", src.Hash, err)
	}
	if src.Height < 0 || src.Height > math.MaxInt32 {
		return nil, fmt.Errorf("block height %d out of range", src.Height)
	}

	var prev chainhash.Hash
	if src.PreviousHash != "" {
		p, err := chainhash.NewHashFromStr(src.PreviousHash)
		if err != nil {
			return nil, fmt.Errorf("block %d previous hash %q: %w", src.Height, src.PreviousHash, err)
		}
		prev = *p
	}

	blk := &model.Block{
		Hash:     *hash,
		PrevHash: prev,
		Height:   int32(src.Height),
		Txs:      make([]model.Transaction, 0, len(src.Tx)),
	}
	for _, raw := range src.Tx {
		tx, err := buildTransaction(raw)
		if err != nil {
			return nil, fmt.Errorf("block %d tx %s: %w", src.Height, raw.Txid, err)
		}
		blk.Txs = append(blk.Txs, tx)
	}
	return blk, nil
}

func buildTransaction(raw btcjson.TxRawResult) (model.Transaction, error) {
	txid, err := chainhash.NewHashFromStr(raw.Txid)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("txid %q: %w", raw.Txid, err)
	}

	tx := model.Transaction{TxID: *txid}
	for _, vin := range raw.Vin {
		if vin.IsCoinBase() {
			tx.IsCoinbase = true
			continue
		}
		prev, err := chainhash.NewHashFromStr(vin.Txid)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("input txid %q: %w", vin.Txid, err)
		}
		tx.Inputs = append(tx.Inputs, model.TxIn{PrevTxID: *prev, PrevVout: vin.Vout})
	}
	for _, vout := range raw.Vout {
		value, err := btcToSatoshis(vout.Value)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("output %d value: %w", vout.N, err)
		}
		script, err := hex.DecodeString(vout.ScriptPubKey.Hex)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("output %d script: %w", vout.N, err)
		}
		tx.Outputs = append(tx.Outputs, model.TxOut{Value: value, Script: script})
	}
	return tx, nil
}
