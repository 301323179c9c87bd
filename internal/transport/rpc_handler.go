// Package transport exposes the ordinal index over HTTP JSON-RPC, in the
// node's own RPC dialect so existing JSON-RPC clients work unchanged.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/btcsuite/btcd/btcjson"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/query"
)

const maxRequestSize = 1 << 20

const (
	methodRangesOf          = "rangesOf"
	methodOutputsContaining = "outputsContaining"
	methodCurrentLocationOf = "currentLocationOf"
)

// SatRange is the wire form of a half-open satoshi range.
type SatRange struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

// RangesOfResult is the wire form of a rangesOf reply.
type RangesOfResult struct {
	Ranges      []SatRange `json:"ranges"`
	BlockHeight int32      `json:"blockHeight"`
	Spent       bool       `json:"spent"`
	Inscription bool       `json:"inscription"`
}

// RPCHandler serves the index query methods and the health probe.
type RPCHandler struct {
	logger *zap.Logger
	query  QueryService
	health HealthSource
}

// NewRPCHandler returns an RPCHandler instance. query may be nil when the
// index is disabled; the query methods then answer with "method not found".
func NewRPCHandler(query QueryService, health HealthSource, logger *zap.Logger) *RPCHandler {
	return &RPCHandler{
		logger: logger,
		query:  query,
		health: health,
	}
}

// Routes returns the handler's HTTP mux.
func (h *RPCHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.handleRPC)
	mux.HandleFunc("/health", h.handleHealth)
	return mux
}

func (h *RPCHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	status := "ok"
	code := http.StatusOK
	if h.health != nil && !h.health.Healthy() {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": status}); err != nil {
		h.logger.Warn("write health response", zap.Error(err))
	}
}

func (h *RPCHandler) handleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "JSON-RPC requests must be POSTed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestSize))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	var req btcjson.Request
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeResponse(w, btcjson.RpcVersion1, nil, nil, btcjson.ErrRPCParse)
		return
	}
	version := req.Jsonrpc
	if !version.IsValid() {
		version = btcjson.RpcVersion1
	}

	result, rpcErr := h.dispatch(r.Context(), &req)
	h.writeResponse(w, version, req.ID, result, rpcErr)
}

func (h *RPCHandler) dispatch(ctx context.Context, req *btcjson.Request) (interface{}, *btcjson.RPCError) {
	switch req.Method {
	case methodRangesOf, methodOutputsContaining, methodCurrentLocationOf:
	default:
		return nil, btcjson.ErrRPCMethodNotFound
	}
	if h.query == nil {
		return nil, btcjson.NewRPCError(btcjson.ErrRPCMethodNotFound.Code, "the ordinal index is disabled")
	}

	switch req.Method {
	case methodRangesOf:
		return h.rangesOf(ctx, req.Params)
	case methodOutputsContaining:
		return h.outputsContaining(ctx, req.Params)
	default:
		return h.currentLocationOf(ctx, req.Params)
	}
}

func (h *RPCHandler) rangesOf(ctx context.Context, params []json.RawMessage) (interface{}, *btcjson.RPCError) {
	if len(params) != 2 {
		return nil, invalidParameter("rangesOf takes a txid and an output index")
	}
	var txid string
	if err := json.Unmarshal(params[0], &txid); err != nil {
		return nil, invalidParameter("txid must be a string")
	}
	var vout int64
	if err := json.Unmarshal(params[1], &vout); err != nil {
		return nil, invalidParameter("output index must be an integer")
	}

	res, err := h.query.RangesOf(ctx, txid, vout)
	if err != nil {
		return nil, h.mapError(err)
	}

	out := RangesOfResult{
		Ranges:      make([]SatRange, 0, len(res.Ranges)),
		BlockHeight: res.BlockHeight,
		Spent:       res.Spent,
		Inscription: res.Inscription,
	}
	for _, r := range res.Ranges {
		out.Ranges = append(out.Ranges, SatRange{Start: r.Start, End: r.End})
	}
	return out, nil
}

func (h *RPCHandler) outputsContaining(ctx context.Context, params []json.RawMessage) (interface{}, *btcjson.RPCError) {
	ordinal, rpcErr := ordinalParam(params, methodOutputsContaining)
	if rpcErr != nil {
		return nil, rpcErr
	}

	ops, err := h.query.OutputsContaining(ctx, ordinal)
	if err != nil {
		return nil, h.mapError(err)
	}

	out := make([]string, 0, len(ops))
	for _, op := range ops {
		out = append(out, op.String())
	}
	return out, nil
}

func (h *RPCHandler) currentLocationOf(ctx context.Context, params []json.RawMessage) (interface{}, *btcjson.RPCError) {
	ordinal, rpcErr := ordinalParam(params, methodCurrentLocationOf)
	if rpcErr != nil {
		return nil, rpcErr
	}

	op, err := h.query.CurrentLocationOf(ctx, ordinal)
	if err != nil {
		return nil, h.mapError(err)
	}
	return op.String(), nil
}

func ordinalParam(params []json.RawMessage, method string) (uint64, *btcjson.RPCError) {
	if len(params) != 1 {
		return 0, invalidParameter(method + " takes a single ordinal")
	}
	var ordinal uint64
	if err := json.Unmarshal(params[0], &ordinal); err != nil {
		return 0, invalidParameter("ordinal must be a non-negative integer")
	}
	return ordinal, nil
}

func (h *RPCHandler) mapError(err error) *btcjson.RPCError {
	switch {
	case errors.Is(err, query.ErrBadTxid), errors.Is(err, query.ErrBadVout):
		return btcjson.NewRPCError(btcjson.ErrRPCInvalidParameter, err.Error())
	case errors.Is(err, query.ErrModeRequired):
		return btcjson.NewRPCError(btcjson.ErrRPCMethodNotFound.Code, err.Error())
	case errors.Is(err, query.ErrNotFound):
		return btcjson.NewRPCError(btcjson.ErrRPCInvalidAddressOrKey, err.Error())
	default:
		h.logger.Error("index query failed", zap.Error(err))
		return btcjson.NewRPCError(btcjson.ErrRPCInvalidAddressOrKey, "index query failed")
	}
}

func invalidParameter(message string) *btcjson.RPCError {
	return btcjson.NewRPCError(btcjson.ErrRPCInvalidParameter, message)
}

func (h *RPCHandler) writeResponse(w http.ResponseWriter, version btcjson.RPCVersion, id interface{}, result interface{}, rpcErr *btcjson.RPCError) {
	w.Header().Set("Content-Type", "application/json")
	payload, err := btcjson.MarshalResponse(version, id, result, rpcErr)
	if err != nil {
		h.logger.Error("marshal rpc response", zap.Error(err))
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(payload); err != nil {
		h.logger.Warn("write rpc response", zap.Error(err))
	}
}
