package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/arbwatch/arbwatch/src/models"
	"github.com/arbwatch/arbwatch/src/spreads"
)

type SpreadHandler struct {
	DB        models.IDatabaseService
	Registrar *spreads.Registrar
	Liquidity spreads.LiquidityConfig
}

func NewSpreadHandler(db models.IDatabaseService, liquidity spreads.LiquidityConfig) *SpreadHandler {
	return &SpreadHandler{
		DB:        db,
		Registrar: spreads.NewRegistrar(db),
		Liquidity: liquidity,
	}
}

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := errorResponse{Type: errType, Msg: err.Error()}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		log.Errorf("setErrorResponse: encode: %v", encodeErr)
	}
}

type WatchSpreadRequest struct {
	DealID   uint           `json:"dealId"`
	Strategy *StrategyInput `json:"strategy"`

	ListIDs     []uint  `json:"listIds,omitempty"`
	NewListName string  `json:"newListName,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type StrategyInput struct {
	Type            models.StrategyType  `json:"type"`
	Expiration      string               `json:"expiration"`
	Legs            []models.StrategyLeg `json:"legs"`
	EntryPremium    decimal.Decimal      `json:"entryPremium"`
	MaxProfit       decimal.Decimal      `json:"maxProfit"`
	MaxLoss         decimal.Decimal      `json:"maxLoss"`
	ReturnOnRisk    decimal.Decimal      `json:"returnOnRisk"`
	AnnualizedYield decimal.Decimal      `json:"annualizedYield"`
	UnderlyingPrice decimal.NullDecimal  `json:"underlyingPrice"`
}

// WatchSpread handles POST /spreads/watch. A duplicate strategy responds 200
// with created=false and the existing id.
func (h *SpreadHandler) WatchSpread(w http.ResponseWriter, r *http.Request) {
	var req WatchSpreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		setErrorResponse("WatchSpread: failed to decode request", 400, err, w)
		return
	}

	if req.Strategy == nil {
		setErrorResponse("WatchSpread: validation failed", 400, errors.New("missing strategy"), w)
		return
	}

	watchReq := spreads.WatchRequest{
		DealID:          req.DealID,
		StrategyType:    req.Strategy.Type,
		Expiration:      req.Strategy.Expiration,
		Legs:            req.Strategy.Legs,
		EntryPremium:    req.Strategy.EntryPremium,
		MaxProfit:       req.Strategy.MaxProfit,
		MaxLoss:         req.Strategy.MaxLoss,
		ReturnOnRisk:    req.Strategy.ReturnOnRisk,
		AnnualizedYield: req.Strategy.AnnualizedYield,
		UnderlyingPrice: req.Strategy.UnderlyingPrice,
		Notes:           req.Notes,
		ListIDs:         req.ListIDs,
		NewListName:     req.NewListName,
		ActingUserID:    actingUserID(r),
	}

	result, err := h.Registrar.Watch(watchReq)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			setErrorResponse("WatchSpread: validation failed", 400, err, w)
			return
		}

		log.Errorf("WatchSpread: %v", err)
		setErrorResponse("WatchSpread: failed to watch spread", 500, err, w)
		return
	}

	if err := setResponse(result, w); err != nil {
		log.Errorf("WatchSpread: %v", err)
	}
}

type getSpreadsQuery struct {
	DealID uint `schema:"deal_id,required"`
}

// queryDecoder tolerates extra query parameters such as cache busters.
var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// GetSpreads handles GET /spreads?deal_id=N, returning the read model with
// metrics recomputed as of now.
func (h *SpreadHandler) GetSpreads(w http.ResponseWriter, r *http.Request) {
	var query getSpreadsQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		setErrorResponse("GetSpreads: failed to decode query", 400, err, w)
		return
	}

	views, err := spreads.BuildDealViews(h.DB, query.DealID, time.Now().UTC(), h.Liquidity)
	if err != nil {
		log.Errorf("GetSpreads: %v", err)
		setErrorResponse("GetSpreads: failed to build views", 500, err, w)
		return
	}

	if err := setResponse(views, w); err != nil {
		log.Errorf("GetSpreads: %v", err)
	}
}

type UpdateSpreadRequest struct {
	Status *models.SpreadStatus `json:"status,omitempty"`
	Notes  *string              `json:"notes,omitempty"`
}

// UpdateSpread handles PATCH /spreads/{id} for status and notes edits.
func (h *SpreadHandler) UpdateSpread(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		setErrorResponse("UpdateSpread: invalid id", 400, err, w)
		return
	}

	var req UpdateSpreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		setErrorResponse("UpdateSpread: failed to decode request", 400, err, w)
		return
	}

	spread, err := h.Registrar.UpdateSpread(uint(id), req.Status, req.Notes)
	if err != nil {
		if errors.Is(err, models.ErrSpreadNotFound) {
			setErrorResponse("UpdateSpread: spread not found", 404, err, w)
			return
		}

		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			setErrorResponse("UpdateSpread: validation failed", 400, err, w)
			return
		}

		log.Errorf("UpdateSpread: %v", err)
		setErrorResponse("UpdateSpread: failed to update spread", 500, err, w)
		return
	}

	if err := setResponse(spread, w); err != nil {
		log.Errorf("UpdateSpread: %v", err)
	}
}

// actingUserID reads the user reference resolved by the upstream auth layer.
func actingUserID(r *http.Request) *uuid.UUID {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		log.Warnf("actingUserID: invalid X-User-ID %q", raw)
		return nil
	}

	return &id
}
