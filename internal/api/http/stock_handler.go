package http

import (
	"encoding/json"
	"net/http"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
)

// StockHandler serves the equipment catalog and stock levels
type StockHandler struct {
	stock service.StockService
}

func NewStockHandler(stock service.StockService) *StockHandler {
	return &StockHandler{stock: stock}
}

type categoryRequest struct {
	Name            string `json:"name"`
	DailyRatePaise  int64  `json:"daily_rate_paise"`
	Size            string `json:"size"`
	WeightKg        string `json:"weight_kg"`
	Material        string `json:"material"`
	InitialQuantity int32  `json:"initial_quantity"`
}

func (h *StockHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	cat := &domain.StockCategory{
		Name:           req.Name,
		DailyRatePaise: req.DailyRatePaise,
		Size:           req.Size,
		WeightKg:       req.WeightKg,
		Material:       req.Material,
	}
	if err := h.stock.CreateCategory(r.Context(), cat, req.InitialQuantity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

func (h *StockHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid category id")
		return
	}

	cat, err := h.stock.GetCategory(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *StockHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid category id")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	cat := &domain.StockCategory{
		ID:             id,
		Name:           req.Name,
		DailyRatePaise: req.DailyRatePaise,
		Size:           req.Size,
		WeightKg:       req.WeightKg,
		Material:       req.Material,
	}
	if err := h.stock.UpdateCategory(r.Context(), cat); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *StockHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.stock.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (h *StockHandler) ListLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.stock.ListStockLevels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stock": levels})
}

type addStockRequest struct {
	Quantity int32 `json:"quantity"`
}

// AddStock raises a category's total and available counters for newly
// purchased equipment.
func (h *StockHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid category id")
		return
	}

	var req addStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := h.stock.AddStock(r.Context(), id, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category_id": id, "added": req.Quantity})
}
