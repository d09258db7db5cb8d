package http

import (
	"encoding/json"
	"net/http"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
)

// ReturnHandler serves return batch submission and history
type ReturnHandler struct {
	returns service.ReturnService
}

func NewReturnHandler(returns service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returns: returns}
}

type processReturnRequest struct {
	ReturnDate string                    `json:"return_date"` // YYYY-MM-DD, defaults to today
	Items      []domain.ReturnSubmission `json:"items"`
	Notes      string                    `json:"notes"`
}

type processReturnResponse struct {
	Return *domain.Return `json:"return"`
	Rental *domain.Rental `json:"rental"`
}

// Process applies one return batch against a rental. The whole batch
// succeeds or fails together.
func (h *ReturnHandler) Process(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid rental id")
		return
	}

	var req processReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	returnDate := time.Now().UTC()
	if req.ReturnDate != "" {
		returnDate, err = time.ParseInLocation(dateLayout, req.ReturnDate, time.UTC)
		if err != nil {
			writeBadRequest(w, "invalid return_date, expected YYYY-MM-DD")
			return
		}
	}

	ret, rental, err := h.returns.ProcessReturn(r.Context(), rentalID, returnDate, req.Items, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, processReturnResponse{Return: ret, Rental: rental})
}

func (h *ReturnHandler) List(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid rental id")
		return
	}

	returns, err := h.returns.ListReturns(r.Context(), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"returns": returns})
}
