package http

import (
	"encoding/json"
	"net/http"
	"time"

	"equiprent-backend/internal/billing"
	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
)

// RentalHandler serves rental issuance, lookup and cancellation
type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type createRentalRequest struct {
	ClientID           int32                       `json:"client_id"`
	RentalDate         string                      `json:"rental_date"`           // YYYY-MM-DD, defaults to today
	ExpectedReturnDate string                      `json:"expected_return_date"`  // YYYY-MM-DD, optional
	Items              []service.RentalItemRequest `json:"items"`
	Notes              string                      `json:"notes"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	rentalDate := time.Now().UTC()
	if req.RentalDate != "" {
		var err error
		rentalDate, err = time.ParseInLocation(dateLayout, req.RentalDate, time.UTC)
		if err != nil {
			writeBadRequest(w, "invalid rental_date, expected YYYY-MM-DD")
			return
		}
	}

	var expectedReturn *time.Time
	if req.ExpectedReturnDate != "" {
		t, err := time.ParseInLocation(dateLayout, req.ExpectedReturnDate, time.UTC)
		if err != nil {
			writeBadRequest(w, "invalid expected_return_date, expected YYYY-MM-DD")
			return
		}
		expectedReturn = &t
	}

	rental, err := h.rentals.CreateRental(r.Context(), req.ClientID, rentalDate, expectedReturn, req.Items, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

type rentalResponse struct {
	Rental  *domain.Rental   `json:"rental"`
	Accrual *billing.Accrual `json:"accrual"`
}

// Get returns the rental with a live accrual evaluated at the optional
// as_of date (default today).
func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid rental id")
		return
	}

	asOf, err := queryDate(r, "as_of")
	if err != nil {
		writeBadRequest(w, "invalid as_of date, expected YYYY-MM-DD")
		return
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	rental, accrual, err := h.rentals.GetRental(r.Context(), id, asOf)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalResponse{Rental: rental, Accrual: accrual})
}

type rentalListResponse struct {
	Rentals  []domain.Rental `json:"rentals"`
	Total    int32           `json:"total"`
	Page     int32           `json:"page"`
	PageSize int32           `json:"page_size"`
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	clientID, err := queryInt32(r, "client_id")
	if err != nil {
		writeBadRequest(w, "invalid client_id")
		return
	}
	status := r.URL.Query().Get("status")

	rentals, total, err := h.rentals.ListRentals(r.Context(), clientID, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalListResponse{
		Rentals:  rentals,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

type cancelRentalRequest struct {
	Reason string `json:"reason"`
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid rental id")
		return
	}

	var req cancelRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	rental, err := h.rentals.CancelRental(r.Context(), id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}
