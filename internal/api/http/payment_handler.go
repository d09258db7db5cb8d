package http

import (
	"encoding/json"
	"net/http"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
)

// PaymentHandler serves payment recording and listing
type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type recordPaymentRequest struct {
	ClientID    int32  `json:"client_id"`
	RentalID    *int32 `json:"rental_id"`
	AmountPaise int64  `json:"amount_paise"`
	Method      string `json:"method"`
	PaidOn      string `json:"paid_on"` // YYYY-MM-DD, defaults to today
	Reference   string `json:"reference"`
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	var paidOn time.Time
	if req.PaidOn != "" {
		var err error
		paidOn, err = time.ParseInLocation(dateLayout, req.PaidOn, time.UTC)
		if err != nil {
			writeBadRequest(w, "invalid paid_on date, expected YYYY-MM-DD")
			return
		}
	}

	payment := &domain.Payment{
		ClientID:    req.ClientID,
		RentalID:    req.RentalID,
		AmountPaise: req.AmountPaise,
		Method:      domain.PaymentMethod(req.Method),
		PaidOn:      paidOn,
		Reference:   req.Reference,
	}
	if err := h.payments.RecordPayment(r.Context(), payment); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

type paymentListResponse struct {
	Payments []domain.Payment `json:"payments"`
	Total    int32            `json:"total"`
	Page     int32            `json:"page"`
	PageSize int32            `json:"page_size"`
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	payments, total, err := h.payments.ListPayments(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentListResponse{
		Payments: payments,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}
