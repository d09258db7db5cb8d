package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
)

// InvoiceHandler serves invoice generation and lifecycle transitions
type InvoiceHandler struct {
	invoices       service.InvoiceService
	defaultTaxRate decimal.Decimal
}

func NewInvoiceHandler(invoices service.InvoiceService, defaultTaxRatePercent float64) *InvoiceHandler {
	return &InvoiceHandler{
		invoices:       invoices,
		defaultTaxRate: decimal.NewFromFloat(defaultTaxRatePercent),
	}
}

type generateInvoiceRequest struct {
	AsOf           string `json:"as_of"`            // YYYY-MM-DD, defaults to today
	TaxRatePercent string `json:"tax_rate_percent"` // optional decimal string, e.g. "18"
}

type generateInvoiceResponse struct {
	Invoice *domain.Invoice      `json:"invoice"`
	Draft   *domain.InvoiceDraft `json:"draft"`
}

// Generate composes and persists the invoice for a rental, freezing the
// billed total onto the rental.
func (h *InvoiceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid rental id")
		return
	}

	var req generateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	asOf := time.Now().UTC()
	if req.AsOf != "" {
		asOf, err = time.ParseInLocation(dateLayout, req.AsOf, time.UTC)
		if err != nil {
			writeBadRequest(w, "invalid as_of date, expected YYYY-MM-DD")
			return
		}
	}

	taxRate := h.defaultTaxRate
	if req.TaxRatePercent != "" {
		taxRate, err = decimal.NewFromString(req.TaxRatePercent)
		if err != nil {
			writeBadRequest(w, "invalid tax_rate_percent")
			return
		}
	}

	inv, draft, err := h.invoices.GenerateInvoice(r.Context(), rentalID, asOf, taxRate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, generateInvoiceResponse{Invoice: inv, Draft: draft})
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid invoice id")
		return
	}

	inv, err := h.invoices.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID, err := queryInt32(r, "client_id")
	if err != nil {
		writeBadRequest(w, "invalid client_id")
		return
	}
	if clientID == 0 {
		writeBadRequest(w, "client_id is required")
		return
	}

	invoices, err := h.invoices.ListInvoices(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

type payInvoiceRequest struct {
	PaidOn string `json:"paid_on"` // YYYY-MM-DD, defaults to today
}

func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid invoice id")
		return
	}

	var req payInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	paidOn := time.Now().UTC()
	if req.PaidOn != "" {
		paidOn, err = time.ParseInLocation(dateLayout, req.PaidOn, time.UTC)
		if err != nil {
			writeBadRequest(w, "invalid paid_on date, expected YYYY-MM-DD")
			return
		}
	}

	if err := h.invoices.MarkPaid(r.Context(), id, paidOn); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invoice_id": id, "status": domain.InvoiceStatusPaid})
}

func (h *InvoiceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid invoice id")
		return
	}

	if err := h.invoices.Cancel(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invoice_id": id, "status": domain.InvoiceStatusCancelled})
}
