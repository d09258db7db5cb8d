package http

import (
	"encoding/json"
	"net/http"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
)

// ClientHandler serves client CRUD and the per-client statement
type ClientHandler struct {
	clients service.ClientService
	ledger  service.LedgerService
}

func NewClientHandler(clients service.ClientService, ledger service.LedgerService) *ClientHandler {
	return &ClientHandler{clients: clients, ledger: ledger}
}

type clientRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	IDProofRef string `json:"id_proof_ref"`
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	client := &domain.Client{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		IDProofRef: req.IDProofRef,
	}
	if err := h.clients.CreateClient(r.Context(), client); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid client id")
		return
	}

	client, err := h.clients.GetClient(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid client id")
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	client := &domain.Client{
		ID:         id,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		IDProofRef: req.IDProofRef,
	}
	if err := h.clients.UpdateClient(r.Context(), client); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

type clientListResponse struct {
	Clients  []domain.Client `json:"clients"`
	Total    int32           `json:"total"`
	Page     int32           `json:"page"`
	PageSize int32           `json:"page_size"`
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	query := r.URL.Query().Get("q")

	clients, total, err := h.clients.ListClients(r.Context(), query, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientListResponse{
		Clients:  clients,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Statement derives the client's outstanding/paid/balance figures. The
// optional since parameter bounds the payment window.
func (h *ClientHandler) Statement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid client id")
		return
	}
	since, err := queryDate(r, "since")
	if err != nil {
		writeBadRequest(w, "invalid since date, expected YYYY-MM-DD")
		return
	}

	balance, err := h.ledger.ClientStatement(r.Context(), id, since)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}
