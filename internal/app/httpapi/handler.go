// Package httpapi exposes the storefront REST surface. Every response wraps
// its payload in a success envelope; failures carry
// {"success": false, "error": message}.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	app "github.com/roleplay-labs/storefront/internal/app"
	catalogdom "github.com/roleplay-labs/storefront/internal/app/domain/catalog"
	purchasedom "github.com/roleplay-labs/storefront/internal/app/domain/purchase"
	"github.com/roleplay-labs/storefront/internal/app/economy"
	"github.com/roleplay-labs/storefront/internal/app/metrics"
	catalogsvc "github.com/roleplay-labs/storefront/internal/app/services/catalog"
	purchasesvc "github.com/roleplay-labs/storefront/internal/app/services/purchase"
)

// Options tunes the handler beyond the application wiring.
type Options struct {
	// WebDir serves the single-page client when non-empty.
	WebDir string
	// Port is reported by the diagnostic endpoint.
	Port int
}

// handler bundles the HTTP endpoints over the application services.
type handler struct {
	app  *app.Application
	opts Options
}

// NewHandler returns the storefront router.
func NewHandler(application *app.Application, opts Options) http.Handler {
	h := &handler{app: application, opts: opts}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/shop").Subrouter()
	api.HandleFunc("/items", h.listItems).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}", h.getItem).Methods(http.MethodGet)
	api.HandleFunc("/player/{identifier}", h.getPlayer).Methods(http.MethodGet)
	api.HandleFunc("/purchase", h.purchase).Methods(http.MethodPost)
	api.HandleFunc("/history/{identifier}", h.history).Methods(http.MethodGet)
	api.HandleFunc("/health", h.health).Methods(http.MethodGet)
	api.HandleFunc("/test", h.test).Methods(http.MethodGet)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	if opts.WebDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(opts.WebDir)))
	}
	return r
}

func (h *handler) listItems(w http.ResponseWriter, r *http.Request) {
	filter := catalogdom.Category(r.URL.Query().Get("category"))

	writeJSON(w, http.StatusOK, struct {
		Success    bool                  `json:"success"`
		Items      []catalogdom.Entry    `json:"items"`
		Categories []catalogdom.Category `json:"categories"`
	}{
		Success:    true,
		Items:      h.app.Catalog.List(filter),
		Categories: h.app.Catalog.Categories(),
	})
}

func (h *handler) getItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	entry, err := h.app.Catalog.Get(id)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item does not exist")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool             `json:"success"`
		Item    catalogdom.Entry `json:"item"`
	}{Success: true, Item: entry})
}

func (h *handler) getPlayer(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["identifier"]

	provider, ok := h.app.Economy.Get()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "economy provider not loaded")
		return
	}

	player, err := provider.Player(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, economy.ErrPlayerNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool           `json:"success"`
		Player  economy.Player `json:"player"`
	}{Success: true, Player: player})
}

func (h *handler) purchase(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Identifier string                 `json:"identifier"`
		Items      []purchasedom.CartLine `json:"items"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := h.app.Purchases.Purchase(r.Context(), payload.Identifier, payload.Items)
	if err != nil {
		writeError(w, purchaseStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success       bool                      `json:"success"`
		Message       string                    `json:"message"`
		TransactionID string                    `json:"transactionId"`
		Items         []purchasedom.Item        `json:"items"`
		TotalCost     purchasedom.CostAggregate `json:"totalCost"`
	}{
		Success:       true,
		Message:       "purchase complete",
		TransactionID: receipt.TransactionID,
		Items:         receipt.Items,
		TotalCost:     receipt.TotalCost,
	})
}

// purchaseStatus maps the transactor's error taxonomy onto HTTP statuses.
func purchaseStatus(err error) int {
	var notFound *purchasesvc.ItemNotFoundError
	var funds *purchasesvc.InsufficientFundsError

	switch {
	case errors.Is(err, purchasesvc.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, purchasesvc.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, economy.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &funds):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) history(w http.ResponseWriter, r *http.Request) {
	// Order history needs persistent storage; deliberately a stub.
	writeJSON(w, http.StatusOK, struct {
		Success bool     `json:"success"`
		History []string `json:"history"`
		Message string   `json:"message"`
	}{
		Success: true,
		History: []string{},
		Message: "purchase history is not implemented yet",
	})
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Success   bool   `json:"success"`
		Status    string `json:"status"`
		ESX       bool   `json:"esx"`
		Timestamp int64  `json:"timestamp"`
	}{
		Success:   true,
		Status:    "online",
		ESX:       h.app.Economy.Ready(),
		Timestamp: time.Now().UnixMilli(),
	})
}

func (h *handler) test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Success    bool   `json:"success"`
		Message    string `json:"message"`
		ServerTime string `json:"serverTime"`
		ItemCount  int    `json:"itemCount"`
		ESXLoaded  bool   `json:"esxLoaded"`
		Port       int    `json:"port"`
	}{
		Success:    true,
		Message:    "storefront API is running",
		ServerTime: time.Now().UTC().Format(time.RFC3339),
		ItemCount:  h.app.Catalog.Len(),
		ESXLoaded:  h.app.Economy.Ready(),
		Port:       h.opts.Port,
	})
}

// decodeJSON decodes a request body, ignoring unknown fields.
func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
