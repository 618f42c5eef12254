package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"overcooked-orders/order-svc/internal/domain"
	"overcooked-orders/order-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Orders  service.OrderServiceInterface
	Queries service.OrderQueryInterface
}

func NewHandler(orderSvc service.OrderServiceInterface, querySvc service.OrderQueryInterface) *Handler {
	return &Handler{
		Orders:  orderSvc,
		Queries: querySvc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(RequireUser)

	api.HandleFunc("/orders", h.createOrder).Methods("POST")
	api.HandleFunc("/orders", h.getOrders).Methods("GET")
	api.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	api.HandleFunc("/orders/{id}/completion", h.setCompletion).Methods("PATCH")
	api.HandleFunc("/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

type placeOrderRequest struct {
	Items             []domain.LineItem `json:"items"`
	ScheduledDelivery *time.Time        `json:"scheduled_delivery"`
	IsSelfCollection  bool              `json:"is_self_collection"`
	Location          *domain.Location  `json:"location"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var body placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	receipt, err := h.Orders.PlaceOrder(r.Context(), service.PlaceOrderRequest{
		UserID:            UserIDFrom(r.Context()),
		Items:             body.Items,
		ScheduledDelivery: body.ScheduledDelivery,
		Target: domain.DeliveryTarget{
			SelfCollection: body.IsSelfCollection,
			Location:       body.Location,
		},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Queries.ListByUser(r.Context(), UserIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	view, err := h.Queries.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	// Another user's order is reported exactly like a missing one.
	if view.UserID != UserIDFrom(r.Context()) {
		writeError(w, domain.ErrOrderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) setCompletion(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Completed *bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if body.Completed == nil {
		http.Error(w, "completed is required", http.StatusBadRequest)
		return
	}

	orderID := mux.Vars(r)["id"]
	if err := h.Orders.SetCompleted(r.Context(), orderID, *body.Completed); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qrCode, err := h.Queries.QRCode(r.Context(), mux.Vars(r)["id"], UserIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	if len(qrCode) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

// StatusFor maps a service error onto the HTTP status returned to callers.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrScheduleOutOfWindow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDishNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[order-svc] request failed: %v", err)
		http.Error(w, "internal server error", status)
		return
	}
	if domain.Retryable(err) {
		w.Header().Set("Retry-After", "1")
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
