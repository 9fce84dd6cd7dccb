package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cb9060218-del/thunder-res-backend/internal/domain"
	"github.com/cb9060218-del/thunder-res-backend/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Menu   service.MenuServiceInterface
	Orders service.OrderServiceInterface
	QR     service.QRGenerator
}

func NewHandler(menuSvc service.MenuServiceInterface, orderSvc service.OrderServiceInterface, qr service.QRGenerator) *Handler {
	return &Handler{
		Menu:   menuSvc,
		Orders: orderSvc,
		QR:     qr,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.root).Methods("GET")
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu", h.addMenuItem).Methods("POST")

	r.HandleFunc("/api/order", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}/ready", h.markOrderReady).Methods("PUT")

	r.HandleFunc("/api/tables/{tableNo}/qrcode", h.getTableQRCode).Methods("GET")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Thunder QR Backend Running"))
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "thunder-res-backend",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("all")
	includeUnavailable := all == "1" || all == "true"

	items, err := h.Menu.List(r.Context(), includeUnavailable)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching menu")
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) addMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	if err := h.Menu.Add(r.Context(), &item); err != nil {
		if errors.Is(err, service.ErrInvalidMenuItem) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Error adding item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	order, err := h.Orders.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrder) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create order: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"order_id": order.ID,
	})
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) markOrderReady(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || orderID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	if err := h.Orders.MarkReady(r.Context(), orderID); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Error updating order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) getTableQRCode(w http.ResponseWriter, r *http.Request) {
	tableNo, err := strconv.Atoi(mux.Vars(r)["tableNo"])
	if err != nil || tableNo <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid table number")
		return
	}

	png, err := h.QR.Generate(tableNo)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
