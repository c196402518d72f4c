package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"jollof-hub/logger"
	"jollof-hub/storefront-svc/internal/auth"
	"jollof-hub/storefront-svc/internal/domain"
	"jollof-hub/storefront-svc/internal/service"

	"github.com/gorilla/mux"
)

type Services struct {
	Orders       service.OrderServiceInterface
	Reservations service.ReservationServiceInterface
	Menu         service.MenuServiceInterface
	Users        service.UserServiceInterface
	Analytics    service.AnalyticsServiceInterface
	Contact      service.ContactServiceInterface
}

type Handler struct {
	Services

	Sessions *auth.SessionVerifier
	Admin    *auth.AdminGuard
	Log      *logger.Logger
}

func NewHandler(svc Services, sessions *auth.SessionVerifier, admin *auth.AdminGuard, log *logger.Logger) *Handler {
	if sessions == nil {
		sessions = auth.NewSessionVerifier("")
	}
	if admin == nil {
		admin = auth.NewAdminGuard("")
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{Services: svc, Sessions: sessions, Admin: admin, Log: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.Sessions.Middleware)

	api.HandleFunc("/orders", h.createOrder).Methods("POST")
	api.Handle("/orders", h.admin(h.getOrders)).Methods("GET")
	api.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	api.Handle("/orders/{id}", h.admin(h.updateOrderStatus)).Methods("PUT")
	api.HandleFunc("/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	api.HandleFunc("/reservations", h.createReservation).Methods("POST")
	api.Handle("/reservations", h.admin(h.getReservations)).Methods("GET")
	api.Handle("/reservations/{id}", h.admin(h.updateReservationStatus)).Methods("PUT")

	api.Handle("/my-orders", auth.RequireSession(http.HandlerFunc(h.getMyOrders))).Methods("GET")
	api.Handle("/my-reservations", auth.RequireSession(http.HandlerFunc(h.getMyReservations))).Methods("GET")

	api.HandleFunc("/menu", h.getMenu).Methods("GET")
	api.Handle("/menu", h.admin(h.createMenuItem)).Methods("POST")
	api.HandleFunc("/menu/{id}", h.getMenuItem).Methods("GET")
	api.Handle("/menu/{id}", h.admin(h.updateMenuItem)).Methods("PUT")
	api.Handle("/menu/{id}", h.admin(h.deleteMenuItem)).Methods("DELETE")

	api.Handle("/users", h.admin(h.getUsers)).Methods("GET")
	api.Handle("/users/{id}", h.admin(h.getUser)).Methods("GET")

	api.Handle("/stats", h.admin(h.getStats)).Methods("GET")
	api.Handle("/charts/weekly-revenue", h.admin(h.getWeeklyRevenue)).Methods("GET")

	api.HandleFunc("/contact", h.submitContact).Methods("POST")
}

func (h *Handler) admin(fn http.HandlerFunc) http.Handler {
	return h.Admin.Middleware(fn)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   "storefront-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var input service.OrderInput
	if !decodeBody(w, r, &input) {
		return
	}
	order, err := h.Orders.Create(r.Context(), input, auth.SessionFrom(r.Context()))
	if err != nil {
		h.fail(w, r, err, "", "Failed to create order")
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context(), "")
	if err != nil {
		h.fail(w, r, err, "", "Failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid order ID")
	if !ok {
		return
	}
	order, ok := h.viewableOrder(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// viewableOrder loads an order for an admin or for the signed-in user who
// placed it. Orders of other users are reported as missing.
func (h *Handler) viewableOrder(w http.ResponseWriter, r *http.Request, id int) (*domain.Order, bool) {
	isAdmin := h.Admin.Allow(r.Header.Get(auth.AdminKeyHeader))
	session := auth.SessionFrom(r.Context())
	if !isAdmin && session == nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return nil, false
	}

	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Order not found", "Failed to fetch order")
		return nil, false
	}
	if !isAdmin && (order.UserID == nil || *order.UserID != session.UserID) {
		writeMessage(w, http.StatusNotFound, "Order not found")
		return nil, false
	}
	return order, true
}

type statusUpdate struct {
	Status string `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid order ID")
	if !ok {
		return
	}
	var body statusUpdate
	if !decodeBody(w, r, &body) {
		return
	}
	order, err := h.Orders.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		h.fail(w, r, err, "Order not found", "Failed to update order status")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid order ID")
	if !ok {
		return
	}
	if _, ok := h.viewableOrder(w, r, id); !ok {
		return
	}
	png, err := h.Orders.QRCode(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Order not found", "Failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) getMyOrders(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFrom(r.Context())
	orders, err := h.Orders.List(r.Context(), session.UserID)
	if err != nil {
		h.fail(w, r, err, "", "Failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var input service.ReservationInput
	if !decodeBody(w, r, &input) {
		return
	}
	reservation, err := h.Reservations.Create(r.Context(), input, auth.SessionFrom(r.Context()))
	if err != nil {
		h.fail(w, r, err, "", "Failed to create reservation")
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *Handler) getReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Reservations.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "", "Failed to fetch reservations")
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *Handler) getMyReservations(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFrom(r.Context())
	reservations, err := h.Reservations.ListForUser(r.Context(), session.UserID)
	if err != nil {
		h.fail(w, r, err, "", "Failed to fetch reservations")
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *Handler) updateReservationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid reservation ID")
	if !ok {
		return
	}
	var body statusUpdate
	if !decodeBody(w, r, &body) {
		return
	}
	reservation, err := h.Reservations.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		h.fail(w, r, err, "Reservation not found", "Failed to update reservation status")
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "", "Failed to fetch menu items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid menu item ID")
	if !ok {
		return
	}
	item, err := h.Menu.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Menu item not found", "Failed to fetch menu item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var input service.MenuItemInput
	if !decodeBody(w, r, &input) {
		return
	}
	item, err := h.Menu.Create(r.Context(), input)
	if err != nil {
		h.fail(w, r, err, "", "Failed to create menu item")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid menu item ID")
	if !ok {
		return
	}
	var input service.MenuItemInput
	if !decodeBody(w, r, &input) {
		return
	}
	item, err := h.Menu.Update(r.Context(), id, input)
	if err != nil {
		h.fail(w, r, err, "Menu item not found", "Failed to update menu item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid menu item ID")
	if !ok {
		return
	}
	if err := h.Menu.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "Menu item not found", "Failed to delete menu item")
		return
	}
	writeMessage(w, http.StatusOK, "Menu item deleted successfully.")
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "", "Failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err, "User not found", "Failed to fetch user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Analytics.Stats(r.Context())
	if err != nil {
		h.fail(w, r, err, "", "Failed to fetch stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) getWeeklyRevenue(w http.ResponseWriter, r *http.Request) {
	points, err := h.Analytics.WeeklyRevenue(r.Context())
	if err != nil {
		h.fail(w, r, err, "", "Failed to fetch chart data")
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if !decodeBody(w, r, &msg) {
		return
	}
	if err := h.Contact.Submit(r.Context(), msg); err != nil {
		h.fail(w, r, err, "", "Failed to send message")
		return
	}
	writeMessage(w, http.StatusOK, "Thank you for your message! We will get back to you soon.")
}

func pathID(w http.ResponseWriter, r *http.Request, message string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
