package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderAccepted  OrderStatus = "ACCEPTED"
	OrderPreparing OrderStatus = "PREPARING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderAccepted, OrderPreparing, OrderCompleted, OrderCancelled}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationCompleted ReservationStatus = "COMPLETED"
)

var ReservationStatuses = []ReservationStatus{ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted}

type MenuItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    *string         `json:"imageUrl"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// OrderLine is a snapshot of a menu item taken when the order was placed.
type OrderLine struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Submitter is the public part of a user shown next to orders and reservations.
type Submitter struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

type Order struct {
	ID           int             `json:"id"`
	UserID       *string         `json:"userId"`
	CustomerName string          `json:"customerName"`
	Items        []OrderLine     `json:"items"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Status       OrderStatus     `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	User         *Submitter      `json:"user"`
}

type Reservation struct {
	ID              int               `json:"id"`
	UserID          *string           `json:"userId"`
	CustomerName    string            `json:"customerName"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	ReservationDate time.Time         `json:"reservationDate"`
	PartySize       int               `json:"partySize"`
	Notes           *string           `json:"notes"`
	Status          ReservationStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
	User            *Submitter        `json:"user"`
}

type User struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Image *string `json:"image"`
}

type UserSummary struct {
	User
	OrderCount int `json:"orderCount"`
}

type UserDetail struct {
	User
	Orders []Order `json:"orders"`
}

// Session is the authenticated caller as asserted by the identity provider.
type Session struct {
	UserID string
	Name   string
	Email  string
	Image  string
}

func (s *Session) AsUser() User {
	u := User{ID: s.UserID}
	if s.Name != "" {
		u.Name = &s.Name
	}
	if s.Email != "" {
		u.Email = &s.Email
	}
	if s.Image != "" {
		u.Image = &s.Image
	}
	return u
}

type Stats struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalOrders    int             `json:"totalOrders"`
	TotalCustomers int             `json:"totalCustomers"`
	TodaysOrders   int             `json:"todaysOrders"`
}

type RevenuePoint struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
}

const EventNewOrder = "new_order"

type OrderEvent struct {
	Type      string    `json:"type"`
	Order     Order     `json:"order"`
	Timestamp time.Time `json:"timestamp"`
}

type Email struct {
	To      string
	Subject string
	Text    string
}

type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
