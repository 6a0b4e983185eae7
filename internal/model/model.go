// Package model defines the core domain types for the wedding registration system.
package model

import "time"

// Coordinates is a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location describes where a wedding takes place.
type Location struct {
	Country     string      `json:"country"`
	City        string      `json:"city"`
	Venue       string      `json:"venue"`
	Coordinates Coordinates `json:"coordinates"`
}

// Host is one of the people hosting a wedding.
type Host struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// Event represents a wedding guests can register for.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        Date     `json:"date"`
	Location    Location `json:"location"`
	Hosts       []Host   `json:"hosts"`
	PhotoURL    string   `json:"photoUrl"`
	Capacity    int      `json:"capacity"`
	Registered  int      `json:"registered"`
}

// Remaining returns the number of available seats.
func (e *Event) Remaining() int {
	return e.Capacity - e.Registered
}

// IsFull returns true when no seats remain.
func (e *Event) IsFull() bool {
	return e.Registered >= e.Capacity
}

// Status is the lifecycle state of a registration.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	// StatusPending is part of the persisted format but never produced.
	StatusPending  Status = "pending"
	StatusCanceled Status = "canceled"
)

// Registration links an account to a wedding with a committed guest count.
type Registration struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	WeddingID        string    `json:"weddingId"`
	RegistrationDate time.Time `json:"registrationDate"`
	Status           Status    `json:"status"`
	Guests           int       `json:"guests"`
	SpecialRequests  string    `json:"specialRequests,omitempty"`
}

// Account is a registered user. The password is stored verbatim.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Public returns a copy of the account without its secret.
func (a Account) Public() Account {
	a.Password = ""
	return a
}

// RegistrationView pairs a registration with the wedding it refers to.
// Wedding is nil when the referenced wedding no longer exists.
type RegistrationView struct {
	Registration
	Wedding *Event `json:"wedding,omitempty"`
}

// Dashboard groups a user's registrations the way the dashboard page shows them.
type Dashboard struct {
	Upcoming []RegistrationView `json:"upcoming"`
	Past     []RegistrationView `json:"past"`
	Canceled []RegistrationView `json:"canceled"`
}

// RegisterRequest is the payload for registering for a wedding.
type RegisterRequest struct {
	Guests          int    `json:"guests" validate:"required,min=1"`
	SpecialRequests string `json:"specialRequests" validate:"max=500"`
}

// SignupRequest is the payload for creating an account.
type SignupRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
