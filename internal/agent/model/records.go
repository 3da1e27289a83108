package model

import "time"

// FaqEntry is one question/answer pair of the knowledge base.
type FaqEntry struct {
	ID        string     `json:"id,omitempty"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	Category  string     `json:"category,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Inquiry is the write-once log record of a resolved exchange.
type Inquiry struct {
	ID        string     `json:"id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UserID    string     `json:"user_id"`
	Message   string     `json:"message"`
	Response  string     `json:"response"`
}

// RequestStatus is the lifecycle state of a ServiceRequest. Transitions are
// owned by the booking back office, not by the assistant.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusConfirmed RequestStatus = "confirmed"
	StatusCompleted RequestStatus = "completed"
	StatusCancelled RequestStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ServiceCollection is the service type used for collection bookings.
const ServiceCollection = "collection"

type ServiceRequest struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	ServiceType string        `json:"service_type"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Address     string        `json:"address,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	Status      RequestStatus `json:"status"`
	CreatedAt   *time.Time    `json:"created_at,omitempty"`
}

type Location struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Hours   string `json:"hours"`
}

type CollectionSlot struct {
	ID        string   `json:"id,omitempty"`
	Date      string   `json:"date"`
	TimeSlots []string `json:"time_slots"`
}

// InsertResult is the outcome of a gateway write. ID is empty when Success is false.
type InsertResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}
