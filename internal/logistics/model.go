package logistics

import "time"

// Status is the lifecycle state of a logistics request. Only open is ever
// assigned; accepted and completed are reserved for a carrier-side flow.
type Status string

const (
	StatusOpen      Status = "open"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusAccepted, StatusCompleted:
		return true
	}
	return false
}

// Request is a freight-matching record snapshotted from a listing when a
// buyer delegates delivery. It does not follow later listing changes.
type Request struct {
	ID             string    `json:"id"`
	AnnouncementID string    `json:"announcement_id"`
	Material       string    `json:"material"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit"`
	FromLocation   string    `json:"from_location"`
	ToLocation     string    `json:"to_location"`
	OfferedPrice   float64   `json:"offered_price"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewRequest is the creation payload; id, status and createdAt are
// assigned by the store.
type NewRequest struct {
	AnnouncementID string
	Material       string
	Quantity       float64
	Unit           string
	FromLocation   string
	ToLocation     string
	OfferedPrice   float64
}

// CreatedEvent is published after a request is stored.
type CreatedEvent struct {
	Request Request `json:"request"`
}
