package purchase

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"material_market_backend/internal/common"
	"material_market_backend/internal/listing"
	"material_market_backend/internal/logistics"
)

// Step is a purchase workflow state. Steps only move forward.
type Step string

const (
	StepDetails   Step = "details"
	StepLogistics Step = "logistics"
	StepConfirm   Step = "confirm"
	StepSuccess   Step = "success"
)

// Success notification texts.
const (
	SuccessTitle       = "Alış təsdiqləndi!"
	SuccessSelfManaged = "Sifarişiniz uğurla tamamlandı. Satıcı ilə əlaqə saxlayın."
	SuccessDelegated   = "Sifarişiniz logistika bölməsinə əlavə edildi."
)

const destinationRequiredMsg = "Logistika üçün təyinat yeri tələb olunur."

// LogisticsInput is what the buyer entered on the logistics step.
// OfferedPrice is kept raw and parsed only on completion.
type LogisticsInput struct {
	SelfManage   bool   `json:"self_manage"`
	Destination  string `json:"destination"`
	OfferedPrice string `json:"offered_price"`
}

// Route is the freight leg shown for delegated logistics.
type Route struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (r Route) String() string {
	return r.From + " → " + r.To
}

// Summary is the confirm-step view of a purchase.
type Summary struct {
	ListingID    string  `json:"listing_id"`
	Title        string  `json:"title"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"price_per_unit"`
	Subtotal     float64 `json:"subtotal"`
	SelfManage   bool    `json:"self_manage"`
	Route        *Route  `json:"route,omitempty"`
	OfferedPrice float64 `json:"offered_price,omitempty"`
}

// Notification is the user-facing message for a completed purchase.
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Outcome is the result of completing a purchase.
type Outcome struct {
	Notification     Notification       `json:"notification"`
	LogisticsRequest *logistics.Request `json:"logistics_request,omitempty"`
}

// RequestCreator stores the logistics request of a delegated purchase.
type RequestCreator interface {
	CreateFromPurchase(ctx context.Context, req logistics.NewRequest) (*logistics.Request, error)
}

// Workflow is one buyer's walk through details → logistics → confirm →
// success for a single listing. It is not safe for concurrent use; the
// Service serializes access.
type Workflow struct {
	id        string
	listingID string
	step      Step
	input     LogisticsInput
	outcome   *Outcome
	updatedAt time.Time
}

// NewWorkflow starts a workflow on the details step.
func NewWorkflow(id, listingID string, now time.Time) *Workflow {
	return &Workflow{
		id:        id,
		listingID: listingID,
		step:      StepDetails,
		input:     LogisticsInput{SelfManage: true},
		updatedAt: now,
	}
}

func (w *Workflow) ID() string { return w.id }
func (w *Workflow) ListingID() string { return w.listingID }
func (w *Workflow) Step() Step { return w.step }
func (w *Workflow) Input() LogisticsInput { return w.input }
func (w *Workflow) Outcome() *Outcome { return w.outcome }
func (w *Workflow) UpdatedAt() time.Time { return w.updatedAt }
func (w *Workflow) touch(now time.Time) { w.updatedAt = now }

func (w *Workflow) expect(step Step) error {
	if w.step != step {
		return common.ErrInvalidTransition.WithDetails(map[string]string{
			"current_step":  string(w.step),
			"required_step": string(step),
		})
	}
	return nil
}

// Proceed moves details → logistics.
func (w *Workflow) Proceed() error {
	if err := w.expect(StepDetails); err != nil {
		return err
	}
	w.step = StepLogistics
	return nil
}

// SetLogistics records the buyer's logistics choice. Input is stored as
// given; the destination is only checked by ConfirmLogistics.
func (w *Workflow) SetLogistics(in LogisticsInput) error {
	if err := w.expect(StepLogistics); err != nil {
		return err
	}
	w.input = in
	return nil
}

// ConfirmLogistics moves logistics → confirm. Delegating without a
// destination is rejected and leaves the step unchanged.
func (w *Workflow) ConfirmLogistics() error {
	if err := w.expect(StepLogistics); err != nil {
		return err
	}
	if !w.input.SelfManage && strings.TrimSpace(w.input.Destination) == "" {
		return common.NewValidationAPIError(map[string]string{"destination": destinationRequiredMsg})
	}
	w.step = StepConfirm
	return nil
}

// Summary computes the confirm-step view against the listing as it is now.
func (w *Workflow) Summary(l *listing.Listing) (*Summary, error) {
	if w.step != StepConfirm && w.step != StepSuccess {
		return nil, w.expect(StepConfirm)
	}
	s := &Summary{
		ListingID:    l.ID,
		Title:        l.Title,
		Quantity:     l.Quantity,
		Unit:         l.Unit,
		PricePerUnit: l.PricePerUnit,
		Subtotal:     l.Subtotal(),
		SelfManage:   w.input.SelfManage,
	}
	if !w.input.SelfManage {
		s.Route = &Route{From: l.Location, To: strings.TrimSpace(w.input.Destination)}
		s.OfferedPrice = ParseOfferedPrice(w.input.OfferedPrice)
	}
	return s, nil
}

// Complete moves confirm → success. For delegated logistics exactly one
// request is created from the listing's current values; if that fails the
// workflow stays on confirm.
func (w *Workflow) Complete(ctx context.Context, l *listing.Listing, creator RequestCreator) (*Outcome, error) {
	if err := w.expect(StepConfirm); err != nil {
		return nil, err
	}

	outcome := &Outcome{Notification: Notification{Title: SuccessTitle, Message: SuccessSelfManaged}}
	if !w.input.SelfManage {
		created, err := creator.CreateFromPurchase(ctx, logistics.NewRequest{
			AnnouncementID: l.ID,
			Material:       l.Title,
			Quantity:       l.Quantity,
			Unit:           l.Unit,
			FromLocation:   l.Location,
			ToLocation:     strings.TrimSpace(w.input.Destination),
			OfferedPrice:   ParseOfferedPrice(w.input.OfferedPrice),
		})
		if err != nil {
			return nil, err
		}
		outcome.LogisticsRequest = created
		outcome.Notification.Message = SuccessDelegated
	}

	w.step = StepSuccess
	w.outcome = outcome
	return outcome, nil
}

// ParseOfferedPrice reads a price typed by the buyer. Blank, unparsable
// and non-finite input is 0. A decimal comma is accepted.
func ParseOfferedPrice(raw string) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
