package order

import (
	"errors"
	"fmt"

	"commerce/internal/pkg/errs"
)

var (
	// ErrInvalidTransition is returned when a requested status change does not
	// follow an edge of the order status graph, including any attempt to move
	// out of a state with no outgoing edges.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnknownAction is returned when a requested state-machine action is not
	// one of the recognized actions.
	ErrUnknownAction = errors.New("unknown action")
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Shipped ──> Delivered
//	   │            │              │
//	   └────────────┴──────────────┴──> Cancelled
//
// Delivered and Cancelled have no outgoing edges. Shipped has exactly one
// outgoing edge, to Delivered; confirm and cancel are never legal from
// Shipped.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when an order is first created.
	// Orders in this status await payment or explicit confirmation.
	StatusPending

	// StatusConfirmed indicates the order has been accepted for processing.
	StatusConfirmed

	// StatusProcessing indicates the order is being picked and packed.
	StatusProcessing

	// StatusShipped indicates the order has left the warehouse.
	// The only remaining transition is to Delivered.
	StatusShipped

	// StatusDelivered indicates the order reached the customer.
	// This is a final state with no further transitions allowed.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled before shipping.
	// This is a final state with no further transitions allowed.
	StatusCancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusPending:    "pending",
		StatusConfirmed:  "confirmed",
		StatusProcessing: "processing",
		StatusShipped:    "shipped",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:    "pending",
		StatusConfirmed:  "confirmed",
		StatusProcessing: "processing",
		StatusShipped:    "shipped",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
	}
}

// statusGraph holds the outgoing edges of every status. A status mapped to an
// empty slice has no outgoing edges.
func statusGraph() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}
}

// ParseStatus converts a string representation into a Status.
// Returns an error for strings that do not name a valid status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any other out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether the status has no outgoing edges.
func (s Status) IsFinal() bool {
	return len(statusGraph()[s]) == 0
}

// CanTransitionTo reports whether the graph contains a direct edge from the
// current status to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range statusGraph()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the graph permits the move.
//
// Returns:
//   - (target, nil) when a direct edge from the current status exists
//   - (0, error wrapping ErrInvalidTransition) otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(target) {
		return 0, fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, s, target)
	}
	return target, nil
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Pending -> Confirmed
//
// Any other source status is rejected with ErrInvalidTransition.
func (s Status) Confirm() (Status, error) {
	return s.TransitionTo(StatusConfirmed)
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Confirmed -> Cancelled
//   - Processing -> Cancelled
//
// Shipped, Delivered and Cancelled orders cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	return s.TransitionTo(StatusCancelled)
}

// Action identifies a state-machine action requested against an order status.
type Action int

const (
	// ActionUnknown represents an unrecognized action.
	ActionUnknown Action = iota

	// ActionConfirm requests the Pending -> Confirmed transition.
	ActionConfirm

	// ActionCancel requests a transition to Cancelled.
	ActionCancel
)

// Apply executes the given action against the current status.
// Unrecognized actions are rejected with ErrUnknownAction; illegal edges with
// ErrInvalidTransition. The receiver is never modified.
func (s Status) Apply(action Action) (Status, error) {
	switch action {
	case ActionConfirm:
		return s.Confirm()
	case ActionCancel:
		return s.Cancel()
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownAction, action)
	}
}

// PaymentStatus represents the payment state of an order. It is a standalone
// field: changing it never changes the order Status by itself (auto-transition
// policies live in the application layer).
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means no successful charge has been recorded yet.
	PaymentPending

	// PaymentPaid means the order has been paid in full.
	PaymentPaid

	// PaymentRefunded means a previously captured payment was returned.
	PaymentRefunded

	// PaymentFailed means the last charge attempt did not succeed.
	PaymentFailed
)

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentRefunded: "refunded",
		PaymentFailed:   "failed",
	}
}

// ParsePaymentStatus converts a string representation into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, str := range getValidPaymentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

// Validate checks if the PaymentStatus value is valid.
func (p PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus",
			fmt.Errorf("%d is not a valid payment status", p),
		)
	}
	return nil
}

// String returns the human-readable name of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := getValidPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// FulfillmentStatus represents how much of an order has been fulfilled.
// Like PaymentStatus it is a standalone field and never changes the order
// Status by itself.
type FulfillmentStatus int

const (
	// FulfillmentUnknown represents an invalid or undefined fulfillment status.
	FulfillmentUnknown FulfillmentStatus = iota

	// FulfillmentUnfulfilled means no items have shipped.
	FulfillmentUnfulfilled

	// FulfillmentPartial means some but not all items have shipped.
	FulfillmentPartial

	// FulfillmentFulfilled means every item has shipped.
	FulfillmentFulfilled
)

func getValidFulfillmentStatusStrings() map[FulfillmentStatus]string {
	//nolint:exhaustive // FulfillmentUnknown is intentionally excluded as it's invalid
	return map[FulfillmentStatus]string{
		FulfillmentUnfulfilled: "unfulfilled",
		FulfillmentPartial:     "partial",
		FulfillmentFulfilled:   "fulfilled",
	}
}

// ParseFulfillmentStatus converts a string representation into a FulfillmentStatus.
func ParseFulfillmentStatus(s string) (FulfillmentStatus, error) {
	for status, str := range getValidFulfillmentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return FulfillmentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"fulfillmentStatus",
		fmt.Errorf("%q is not a valid fulfillment status", s),
	)
}

// Validate checks if the FulfillmentStatus value is valid.
func (f FulfillmentStatus) Validate() error {
	if _, ok := getValidFulfillmentStatusStrings()[f]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"fulfillmentStatus",
			fmt.Errorf("%d is not a valid fulfillment status", f),
		)
	}
	return nil
}

// String returns the human-readable name of the fulfillment status.
func (f FulfillmentStatus) String() string {
	if str, ok := getValidFulfillmentStatusStrings()[f]; ok {
		return str
	}
	return "unknown"
}
