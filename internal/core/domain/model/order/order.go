package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents a commerce order in the system. It is the aggregate root that
// manages the order lifecycle from creation through payment and fulfillment to
// delivery or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Must have a contact email (guest orders have no user reference)
//   - Must contain at least one line item; items are immutable after creation
//   - Status moves only along the edges defined by the Status state machine
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation; every status
// change flows through the state machine, so no caller can write an
// unreachable status onto an order.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the human-readable unique identifier, assigned once
	orderNumber string

	// userID is the owning user's ID (nil for guest orders)
	userID *kernel.UUID

	// email is the contact address, required for guest access checks
	email string

	// items is the ordered list of purchased lines, non-empty
	items []Item

	// status is the current state in the order lifecycle
	status Status

	// paymentStatus tracks payment independently of status
	paymentStatus PaymentStatus

	// fulfillmentStatus tracks fulfillment independently of status
	fulfillmentStatus FulfillmentStatus

	// currency is the ISO currency code the prices are denominated in
	currency string

	// shippingAddress is the optional delivery address
	shippingAddress *Address

	// billingAddress is the optional billing address
	billingAddress *Address

	// notes holds free-form annotations, no invariants
	notes string

	// metadata holds free-form key/value annotations, no invariants
	metadata map[string]any

	// version supports optimistic concurrency at persist time
	version int

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order with validation. This is the only way to create
// a fresh order; persistence reconstruction goes through RestoreOrder.
//
// The order starts in the initial lifecycle state: status pending, payment
// pending, fulfillment unfulfilled, version 1.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - orderNumber: human-readable unique number (must not be empty)
//   - userID: owner reference, nil for guest orders
//   - email: contact address (required)
//   - currency: ISO currency code (required)
//   - items: at least one validated line item
//   - shippingAddress, billingAddress: optional postal data
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	userID *kernel.UUID,
	email string,
	currency string,
	items []Item,
	shippingAddress *Address,
	billingAddress *Address,
) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		status:            StatusPending,
		paymentStatus:     PaymentPending,
		fulfillmentStatus: FulfillmentUnfulfilled,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
		isConstructed:     true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setUserID(userID),
		order.setEmail(email),
		order.setCurrency(currency),
		order.setItems(items),
		order.setShippingAddress(shippingAddress),
		order.setBillingAddress(billingAddress),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts the stored lifecycle state, version and timestamps as-is, after
// validating each value individually.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	userID *kernel.UUID,
	email string,
	currency string,
	items []Item,
	status Status,
	paymentStatus PaymentStatus,
	fulfillmentStatus FulfillmentStatus,
	shippingAddress *Address,
	billingAddress *Address,
	notes string,
	metadata map[string]any,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		notes:         notes,
		metadata:      cloneData(metadata),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setUserID(userID),
		order.setEmail(email),
		order.setCurrency(currency),
		order.setItems(items),
		order.setStatus(status),
		order.setPaymentStatus(paymentStatus),
		order.setFulfillmentStatus(fulfillmentStatus),
		order.setShippingAddress(shippingAddress),
		order.setBillingAddress(billingAddress),
		order.setVersion(version),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable unique order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// UserID returns the owning user's ID, or nil for guest orders.
func (o *Order) UserID() *kernel.UUID {
	return o.userID
}

// Email returns the contact address.
func (o *Order) Email() string {
	return o.email
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// FulfillmentStatus returns the current fulfillment status.
func (o *Order) FulfillmentStatus() FulfillmentStatus {
	return o.fulfillmentStatus
}

// Currency returns the ISO currency code.
func (o *Order) Currency() string {
	return o.currency
}

// ShippingAddress returns the delivery address, or nil if not set.
func (o *Order) ShippingAddress() *Address {
	return o.shippingAddress
}

// BillingAddress returns the billing address, or nil if not set.
func (o *Order) BillingAddress() *Address {
	return o.billingAddress
}

// Notes returns the free-form annotation text.
func (o *Order) Notes() string {
	return o.notes
}

// Metadata returns a copy of the free-form metadata map.
func (o *Order) Metadata() map[string]any {
	return cloneData(o.metadata)
}

// Version returns the optimistic-concurrency version of the loaded snapshot.
func (o *Order) Version() int {
	return o.version
}

// IncrementVersion records that a new revision of the aggregate has been
// persisted. Called by the repository after a successful version-checked
// update so the in-memory snapshot matches storage.
func (o *Order) IncrementVersion() {
	o.version++
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Confirm applies the confirm action: Pending -> Confirmed.
//
// Returns an error wrapping ErrInvalidTransition if the order is not pending;
// the order is left unmodified on failure.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Cancel applies the cancel action. Legal from Pending, Confirmed and
// Processing; the cancellation reason belongs to the accompanying ledger
// event, not to the order record.
//
// Returns an error wrapping ErrInvalidTransition if the current status has no
// edge to Cancelled; the order is left unmodified on failure.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// ChangeStatus moves the order to target through the status graph. Any
// non-adjacent edge is rejected with ErrInvalidTransition and the order is
// left unmodified.
func (o *Order) ChangeStatus(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// SetPaymentStatus updates the payment status. Always legal as a standalone
// field update; never changes the order status by itself.
func (o *Order) SetPaymentStatus(paymentStatus PaymentStatus) error {
	if err := paymentStatus.Validate(); err != nil {
		return err
	}

	o.paymentStatus = paymentStatus
	o.touch()
	return nil
}

// SetFulfillmentStatus updates the fulfillment status. Always legal as a
// standalone field update; never changes the order status by itself.
func (o *Order) SetFulfillmentStatus(fulfillmentStatus FulfillmentStatus) error {
	if err := fulfillmentStatus.Validate(); err != nil {
		return err
	}

	o.fulfillmentStatus = fulfillmentStatus
	o.touch()
	return nil
}

// SetNotes replaces the free-form notes.
func (o *Order) SetNotes(notes string) {
	o.notes = notes
	o.touch()
}

// MergeMetadata merges the given keys into the order metadata, overwriting
// existing keys. A nil map is a no-op.
func (o *Order) MergeMetadata(metadata map[string]any) {
	if len(metadata) == 0 {
		return
	}
	if o.metadata == nil {
		o.metadata = make(map[string]any, len(metadata))
	}
	for k, v := range metadata {
		o.metadata[k] = v
	}
	o.touch()
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setUserID(userID *kernel.UUID) error {
	if userID == nil {
		return nil
	}
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", email))
	}
	o.email = email
	return nil
}

func (o *Order) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	o.currency = currency
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentStatus(paymentStatus PaymentStatus) error {
	if err := paymentStatus.Validate(); err != nil {
		return err
	}
	o.paymentStatus = paymentStatus
	return nil
}

func (o *Order) setFulfillmentStatus(fulfillmentStatus FulfillmentStatus) error {
	if err := fulfillmentStatus.Validate(); err != nil {
		return err
	}
	o.fulfillmentStatus = fulfillmentStatus
	return nil
}

func (o *Order) setShippingAddress(address *Address) error {
	if address == nil {
		return nil
	}
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setBillingAddress(address *Address) error {
	if address == nil {
		return nil
	}
	if err := address.Validate(); err != nil {
		return err
	}
	o.billingAddress = address
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 1 {
		return errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is not at least 1", version))
	}
	o.version = version
	return nil
}
