package http

import (
	"time"

	"commerce/internal/core/domain/model/order"
)

// ErrorResponse is the JSON error body returned by all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	UserID          string          `json:"user_id,omitempty"`
	Email           string          `json:"email"`
	Currency        string          `json:"currency,omitempty"`
	Items           []ItemRequest   `json:"items"`
	ShippingAddress *AddressRequest `json:"shipping_address,omitempty"`
	BillingAddress  *AddressRequest `json:"billing_address,omitempty"`
	CreatedBy       string          `json:"created_by,omitempty"`
}

// ItemRequest is one order line in a create request.
type ItemRequest struct {
	ProductName string  `json:"product_name"`
	VariantID   string  `json:"variant_id,omitempty"`
	SKU         string  `json:"sku,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// AddressRequest is a postal address in a create request.
type AddressRequest struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// UpdateOrderRequest is the body of PATCH /api/v1/orders/:id. Absent fields
// leave the order unchanged.
type UpdateOrderRequest struct {
	Status            *string        `json:"status,omitempty"`
	PaymentStatus     *string        `json:"payment_status,omitempty"`
	FulfillmentStatus *string        `json:"fulfillment_status,omitempty"`
	Notes             *string        `json:"notes,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	UpdatedBy         string         `json:"updated_by,omitempty"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason      string `json:"reason,omitempty"`
	CancelledBy string `json:"cancelled_by,omitempty"`
}

// AddEventRequest is the body of POST /api/v1/orders/:id/events.
type AddEventRequest struct {
	Type      string         `json:"type,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Note      string         `json:"note,omitempty"`
	CreatedBy string         `json:"created_by,omitempty"`
}

// OrderResponse is the JSON shape of an order returned by command endpoints.
type OrderResponse struct {
	ID                string           `json:"id"`
	OrderNumber       string           `json:"order_number"`
	UserID            string           `json:"user_id,omitempty"`
	Email             string           `json:"email"`
	Currency          string           `json:"currency"`
	Status            string           `json:"status"`
	PaymentStatus     string           `json:"payment_status"`
	FulfillmentStatus string           `json:"fulfillment_status"`
	Items             []ItemRequest    `json:"items"`
	ShippingAddress   *AddressResponse `json:"shipping_address,omitempty"`
	BillingAddress    *AddressResponse `json:"billing_address,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	Metadata          map[string]any   `json:"metadata,omitempty"`
	Version           int              `json:"version"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// AddressResponse is the JSON shape of a postal address.
type AddressResponse struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// EventResponse is the JSON shape of one ledger entry.
type EventResponse struct {
	ID        string         `json:"id"`
	OrderID   string         `json:"order_id"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
	Note      string         `json:"note,omitempty"`
	CreatedBy string         `json:"created_by,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// OrderListResponse is the JSON body of GET /api/v1/orders.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

func orderToResponse(aggregate *order.Order) OrderResponse {
	items := make([]ItemRequest, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemRequest{
			ProductName: item.ProductName(),
			VariantID:   item.VariantID(),
			SKU:         item.SKU(),
			Quantity:    item.Quantity(),
			Price:       item.Price(),
		})
	}

	resp := OrderResponse{
		ID:                aggregate.ID().String(),
		OrderNumber:       aggregate.OrderNumber(),
		Email:             aggregate.Email(),
		Currency:          aggregate.Currency(),
		Status:            aggregate.Status().String(),
		PaymentStatus:     aggregate.PaymentStatus().String(),
		FulfillmentStatus: aggregate.FulfillmentStatus().String(),
		Items:             items,
		Notes:             aggregate.Notes(),
		Metadata:          aggregate.Metadata(),
		Version:           aggregate.Version(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
	}

	if userID := aggregate.UserID(); userID != nil {
		resp.UserID = userID.String()
	}
	resp.ShippingAddress = addressToResponse(aggregate.ShippingAddress())
	resp.BillingAddress = addressToResponse(aggregate.BillingAddress())

	return resp
}

func addressToResponse(address *order.Address) *AddressResponse {
	if address == nil {
		return nil
	}

	return &AddressResponse{
		Line1:      address.Line1(),
		Line2:      address.Line2(),
		City:       address.City(),
		Region:     address.Region(),
		PostalCode: address.PostalCode(),
		Country:    address.Country(),
	}
}

func eventToResponse(event *order.Event) EventResponse {
	return EventResponse{
		ID:        event.ID().String(),
		OrderID:   event.OrderID().String(),
		Type:      event.Type(),
		Data:      event.Data(),
		Note:      event.Note(),
		CreatedBy: event.CreatedBy(),
		CreatedAt: event.CreatedAt(),
	}
}
