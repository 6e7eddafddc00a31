package queries

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OrderResponse is the read model of a single order.
type OrderResponse struct {
	ID                string
	OrderNumber       string
	UserID            string
	Email             string
	Currency          string
	Status            string
	PaymentStatus     string
	FulfillmentStatus string
	Items             []ItemResponse
	ShippingAddress   *AddressResponse
	BillingAddress    *AddressResponse
	Notes             string
	Metadata          map[string]any
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ItemResponse is the read model of one order line.
type ItemResponse struct {
	ProductName string  `json:"product_name"`
	VariantID   string  `json:"variant_id,omitempty"`
	SKU         string  `json:"sku,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// AddressResponse is the read model of a postal address.
type AddressResponse struct {
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Country    string
}

// EventResponse is the read model of one ledger entry.
type EventResponse struct {
	ID        string
	OrderID   string
	Type      string
	Data      map[string]any
	Note      string
	CreatedBy string
	CreatedAt time.Time
}

// statusNames mirror the domain enum string forms; the read side works on
// raw column values and keeps no dependency on the domain package.
var (
	statusNames = map[int]string{
		1: "pending", 2: "confirmed", 3: "processing", 4: "shipped", 5: "delivered", 6: "cancelled",
	}
	paymentStatusNames = map[int]string{
		1: "pending", 2: "paid", 3: "refunded", 4: "failed",
	}
	fulfillmentStatusNames = map[int]string{
		1: "unfulfilled", 2: "partial", 3: "fulfilled",
	}
)

// orderRow matches the orders table columns scanned by the query handlers.
type orderRow struct {
	ID                 uuid.UUID
	OrderNumber        string
	UserID             *uuid.UUID
	Email              string
	Currency           string
	Status             int
	PaymentStatus      int
	FulfillmentStatus  int
	Items              []byte
	ShippingLine1      string
	ShippingLine2      string
	ShippingCity       string
	ShippingRegion     string
	ShippingPostalCode string
	ShippingCountry    string
	BillingLine1       string
	BillingLine2       string
	BillingCity        string
	BillingRegion      string
	BillingPostalCode  string
	BillingCountry     string
	Notes              string
	Metadata           []byte
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// orderColumns is the select list every order query scans; keep it aligned
// with the scan order in scanOrderRow.
const orderColumns = `
	id,
	order_number,
	user_id,
	email,
	currency,
	status,
	payment_status,
	fulfillment_status,
	items,
	shipping_line1,
	shipping_line2,
	shipping_city,
	shipping_region,
	shipping_postal_code,
	shipping_country,
	billing_line1,
	billing_line2,
	billing_city,
	billing_region,
	billing_postal_code,
	billing_country,
	notes,
	metadata,
	version,
	created_at,
	updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderRow(s rowScanner) (orderRow, error) {
	var r orderRow
	err := s.Scan(
		&r.ID,
		&r.OrderNumber,
		&r.UserID,
		&r.Email,
		&r.Currency,
		&r.Status,
		&r.PaymentStatus,
		&r.FulfillmentStatus,
		&r.Items,
		&r.ShippingLine1,
		&r.ShippingLine2,
		&r.ShippingCity,
		&r.ShippingRegion,
		&r.ShippingPostalCode,
		&r.ShippingCountry,
		&r.BillingLine1,
		&r.BillingLine2,
		&r.BillingCity,
		&r.BillingRegion,
		&r.BillingPostalCode,
		&r.BillingCountry,
		&r.Notes,
		&r.Metadata,
		&r.Version,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func (r orderRow) toResponse() (OrderResponse, error) {
	resp := OrderResponse{
		ID:                r.ID.String(),
		OrderNumber:       r.OrderNumber,
		Email:             r.Email,
		Currency:          r.Currency,
		Status:            statusNames[r.Status],
		PaymentStatus:     paymentStatusNames[r.PaymentStatus],
		FulfillmentStatus: fulfillmentStatusNames[r.FulfillmentStatus],
		Notes:             r.Notes,
		Version:           r.Version,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}

	if r.UserID != nil {
		resp.UserID = r.UserID.String()
	}

	if len(r.Items) > 0 {
		if err := json.Unmarshal(r.Items, &resp.Items); err != nil {
			return OrderResponse{}, err
		}
	}

	if len(r.Metadata) > 0 {
		if err := json.Unmarshal(r.Metadata, &resp.Metadata); err != nil {
			return OrderResponse{}, err
		}
	}

	// An absent address is stored as empty columns; line1 is required on
	// every constructed address, so it doubles as the presence marker.
	if r.ShippingLine1 != "" {
		resp.ShippingAddress = &AddressResponse{
			Line1:      r.ShippingLine1,
			Line2:      r.ShippingLine2,
			City:       r.ShippingCity,
			Region:     r.ShippingRegion,
			PostalCode: r.ShippingPostalCode,
			Country:    r.ShippingCountry,
		}
	}
	if r.BillingLine1 != "" {
		resp.BillingAddress = &AddressResponse{
			Line1:      r.BillingLine1,
			Line2:      r.BillingLine2,
			City:       r.BillingCity,
			Region:     r.BillingRegion,
			PostalCode: r.BillingPostalCode,
			Country:    r.BillingCountry,
		}
	}

	return resp, nil
}
