// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items and metadata are stored as jsonb documents; addresses are
// embedded columns with an empty line1 marking an absent address.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber       string     `gorm:"uniqueIndex"`
	UserID            *uuid.UUID `gorm:"type:uuid;index"`
	Email             string
	Currency          string
	Status            int `gorm:"index"`
	PaymentStatus     int `gorm:"index"`
	FulfillmentStatus int
	Items             json.RawMessage `gorm:"type:jsonb"`
	ShippingAddress   AddressDTO      `gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress    AddressDTO      `gorm:"embedded;embeddedPrefix:billing_"`
	Notes             string
	Metadata          json.RawMessage `gorm:"type:jsonb"`
	Version           int
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents an embedded postal address within the orders table.
type AddressDTO struct {
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Country    string
}

// ItemDTO is the jsonb element shape of one order line. Field names match
// the read-side response mapping.
type ItemDTO struct {
	ProductName string  `json:"product_name"`
	VariantID   string  `json:"variant_id,omitempty"`
	SKU         string  `json:"sku,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	itemDTOs := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		itemDTOs = append(itemDTOs, ItemDTO{
			ProductName: item.ProductName(),
			VariantID:   item.VariantID(),
			SKU:         item.SKU(),
			Quantity:    item.Quantity(),
			Price:       item.Price(),
		})
	}

	items, err := json.Marshal(itemDTOs)
	if err != nil {
		return OrderDTO{}, err
	}

	metadata, err := json.Marshal(aggregate.Metadata())
	if err != nil {
		return OrderDTO{}, err
	}

	var userID *uuid.UUID
	if id := aggregate.UserID(); id != nil {
		raw := id.Bytes()
		userID = &raw
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		OrderNumber:       aggregate.OrderNumber(),
		UserID:            userID,
		Email:             aggregate.Email(),
		Currency:          aggregate.Currency(),
		Status:            int(aggregate.Status()),
		PaymentStatus:     int(aggregate.PaymentStatus()),
		FulfillmentStatus: int(aggregate.FulfillmentStatus()),
		Items:             items,
		ShippingAddress:   addressFromDomain(aggregate.ShippingAddress()),
		BillingAddress:    addressFromDomain(aggregate.BillingAddress()),
		Notes:             aggregate.Notes(),
		Metadata:          metadata,
		Version:           aggregate.Version(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
	}, nil
}

func addressFromDomain(address *order.Address) AddressDTO {
	if address == nil {
		return AddressDTO{}
	}

	return AddressDTO{
		Line1:      address.Line1(),
		Line2:      address.Line2(),
		City:       address.City(),
		Region:     address.Region(),
		PostalCode: address.PostalCode(),
		Country:    address.Country(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lifecycle state and version using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var userID *kernel.UUID
	if dto.UserID != nil {
		uID, userErr := kernel.UUIDFromBytes((*dto.UserID)[:])
		if userErr != nil {
			return nil, userErr
		}

		userID = &uID
	}

	var itemDTOs []ItemDTO
	if len(dto.Items) > 0 {
		if err = json.Unmarshal(dto.Items, &itemDTOs); err != nil {
			return nil, err
		}
	}

	items := make([]order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := order.NewItem(
			itemDTO.ProductName,
			itemDTO.VariantID,
			itemDTO.SKU,
			itemDTO.Quantity,
			itemDTO.Price,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var metadata map[string]any
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	shippingAddress, err := addressToDomain(dto.ShippingAddress)
	if err != nil {
		return nil, err
	}

	billingAddress, err := addressToDomain(dto.BillingAddress)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		userID,
		dto.Email,
		dto.Currency,
		items,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		order.FulfillmentStatus(dto.FulfillmentStatus),
		shippingAddress,
		billingAddress,
		dto.Notes,
		metadata,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func addressToDomain(dto AddressDTO) (*order.Address, error) {
	if dto.Line1 == "" {
		return nil, nil
	}

	address, err := order.NewAddress(dto.Line1, dto.Line2, dto.City, dto.Region, dto.PostalCode, dto.Country)
	if err != nil {
		return nil, err
	}

	return &address, nil
}
