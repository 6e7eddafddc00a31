package order

import (
	"errors"
	"fmt"

	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a value object describing one line of an order: what was bought,
// how many, and at what unit price. Items are immutable after the order is
// created.
type Item struct {
	productName string
	variantID   string
	sku         string
	quantity    int
	price       float64

	guard guard.ConstructorGuard
}

// NewItem creates an order line item with validation.
//
// Rules:
//   - productName must not be empty
//   - quantity must be at least 1
//   - price must not be negative
//
// variantID and sku are optional and may be empty.
func NewItem(productName, variantID, sku string, quantity int, price float64) (Item, error) {
	item := Item{
		variantID: variantID,
		sku:       sku,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductName(productName),
		item.setQuantity(quantity),
		item.setPrice(price),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item instance was properly constructed through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductName returns the display name of the purchased product.
func (i Item) ProductName() string {
	return i.productName
}

// VariantID returns the product variant reference, or "" if not set.
func (i Item) VariantID() string {
	return i.variantID
}

// SKU returns the stock keeping unit, or "" if not set.
func (i Item) SKU() string {
	return i.sku
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// Price returns the unit price.
func (i Item) Price() float64 {
	return i.price
}

func (i *Item) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = productName
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not at least 1", quantity),
		)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%g is negative", price),
		)
	}
	i.price = price
	return nil
}
