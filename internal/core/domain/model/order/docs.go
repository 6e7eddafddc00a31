// Package order provides domain entities and business logic for order management
// in the commerce system. It implements the Order aggregate root with lifecycle
// management, state transitions, and the immutable event ledger.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - PaymentStatus, FulfillmentStatus: standalone tracking fields
//   - Item, Address: value objects for order lines and postal data
//   - Event: an immutable append-only record of something that happened to an order
//
// Key business rules:
//   - Orders must have a valid unique identifier, a unique order number,
//     a contact email, and at least one line item
//   - Order status follows a defined workflow:
//     pending -> confirmed -> processing -> shipped -> delivered,
//     with cancellation possible from pending, confirmed, and processing
//   - Delivered and cancelled orders accept no further transitions
//   - Ledger events are never mutated or deleted once appended
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
