// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the commerce system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderNumberGenerator: A domain service that allocates globally unique,
//     human-readable order numbers from a persisted sequence
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
