// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the persistence model directly and map rows into
// response structs; they never mutate state and never emit ledger events.
package queries
