// Package kernel contains shared value objects used across the domain model.
//
// The package includes:
//   - UUID: an immutable identifier value object wrapping github.com/google/uuid
//   - Money: a non-negative fixed-precision amount stored in cents
//
// Value objects in this package are immutable, validate themselves on
// construction, and expose a Validate method so aggregates can detect
// zero values that bypassed the constructor.
package kernel
