// Package order provides the domain model for the order status lifecycle.
//
// The package includes:
//   - Order: the aggregate root owning the current status, staged audit
//     events, and the tracking-token lifecycle
//   - Status: the catalog of known status codes with labels, colors and the
//     allowed-transition graph
//   - TransitionGuard: the adjacency check applied to guarded change requests
//   - Event: one immutable audit record with an audience visibility scope
//   - LegacyStatusMap: the fixed legacy-to-current status remap table
//
// Key business rules:
//   - Guarded transitions follow the catalog's directed graph; no-op changes
//     succeed without producing an event
//   - Forced transitions (migration, administrative override) bypass the
//     graph but never the audit trail, and are tagged distinctly
//   - Unknown legacy status codes are tolerated on stored orders and render
//     with humanized labels until migrated
//   - Tracking tokens are issued idempotently and rotated explicitly;
//     rotation invalidates previously signed links
package order
