package order

// StatusMapping is one legacy-to-current remap entry. Entries mapping a code
// to itself are deliberate no-ops: the migration runner skips them without
// generating events.
type StatusMapping struct {
	Old Status
	New Status
}

// LegacyStatusMap is the fixed remap table from the pre-catalog status codes
// to the current catalog. It is contract data: the table content and its
// order are stable run-to-run, which keeps migrations deterministic and
// safely re-runnable.
func LegacyStatusMap() []StatusMapping {
	return []StatusMapping{
		{Old: "pending", New: StatusDraft},
		{Old: "confirmed", New: StatusCustomerApproved},
		{Old: "cancelled", New: StatusCancelled},
		{Old: "returned", New: StatusCancelled},
		{Old: "estimating", New: StatusEstimateSent},
		{Old: "quoted", New: StatusEstimateSent},
		{Old: "awaiting_approval", New: StatusCustomerApproved},
		{Old: "production", New: StatusInProduction},
		{Old: "ready_for_dispatch", New: StatusReadyForDelivery},
		{Old: "shipped", New: StatusCompleted},
		{Old: "completed", New: StatusCompleted},
		{Old: "on_hold", New: StatusOnHold},
	}
}
