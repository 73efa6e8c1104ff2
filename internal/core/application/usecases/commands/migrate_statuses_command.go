package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrMigrateStatusesCommandIsNotConstructed = errors.New(
		"MigrateStatusesCommand must be created via NewMigrateStatusesCommand constructor",
	)
	ErrStatusMapIsRequired = errors.New("status map is required")
)

// MigrateStatusesCommand represents a batch remap of legacy status codes.
//
// The mapping slice fixes the processing order: pairs are handled in slice
// order and rows within a pair in repository order, so a run is repeatable
// given identical inputs. Self-mapping pairs are skipped without events.
type MigrateStatusesCommand struct { //nolint:recvcheck //using for validation
	mappings []order.StatusMapping
	dryRun   bool
	force    bool
	confirm  func(eligible int) bool
	progress func(p MigrationProgress)

	guard guard.ConstructorGuard
}

// MigrationProgress is emitted once per processed row, letting interactive
// callers render a running indicator without coupling the runner to a UI.
type MigrationProgress struct {
	OrderID     string
	OrderNumber string
	From        order.Status
	To          order.Status
	DryRun      bool
	Err         error
}

// NewMigrateStatusesCommand creates a migration command.
//
//   - dryRun performs all reads and validation but no writes
//   - force skips the confirmation step
//   - confirm is asked once with the eligible row count before any write;
//     nil means "no confirmation available" and, unless force or dryRun is
//     set, the run aborts
//   - progress may be nil
func NewMigrateStatusesCommand(
	mappings []order.StatusMapping,
	dryRun bool,
	force bool,
	confirm func(eligible int) bool,
	progress func(p MigrationProgress),
) (MigrateStatusesCommand, error) {
	if len(mappings) == 0 {
		return MigrateStatusesCommand{}, ErrStatusMapIsRequired
	}

	return MigrateStatusesCommand{
		mappings: mappings,
		dryRun:   dryRun,
		force:    force,
		confirm:  confirm,
		progress: progress,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MigrateStatusesCommand) Validate() error {
	return c.guard.Validate(ErrMigrateStatusesCommandIsNotConstructed)
}

// Mappings returns the ordered remap table.
func (c MigrateStatusesCommand) Mappings() []order.StatusMapping {
	return c.mappings
}

// DryRun reports whether the run must not write.
func (c MigrateStatusesCommand) DryRun() bool {
	return c.dryRun
}

// Force reports whether confirmation is skipped.
func (c MigrateStatusesCommand) Force() bool {
	return c.force
}

func (c MigrateStatusesCommand) confirmed(eligible int) bool {
	if c.force || c.dryRun {
		return true
	}
	return c.confirm != nil && c.confirm(eligible)
}

func (c MigrateStatusesCommand) reportProgress(p MigrationProgress) {
	if c.progress != nil {
		c.progress(p)
	}
}
