package commands

import (
	"context"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/metrics"
)

// MigrationActor is recorded as the author of audit events written by batch
// status migrations.
const MigrationActor = "status-migration"

// MigrationRowError captures a single failed row without aborting the run.
type MigrationRowError struct {
	OrderID     string
	OrderNumber string
	Err         error
}

// MigrationReport summarizes a migration run. Before and After are status
// distribution snapshots keyed by raw status code; After equals Before for
// dry runs and aborted runs.
type MigrationReport struct {
	DryRun        bool
	Aborted       bool
	EligibleCount int
	MigratedCount int
	SkippedCount  int
	ErrorCount    int
	RowErrors     []MigrationRowError
	Before        map[string]int64
	After         map[string]int64
}

// MigrateStatusesCommandHandler remaps orders from legacy status codes to
// their catalog replacements.
//
// Each row is migrated in its own transaction: the order is re-read inside
// the transaction, remapped through the aggregate's forced transition (which
// records a migration audit event), and committed independently. A failed
// row is reported and the run continues; rows already migrated stay
// migrated. Rerunning the same map finds no eligible rows and writes
// nothing, so the operation is idempotent. Rows whose status appears in no
// mapping pair are never touched.
type MigrateStatusesCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMigrateStatusesCommandHandler creates a handler for batch status migrations.
func NewMigrateStatusesCommandHandler(uowFactory OrderUoWFactory) MigrateStatusesCommandHandler {
	return MigrateStatusesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle runs the migration and returns its report. The returned error
// covers setup failures (snapshots, confirmation plumbing); per-row
// failures land in the report instead.
func (h MigrateStatusesCommandHandler) Handle(
	ctx context.Context,
	cmd MigrateStatusesCommand,
) (*MigrationReport, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	report := &MigrationReport{
		DryRun: cmd.DryRun(),
	}

	// Snapshot reads run outside any transaction.
	reader := h.uowFactory.Create()

	before, err := reader.OrderRepository().CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	report.Before = before

	for _, mapping := range cmd.Mappings() {
		if mapping.Old == mapping.New {
			continue
		}
		report.EligibleCount += int(before[string(mapping.Old)])
	}

	if report.EligibleCount == 0 {
		report.After = before
		return report, nil
	}

	if !cmd.confirmed(report.EligibleCount) {
		report.Aborted = true
		report.After = before
		return report, nil
	}

	for _, mapping := range cmd.Mappings() {
		if mapping.Old == mapping.New {
			continue
		}

		rows, err := reader.OrderRepository().GetAllInStatus(ctx, mapping.Old)
		if err != nil {
			return nil, err
		}

		for _, row := range rows {
			h.migrateRow(ctx, cmd, mapping, row, report)
		}
	}

	after, err := reader.OrderRepository().CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	report.After = after

	return report, nil
}

// migrateRow processes one order in its own transaction. Dry runs walk the
// same path and roll back instead of committing.
func (h MigrateStatusesCommandHandler) migrateRow(
	ctx context.Context,
	cmd MigrateStatusesCommand,
	mapping order.StatusMapping,
	row *order.Order,
	report *MigrationReport,
) {
	progress := MigrationProgress{
		OrderID:     row.ID().String(),
		OrderNumber: row.Number(),
		From:        mapping.Old,
		To:          mapping.New,
		DryRun:      cmd.DryRun(),
	}

	err := h.migrateRowTx(ctx, cmd, mapping, row, report)
	if err != nil {
		progress.Err = err
		report.ErrorCount++
		report.RowErrors = append(report.RowErrors, MigrationRowError{
			OrderID:     row.ID().String(),
			OrderNumber: row.Number(),
			Err:         err,
		})
		metrics.StatusMigrationRowsTotal.WithLabelValues(metrics.OutcomeError).Inc()
	}

	cmd.reportProgress(progress)
}

func (h MigrateStatusesCommandHandler) migrateRowTx(
	ctx context.Context,
	cmd MigrateStatusesCommand,
	mapping order.StatusMapping,
	row *order.Order,
	report *MigrationReport,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Re-read inside the transaction: the snapshot listing may be stale by
	// the time this row's turn comes.
	aggregate, err := uow.OrderRepository().Get(ctx, row.ID())
	if err != nil {
		return err
	}

	if aggregate.Status() != mapping.Old {
		report.SkippedCount++
		metrics.StatusMigrationRowsTotal.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return nil
	}

	event, err := aggregate.ForceSetStatus(mapping.New, MigrationActor,
		"Migrated from legacy status "+string(mapping.Old))
	if err != nil {
		return err
	}
	if event == nil {
		report.SkippedCount++
		metrics.StatusMigrationRowsTotal.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return nil
	}

	if cmd.DryRun() {
		report.MigratedCount++
		return nil
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.OrderEventRepository().Add(ctx, event); err != nil {
		return err
	}
	aggregate.ClearPendingEvents()

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	report.MigratedCount++
	metrics.StatusMigrationRowsTotal.WithLabelValues(metrics.OutcomeMigrated).Inc()
	return nil
}
