// Command migrate remaps legacy order status codes to their catalog
// replacements. It prints before/after status distributions, asks for
// confirmation (unless -force), migrates row by row and summarizes errors
// without aborting the run.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"orderdesk/cmd"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/order"

	"github.com/joho/godotenv"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "walk the migration without writing anything")
	force := flag.Bool("force", false, "skip the confirmation prompt")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	config, err := getConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := cmd.OpenDatabase(config)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}

	root, err := cmd.NewCompositionRoot(config, db, logger)
	if err != nil {
		logger.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	migrateCmd, err := commands.NewMigrateStatusesCommand(
		order.LegacyStatusMap(),
		*dryRun,
		*force,
		confirm,
		printProgress,
	)
	if err != nil {
		logger.Error("Failed to build migration", "error", err)
		os.Exit(1)
	}

	handler := root.CreateMigrateStatusesCommandHandler()
	report, err := handler.Handle(context.Background(), migrateCmd)
	if err != nil {
		logger.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	printReport(report)

	if report.Aborted || report.ErrorCount > 0 {
		os.Exit(1)
	}
}

func getConfig() (cmd.Config, error) {
	_ = godotenv.Load(".env")

	return cmd.Config{
		DBHost:        envOr("DB_HOST", "localhost"),
		DBPort:        envOr("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     envOr("DB_SSLMODE", "disable"),
		SigningSecret: envOr("SIGNING_SECRET", "migrate-only"),
	}, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func confirm(eligible int) bool {
	fmt.Printf("About to migrate %d orders. Continue? [y/N] ", eligible)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func printProgress(p commands.MigrationProgress) {
	prefix := "migrated"
	if p.DryRun {
		prefix = "would migrate"
	}
	if p.Err != nil {
		fmt.Printf("  FAILED   %-12s %s -> %s: %v\n", p.OrderNumber, p.From, p.To, p.Err)
		return
	}
	fmt.Printf("  %-8s %-12s %s -> %s\n", prefix, p.OrderNumber, p.From, p.To)
}

func printReport(report *commands.MigrationReport) {
	if report.Aborted {
		fmt.Println("\nMigration aborted, nothing was written.")
		return
	}

	header := "Migration complete"
	if report.DryRun {
		header = "Dry run complete, nothing was written"
	}
	fmt.Printf("\n%s: %d migrated, %d skipped, %d failed (of %d eligible)\n",
		header, report.MigratedCount, report.SkippedCount, report.ErrorCount, report.EligibleCount)

	fmt.Println("\nStatus distribution:")
	printDistribution(report.Before, report.After)

	if len(report.RowErrors) > 0 {
		fmt.Println("\nFailed rows:")
		for _, rowErr := range report.RowErrors {
			fmt.Printf("  %-12s %s: %v\n", rowErr.OrderNumber, rowErr.OrderID, rowErr.Err)
		}
	}
}

func printDistribution(before, after map[string]int64) {
	codes := make(map[string]struct{})
	for code := range before {
		codes[code] = struct{}{}
	}
	for code := range after {
		codes[code] = struct{}{}
	}

	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	fmt.Printf("  %-28s %10s %10s\n", "status", "before", "after")
	for _, code := range sorted {
		fmt.Printf("  %-28s %10d %10d\n", code, before[code], after[code])
	}
}
