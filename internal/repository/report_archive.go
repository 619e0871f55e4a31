package repository

import (
	"context"
	"fmt"
	"time"

	"CashCast/internal/domain/models"
	"CashCast/pkg/clickhouse"
)

// SchemaStatements create the archive database and table. Idempotent; run
// once at startup via Client.InitSchema.
var SchemaStatements = []string{
	`CREATE DATABASE IF NOT EXISTS cashcast`,
	`CREATE TABLE IF NOT EXISTS cashcast.forecast_reports (
		report_id     String,
		generated_at  DateTime,
		horizon       UInt8,
		month         Date,
		predicted     Float64,
		lower_bound   Float64,
		upper_bound   Float64,
		risk          LowCardinality(String),
		reason        String
	) ENGINE = MergeTree()
	ORDER BY (report_id, month)`,
}

// CHReportArchive persists forecast reports to ClickHouse, one row per
// forecasted month.
type CHReportArchive struct {
	client *clickhouse.Client
}

// NewCHReportArchive creates the archive over an initialized client.
func NewCHReportArchive(client *clickhouse.Client) *CHReportArchive {
	return &CHReportArchive{client: client}
}

// Save inserts all months of a report in a single batch.
func (a *CHReportArchive) Save(ctx context.Context, reportID string, horizon int, points []models.ClassifiedPoint) error {
	tx, err := a.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cashcast.forecast_reports
		 (report_id, generated_at, horizon, month, predicted, lower_bound, upper_bound, risk, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, p := range points {
		if _, err := stmt.ExecContext(ctx,
			reportID, now, uint8(horizon), p.Month,
			p.Predicted, p.Lower, p.Upper,
			p.Risk.String(), p.Reason,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert report row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}
