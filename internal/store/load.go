package store

import (
	"climate-pipeline/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Load replaces the contents of all climate tables with ds inside a single
// transaction. Readers see either the previous snapshot or the new one.
func (s *Store) Load(ctx context.Context, ds model.Dataset, manifest model.RunManifest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, table := range []string{"annual_temperatures", "decadal_averages", "temperature_trends"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := insertAnnual(ctx, tx, ds.Annual); err != nil {
		return err
	}
	if err := insertDecades(ctx, tx, ds.Decades); err != nil {
		return err
	}
	if err := insertTrends(ctx, tx, ds.Trends); err != nil {
		return err
	}

	if manifest.RunID != "" {
		_, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO load_runs (run_id, generated_at, loaded_at) VALUES (?, ?, ?)`,
			manifest.RunID, manifest.GeneratedAt.UTC(), s.clock.Now().UTC())
		if err != nil {
			return fmt.Errorf("record load run: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertAnnual(ctx context.Context, tx *sql.Tx, records []model.AnnualRecord) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO annual_temperatures (year, anomaly, moving_avg_5yr) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare annual insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Year, r.Anomaly, nullFloat(r.MovingAverage5yr)); err != nil {
			return fmt.Errorf("insert year %d: %w", r.Year, err)
		}
	}
	return nil
}

func insertDecades(ctx context.Context, tx *sql.Tx, decades []model.DecadeAverage) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO decadal_averages (decade, decade_start, average) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare decade insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range decades {
		if _, err := stmt.ExecContext(ctx, d.Decade, d.DecadeStart, d.Average); err != nil {
			return fmt.Errorf("insert decade %s: %w", d.Decade, err)
		}
	}
	return nil
}

func insertTrends(ctx context.Context, tx *sql.Tx, t model.TrendSummary) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO temperature_trends (
			id, start_year, end_year, trend_per_decade, warming_since_preindustrial,
			pre_industrial_avg, early_20th_century_avg, late_20th_century_avg,
			twentyfirst_century_avg, warmest_year, warmest_year_anomaly,
			coldest_year, coldest_year_anomaly
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.DataRange.StartYear,
		t.DataRange.EndYear,
		t.TrendPerDecade,
		nullFloat(t.WarmingSincePreindustrial),
		nullFloat(t.AverageAnomalies.PreIndustrial),
		nullFloat(t.AverageAnomalies.Early20thCentury),
		nullFloat(t.AverageAnomalies.Late20thCentury),
		nullFloat(t.AverageAnomalies.TwentyFirstCentury),
		t.Extremes.WarmestYear.Year,
		t.Extremes.WarmestYear.Anomaly,
		t.Extremes.ColdestYear.Year,
		t.Extremes.ColdestYear.Anomaly,
	)
	if err != nil {
		return fmt.Errorf("insert trend summary: %w", err)
	}
	return nil
}

// VerifyReport is the post-load sanity report
type VerifyReport struct {
	AnnualCount int
	DecadeCount int
	TrendCount  int
	Latest      []model.AnnualRecord // latest five years, newest first

	LastRunID    string    // most recently loaded run, empty if none was recorded
	LastLoadedAt time.Time
}

// Verify counts the rows of each table and fetches the latest five years
func (s *Store) Verify(ctx context.Context) (VerifyReport, error) {
	var report VerifyReport
	counts := []struct {
		table string
		dst   *int
	}{
		{"annual_temperatures", &report.AnnualCount},
		{"decadal_averages", &report.DecadeCount},
		{"temperature_trends", &report.TrendCount},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dst); err != nil {
			return report, fmt.Errorf("count %s: %w", c.table, err)
		}
	}

	latest, err := s.queryAnnual(ctx,
		`SELECT year, anomaly, moving_avg_5yr FROM annual_temperatures ORDER BY year DESC LIMIT 5`)
	if err != nil {
		return report, err
	}
	report.Latest = latest

	err = s.db.QueryRowContext(ctx,
		`SELECT run_id, loaded_at FROM load_runs ORDER BY loaded_at DESC, rowid DESC LIMIT 1`,
	).Scan(&report.LastRunID, &report.LastLoadedAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return report, fmt.Errorf("query load runs: %w", err)
	}
	return report, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
