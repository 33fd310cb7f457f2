package store

import (
	"climate-pipeline/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ListAnnual returns every annual record in ascending year order
func (s *Store) ListAnnual(ctx context.Context) ([]model.AnnualRecord, error) {
	return s.queryAnnual(ctx,
		`SELECT year, anomaly, moving_avg_5yr FROM annual_temperatures ORDER BY year`)
}

// AnnualRange returns the annual records with start <= year <= end in
// ascending year order
func (s *Store) AnnualRange(ctx context.Context, start, end int) ([]model.AnnualRecord, error) {
	return s.queryAnnual(ctx,
		`SELECT year, anomaly, moving_avg_5yr FROM annual_temperatures
		 WHERE year >= ? AND year <= ? ORDER BY year`, start, end)
}

// ListDecades returns the decade averages in ascending decade order
func (s *Store) ListDecades(ctx context.Context) ([]model.DecadeAverage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT decade, decade_start, average FROM decadal_averages ORDER BY decade_start`)
	if err != nil {
		return nil, fmt.Errorf("query decades: %w", err)
	}
	defer rows.Close()

	decades := []model.DecadeAverage{}
	for rows.Next() {
		var d model.DecadeAverage
		if err := rows.Scan(&d.Decade, &d.DecadeStart, &d.Average); err != nil {
			return nil, fmt.Errorf("scan decade: %w", err)
		}
		decades = append(decades, d)
	}
	return decades, rows.Err()
}

// GetTrends returns the single trend summary, or ErrNotFound when the
// table is empty
func (s *Store) GetTrends(ctx context.Context) (model.TrendSummary, error) {
	var t model.TrendSummary
	var warming, pre, early, late, recent sql.NullFloat64

	err := s.db.QueryRowContext(ctx, `
		SELECT start_year, end_year, trend_per_decade, warming_since_preindustrial,
		       pre_industrial_avg, early_20th_century_avg, late_20th_century_avg,
		       twentyfirst_century_avg, warmest_year, warmest_year_anomaly,
		       coldest_year, coldest_year_anomaly
		FROM temperature_trends WHERE id = 1`).Scan(
		&t.DataRange.StartYear,
		&t.DataRange.EndYear,
		&t.TrendPerDecade,
		&warming,
		&pre,
		&early,
		&late,
		&recent,
		&t.Extremes.WarmestYear.Year,
		&t.Extremes.WarmestYear.Anomaly,
		&t.Extremes.ColdestYear.Year,
		&t.Extremes.ColdestYear.Anomaly,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	if err != nil {
		return t, fmt.Errorf("query trends: %w", err)
	}

	t.WarmingSincePreindustrial = floatPtr(warming)
	t.AverageAnomalies = model.AverageAnomalies{
		PreIndustrial:      floatPtr(pre),
		Early20thCentury:   floatPtr(early),
		Late20thCentury:    floatPtr(late),
		TwentyFirstCentury: floatPtr(recent),
	}
	return t, nil
}

func (s *Store) queryAnnual(ctx context.Context, query string, args ...any) ([]model.AnnualRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query annual: %w", err)
	}
	defer rows.Close()

	records := []model.AnnualRecord{}
	for rows.Next() {
		var r model.AnnualRecord
		var moving sql.NullFloat64
		if err := rows.Scan(&r.Year, &r.Anomaly, &moving); err != nil {
			return nil, fmt.Errorf("scan annual: %w", err)
		}
		r.MovingAverage5yr = floatPtr(moving)
		records = append(records, r)
	}
	return records, rows.Err()
}
