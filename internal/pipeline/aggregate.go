package pipeline

import (
	"climate-pipeline/internal/model"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Period band boundaries (years)
const (
	preIndustrialEnd = 1900
	earlyCenturyEnd  = 1950
	lateCenturyEnd   = 2000
)

// Process derives the full dataset from observations in any order. It works
// on a year-sorted copy. All arithmetic runs on unrounded values; rounding is
// applied once at the end.
func Process(obs []Observation) (model.Dataset, error) {
	if len(obs) == 0 {
		return model.Dataset{}, ErrEmptyInput
	}
	obs = sortedByYear(obs)

	ds := model.Dataset{
		Annual:  BuildAnnualRecords(obs),
		Decades: DecadeAverages(obs),
		Trends:  Summarize(obs),
	}
	return RoundDataset(ds), nil
}

// TrendPerDecade fits anomaly = slope*year + intercept by ordinary least
// squares and returns slope*10. A single observation has no trend.
func TrendPerDecade(obs []Observation) float64 {
	if len(obs) < 2 {
		return 0
	}
	years := make([]float64, len(obs))
	anomalies := make([]float64, len(obs))
	for i, o := range obs {
		years[i] = float64(o.Year)
		anomalies[i] = o.Anomaly
	}
	_, slope := stat.LinearRegression(years, anomalies, nil, false)
	return slope * 10
}

// DecadeOf returns the decade bucket start, floor(year/10)*10
func DecadeOf(year int) int {
	d := year / 10
	if year%10 != 0 && year < 0 {
		d--
	}
	return d * 10
}

// DecadeLabel formats a decade start as "1990s"
func DecadeLabel(start int) string {
	return fmt.Sprintf("%ds", start)
}

// DecadeAverages buckets observations by decade and averages each bucket.
// obs must be sorted by year. Only decades with at least one observed year
// are emitted.
func DecadeAverages(obs []Observation) []model.DecadeAverage {
	var out []model.DecadeAverage
	var bucket []float64
	current := 0

	flush := func() {
		if len(bucket) == 0 {
			return
		}
		out = append(out, model.DecadeAverage{
			Decade:      DecadeLabel(current),
			DecadeStart: current,
			Average:     stat.Mean(bucket, nil),
		})
		bucket = bucket[:0]
	}

	for _, o := range obs {
		d := DecadeOf(o.Year)
		if len(bucket) > 0 && d != current {
			flush()
		}
		current = d
		bucket = append(bucket, o.Anomaly)
	}
	flush()
	return out
}

// Summarize computes the dataset-wide trend summary. obs must be non-empty
// and sorted by year; the data range is read from its ends.
func Summarize(obs []Observation) model.TrendSummary {
	var pre, early, late, recent []float64
	for _, o := range obs {
		switch {
		case o.Year < preIndustrialEnd:
			pre = append(pre, o.Anomaly)
		case o.Year < earlyCenturyEnd:
			early = append(early, o.Anomaly)
		case o.Year < lateCenturyEnd:
			late = append(late, o.Anomaly)
		default:
			recent = append(recent, o.Anomaly)
		}
	}

	averages := model.AverageAnomalies{
		PreIndustrial:      meanOrNil(pre),
		Early20thCentury:   meanOrNil(early),
		Late20thCentury:    meanOrNil(late),
		TwentyFirstCentury: meanOrNil(recent),
	}

	var warming *float64
	if averages.PreIndustrial != nil && averages.TwentyFirstCentury != nil {
		w := *averages.TwentyFirstCentury - *averages.PreIndustrial
		warming = &w
	}

	warmest, coldest := Extremes(obs)
	return model.TrendSummary{
		DataRange: model.DataRange{
			StartYear: obs[0].Year,
			EndYear:   obs[len(obs)-1].Year,
		},
		TrendPerDecade:            TrendPerDecade(obs),
		WarmingSincePreindustrial: warming,
		AverageAnomalies:          averages,
		Extremes: model.Extremes{
			WarmestYear: warmest,
			ColdestYear: coldest,
		},
	}
}

// Extremes returns the warmest and coldest observations. Ties keep the
// earliest year.
func Extremes(obs []Observation) (warmest, coldest model.YearAnomaly) {
	for i, o := range obs {
		if i == 0 || o.Anomaly > warmest.Anomaly {
			warmest = model.YearAnomaly{Year: o.Year, Anomaly: o.Anomaly}
		}
		if i == 0 || o.Anomaly < coldest.Anomaly {
			coldest = model.YearAnomaly{Year: o.Year, Anomaly: o.Anomaly}
		}
	}
	return warmest, coldest
}

func meanOrNil(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := stat.Mean(values, nil)
	return &m
}
