package pipeline

import (
	"climate-pipeline/internal/model"
	"math"

	"gonum.org/v1/gonum/stat"
)

// MovingAverageWindow is the width of the centered moving average
const MovingAverageWindow = 5

// roundingScale gives 4 decimal places of output precision
const roundingScale = 1e4

// Round4 rounds x to 4 decimal places, halves away from zero.
// It is applied exactly once, to final values, right before serialization.
func Round4(x float64) float64 {
	return math.Round(x*roundingScale) / roundingScale
}

func round4Ptr(x *float64) *float64 {
	if x == nil {
		return nil
	}
	v := Round4(*x)
	return &v
}

// CenteredMovingAverage returns the centered mean over window values for each
// position of values. Positions without a full window get nil. window must be odd.
func CenteredMovingAverage(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	half := window / 2
	if window <= 0 || len(values) < window {
		return out
	}

	for center := half; center+half < len(values); center++ {
		avg := stat.Mean(values[center-half:center+half+1], nil)
		out[center] = &avg
	}
	return out
}

// BuildAnnualRecords turns sorted observations into annual rows carrying the
// centered 5-year moving average
func BuildAnnualRecords(obs []Observation) []model.AnnualRecord {
	anomalies := make([]float64, len(obs))
	for i, o := range obs {
		anomalies[i] = o.Anomaly
	}
	moving := CenteredMovingAverage(anomalies, MovingAverageWindow)

	records := make([]model.AnnualRecord, len(obs))
	for i, o := range obs {
		records[i] = model.AnnualRecord{
			Year:             o.Year,
			Anomaly:          o.Anomaly,
			MovingAverage5yr: moving[i],
		}
	}
	return records
}

// RoundDataset applies Round4 to every floating output of the dataset
func RoundDataset(ds model.Dataset) model.Dataset {
	annual := make([]model.AnnualRecord, len(ds.Annual))
	for i, r := range ds.Annual {
		annual[i] = model.AnnualRecord{
			Year:             r.Year,
			Anomaly:          Round4(r.Anomaly),
			MovingAverage5yr: round4Ptr(r.MovingAverage5yr),
		}
	}

	decades := make([]model.DecadeAverage, len(ds.Decades))
	for i, d := range ds.Decades {
		d.Average = Round4(d.Average)
		decades[i] = d
	}

	t := ds.Trends
	t.TrendPerDecade = Round4(t.TrendPerDecade)
	t.WarmingSincePreindustrial = round4Ptr(t.WarmingSincePreindustrial)
	t.AverageAnomalies = model.AverageAnomalies{
		PreIndustrial:      round4Ptr(t.AverageAnomalies.PreIndustrial),
		Early20thCentury:   round4Ptr(t.AverageAnomalies.Early20thCentury),
		Late20thCentury:    round4Ptr(t.AverageAnomalies.Late20thCentury),
		TwentyFirstCentury: round4Ptr(t.AverageAnomalies.TwentyFirstCentury),
	}
	t.Extremes.WarmestYear.Anomaly = Round4(t.Extremes.WarmestYear.Anomaly)
	t.Extremes.ColdestYear.Anomaly = Round4(t.Extremes.ColdestYear.Anomaly)

	return model.Dataset{Annual: annual, Decades: decades, Trends: t}
}
