package model

// AnnualRecord represents one calendar year of the anomaly series
type AnnualRecord struct {
	Year             int      `json:"year"`
	Anomaly          float64  `json:"anomaly"`
	MovingAverage5yr *float64 `json:"movingAverage5yr"` // nil at the two edges of the series
}

// DecadeAverage is the mean anomaly of one decade bucket
type DecadeAverage struct {
	Decade      string  `json:"decade"` // e.g. "1990s"
	DecadeStart int     `json:"-"`      // floor(year/10)*10, used for ordering
	Average     float64 `json:"average"`
}

// DecadalSeries is the index-aligned shape served by /api/decades
type DecadalSeries struct {
	Decades  []string  `json:"decades"`
	Averages []float64 `json:"averages"`
}

// YearAnomaly pairs a year with its anomaly
type YearAnomaly struct {
	Year    int     `json:"year"`
	Anomaly float64 `json:"anomaly"`
}

// DataRange is the first and last year of the series
type DataRange struct {
	StartYear int `json:"startYear"`
	EndYear   int `json:"endYear"`
}

// AverageAnomalies holds the mean anomaly of the four fixed period bands.
// A band without any years stays nil.
type AverageAnomalies struct {
	PreIndustrial      *float64 `json:"preIndustrial"`      // year < 1900
	Early20thCentury   *float64 `json:"early20thCentury"`   // 1900 <= year < 1950
	Late20thCentury    *float64 `json:"late20thCentury"`    // 1950 <= year < 2000
	TwentyFirstCentury *float64 `json:"twentyFirstCentury"` // year >= 2000
}

// Extremes holds the warmest and coldest years of the series
type Extremes struct {
	WarmestYear YearAnomaly `json:"warmestYear"`
	ColdestYear YearAnomaly `json:"coldestYear"`
}

// TrendSummary is the single dataset-wide summary
type TrendSummary struct {
	DataRange                 DataRange        `json:"dataRange"`
	TrendPerDecade            float64          `json:"trendPerDecade"`
	WarmingSincePreindustrial *float64         `json:"warmingSincePreindustrial"`
	AverageAnomalies          AverageAnomalies `json:"averageAnomalies"`
	Extremes                  Extremes         `json:"extremes"`
}

// Dataset is everything one pipeline run produces
type Dataset struct {
	Annual  []AnnualRecord  `json:"annual"`
	Decades []DecadeAverage `json:"decades"`
	Trends  TrendSummary    `json:"trends"`
}

// NewDecadalSeries converts decade rows into the parallel-array response shape
func NewDecadalSeries(decades []DecadeAverage) DecadalSeries {
	series := DecadalSeries{
		Decades:  make([]string, 0, len(decades)),
		Averages: make([]float64, 0, len(decades)),
	}
	for _, d := range decades {
		series.Decades = append(series.Decades, d.Decade)
		series.Averages = append(series.Averages, d.Average)
	}
	return series
}
