package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ------------------- Ingestion -------------------

// ErrEmptyInput is returned when the input holds no data rows
var ErrEmptyInput = errors.New("input contains no data rows")

// ParseError reports the first malformed row of an input file
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Observation is one parsed input row. Only year and anomaly are consumed;
// the error-variance columns are ignored.
type Observation struct {
	Year    int
	Anomaly float64
}

// IngestFile reads the whitespace-delimited anomaly table at path
func IngestFile(path string) ([]Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	obs, err := ParseSeries(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return obs, nil
}

// ParseSeries parses rows of "year anomaly [unused columns...]" and returns
// them sorted by year. Blank lines are skipped; any other bad row aborts.
func ParseSeries(r io.Reader) ([]Observation, error) {
	scanner := bufio.NewScanner(r)
	seen := make(map[int]int)
	var obs []Observation

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, &ParseError{Line: lineNo, Text: text, Reason: "expected at least 2 columns"}
		}

		year, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: text, Reason: "invalid year"}
		}
		anomaly, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || math.IsNaN(anomaly) || math.IsInf(anomaly, 0) {
			return nil, &ParseError{Line: lineNo, Text: text, Reason: "invalid anomaly"}
		}
		if first, dup := seen[year]; dup {
			return nil, &ParseError{Line: lineNo, Text: text, Reason: fmt.Sprintf("duplicate year (first seen on line %d)", first)}
		}
		seen[year] = lineNo

		obs = append(obs, Observation{Year: year, Anomaly: anomaly})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	if len(obs) == 0 {
		return nil, ErrEmptyInput
	}

	sortByYear(obs)
	return obs, nil
}

func sortByYear(obs []Observation) {
	sort.Slice(obs, func(i, j int) bool { return obs[i].Year < obs[j].Year })
}

// sortedByYear returns a year-sorted copy, leaving obs untouched
func sortedByYear(obs []Observation) []Observation {
	out := make([]Observation, len(obs))
	copy(out, obs)
	sortByYear(out)
	return out
}
