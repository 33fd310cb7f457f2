package pipeline

import (
	"climate-pipeline/internal/model"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"golang.org/x/sync/errgroup"
)

// Artifact file names inside a run directory
const (
	AnnualFile        = "annual_temperatures.csv"
	AnnualParquetFile = "annual_temperatures.parquet"
	TrendsFile        = "temperature_trends.json"
	DecadesFile       = "decadal_averages.json"
	ManifestFile      = "manifest.json"
)

var annualHeader = []string{"year", "anomaly", "movingAverage5yr"}

// ErrIncompleteArtifacts is returned when a run directory lacks an artifact
var ErrIncompleteArtifacts = errors.New("incomplete artifact set")

// ParquetAnnualRow is the parquet layout of an annual record
type ParquetAnnualRow struct {
	Year             int32    `parquet:"year"`
	Anomaly          float64  `parquet:"anomaly"`
	MovingAverage5yr *float64 `parquet:"moving_average_5yr,optional"`
}

// ExportOptions controls which artifacts are written
type ExportOptions struct {
	Parquet bool
}

// ------------------- Export -------------------

// ExportDataset writes the artifact set of one run into dir. The artifacts
// are written concurrently; the manifest is written last, after all of them
// succeeded. manifest.Files is filled with the written file names.
func ExportDataset(ctx context.Context, dir string, ds model.Dataset, manifest *model.RunManifest, opts ExportOptions) ([]model.ExportResult, error) {
	writers := []func() (model.ExportResult, error){
		func() (model.ExportResult, error) { return exportAnnualCSV(filepath.Join(dir, AnnualFile), ds.Annual) },
		func() (model.ExportResult, error) { return exportJSON(filepath.Join(dir, TrendsFile), ds.Trends, 1) },
		func() (model.ExportResult, error) {
			return exportJSON(filepath.Join(dir, DecadesFile), ds.Decades, len(ds.Decades))
		},
	}
	if opts.Parquet {
		writers = append(writers, func() (model.ExportResult, error) {
			return exportAnnualParquet(filepath.Join(dir, AnnualParquetFile), ds.Annual)
		})
	}

	results := make([]model.ExportResult, len(writers))
	g, gctx := errgroup.WithContext(ctx)
	for i, write := range writers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := write()
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	manifest.Files = manifest.Files[:0]
	for _, res := range results {
		manifest.Files = append(manifest.Files, filepath.Base(res.Path))
	}
	if _, err := exportJSON(filepath.Join(dir, ManifestFile), manifest, 1); err != nil {
		return nil, err
	}
	return results, nil
}

func exportAnnualCSV(path string, records []model.AnnualRecord) (model.ExportResult, error) {
	file, err := os.Create(path)
	if err != nil {
		return model.ExportResult{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(annualHeader); err != nil {
		return model.ExportResult{}, fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		moving := ""
		if r.MovingAverage5yr != nil {
			moving = formatFloat(*r.MovingAverage5yr)
		}
		row := []string{strconv.Itoa(r.Year), formatFloat(r.Anomaly), moving}
		if err := writer.Write(row); err != nil {
			return model.ExportResult{}, fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return model.ExportResult{}, fmt.Errorf("failed to flush csv: %w", err)
	}
	if err := file.Sync(); err != nil {
		return model.ExportResult{}, err
	}

	return model.ExportResult{Type: "csv", Path: path, RecordCount: len(records)}, nil
}

func exportJSON(path string, v any, count int) (model.ExportResult, error) {
	file, err := os.Create(path)
	if err != nil {
		return model.ExportResult{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return model.ExportResult{}, fmt.Errorf("failed to encode JSON: %w", err)
	}
	if err := file.Sync(); err != nil {
		return model.ExportResult{}, err
	}

	return model.ExportResult{Type: "json", Path: path, RecordCount: count}, nil
}

func exportAnnualParquet(path string, records []model.AnnualRecord) (model.ExportResult, error) {
	file, err := os.Create(path)
	if err != nil {
		return model.ExportResult{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	rows := make([]ParquetAnnualRow, len(records))
	for i, r := range records {
		rows[i] = ParquetAnnualRow{
			Year:             int32(r.Year),
			Anomaly:          r.Anomaly,
			MovingAverage5yr: r.MovingAverage5yr,
		}
	}

	writer := parquet.NewGenericWriter[ParquetAnnualRow](file, parquet.Compression(&parquet.Zstd))
	if _, err := writer.Write(rows); err != nil {
		return model.ExportResult{}, fmt.Errorf("write rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return model.ExportResult{}, fmt.Errorf("close parquet writer: %w", err)
	}

	return model.ExportResult{Type: "parquet", Path: path, RecordCount: len(rows)}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ------------------- Read back -------------------

// ReadArtifacts loads a complete artifact set from a run directory
func ReadArtifacts(dir string) (model.Dataset, model.RunManifest, error) {
	var ds model.Dataset
	var manifest model.RunManifest

	for _, name := range []string{AnnualFile, TrendsFile, DecadesFile, ManifestFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return ds, manifest, fmt.Errorf("%w: %s: %v", ErrIncompleteArtifacts, name, err)
		}
	}

	annual, err := readAnnualCSV(filepath.Join(dir, AnnualFile))
	if err != nil {
		return ds, manifest, err
	}
	ds.Annual = annual

	if err := readJSON(filepath.Join(dir, TrendsFile), &ds.Trends); err != nil {
		return ds, manifest, err
	}
	if err := readJSON(filepath.Join(dir, DecadesFile), &ds.Decades); err != nil {
		return ds, manifest, err
	}
	for i := range ds.Decades {
		start, err := strconv.Atoi(trimDecadeSuffix(ds.Decades[i].Decade))
		if err != nil {
			return ds, manifest, fmt.Errorf("invalid decade label %q: %w", ds.Decades[i].Decade, err)
		}
		ds.Decades[i].DecadeStart = start
	}
	if err := readJSON(filepath.Join(dir, ManifestFile), &manifest); err != nil {
		return ds, manifest, err
	}
	return ds, manifest, nil
}

// ReadAnnualParquet reads the optional parquet copy of the annual series
func ReadAnnualParquet(path string) ([]ParquetAnnualRow, error) {
	rows, err := parquet.ReadFile[ParquetAnnualRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}

func readAnnualCSV(path string) ([]model.AnnualRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(annualHeader)
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var records []model.AnnualRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}

		year, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", row[0], err)
		}
		anomaly, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid anomaly %q: %w", row[1], err)
		}
		rec := model.AnnualRecord{Year: year, Anomaly: anomaly}
		if row[2] != "" {
			moving, err := strconv.ParseFloat(row[2], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid moving average %q: %w", row[2], err)
			}
			rec.MovingAverage5yr = &moving
		}
		records = append(records, rec)
	}
	return records, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func trimDecadeSuffix(label string) string {
	if n := len(label); n > 0 && label[n-1] == 's' {
		return label[:n-1]
	}
	return label
}
