package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const (
	runsDirName    = "runs"
	currentLink    = "current"
	currentLinkTmp = ".current.tmp"
)

// OutputManager handles run directory layout and atomic publishing of
// artifact sets:
//
//	<base>/runs/<runID>/...   one directory per pipeline run
//	<base>/current            symlink to the published run
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// RunDir returns the directory path of a run without creating it
func (om *OutputManager) RunDir(runID string) string {
	return filepath.Join(om.BaseOutputDir, runsDirName, filepath.Base(runID))
}

// CreateRunDir creates a fresh directory for a run's outputs
func (om *OutputManager) CreateRunDir(runID string) (string, error) {
	runDir := om.RunDir(runID)
	if err := os.MkdirAll(filepath.Dir(runDir), 0755); err != nil {
		return "", fmt.Errorf("failed to create runs directory: %w", err)
	}
	if err := os.Mkdir(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run output directory: %w", err)
	}
	return runDir, nil
}

// DiscardRun removes a run directory that was never published
func (om *OutputManager) DiscardRun(runID string) error {
	return os.RemoveAll(om.RunDir(runID))
}

// Publish points the current link at runID. The link is replaced with a
// rename, so readers see either the old run or the new one.
func (om *OutputManager) Publish(runID string) error {
	if _, err := os.Stat(om.RunDir(runID)); err != nil {
		return fmt.Errorf("run %s not found: %w", runID, err)
	}

	tmp := filepath.Join(om.BaseOutputDir, currentLinkTmp)
	_ = os.Remove(tmp)

	target := filepath.Join(runsDirName, filepath.Base(runID))
	if err := os.Symlink(target, tmp); err != nil {
		return fmt.Errorf("failed to create publish link: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(om.BaseOutputDir, currentLink)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to publish run %s: %w", runID, err)
	}
	return nil
}

// CurrentRunDir resolves the published run directory once, so a reader
// does not mix files from two runs if a publish happens mid-read
func (om *OutputManager) CurrentRunDir() (string, error) {
	target, err := os.Readlink(filepath.Join(om.BaseOutputDir, currentLink))
	if err != nil {
		return "", fmt.Errorf("no published run in %s: %w", om.BaseOutputDir, err)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(om.BaseOutputDir, target)
	}
	return target, nil
}

// CurrentRunID returns the id of the published run
func (om *OutputManager) CurrentRunID() (string, error) {
	dir, err := om.CurrentRunDir()
	if err != nil {
		return "", err
	}
	return filepath.Base(dir), nil
}

// PruneRuns deletes the oldest run directories so that at most keep remain.
// The published run is never deleted.
func (om *OutputManager) PruneRuns(keep int) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(om.BaseOutputDir, runsDirName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	type run struct {
		id      string
		modUnix int64
	}
	var runs []run
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run{id: e.Name(), modUnix: info.ModTime().UnixNano()})
	}
	if keep < 1 {
		keep = 1
	}
	if len(runs) <= keep {
		return nil, nil
	}

	// newest first
	sort.Slice(runs, func(i, j int) bool { return runs[i].modUnix > runs[j].modUnix })

	current, _ := om.CurrentRunID()
	var removed []string
	kept := 0
	for _, r := range runs {
		if r.id == current || kept < keep {
			kept++
			continue
		}
		if err := om.DiscardRun(r.id); err != nil {
			return removed, fmt.Errorf("failed to prune run %s: %w", r.id, err)
		}
		removed = append(removed, r.id)
	}
	return removed, nil
}

// EnsureOutputDirExists ensures the base output directory exists
func (om *OutputManager) EnsureOutputDirExists() error {
	return os.MkdirAll(om.BaseOutputDir, 0755)
}
