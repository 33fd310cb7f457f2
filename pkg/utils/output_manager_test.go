package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRun(t *testing.T, om *OutputManager, id string, age time.Duration) {
	t.Helper()
	dir, err := om.CreateRunDir(id)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte("{}"), 0o644))
	mod := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(dir, mod, mod))
}

func TestOutputManager_PublishSwapsCurrent(t *testing.T) {
	om := NewOutputManager(t.TempDir())
	require.NoError(t, om.EnsureOutputDirExists())

	_, err := om.CurrentRunDir()
	require.Error(t, err, "nothing published yet")

	createRun(t, om, "run-a", time.Hour)
	require.NoError(t, om.Publish("run-a"))
	id, err := om.CurrentRunID()
	require.NoError(t, err)
	assert.Equal(t, "run-a", id)

	createRun(t, om, "run-b", 0)
	require.NoError(t, om.Publish("run-b"))
	dir, err := om.CurrentRunDir()
	require.NoError(t, err)
	assert.Equal(t, om.RunDir("run-b"), dir)
	assert.FileExists(t, filepath.Join(om.BaseOutputDir, "current", "manifest.json"))
	assert.NoFileExists(t, filepath.Join(om.BaseOutputDir, currentLinkTmp))
}

func TestOutputManager_PublishUnknownRun(t *testing.T) {
	om := NewOutputManager(t.TempDir())
	assert.Error(t, om.Publish("ghost"))
}

func TestOutputManager_CreateRunDirTwice(t *testing.T) {
	om := NewOutputManager(t.TempDir())
	_, err := om.CreateRunDir("run-a")
	require.NoError(t, err)
	_, err = om.CreateRunDir("run-a")
	assert.Error(t, err)
}

func TestOutputManager_DiscardRun(t *testing.T) {
	om := NewOutputManager(t.TempDir())
	createRun(t, om, "run-a", 0)

	require.NoError(t, om.DiscardRun("run-a"))
	assert.NoDirExists(t, om.RunDir("run-a"))
}

func TestOutputManager_PruneRuns(t *testing.T) {
	om := NewOutputManager(t.TempDir())
	createRun(t, om, "oldest", 4*time.Hour)
	createRun(t, om, "old", 3*time.Hour)
	createRun(t, om, "published", 2*time.Hour)
	createRun(t, om, "newer", time.Hour)
	createRun(t, om, "newest", 0)
	require.NoError(t, om.Publish("published"))

	removed, err := om.PruneRuns(2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"oldest", "old"}, removed)

	for _, id := range []string{"published", "newer", "newest"} {
		assert.DirExists(t, om.RunDir(id))
	}
}

func TestOutputManager_PruneRunsNothingToDo(t *testing.T) {
	om := NewOutputManager(t.TempDir())

	removed, err := om.PruneRuns(3)
	require.NoError(t, err)
	assert.Empty(t, removed)

	createRun(t, om, "only", 0)
	removed, err = om.PruneRuns(3)
	require.NoError(t, err)
	assert.Empty(t, removed)
}
