package bridge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadPreferences_JSONOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"background_preferences": {"color": "#ffffff"},
		"unknown_future_key": {"anything": true}
	}`), 0o644))

	prefs, err := LoadPreferences(path)
	require.NoError(t, err)
	require.Equal(t, "#ffffff", prefs.Background.Color)
	require.True(t, prefs.Background.ShowGrid)
	require.Equal(t, "sugiyama", prefs.Layout.Algorithm)
}

func TestLoadPreferences_YAMLByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout_preferences:\n  algorithm: topological_grid\n"), 0o644))

	prefs, err := LoadPreferences(path)
	require.NoError(t, err)
	require.Equal(t, "topological_grid", prefs.Layout.Algorithm)
	require.Equal(t, 210.0, prefs.Layout.ColumnWidth)
}

func TestSavePreferences_RoundTripsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	prefs := DefaultPreferences()
	prefs.Simulation.MaxIterations = 1000
	require.NoError(t, SavePreferences(path, prefs))

	loaded, err := LoadPreferences(path)
	require.NoError(t, err)
	require.Equal(t, 1000, loaded.Simulation.MaxIterations)
}

func TestSavePreferences_RoundTripsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yml")
	prefs := DefaultPreferences()
	prefs.Background.Color = "#112233"
	require.NoError(t, SavePreferences(path, prefs))

	loaded, err := LoadPreferences(path)
	require.NoError(t, err)
	require.Equal(t, "#112233", loaded.Background.Color)
}
