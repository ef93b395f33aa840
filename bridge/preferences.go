package bridge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GeometryVisualizationPreferences controls how evaluated geometry is
// rendered in the host's 3D view.
type GeometryVisualizationPreferences struct {
	ShowWireframe  bool    `json:"show_wireframe" yaml:"show_wireframe"`
	ShowNormals    bool    `json:"show_normals" yaml:"show_normals"`
	SurfaceOpacity float64 `json:"surface_opacity" yaml:"surface_opacity"`
}

// NodeDisplayPreferences controls how nodes are drawn in the network
// editor.
type NodeDisplayPreferences struct {
	ShowTypeLabels bool `json:"show_type_labels" yaml:"show_type_labels"`
	ShowNodeIDs    bool `json:"show_node_ids" yaml:"show_node_ids"`
	GridSnap       bool `json:"grid_snap" yaml:"grid_snap"`
}

// AtomicStructureVisualizationPreferences controls how atoms and bonds
// are rendered.
type AtomicStructureVisualizationPreferences struct {
	AtomScale     float64 `json:"atom_scale" yaml:"atom_scale"`
	BondScale     float64 `json:"bond_scale" yaml:"bond_scale"`
	ShowHydrogens bool    `json:"show_hydrogens" yaml:"show_hydrogens"`
	ColorScheme   string  `json:"color_scheme" yaml:"color_scheme"`
}

// BackgroundPreferences controls the 3D viewport's background.
type BackgroundPreferences struct {
	Color    string `json:"color" yaml:"color"`
	ShowGrid bool   `json:"show_grid" yaml:"show_grid"`
	ShowAxes bool   `json:"show_axes" yaml:"show_axes"`
}

// LayoutPreferences controls the default automatic layout algorithm and
// spacing used by the layout package.
type LayoutPreferences struct {
	Algorithm   string  `json:"algorithm" yaml:"algorithm"`
	ColumnWidth float64 `json:"column_width" yaml:"column_width"`
	RowGap      float64 `json:"row_gap" yaml:"row_gap"`
}

// SimulationPreferences controls the parameters passed to an injected
// EnergyMinimizer collaborator.
type SimulationPreferences struct {
	MaxIterations int     `json:"max_iterations" yaml:"max_iterations"`
	ConvergenceEV float64 `json:"convergence_ev" yaml:"convergence_ev"`
}

// Preferences is the host's persisted preferences file: one struct per
// §8 enumerated key. Keys absent from a loaded file keep their default
// value; keys present in a file but not recognised by this build are
// ignored (encoding/json and yaml.v3 both already do this for unknown
// object keys).
type Preferences struct {
	GeometryVisualization        GeometryVisualizationPreferences        `json:"geometry_visualization_preferences" yaml:"geometry_visualization_preferences"`
	NodeDisplay                  NodeDisplayPreferences                  `json:"node_display_preferences" yaml:"node_display_preferences"`
	AtomicStructureVisualization AtomicStructureVisualizationPreferences `json:"atomic_structure_visualization_preferences" yaml:"atomic_structure_visualization_preferences"`
	Background                   BackgroundPreferences                  `json:"background_preferences" yaml:"background_preferences"`
	Layout                       LayoutPreferences                      `json:"layout_preferences" yaml:"layout_preferences"`
	Simulation                   SimulationPreferences                  `json:"simulation_preferences" yaml:"simulation_preferences"`
}

// DefaultPreferences returns the preferences a fresh workspace starts
// with.
func DefaultPreferences() Preferences {
	return Preferences{
		GeometryVisualization: GeometryVisualizationPreferences{
			ShowWireframe:  false,
			ShowNormals:    false,
			SurfaceOpacity: 1.0,
		},
		NodeDisplay: NodeDisplayPreferences{
			ShowTypeLabels: true,
			ShowNodeIDs:    false,
			GridSnap:       true,
		},
		AtomicStructureVisualization: AtomicStructureVisualizationPreferences{
			AtomScale:     0.3,
			BondScale:     0.15,
			ShowHydrogens: true,
			ColorScheme:   "cpk",
		},
		Background: BackgroundPreferences{
			Color:    "#1e1e1e",
			ShowGrid: true,
			ShowAxes: true,
		},
		Layout: LayoutPreferences{
			Algorithm:   "sugiyama",
			ColumnWidth: 210.0,
			RowGap:      30.0,
		},
		Simulation: SimulationPreferences{
			MaxIterations: 500,
			ConvergenceEV: 1e-4,
		},
	}
}

// LoadPreferences loads a preferences file at path, accepting both JSON
// and YAML by extension (.yaml/.yml use yaml.v3, everything else
// encoding/json), starting from DefaultPreferences so any keys the file
// omits keep their default.
func LoadPreferences(path string) (Preferences, error) {
	prefs := DefaultPreferences()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Preferences{}, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(raw, &prefs); err != nil {
			return Preferences{}, err
		}
		return prefs, nil
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}

// SavePreferences writes prefs to path as JSON, or YAML if path ends in
// .yaml/.yml.
func SavePreferences(path string, prefs Preferences) error {
	ext := strings.ToLower(filepath.Ext(path))
	var out []byte
	var err error
	if ext == ".yaml" || ext == ".yml" {
		out, err = yaml.Marshal(prefs)
	} else {
		out, err = json.MarshalIndent(prefs, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
