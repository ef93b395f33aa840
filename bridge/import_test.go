package bridge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/node"
)

func writeLibraryFile(t *testing.T, networks map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.cnnd")
	out, err := json.Marshal(cnndFile{Networks: networks})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, out, 0o644))
	return path
}

func TestLoadLibrary_StagesNetworks(t *testing.T) {
	b, reg, _ := newTestBridge(t)
	path := writeLibraryFile(t, map[string]string{
		"ball": "shape1 = sphere { radius: 2 }\noutput shape1",
	})

	require.NoError(t, b.LoadLibrary(path, reg))
	require.True(t, b.IsLibraryLoaded())
	require.Equal(t, []string{"ball"}, b.AvailableLibraryNetworks())
}

// stageLibraryNetwork builds a single-node network whose node's
// NodeTypeName is set directly to refName, simulating a node that
// instantiates another library network as its type without requiring
// that network type to be registered in the shared registry (custom
// network types are resolved at evaluation time, not parse time).
func stageLibraryNetwork(t *testing.T, reg *node.Registry, name, refName string) *node.NodeNetwork {
	t.Helper()
	net := node.NewNetwork(reg, name)
	id, err := net.AddNode("sphere", 0, 0)
	require.NoError(t, err)
	n, ok := net.Node(id)
	require.True(t, ok)
	n.NodeTypeName = refName
	require.NoError(t, net.SetReturnNode(id))
	return net
}

func TestImportNetworks_RenamesCrossLibraryReference(t *testing.T) {
	b, reg, _ := newTestBridge(t)
	b.importMgr.library = map[string]*node.NodeNetwork{
		"ball":  stageLibraryNetwork(t, reg, "ball", "sphere"),
		"scene": stageLibraryNetwork(t, reg, "scene", "ball"),
	}

	imported, err := b.ImportNetworks([]string{"scene"}, "lib_")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"lib_ball", "lib_scene"}, imported)

	sceneNet, err := b.Network("lib_scene")
	require.NoError(t, err)
	ids := sceneNet.NodeIDs()
	require.Len(t, ids, 1)
	n, ok := sceneNet.Node(ids[0])
	require.True(t, ok)
	require.Equal(t, "lib_ball", n.NodeTypeName)

	require.False(t, b.IsLibraryLoaded())
}

func TestComputeTransitiveDependencies_ReturnsDependencyClosure(t *testing.T) {
	b, reg, _ := newTestBridge(t)
	b.importMgr.library = map[string]*node.NodeNetwork{
		"base": stageLibraryNetwork(t, reg, "base", "sphere"),
		"mid":  stageLibraryNetwork(t, reg, "mid", "base"),
		"top":  stageLibraryNetwork(t, reg, "top", "mid"),
	}

	deps, err := b.ComputeTransitiveDependencies([]string{"top"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"base", "mid", "top"}, deps)
}

func TestComputeTransitiveDependencies_ErrorsWithNoLibraryLoaded(t *testing.T) {
	b, _, _ := newTestBridge(t)
	_, err := b.ComputeTransitiveDependencies([]string{"anything"})
	require.ErrorIs(t, err, ErrNoLibraryLoaded)
}

func TestClearLibrary_DiscardsStagedNetworks(t *testing.T) {
	b, reg, _ := newTestBridge(t)
	path := writeLibraryFile(t, map[string]string{
		"ball": "shape1 = sphere { radius: 2 }\noutput shape1",
	})
	require.NoError(t, b.LoadLibrary(path, reg))
	b.ClearLibrary()
	require.False(t, b.IsLibraryLoaded())
}

func TestPreviewImportNames_AppliesPrefixWithoutMutatingState(t *testing.T) {
	names := PreviewImportNames([]string{"a", "b"}, "lib_")
	require.Equal(t, []string{"lib_a", "lib_b"}, names)
}
