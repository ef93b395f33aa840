package bridge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/catalog"
)

func TestSaveAndLoadDesign_RoundTripsWiringAndData(t *testing.T) {
	b, _, _ := newTestBridge(t)
	_, err := b.CreateNetwork("main")
	require.NoError(t, err)

	sphereID, err := b.AddNode("main", "sphere", 10, 20)
	require.NoError(t, err)
	net, err := b.Network("main")
	require.NoError(t, err)
	n, ok := net.Node(sphereID)
	require.True(t, ok)
	n.Data.(*catalog.SphereData).Radius = 5.0
	require.NoError(t, b.SetCustomName("main", sphereID, "ball"))
	require.NoError(t, net.SetReturnNode(sphereID))
	require.NoError(t, net.SetDisplayed(sphereID, true))

	path := filepath.Join(t.TempDir(), "design.json")
	require.NoError(t, b.SaveDesign(path))

	b2, reg2, ev2 := newTestBridge(t)
	_ = reg2
	_ = ev2
	require.NoError(t, b2.LoadDesign(path))

	net2, err := b2.Network("main")
	require.NoError(t, err)
	ids := net2.NodeIDs()
	require.Len(t, ids, 1)
	n2, ok := net2.Node(ids[0])
	require.True(t, ok)
	require.Equal(t, "sphere", n2.NodeTypeName)
	require.Equal(t, 10.0, n2.PositionX)
	require.Equal(t, 20.0, n2.PositionY)
	require.NotNil(t, n2.CustomName)
	require.Equal(t, "ball", *n2.CustomName)
	require.Equal(t, 5.0, n2.Data.(*catalog.SphereData).Radius)

	retID, ok := net2.ReturnNode()
	require.True(t, ok)
	require.Equal(t, ids[0], retID)
	require.Contains(t, net2.DisplayedNodes(), ids[0])
}

func TestLoadDesign_RejectsNewerVersion(t *testing.T) {
	b, _, _ := newTestBridge(t)
	path := filepath.Join(t.TempDir(), "future.json")
	require.NoError(t, writeTestDesignFile(path, currentDesignVersion+1))

	err := b.LoadDesign(path)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func writeTestDesignFile(path string, version int) error {
	df := DesignFile{Version: version, DocumentID: "test-doc"}
	out, err := json.MarshalIndent(df, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
