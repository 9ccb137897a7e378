package client

import (
	"testing"
	"testing/fstest"

	"tactics/pkg/client/assets"
	"tactics/pkg/devreload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestReloadMergesPending(t *testing.T) {
	g := NewGame(assets.NewLoader(fstest.MapFS{}, 1))
	g.RequestReload(devreload.ReloadPacket{Seq: 1, Paths: []string{"img/tile.png", "objects.yaml"}})
	g.RequestReload(devreload.ReloadPacket{Seq: 2, Paths: []string{"objects.yaml", "sprites.yaml"}})
	assert.Len(t, g.reloads, 1)

	p := <-g.reloads
	assert.Equal(t, uint64(2), p.Seq, "newest sequence wins")
	assert.Equal(t, []string{"img/tile.png", "objects.yaml", "sprites.yaml"}, p.Paths)
}

func TestUpdateKeepsRunningWhenReloadFails(t *testing.T) {
	g := NewGame(assets.NewLoader(fstest.MapFS{}, 1))
	g.RequestReload(devreload.ReloadPacket{Seq: 1, Paths: []string{"objects.yaml"}})

	require.NoError(t, g.Update())
	assert.Error(t, g.lastErr)
	assert.Len(t, g.reloads, 0)

	// Nothing queued: Update is a no-op.
	require.NoError(t, g.Update())
}
