package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/keel3d/engine/internal/core/event"
	"github.com/keel3d/engine/internal/logging"
	"github.com/keel3d/engine/internal/resource"
	"github.com/keel3d/engine/internal/scene"
	"github.com/keel3d/engine/internal/scripting"
)

const spinnerClass = `
keel.register_class("spinner", {
	defaults = { speed = 1.0 },
	resources = { "mesh" },
})
`

func newTestContext(t *testing.T) *Context {
	t.Helper()
	engine, err := scripting.NewEngine("", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(engine.Close)
	require.NoError(t, engine.DoString(spinnerClass))

	log := logging.NewNop()
	return &Context{
		Scene:         scene.NewScene(),
		Serialization: engine.SerializationContext(),
		Resources:     resource.NewManager(t.TempDir(), log),
		Bus:           event.NewBus(),
		Log:           log,
	}
}

// writeAsset creates an empty file under the context's asset root so
// RequestResource can resolve it.
func writeAsset(t *testing.T, ctx *Context, rel string) {
	t.Helper()
	full := filepath.Join(ctx.Resources.Root(), rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, nil, 0o644))
}

// spyCommand records lifecycle calls for stack discipline tests.
type spyCommand struct {
	executes  int
	reverts   int
	finalizes int
}

func (c *spyCommand) Name(*Context) string { return "Spy" }
func (c *spyCommand) Execute(*Context)     { c.executes++ }
func (c *spyCommand) Revert(*Context)      { c.reverts++ }
func (c *spyCommand) Finalize(*Context)    { c.finalizes++ }
