package app_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/app"
	_ "go.trai.ch/kiln/internal/wiring" // register providers
)

func TestAppWiring(t *testing.T) {
	// Construct the graph from an empty directory so state in the checkout
	// cannot leak in.
	t.Chdir(t.TempDir())

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
}
