package extension

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testExtension is a minimal Extension implementation for testing.
type testExtension struct {
	name      string
	storeless []string
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }
func (e testExtension) MCPTools() []MCPTool        { return nil }
func (e testExtension) NoStoreCommands() []string  { return e.storeless }

func TestRegister_PanicOnDuplicate(t *testing.T) {
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	assert.Panics(t, func() { Register(testExtension{name: name}) })
}

func TestRegistry_Order(t *testing.T) {
	Register(testExtension{name: "test-order-a"})
	Register(testExtension{name: "test-order-b", storeless: []string{"test-offline"}})

	names := Names()
	ia := indexOf(names, "test-order-a")
	ib := indexOf(names, "test-order-b")
	require.NotEqual(t, -1, ia)
	require.NotEqual(t, -1, ib)
	assert.Less(t, ia, ib, "registration order is preserved")

	assert.Equal(t, "test-order-b", Get("test-order-b").Name())
	assert.Nil(t, Get("test-missing"))
	assert.Contains(t, StorelessCommands(), "test-offline")
	assert.Len(t, All(), len(names))
}

func TestContext(t *testing.T) {
	ctx := NewContext(nil, nil, nil)
	assert.Nil(t, ctx.Service())
	assert.Nil(t, ctx.DB())
	assert.Nil(t, ctx.Config())
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
