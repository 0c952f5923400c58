//go:build griddebug

package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrue(t *testing.T) {
	require.True(t, Enabled)
	require.NotPanics(t, func() { True(true, "never") })
	require.PanicsWithValue(t, "contract violation: x (3) < 2", func() {
		True(false, "x (%d) < %d", 3, 2)
	})
}
