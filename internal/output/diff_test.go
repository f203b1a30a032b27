package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderDiff(t *testing.T) {
	d := NewOrderDiff(
		[]string{"a.js", "b.js", "c.md"},
		[]string{"b.js", "a.js", "c.md"},
	)
	assert.True(t, d.HasChanges())
	assert.Equal(t, []string{"b.js", "a.js"}, d.Moved)

	same := NewOrderDiff([]string{"a.js"}, []string{"a.js"})
	assert.False(t, same.HasChanges())
	assert.Empty(t, same.Moved)
}

func TestOrderDiff_Render(t *testing.T) {
	t.Run("renders no changes message", func(t *testing.T) {
		out, err := NewOrderDiff([]string{"a.js"}, []string{"a.js"}).Render(false)
		require.NoError(t, err)
		assert.Equal(t, "No changes detected.", out)
	})

	t.Run("renders moved files", func(t *testing.T) {
		out, err := NewOrderDiff(
			[]string{"app.js", "lib.js", "core.js"},
			[]string{"core.js", "lib.js", "app.js"},
		).Render(false)
		require.NoError(t, err)
		assert.Contains(t, out, "order")
		assert.Contains(t, out, "Summary: 2 moved")
	})

	t.Run("renders collapsed duplicates", func(t *testing.T) {
		d := NewOrderDiff([]string{"a.js", "a.js"}, []string{"a.js"})
		assert.True(t, d.HasChanges())

		out, err := d.Render(false)
		require.NoError(t, err)
		assert.Contains(t, out, "Summary: 0 moved")
	})
}

func TestItoa(t *testing.T) {
	assert.Equal(t, "0", itoa(0))
	assert.Equal(t, "42", itoa(42))
	assert.Equal(t, "-7", itoa(-7))
}
