package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewLine(uuid.New(), uuid.New(), 0)
		assert.Error(t, err)
	})

	t.Run("creates line", func(t *testing.T) {
		line, err := NewLine(uuid.New(), uuid.New(), 3)
		require.NoError(t, err)
		assert.Equal(t, 3, line.Quantity)
	})
}

func TestClampToStock(t *testing.T) {
	t.Run("caps quantity above stock", func(t *testing.T) {
		line, err := NewLine(uuid.New(), uuid.New(), 10)
		require.NoError(t, err)

		clamped := line.ClampToStock(4)
		assert.True(t, clamped)
		assert.Equal(t, 4, line.Quantity)
	})

	t.Run("leaves quantity within stock", func(t *testing.T) {
		line, err := NewLine(uuid.New(), uuid.New(), 3)
		require.NoError(t, err)

		clamped := line.ClampToStock(5)
		assert.False(t, clamped)
		assert.Equal(t, 3, line.Quantity)
	})

	t.Run("treats negative stock as zero", func(t *testing.T) {
		line, err := NewLine(uuid.New(), uuid.New(), 3)
		require.NoError(t, err)

		line.ClampToStock(-2)
		assert.Equal(t, 0, line.Quantity)
	})
}
