package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemMatrixSolve(t *testing.T) {
	m, err := NewSystemMatrix(2)
	require.NoError(t, err)
	defer m.Destroy()
	m.SetupElements()

	// | 2 1 | x = |  5 |
	// | 1 3 |     | 10 |
	require.NoError(t, m.AddElement(1, 1, 2))
	require.NoError(t, m.AddElement(1, 2, 1))
	require.NoError(t, m.AddElement(2, 1, 1))
	require.NoError(t, m.AddElement(2, 2, 3))
	require.NoError(t, m.AddRHS(1, 5))
	require.NoError(t, m.AddRHS(2, 10))

	require.NoError(t, m.Solve())

	sol := m.Solution()
	assert.InDelta(t, 1.0, sol[1], 1e-12)
	assert.InDelta(t, 3.0, sol[2], 1e-12)
}

func TestSystemMatrixClearAndResolve(t *testing.T) {
	m, err := NewSystemMatrix(1)
	require.NoError(t, err)
	defer m.Destroy()
	m.SetupElements()

	require.NoError(t, m.AddElement(1, 1, 4))
	require.NoError(t, m.AddRHS(1, 8))
	require.NoError(t, m.Solve())
	assert.InDelta(t, 2.0, m.Solution()[1], 1e-12)

	m.Clear()
	require.NoError(t, m.AddElement(1, 1, 5))
	require.NoError(t, m.AddRHS(1, 5))
	require.NoError(t, m.Solve())
	assert.InDelta(t, 1.0, m.Solution()[1], 1e-12)
}

func TestSystemMatrixBounds(t *testing.T) {
	m, err := NewSystemMatrix(2)
	require.NoError(t, err)
	defer m.Destroy()

	assert.Error(t, m.AddElement(0, 1, 1))
	assert.Error(t, m.AddElement(1, 3, 1))
	assert.Error(t, m.AddRHS(3, 1))
}
