package language_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AGAPIA/VirtualOrganisms/core"
	"github.com/AGAPIA/VirtualOrganisms/language"
)

func TestIsRowCompliant(t *testing.T) {
	o := language.NewOracle()

	assert.True(t, o.IsRowCompliant([]byte{core.Empty, core.Empty}), "fully empty row is compliant")
	assert.True(t, o.IsRowCompliant([]byte{'4', '4', '2', 'e'}))
	assert.True(t, o.IsRowCompliant([]byte{core.Empty, '4', '7', 'e', core.Empty}))
	assert.False(t, o.IsRowCompliant([]byte{'4', 'e', '4'}), "e before pivot violates 4*(2|7)e*")
	assert.False(t, o.IsRowCompliant([]byte{'4', core.Empty, '2'}), "gap inside occupied span")
}

func TestIsColCompliant(t *testing.T) {
	o := language.NewOracle()

	assert.True(t, o.IsColCompliant([]byte{'7', '7', '4', '2'}))
	assert.True(t, o.IsColCompliant([]byte{'7', 'e', '2', '2'}))
	assert.False(t, o.IsColCompliant([]byte{'2', '7'}))
}

func TestGenerateRowProducesCompliantSpan(t *testing.T) {
	o := language.NewOracle()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		row, err := o.GenerateRow(rng, 3, 7, 20, 7)
		require.NoError(t, err)
		assert.True(t, o.IsRowCompliant(row))
		assert.NotEqual(t, byte(core.Empty), row[3], "pivot index must be occupied")
	}
}

func TestGenerateColProducesCompliantSpan(t *testing.T) {
	o := language.NewOracle()
	rng := rand.New(rand.NewSource(2))

	col, err := o.GenerateCol(rng, 0, 5, 20, 5)
	require.NoError(t, err)
	assert.True(t, o.IsColCompliant(col))
}

func TestGenerateRowRejectsOutOfRangePivot(t *testing.T) {
	o := language.NewOracle()
	rng := rand.New(rand.NewSource(3))
	_, err := o.GenerateRow(rng, 9, 5, 5, 5)
	assert.ErrorIs(t, err, language.ErrEmptySequence)
}
