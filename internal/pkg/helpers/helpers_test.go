package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

func TestBuildSetMap(t *testing.T) {
	allowed := NewColumnSet("name", "phone")

	setMap, err := BuildSetMap(map[string]interface{}{"name": "Asha"}, allowed)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "Asha"}, setMap)

	_, err = BuildSetMap(map[string]interface{}{"name": "Asha", "reg_no = 1; --": 5}, allowed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = BuildSetMap(map[string]interface{}{}, allowed)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestParseDateAndMonth(t *testing.T) {
	d, err := ParseDate("2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, 31, d.Day())

	_, err = ParseDate("31/03/2025")
	assert.Error(t, err)

	empty, err := ParseOptionalDate("  ")
	require.NoError(t, err)
	assert.Nil(t, empty)

	m, err := ParseMonth("2025-4")
	assert.Error(t, err)
	assert.Empty(t, m)

	m, err = ParseMonth("2025-04")
	require.NoError(t, err)
	assert.Equal(t, "2025-04", m)
}

func TestPagination(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, uint64(20), limit)

	offset, limit = CalculateOffsetLimit(0, 0)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, uint64(DefaultPageSize), limit)

	info := NewPaginationInfo(101, 9, 20)
	assert.Equal(t, 6, info.TotalPages)
	assert.Equal(t, 6, info.CurrentPage)

	info = NewPaginationInfo(0, 1, 20)
	assert.Equal(t, 1, info.TotalPages)
}
