package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnifiedSeries(t *testing.T) {
	start := time.Date(2026, 1, 1, 15, 30, 0, 0, time.UTC)
	end := time.Date(2026, 1, 5, 3, 0, 0, 0, time.UTC)

	s := NewUnifiedSeries(start, end)
	assert.Equal(t, 5, s.Len(), "inclusive daily index")
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), s.Dates()[0], "truncated to midnight")
}

func TestSetColumnAlignment(t *testing.T) {
	s := NewUnifiedSeries(
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC),
	)

	s.SetColumn("x", map[time.Time]float64{
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC): 20,
		// Out-of-range day is ignored.
		time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC): 99,
	})

	col, ok := s.Column("x")
	require.True(t, ok)
	require.Len(t, col, 4)
	assert.True(t, math.IsNaN(col[0]))
	assert.InDelta(t, 20, col[1], 1e-9)
	assert.True(t, math.IsNaN(col[2]))

	assert.True(t, IsMissing(s.At("x", 0)))
	assert.True(t, IsMissing(s.At("x", 100)), "out of range read is missing")
	assert.True(t, IsMissing(s.At("ghost", 0)), "unknown column read is missing")
}

func TestColumnOrderIsInsertionOrder(t *testing.T) {
	s := NewUnifiedSeries(
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	)

	s.SetColumnValues("zulu", []float64{1, 2})
	s.SetColumnValues("alpha", []float64{3, 4})
	// Replacing keeps the original position.
	s.SetColumnValues("zulu", []float64{5, 6})

	assert.Equal(t, []string{"zulu", "alpha"}, s.ColumnNames())
	assert.InDelta(t, 5, s.At("zulu", 0), 1e-9)
}

func TestSetColumnValuesPadding(t *testing.T) {
	s := NewUnifiedSeries(
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
	)

	s.SetColumnValues("short", []float64{7})
	col, _ := s.Column("short")
	assert.InDelta(t, 7, col[0], 1e-9)
	assert.True(t, math.IsNaN(col[1]))
	assert.True(t, math.IsNaN(col[2]))
}
