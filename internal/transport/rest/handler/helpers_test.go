package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	t.Run("absent means unbounded", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/orgs/o1/analytics/metrics", nil)
		rng, err := parseDateRange(r)
		require.NoError(t, err)
		assert.Nil(t, rng)
	})

	t.Run("plain ISO dates", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/x?from=2024-01-01&to=2024-01-31", nil)
		rng, err := parseDateRange(r)
		require.NoError(t, err)
		require.NotNil(t, rng)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), rng.Start)
		assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), rng.End)
	})

	t.Run("RFC3339 timestamps", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/x?from=2024-01-01T08:00:00Z&to=2024-01-02T08:00:00Z", nil)
		rng, err := parseDateRange(r)
		require.NoError(t, err)
		require.NotNil(t, rng)
		assert.Equal(t, 24*time.Hour, rng.End.Sub(rng.Start))
	})

	t.Run("half a range is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/x?from=2024-01-01", nil)
		_, err := parseDateRange(r)
		require.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/x?from=yesterday&to=today", nil)
		_, err := parseDateRange(r)
		require.Error(t, err)
	})
}
