package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tempushq/timesheet_backend/internal/core/services"
)

func TestLocalDayKey(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)

	t.Run("utc timestamp in utc location", func(t *testing.T) {
		ts := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
		assert.Equal(t, "2026-03-05", services.LocalDayKey(ts, time.UTC))
	})

	t.Run("late utc evening rolls into the next local day", func(t *testing.T) {
		ts := time.Date(2026, 3, 4, 20, 0, 0, 0, time.UTC)
		assert.Equal(t, "2026-03-05", services.LocalDayKey(ts, ist))
	})

	t.Run("utc midnight stays on its local day", func(t *testing.T) {
		ts := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "2026-03-05", services.LocalDayKey(ts, ist))
	})
}
