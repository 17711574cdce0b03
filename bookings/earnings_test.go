package bookings

import (
	"testing"
	"time"

	"harvestharmony/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeEarningsTotal(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{Amount: 100, Status: models.BookingAccepted, Date: "2025-03-15"},
		{Amount: 50, Status: models.BookingPending, Date: "2025-03-15"},
		{Amount: 200, Status: models.BookingCompleted, Date: "2025-03-15"},
	}

	summary := ComputeEarnings(bookings, now)
	assert.Equal(t, 300.0, summary.Total)
}

// The today bucket counts accepted bookings only; a completed booking dated
// today does not appear in it. Long-standing production behavior.
func TestComputeEarningsTodayExcludesCompleted(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{Amount: 100, Status: models.BookingAccepted, Date: "2025-03-15"},
		{Amount: 200, Status: models.BookingCompleted, Date: "2025-03-15"},
	}

	summary := ComputeEarnings(bookings, now)
	assert.Equal(t, 100.0, summary.Today)
	assert.Equal(t, 300.0, summary.ThisMonth)
	assert.Equal(t, 300.0, summary.Total)
}

func TestComputeEarningsMonthBoundary(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{Amount: 100, Status: models.BookingAccepted, Date: "2025-03-01"},
		{Amount: 400, Status: models.BookingCompleted, Date: "2025-02-28"},
		{Amount: 250, Status: models.BookingCompleted, Date: "2024-03-15"},
	}

	summary := ComputeEarnings(bookings, now)
	assert.Equal(t, 0.0, summary.Today)
	assert.Equal(t, 100.0, summary.ThisMonth)
	assert.Equal(t, 750.0, summary.Total)
}

func TestComputeEarningsEmpty(t *testing.T) {
	summary := ComputeEarnings(nil, time.Now())
	assert.Zero(t, summary.Today)
	assert.Zero(t, summary.ThisMonth)
	assert.Zero(t, summary.Total)
}

func TestComputeEarningsSkipsRejectedAndCancelled(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{Amount: 100, Status: models.BookingRejected, Date: "2025-03-15"},
		{Amount: 100, Status: models.BookingCancelled, Date: "2025-03-15"},
	}

	summary := ComputeEarnings(bookings, now)
	assert.Zero(t, summary.Total)
}
