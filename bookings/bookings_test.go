package bookings

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"harvestharmony/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func validBooking() models.Booking {
	return models.Booking{
		FarmerName:  "Ramesh Patel",
		Phone:       "9876543210",
		Location:    "Karnal, Haryana",
		Date:        "2025-03-20",
		StartTime:   "08:00",
		EndTime:     "12:00",
		Duration:    "4 hours",
		MachineID:   1,
		MachineName: "Rajesh's Cool Tractor 🚜",
		Crop:        "Wheat",
		Amount:      4800,
	}
}

func TestValidateBookingAccepts(t *testing.T) {
	b := validBooking()
	assert.Empty(t, ValidateBooking(&b))
}

func TestValidateBookingRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Booking)
	}{
		{"missing farmer name", func(b *models.Booking) { b.FarmerName = "" }},
		{"missing phone", func(b *models.Booking) { b.Phone = "" }},
		{"missing location", func(b *models.Booking) { b.Location = "" }},
		{"malformed date", func(b *models.Booking) { b.Date = "20-03-2025" }},
		{"missing date", func(b *models.Booking) { b.Date = "" }},
		{"missing times", func(b *models.Booking) { b.StartTime = "" }},
		{"missing machine reference", func(b *models.Booking) { b.MachineID = 0 }},
		{"missing machine name", func(b *models.Booking) { b.MachineName = "" }},
		{"missing crop", func(b *models.Booking) { b.Crop = "" }},
		{"zero amount", func(b *models.Booking) { b.Amount = 0 }},
		{"negative amount", func(b *models.Booking) { b.Amount = -50 }},
		{"bogus payment status", func(b *models.Booking) { b.PaymentStatus = "maybe" }},
		{"bogus field size unit", func(b *models.Booking) { b.FieldSizeUnit = "bigha" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBooking()
			tc.mutate(&b)
			assert.NotEmpty(t, ValidateBooking(&b))
		})
	}
}

// A wrong-typed field would store fine and then fail to decode on every
// subsequent listing read, so the update handler must reject it with 400
// before anything reaches the store.
func TestUpdateBookingRejectsWrongTypedFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"string amount", `{"amount":"abc"}`},
		{"string workCompleted", `{"workCompleted":"yes"}`},
		{"string machineId", `{"machineId":"1"}`},
		{"numeric farmer name", `{"farmerName":42}`},
		{"negative amount", `{"amount":-50}`},
		{"malformed date", `{"date":"20-03-2025"}`},
		{"bogus field size unit", `{"fieldSizeUnit":"bigha"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/bookings/BK1-1", strings.NewReader(tc.body))
			UpdateBooking(rec, req, httprouter.Params{{Key: "id", Value: "BK1-1"}})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGenerateBookingID(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
	id := GenerateBookingID(now, 42)

	assert.Equal(t, fmt.Sprintf("BK%d-42", now.UnixMilli()), id)
	assert.True(t, strings.HasPrefix(id, "BK"))
}

func TestGenerateBookingIDSequenceDistinct(t *testing.T) {
	now := time.Now()
	assert.NotEqual(t, GenerateBookingID(now, 1), GenerateBookingID(now, 2))
}
