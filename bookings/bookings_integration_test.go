//go:build integration

package bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"harvestharmony/db"
	"harvestharmony/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Needs a running mongod (MONGODB_URI, default localhost); run with
// -tags integration.
func setupStore(t *testing.T) {
	t.Helper()

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { client.Disconnect(context.Background()) })

	db.Init(client, "harvestharmony_test")
	require.NoError(t, db.EnsureIndexes(ctx))

	_, err = db.BookingsCollection.DeleteMany(ctx, bson.M{})
	require.NoError(t, err)
	_, err = db.MachinesCollection.DeleteMany(ctx, bson.M{})
	require.NoError(t, err)
}

// The submitted status is overridden; every booking enters the lifecycle as
// pending regardless of what the client sends.
const samplePayload = `{"farmerName":"Ramesh Patel","phone":"9876543210","location":"Karnal, Haryana","date":"2025-03-20","startTime":"08:00","endTime":"12:00","duration":"4 hours","machineId":9001,"machineName":"Test Tractor","crop":"Wheat","amount":4800,"status":"completed"}`

func createBooking(t *testing.T) models.Booking {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(samplePayload))
	CreateBooking(rec, req, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &booking))
	return booking
}

func TestCreateBookingStoredPendingWithUniqueID(t *testing.T) {
	setupStore(t)

	first := createBooking(t)
	assert.Equal(t, models.BookingPending, first.Status)
	assert.True(t, strings.HasPrefix(first.BookingID, "BK"))

	var stored models.Booking
	err := db.BookingsCollection.FindOne(context.Background(),
		bson.M{"bookingId": first.BookingID}).Decode(&stored)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, stored.Status)

	second := createBooking(t)
	assert.NotEqual(t, first.BookingID, second.BookingID)
}

func patchStatus(t *testing.T, bookingID, status string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/"+bookingID+"/status",
		strings.NewReader(`{"status":"`+status+`"}`))
	UpdateStatus(rec, req, httprouter.Params{{Key: "id", Value: bookingID}})
	return rec
}

func TestUpdateStatusAcceptedIncrementsTotalBookings(t *testing.T) {
	setupStore(t)

	_, err := db.MachinesCollection.InsertOne(context.Background(), models.Machine{
		ID: 9001, Name: "Test Tractor", Operator: "Operator", Type: models.MachineTypeTractor,
		PricePerHour: 1200, Crop: "Wheat", Location: "Karnal", Available: true,
		Reviews: []models.Review{},
	})
	require.NoError(t, err)

	booking := createBooking(t)

	rec := patchStatus(t, booking.BookingID, models.BookingAccepted)
	require.Equal(t, http.StatusOK, rec.Code)

	var machine models.Machine
	err = db.MachinesCollection.FindOne(context.Background(), bson.M{"id": 9001}).Decode(&machine)
	require.NoError(t, err)
	assert.Equal(t, 1, machine.TotalBookings)
}

func TestUpdateStatusRejectsSkippedAcceptance(t *testing.T) {
	setupStore(t)

	booking := createBooking(t)

	rec := patchStatus(t, booking.BookingID, models.BookingCompleted)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot move booking")

	var stored models.Booking
	err := db.BookingsCollection.FindOne(context.Background(),
		bson.M{"bookingId": booking.BookingID}).Decode(&stored)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, stored.Status)
}
