package bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"harvestharmony/db"
	"harvestharmony/logger"
	"harvestharmony/metrics"
	"harvestharmony/models"
	"harvestharmony/notify"
	"harvestharmony/rdx"
	"harvestharmony/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Allowed status transitions. pending is the only entry state; rejected,
// completed and cancelled are terminal.
var transitions = map[string][]string{
	models.BookingPending:  {models.BookingAccepted, models.BookingRejected, models.BookingCancelled},
	models.BookingAccepted: {models.BookingCompleted, models.BookingCancelled},
}

// CanTransition reports whether a booking may move from one status to
// another. Writing the current status again is treated as an idempotent
// no-op.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func findAndUpdate(ctx context.Context, bookingID string, update bson.M) (*models.Booking, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking models.Booking
	err := db.BookingsCollection.FindOneAndUpdate(ctx, bson.M{"bookingId": bookingID}, update, opts).Decode(&booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus handles PATCH /api/bookings/:id and /api/bookings/:id/status.
func UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Status        string `json:"status"`
		OperatorNotes string `json:"operatorNotes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.ValidBookingStatus(body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid booking status")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingId": ps.ByName("id")}).Decode(&booking)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	if booking.Status == body.Status {
		utils.RespondWithJSON(w, http.StatusOK, booking)
		return
	}
	if !CanTransition(booking.Status, body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Cannot move booking from "+booking.Status+" to "+body.Status)
		return
	}

	set := bson.M{"status": body.Status, "updatedAt": time.Now()}
	if body.OperatorNotes != "" {
		set["operatorNotes"] = body.OperatorNotes
	}

	updated, err := findAndUpdate(ctx, booking.BookingID, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking status")
		return
	}

	// An accepted booking counts toward the machine's booking tally.
	if body.Status == models.BookingAccepted {
		if _, err := db.MachinesCollection.UpdateOne(ctx,
			bson.M{"id": booking.MachineID},
			bson.M{"$inc": bson.M{"totalBookings": 1}}); err != nil {
			logger.Log.Error().Err(err).Int("machineId", booking.MachineID).Msg("totalBookings increment failed")
		}
		rdx.Invalidate(ctx, rdx.MachinesKey)
	}

	rdx.Invalidate(ctx, rdx.EarningsKey)
	notify.Emit("booking.status", updated)
	metrics.IncTransition(body.Status)

	utils.RespondWithJSON(w, http.StatusOK, updated)
}
