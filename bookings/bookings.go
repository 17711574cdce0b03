package bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"harvestharmony/db"
	"harvestharmony/metrics"
	"harvestharmony/models"
	"harvestharmony/notify"
	"harvestharmony/rdx"
	"harvestharmony/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.BookingsCollection.Find(ctx, bson.M{}, db.OptionsFindLatest(0))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookings")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

func GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var booking models.Booking
	err := db.BookingsCollection.FindOne(context.TODO(), bson.M{"bookingId": ps.ByName("id")}).Decode(&booking)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, booking)
}

// GetSubresource dispatches GET /api/bookings/status/:status and
// GET /api/bookings/stats/earnings, which share a wildcard with
// GET /api/bookings/:id in the router.
func GetSubresource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	switch ps.ByName("id") {
	case "status":
		listByStatus(w, r, ps.ByName("sub"))
	case "stats":
		if ps.ByName("sub") == "earnings" {
			GetEarnings(w, r, ps)
			return
		}
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
	default:
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
	}
}

func listByStatus(w http.ResponseWriter, r *http.Request, status string) {
	if !models.ValidBookingStatus(status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid booking status")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.BookingsCollection.Find(ctx, bson.M{"status": status}, db.OptionsFindLatest(0))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookings")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

// ValidateBooking checks the required submission fields. Returns an empty
// string when the booking is acceptable.
func ValidateBooking(b *models.Booking) string {
	if b.FarmerName == "" {
		return "farmerName is required"
	}
	if b.Phone == "" {
		return "phone is required"
	}
	if b.Location == "" {
		return "location is required"
	}
	if utils.ParseDate(b.Date) == nil {
		return "date must be YYYY-MM-DD"
	}
	if b.StartTime == "" || b.EndTime == "" || b.Duration == "" {
		return "startTime, endTime and duration are required"
	}
	if b.MachineID == 0 {
		return "machineId is required"
	}
	if b.MachineName == "" {
		return "machineName is required"
	}
	if b.Crop == "" {
		return "crop is required"
	}
	if b.Amount <= 0 {
		return "amount must be a positive number"
	}
	if b.PaymentStatus != "" &&
		b.PaymentStatus != models.PaymentPending &&
		b.PaymentStatus != models.PaymentAdvancePaid &&
		b.PaymentStatus != models.PaymentFullyPaid {
		return "Invalid paymentStatus"
	}
	if b.FieldSizeUnit != "" && b.FieldSizeUnit != "acres" && b.FieldSizeUnit != "hectares" {
		return "fieldSizeUnit must be acres or hectares"
	}
	return ""
}

// GenerateBookingID mirrors the BK<millis>-<sequence> scheme used since the
// first deployment; existing clients parse it.
func GenerateBookingID(now time.Time, seq int64) string {
	return fmt.Sprintf("BK%d-%d", now.UnixMilli(), seq)
}

func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := ValidateBooking(&booking); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := db.BookingsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	now := time.Now()
	booking.BookingID = GenerateBookingID(now, count+1)
	booking.Status = models.BookingPending
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = models.PaymentPending
	}
	if booking.FieldSize == 0 {
		booking.FieldSize = 1
	}
	if booking.FieldSizeUnit == "" {
		booking.FieldSizeUnit = "acres"
	}
	booking.WorkCompleted = false
	booking.HasReview = false
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := db.BookingsCollection.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Booking id collision, please retry")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	rdx.Invalidate(ctx, rdx.EarningsKey)
	notify.Emit("booking.created", booking)
	metrics.IncHTTP("booking_create")

	utils.RespondWithJSON(w, http.StatusCreated, booking)
}

// Status changes go through the transition guard, never through PUT.
var protectedBookingFields = []string{"_id", "bookingId", "status", "createdAt"}

// Expected JSON kinds for the mutable booking fields. A wrong-typed value
// would store fine (the collection is schemaless) and then break decoding
// for every listing read, so it is rejected up front.
var bookingUpdateKinds = map[string]string{
	"farmerName":     "string",
	"phone":          "string",
	"email":          "string",
	"location":       "string",
	"address":        "object",
	"date":           "string",
	"startTime":      "string",
	"endTime":        "string",
	"duration":       "string",
	"machineId":      "number",
	"machineName":    "string",
	"crop":           "string",
	"fieldSize":      "number",
	"fieldSizeUnit":  "string",
	"amount":         "number",
	"advancePayment": "number",
	"paymentStatus":  "string",
	"notes":          "string",
	"operatorNotes":  "string",
	"workCompleted":  "bool",
	"hasReview":      "bool",
}

func UpdateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update bson.M
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	for _, field := range protectedBookingFields {
		delete(update, field)
	}
	if msg := utils.CheckFieldKinds(update, bookingUpdateKinds); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	if pay, ok := update["paymentStatus"].(string); ok {
		if pay != models.PaymentPending && pay != models.PaymentAdvancePaid && pay != models.PaymentFullyPaid {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid paymentStatus")
			return
		}
	}
	if d, ok := update["date"].(string); ok && utils.ParseDate(d) == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if amount, ok := update["amount"].(float64); ok && amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "amount must be a positive number")
		return
	}
	if unit, ok := update["fieldSizeUnit"].(string); ok && unit != "acres" && unit != "hectares" {
		utils.RespondWithError(w, http.StatusBadRequest, "fieldSizeUnit must be acres or hectares")
		return
	}
	update["updatedAt"] = time.Now()

	booking, err := findAndUpdate(context.TODO(), ps.ByName("id"), bson.M{"$set": update})
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update booking")
		return
	}

	rdx.Invalidate(context.TODO(), rdx.EarningsKey)
	utils.RespondWithJSON(w, http.StatusOK, booking)
}

func DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := db.BookingsCollection.DeleteOne(context.TODO(), bson.M{"bookingId": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete booking")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	rdx.Invalidate(context.TODO(), rdx.EarningsKey)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Booking deleted successfully"})
}
