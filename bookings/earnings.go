package bookings

import (
	"context"
	"net/http"
	"time"

	"harvestharmony/db"
	"harvestharmony/models"
	"harvestharmony/rdx"
	"harvestharmony/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// ComputeEarnings folds the full booking set into the three dashboard
// buckets. The today bucket counts accepted bookings only, not completed
// ones. Operators reconcile their books against that asymmetry, so it
// must not change.
func ComputeEarnings(bookings []models.Booking, now time.Time) models.EarningsSummary {
	today := now.Format("2006-01-02")

	var summary models.EarningsSummary
	for _, b := range bookings {
		earning := b.Status == models.BookingAccepted || b.Status == models.BookingCompleted
		if !earning {
			continue
		}

		summary.Total += b.Amount

		if b.Date == today && b.Status == models.BookingAccepted {
			summary.Today += b.Amount
		}

		if d := utils.ParseDate(b.Date); d != nil {
			if d.Month() == now.Month() && d.Year() == now.Year() {
				summary.ThisMonth += b.Amount
			}
		}
	}
	return summary
}

const earningsCacheTTL = time.Minute

// GetEarnings handles GET /api/bookings/stats/earnings.
func GetEarnings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var summary models.EarningsSummary
	if rdx.GetJSON(ctx, rdx.EarningsKey, &summary) {
		utils.RespondWithJSON(w, http.StatusOK, summary)
		return
	}

	cursor, err := db.BookingsCollection.Find(ctx, bson.M{})
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

	summary = ComputeEarnings(bookings, time.Now())
	rdx.SetJSON(ctx, rdx.EarningsKey, summary, earningsCacheTTL)
	utils.RespondWithJSON(w, http.StatusOK, summary)
}
