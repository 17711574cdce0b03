package machines

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"harvestharmony/db"
	"harvestharmony/models"
	"harvestharmony/rdx"
	"harvestharmony/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// recomputeRating returns the mean review rating rounded to one decimal.
// Callers must not apply it to an empty list: when the last review is
// removed the machine keeps its previously computed rating.
func recomputeRating(reviews []models.Review) float64 {
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}

func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := utils.ParseInt(ps.ByName("id"))

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if review.FarmerName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "farmerName is required")
		return
	}
	if review.Rating < 1 || review.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	if review.Comment == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var machine models.Machine
	if err := db.MachinesCollection.FindOne(ctx, bson.M{"id": id}).Decode(&machine); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Machine not found")
		return
	}

	review.ReviewID = uuid.NewString()
	review.Date = time.Now()
	machine.Reviews = append(machine.Reviews, review)
	machine.Rating = recomputeRating(machine.Reviews)

	_, err := db.MachinesCollection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"reviews":   machine.Reviews,
		"rating":    machine.Rating,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}

	rdx.Invalidate(ctx, rdx.MachinesKey)
	utils.RespondWithJSON(w, http.StatusCreated, machine)
}

func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := utils.ParseInt(ps.ByName("id"))

	var machine models.Machine
	if err := db.MachinesCollection.FindOne(context.TODO(), bson.M{"id": id}).Decode(&machine); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Machine not found")
		return
	}
	if machine.Reviews == nil {
		machine.Reviews = []models.Review{}
	}
	utils.RespondWithJSON(w, http.StatusOK, machine.Reviews)
}

func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := utils.ParseInt(ps.ByName("id"))
	reviewID := ps.ByName("reviewId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var machine models.Machine
	if err := db.MachinesCollection.FindOne(ctx, bson.M{"id": id}).Decode(&machine); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Machine not found")
		return
	}

	kept := machine.Reviews[:0]
	for _, review := range machine.Reviews {
		if review.ReviewID != reviewID {
			kept = append(kept, review)
		}
	}
	machine.Reviews = kept
	// Rating stays at its last computed value once the list is empty.
	if len(machine.Reviews) > 0 {
		machine.Rating = recomputeRating(machine.Reviews)
	}

	_, err := db.MachinesCollection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"reviews":   machine.Reviews,
		"rating":    machine.Rating,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	rdx.Invalidate(ctx, rdx.MachinesKey)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Review deleted successfully", "machine": machine})
}
