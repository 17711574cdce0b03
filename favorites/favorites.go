package favorites

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"harvestharmony/db"
	"harvestharmony/models"
	"harvestharmony/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func GetFarmerFavorites(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.FavoritesCollection.Find(ctx, bson.M{"farmerPhone": ps.ByName("phone")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch favorites")
		return
	}
	defer cursor.Close(ctx)

	var favorites []models.Favorite
	if err := cursor.All(ctx, &favorites); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode favorites")
		return
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	utils.RespondWithJSON(w, http.StatusOK, favorites)
}

func validateFavorite(f *models.Favorite) string {
	if f.FarmerName == "" {
		return "farmerName is required"
	}
	if f.FarmerPhone == "" {
		return "farmerPhone is required"
	}
	if f.MachineID == 0 {
		return "machineId is required"
	}
	if f.MachineName == "" {
		return "machineName is required"
	}
	return ""
}

func AddFavorite(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var favorite models.Favorite
	if err := json.NewDecoder(r.Body).Decode(&favorite); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateFavorite(&favorite); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	favorite.CreatedAt = time.Now()

	// The compound (farmerPhone, machineId) index turns a duplicate insert
	// into a driver error rather than a racey pre-check.
	if _, err := db.FavoritesCollection.InsertOne(context.TODO(), favorite); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Machine already in favorites")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add favorite")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, favorite)
}

type favoriteKey struct {
	FarmerPhone string `json:"farmerPhone"`
	MachineID   int    `json:"machineId"`
}

func DeleteFavorite(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var key favoriteKey
	if err := json.NewDecoder(r.Body).Decode(&key); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res := db.FavoritesCollection.FindOneAndDelete(context.TODO(),
		bson.M{"farmerPhone": key.FarmerPhone, "machineId": key.MachineID})
	if res.Err() == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Favorite not found")
		return
	}
	if res.Err() != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete favorite")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Removed from favorites"})
}

// ToggleFavorite removes the bookmark when present, creates it otherwise.
// Two toggles always return to the starting state.
func ToggleFavorite(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var favorite models.Favorite
	if err := json.NewDecoder(r.Body).Decode(&favorite); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if favorite.FarmerPhone == "" || favorite.MachineID == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "farmerPhone and machineId are required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"farmerPhone": favorite.FarmerPhone, "machineId": favorite.MachineID}
	res := db.FavoritesCollection.FindOneAndDelete(ctx, filter)
	if res.Err() == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"favorited": false, "message": "Removed from favorites"})
		return
	}
	if res.Err() != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to toggle favorite")
		return
	}

	if msg := validateFavorite(&favorite); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	favorite.CreatedAt = time.Now()

	if _, err := db.FavoritesCollection.InsertOne(ctx, favorite); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost a race against a concurrent toggle.
			utils.RespondWithError(w, http.StatusBadRequest, "Machine already in favorites")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to toggle favorite")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"favorited": true, "favorite": favorite})
}
