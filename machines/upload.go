package machines

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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UploadImage replaces a machine's photo. Expects multipart form with an
// "image" field; stores the original plus a thumbnail.
func UploadImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := utils.ParseInt(ps.ByName("id"))

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	imageURL, thumbURL, err := utils.SaveUploadedImage(r, "image", "machines")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file is required")
		return
	}

	update := bson.M{"image": imageURL, "updatedAt": time.Now()}
	if thumbURL != "" {
		update["thumbnail"] = thumbURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var machine models.Machine
	err = db.MachinesCollection.FindOneAndUpdate(
		context.TODO(),
		bson.M{"id": id},
		bson.M{"$set": update},
		opts,
	).Decode(&machine)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Machine not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update machine image")
		return
	}

	rdx.Invalidate(context.TODO(), rdx.MachinesKey)
	utils.RespondWithJSON(w, http.StatusOK, machine)
}
