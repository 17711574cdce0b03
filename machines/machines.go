package machines

import (
	"context"
	"encoding/json"
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

const machineCacheTTL = 2 * time.Minute

// GetMachines lists every machine, redis-first.
func GetMachines(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	metrics.IncHTTP("machines_list")

	var machines []models.Machine
	if rdx.GetJSON(ctx, rdx.MachinesKey, &machines) {
		utils.RespondWithJSON(w, http.StatusOK, machines)
		return
	}

	cursor, err := db.MachinesCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch machines")
		return
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &machines); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode machines")
		return
	}
	if machines == nil {
		machines = []models.Machine{}
	}

	rdx.SetJSON(ctx, rdx.MachinesKey, machines, machineCacheTTL)
	utils.RespondWithJSON(w, http.StatusOK, machines)
}

func GetMachine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := utils.ParseInt(ps.ByName("id"))

	var machine models.Machine
	err := db.MachinesCollection.FindOne(context.TODO(), bson.M{"id": id}).Decode(&machine)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Machine not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, machine)
}

// GetAvailableMachines serves GET /api/machines/status/available, which is
// routed through the :id wildcard.
func GetAvailableMachines(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") != "status" {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.MachinesCollection.Find(ctx, bson.M{"available": true})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch machines")
		return
	}
	defer cursor.Close(ctx)

	var machines []models.Machine
	if err := cursor.All(ctx, &machines); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode machines")
		return
	}
	if machines == nil {
		machines = []models.Machine{}
	}
	utils.RespondWithJSON(w, http.StatusOK, machines)
}

func validateMachine(m *models.Machine) string {
	if m.Name == "" {
		return "Machine name is required"
	}
	if m.Operator == "" {
		return "Operator is required"
	}
	if !models.ValidMachineType(m.Type) {
		return "Type must be one of Tractor, Harvester, Thresher, Seeder, Other"
	}
	if m.PricePerHour <= 0 {
		return "pricePerHour must be a positive number"
	}
	if m.Crop == "" {
		return "Crop is required"
	}
	if m.Location == "" {
		return "Location is required"
	}
	return ""
}

// nextMachineID assigns max(id)+1 when the caller did not pick an id.
func nextMachineID(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.M{"id": -1})
	var last models.Machine
	err := db.MachinesCollection.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.ID + 1, nil
}

func CreateMachine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var machine models.Machine
	if err := json.NewDecoder(r.Body).Decode(&machine); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateMachine(&machine); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if machine.ID == 0 {
		id, err := nextMachineID(ctx)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to assign machine id")
			return
		}
		machine.ID = id
	}
	if machine.Image == "" {
		machine.Image = "🚜"
	}
	if machine.Experience == "" {
		machine.Experience = "0+ years"
	}
	if machine.Reviews == nil {
		machine.Reviews = []models.Review{}
	}
	machine.Available = true
	machine.CreatedAt = time.Now()
	machine.UpdatedAt = machine.CreatedAt

	if _, err := db.MachinesCollection.InsertOne(ctx, machine); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "A machine with this id already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create machine")
		return
	}

	rdx.Invalidate(ctx, rdx.MachinesKey)
	notify.Emit("machine.created", machine)
	metrics.IncHTTP("machine_create")

	utils.RespondWithJSON(w, http.StatusCreated, machine)
}

// Fields that only the service itself may write.
var protectedMachineFields = []string{"_id", "id", "rating", "reviews", "totalBookings", "createdAt"}

// Expected JSON kinds for the mutable machine fields; wrong-typed values
// are rejected before the $set so a stored document always decodes.
var machineUpdateKinds = map[string]string{
	"name":           "string",
	"operator":       "string",
	"type":           "string",
	"price":          "string",
	"pricePerHour":   "number",
	"crop":           "string",
	"available":      "bool",
	"description":    "string",
	"image":          "string",
	"thumbnail":      "string",
	"location":       "string",
	"experience":     "string",
	"specifications": "object",
}

func UpdateMachine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := utils.ParseInt(ps.ByName("id"))

	var update bson.M
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	for _, field := range protectedMachineFields {
		delete(update, field)
	}
	if msg := utils.CheckFieldKinds(update, machineUpdateKinds); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	if t, ok := update["type"].(string); ok && !models.ValidMachineType(t) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid machine type")
		return
	}
	if price, ok := update["pricePerHour"].(float64); ok && price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "pricePerHour must be a positive number")
		return
	}
	update["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var machine models.Machine
	err := db.MachinesCollection.FindOneAndUpdate(
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
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update machine")
		return
	}

	rdx.Invalidate(context.TODO(), rdx.MachinesKey)
	utils.RespondWithJSON(w, http.StatusOK, machine)
}

func DeleteMachine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := utils.ParseInt(ps.ByName("id"))

	res, err := db.MachinesCollection.DeleteOne(context.TODO(), bson.M{"id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete machine")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Machine not found")
		return
	}

	rdx.Invalidate(context.TODO(), rdx.MachinesKey)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Machine deleted successfully"})
}

// UpdateAvailability handles PATCH /api/machines/:id/availability.
func UpdateAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := utils.ParseInt(ps.ByName("id"))

	var body struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var machine models.Machine
	err := db.MachinesCollection.FindOneAndUpdate(
		context.TODO(),
		bson.M{"id": id},
		bson.M{"$set": bson.M{"available": body.Available, "updatedAt": time.Now()}},
		opts,
	).Decode(&machine)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Machine not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update availability")
		return
	}

	rdx.Invalidate(context.TODO(), rdx.MachinesKey)
	notify.Emit("machine.availability", machine)
	utils.RespondWithJSON(w, http.StatusOK, machine)
}
