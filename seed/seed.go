package seed

import (
	"context"
	"time"

	"harvestharmony/bookings"
	"harvestharmony/db"
	"harvestharmony/logger"
	"harvestharmony/models"

	"go.mongodb.org/mongo-driver/bson"
)

func sampleMachines() []interface{} {
	now := time.Now()
	machines := []models.Machine{
		{ID: 1, Name: "Rajesh's Cool Tractor 🚜", Operator: "Rajesh Kumar", Type: models.MachineTypeTractor, Price: "₹1200/hour", PricePerHour: 1200, Crop: "Wheat", Rating: 4.8, Available: true, Location: "Karnal, Haryana", Experience: "8+ years"},
		{ID: 2, Name: "The Harvest Beast 🌾", Operator: "Suresh Singh", Type: models.MachineTypeHarvester, Price: "₹2500/hour", PricePerHour: 2500, Crop: "Rice", Rating: 4.9, Available: true, Location: "Ludhiana, Punjab", Experience: "12+ years"},
		{ID: 3, Name: "Thresher Thunder ⚡", Operator: "Amit Sharma", Type: models.MachineTypeThresher, Price: "₹800/hour", PricePerHour: 800, Crop: "Barley", Rating: 4.7, Available: false, Location: "Meerut, Uttar Pradesh", Experience: "6+ years"},
		{ID: 4, Name: "Seed Rocket 🚀", Operator: "Vikram Yadav", Type: models.MachineTypeSeeder, Price: "₹600/hour", PricePerHour: 600, Crop: "Wheat", Rating: 4.6, Available: true, Location: "Hisar, Haryana", Experience: "5+ years"},
		{ID: 5, Name: "Heavy Duty Hero 💪", Operator: "Mohan Lal", Type: models.MachineTypeTractor, Price: "₹1500/hour", PricePerHour: 1500, Crop: "Rice", Rating: 4.5, Available: true, Location: "Amritsar, Punjab", Experience: "10+ years"},
		{ID: 6, Name: "Mini Marvel ✨", Operator: "Ramesh Kumar", Type: models.MachineTypeTractor, Price: "₹1800/hour", PricePerHour: 1800, Crop: "Wheat", Rating: 4.4, Available: true, Location: "Rohtak, Haryana", Experience: "7+ years"},
	}

	docs := make([]interface{}, len(machines))
	for i := range machines {
		machines[i].Image = "🚜"
		machines[i].Reviews = []models.Review{}
		machines[i].CreatedAt = now
		machines[i].UpdatedAt = now
		docs[i] = machines[i]
	}
	return docs
}

func sampleBookings() []interface{} {
	now := time.Now()
	base := models.Booking{
		StartTime:     "08:00",
		EndTime:       "12:00",
		Duration:      "4 hours",
		FieldSize:     2,
		FieldSizeUnit: "acres",
		PaymentStatus: models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	demo := []struct {
		farmer, phone, location, crop string
		machineID                     int
		machineName                   string
		amount                        float64
		status                        string
	}{
		{"Ramesh Patel", "9876543210", "Karnal, Haryana", "Wheat", 1, "Rajesh's Cool Tractor 🚜", 4800, models.BookingAccepted},
		{"Sita Devi", "9812345678", "Ludhiana, Punjab", "Rice", 2, "The Harvest Beast 🌾", 10000, models.BookingPending},
		{"Harpreet Singh", "9988776655", "Hisar, Haryana", "Wheat", 4, "Seed Rocket 🚀", 2400, models.BookingCompleted},
	}

	docs := make([]interface{}, len(demo))
	for i, d := range demo {
		b := base
		b.BookingID = bookings.GenerateBookingID(now, int64(i+1))
		b.FarmerName = d.farmer
		b.Phone = d.phone
		b.Location = d.location
		b.Date = now.Format("2006-01-02")
		b.Crop = d.crop
		b.MachineID = d.machineID
		b.MachineName = d.machineName
		b.Amount = d.amount
		b.Status = d.status
		docs[i] = b
	}
	return docs
}

// Run populates the machines and bookings collections when they are empty.
// It never touches existing data.
func Run(ctx context.Context) error {
	count, err := db.MachinesCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Log.Info().Int64("machines", count).Msg("seed skipped, store not empty")
		return nil
	}

	res, err := db.MachinesCollection.InsertMany(ctx, sampleMachines())
	if err != nil {
		return err
	}
	logger.Log.Info().Int("machines", len(res.InsertedIDs)).Msg("seeded sample machines")

	bcount, err := db.BookingsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if bcount == 0 {
		bres, err := db.BookingsCollection.InsertMany(ctx, sampleBookings())
		if err != nil {
			return err
		}
		logger.Log.Info().Int("bookings", len(bres.InsertedIDs)).Msg("seeded sample bookings")
	}
	return nil
}
