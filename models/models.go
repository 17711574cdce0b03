package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MachineTypeTractor   = "Tractor"
	MachineTypeHarvester = "Harvester"
	MachineTypeThresher  = "Thresher"
	MachineTypeSeeder    = "Seeder"
	MachineTypeOther     = "Other"
)

const (
	BookingPending   = "pending"
	BookingAccepted  = "accepted"
	BookingRejected  = "rejected"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

const (
	PaymentPending     = "pending"
	PaymentAdvancePaid = "advance-paid"
	PaymentFullyPaid   = "fully-paid"
)

func ValidMachineType(t string) bool {
	switch t {
	case MachineTypeTractor, MachineTypeHarvester, MachineTypeThresher, MachineTypeSeeder, MachineTypeOther:
		return true
	}
	return false
}

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingAccepted, BookingRejected, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

type Review struct {
	ReviewID   string    `bson:"reviewId"          json:"reviewId"`
	FarmerName string    `bson:"farmerName"        json:"farmerName"`
	Rating     int       `bson:"rating"            json:"rating"`
	Comment    string    `bson:"comment"           json:"comment"`
	Date       time.Time `bson:"date"              json:"date"`
}

type Specifications struct {
	Horsepower        string `bson:"horsepower,omitempty"        json:"horsepower,omitempty"`
	FuelType          string `bson:"fuelType,omitempty"          json:"fuelType,omitempty"`
	Weight            string `bson:"weight,omitempty"            json:"weight,omitempty"`
	YearOfManufacture string `bson:"yearOfManufacture,omitempty" json:"yearOfManufacture,omitempty"`
}

type Machine struct {
	ObjectID       primitive.ObjectID `bson:"_id,omitempty"            json:"-"`
	ID             int                `bson:"id"                       json:"id"`
	Name           string             `bson:"name"                     json:"name"`
	Operator       string             `bson:"operator"                 json:"operator"`
	Type           string             `bson:"type"                     json:"type"`
	Price          string             `bson:"price"                    json:"price"`
	PricePerHour   float64            `bson:"pricePerHour"             json:"pricePerHour"`
	Crop           string             `bson:"crop"                     json:"crop"`
	Rating         float64            `bson:"rating"                   json:"rating"`
	Available      bool               `bson:"available"                json:"available"`
	Description    string             `bson:"description,omitempty"    json:"description,omitempty"`
	Image          string             `bson:"image,omitempty"          json:"image,omitempty"`
	Thumbnail      string             `bson:"thumbnail,omitempty"      json:"thumbnail,omitempty"`
	Location       string             `bson:"location"                 json:"location"`
	Experience     string             `bson:"experience,omitempty"     json:"experience,omitempty"`
	Reviews        []Review           `bson:"reviews"                  json:"reviews"`
	TotalBookings  int                `bson:"totalBookings"            json:"totalBookings"`
	Specifications Specifications     `bson:"specifications,omitempty" json:"specifications,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"                json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"                json:"updatedAt"`
}

type Address struct {
	Village  string `bson:"village,omitempty"  json:"village,omitempty"`
	District string `bson:"district,omitempty" json:"district,omitempty"`
	State    string `bson:"state,omitempty"    json:"state,omitempty"`
	Pincode  string `bson:"pincode,omitempty"  json:"pincode,omitempty"`
}

type Booking struct {
	ObjectID       primitive.ObjectID `bson:"_id,omitempty"           json:"-"`
	BookingID      string             `bson:"bookingId"               json:"bookingId"`
	FarmerName     string             `bson:"farmerName"              json:"farmerName"`
	Phone          string             `bson:"phone"                   json:"phone"`
	Email          string             `bson:"email,omitempty"         json:"email,omitempty"`
	Location       string             `bson:"location"                json:"location"`
	Address        Address            `bson:"address,omitempty"       json:"address,omitempty"`
	Date           string             `bson:"date"                    json:"date"`
	StartTime      string             `bson:"startTime"               json:"startTime"`
	EndTime        string             `bson:"endTime"                 json:"endTime"`
	Duration       string             `bson:"duration"                json:"duration"`
	MachineID      int                `bson:"machineId"               json:"machineId"`
	MachineName    string             `bson:"machineName"             json:"machineName"`
	Crop           string             `bson:"crop"                    json:"crop"`
	FieldSize      float64            `bson:"fieldSize"               json:"fieldSize"`
	FieldSizeUnit  string             `bson:"fieldSizeUnit"           json:"fieldSizeUnit"`
	Amount         float64            `bson:"amount"                  json:"amount"`
	AdvancePayment float64            `bson:"advancePayment"          json:"advancePayment"`
	PaymentStatus  string             `bson:"paymentStatus"           json:"paymentStatus"`
	Status         string             `bson:"status"                  json:"status"`
	Notes          string             `bson:"notes,omitempty"         json:"notes,omitempty"`
	OperatorNotes  string             `bson:"operatorNotes,omitempty" json:"operatorNotes,omitempty"`
	WorkCompleted  bool               `bson:"workCompleted"           json:"workCompleted"`
	HasReview      bool               `bson:"hasReview"               json:"hasReview"`
	CreatedAt      time.Time          `bson:"createdAt"               json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"               json:"updatedAt"`
}

type Favorite struct {
	ObjectID    primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FarmerName  string             `bson:"farmerName"    json:"farmerName"`
	FarmerPhone string             `bson:"farmerPhone"   json:"farmerPhone"`
	MachineID   int                `bson:"machineId"     json:"machineId"`
	MachineName string             `bson:"machineName"   json:"machineName"`
	CreatedAt   time.Time          `bson:"createdAt"     json:"createdAt"`
}

type User struct {
	ObjectID     primitive.ObjectID `bson:"_id,omitempty"   json:"-"`
	UserID       string             `bson:"userId"          json:"userId"`
	Username     string             `bson:"username"        json:"username"`
	PasswordHash string             `bson:"passwordHash"    json:"-"`
	Role         string             `bson:"role"            json:"role"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"       json:"createdAt"`
}

type EarningsSummary struct {
	Today     float64 `json:"today"`
	ThisMonth float64 `json:"thisMonth"`
	Total     float64 `json:"total"`
}
