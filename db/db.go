package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	MachinesCollection  *mongo.Collection
	BookingsCollection  *mongo.Collection
	FavoritesCollection *mongo.Collection
	UsersCollection     *mongo.Collection

	Client *mongo.Client
)

// Init wires the package-level collection handles to the given client.
func Init(client *mongo.Client, dbName string) {
	Client = client
	database := client.Database(dbName)
	MachinesCollection = database.Collection("machines")
	BookingsCollection = database.Collection("bookings")
	FavoritesCollection = database.Collection("favorites")
	UsersCollection = database.Collection("users")
}

// EnsureIndexes creates the uniqueness constraints the handlers rely on:
// machine id, bookingId, username, and the (farmerPhone, machineId) pair
// that makes duplicate favorites a driver-level duplicate key error.
func EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := MachinesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = BookingsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "bookingId", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = FavoritesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "farmerPhone", Value: 1}, {Key: "machineId", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = UsersCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	})
	return err
}

func OptionsFindLatest(limit int64) *options.FindOptions {
	opts := options.Find()
	opts.SetSort(map[string]interface{}{"createdAt": -1})
	opts.SetLimit(limit)
	return opts
}
