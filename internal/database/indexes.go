package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: email_unique index created")
	return nil
}

func EnsureQuoteIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("quotes").Indexes()

	userStatusIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("userId_status_index"),
	}

	log.Println("EnsureQuoteIndexes: creating userId_status_index")
	_, err := indexes.CreateOne(ctx, userStatusIndex)
	if err != nil {
		log.Println("EnsureQuoteIndexes: userId_status index error:", err)
		return err
	}
	log.Println("EnsureQuoteIndexes: userId_status_index created")
	return nil
}

// EnsureOrderIndexes adds a unique partial index on quoteId so the store itself
// rejects a second order for the same quote even if two payment deliveries race.
func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	userIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("userId_index"),
	}

	quoteIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "quoteId", Value: 1}},
		Options: options.Index().
			SetName("quoteId_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"quoteId": bson.M{
					"$exists": true,
				},
			}),
	}

	log.Println("EnsureOrderIndexes: creating userId_index and quoteId_unique indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{userIDIndex, quoteIDIndex})
	if err != nil {
		log.Println("EnsureOrderIndexes: index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: indexes created")
	return nil
}

func EnsurePurchaseOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("purchaseOrders").Indexes()

	poNumberIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "poNumber", Value: 1}},
		Options: options.Index().
			SetName("poNumber_unique").
			SetUnique(true),
	}

	log.Println("EnsurePurchaseOrderIndexes: creating poNumber_unique index")
	_, err := indexes.CreateOne(ctx, poNumberIndex)
	if err != nil {
		log.Println("EnsurePurchaseOrderIndexes: poNumber index error:", err)
		return err
	}
	log.Println("EnsurePurchaseOrderIndexes: poNumber_unique index created")
	return nil
}

func EnsureNotificationIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("notifications").Indexes()

	feedIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("userId_createdAt_index"),
	}

	log.Println("EnsureNotificationIndexes: creating userId_createdAt_index")
	_, err := indexes.CreateOne(ctx, feedIndex)
	if err != nil {
		log.Println("EnsureNotificationIndexes: feed index error:", err)
		return err
	}
	log.Println("EnsureNotificationIndexes: userId_createdAt_index created")
	return nil
}
