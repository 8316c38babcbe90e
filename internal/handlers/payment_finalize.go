package handlers

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"foodstore/internal/models"
)

var ErrQuoteNotFound = errors.New("quote not found")
var ErrQuoteNotPayable = errors.New("quote is not ready for payment")

// resolveFinalizeMiss maps the quote status observed after the conditional
// flip matched nothing. An already-Paid quote means an earlier delivery won
// the race, so the call is a successful no-op and no second order is created;
// any other status cannot take a payment.
func resolveFinalizeMiss(status string) (alreadyPaid bool, err error) {
	if status == models.QuoteStatusPaid {
		return true, nil
	}
	return false, ErrQuoteNotPayable
}

type finalizeResult struct {
	OrderID     primitive.ObjectID
	AlreadyPaid bool
}

// finalizeQuotePayment is the single authoritative paid-quote transition used
// by both the webhook and the client-confirmation path. The quote flip is a
// conditional update keyed on the expected prior status, so two concurrent
// deliveries for the same reference serialize in the store: exactly one of
// them performs the grouped write, the other observes the quote already Paid
// and returns without side effects.
func finalizeQuotePayment(ctx context.Context, db *mongo.Database, quoteID primitive.ObjectID, transactionID string) (finalizeResult, error) {
	session, err := db.Client().StartSession()
	if err != nil {
		return finalizeResult{}, err
	}
	defer session.EndSession(ctx)

	var result finalizeResult
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		now := time.Now()

		var quote models.Quote
		err := db.Collection("quotes").FindOneAndUpdate(
			sessCtx,
			bson.M{"_id": quoteID, "status": models.QuoteStatusQuoteReady},
			bson.M{"$set": bson.M{
				"status":        models.QuoteStatusPaid,
				"transactionId": transactionID,
				"updatedAt":     now,
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&quote)
		if err == mongo.ErrNoDocuments {
			var existing models.Quote
			err := db.Collection("quotes").FindOne(sessCtx, bson.M{"_id": quoteID}).Decode(&existing)
			if err == mongo.ErrNoDocuments {
				return nil, ErrQuoteNotFound
			}
			if err != nil {
				return nil, err
			}
			alreadyPaid, missErr := resolveFinalizeMiss(existing.Status)
			if missErr != nil {
				return nil, missErr
			}
			result.AlreadyPaid = alreadyPaid
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		items := make([]models.OrderItem, 0, len(quote.Items))
		for _, item := range quote.Items {
			items = append(items, models.OrderItem{
				Name:     item.Name,
				Quantity: item.Quantity,
				Unit:     item.Unit,
				UnitCost: item.UnitCost,
			})
		}

		order := models.Order{
			UserID:          quote.UserID,
			QuoteID:         &quote.ID,
			Items:           items,
			TotalCost:       quote.GrandTotal,
			ShippingAddress: quote.ShippingAddress,
			Status:          models.OrderStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		res, err := db.Collection("orders").InsertOne(sessCtx, order)
		if err != nil {
			return nil, err
		}
		result.OrderID, _ = res.InsertedID.(primitive.ObjectID)

		notifications := []interface{}{
			models.Notification{
				UserID:      quote.UserID.Hex(),
				Title:       "Payment received",
				Description: "Your payment was confirmed and your order has been created.",
				Href:        "/orders/" + result.OrderID.Hex(),
				CreatedAt:   now,
			},
			models.Notification{
				UserID:      models.NotificationAdminFeed,
				Title:       "Quote paid",
				Description: quote.CustomerName + " paid for quote " + quote.ID.Hex(),
				Href:        "/admin/orders/" + result.OrderID.Hex(),
				CreatedAt:   now,
			},
		}
		if _, err := db.Collection("notifications").InsertMany(sessCtx, notifications); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return finalizeResult{}, err
	}
	return result, nil
}
