package bookinglog

import (
	"context"
	"fmt"

	"podbooker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingLog is the durable implementation of the scheduling
// engine's booking log. Documents are insert-only; there is no update or
// delete path.
type MongoBookingLog struct {
	coll *mongo.Collection
}

func NewMongoBookingLog(client *mongo.Client) *MongoBookingLog {
	return &MongoBookingLog{
		coll: client.Database("podbooker").Collection("bookings"),
	}
}

// bookingDoc adds the precomputed day key so the fairness count is a
// single equality filter.
type bookingDoc struct {
	models.Booking `bson:",inline"`
	Day            string `bson:"day"`
}

func (l *MongoBookingLog) Append(ctx context.Context, b models.Booking) error {
	if _, err := l.coll.InsertOne(ctx, bookingDoc{Booking: b, Day: b.Day()}); err != nil {
		return fmt.Errorf("insert booking %s: %w", b.ID, err)
	}
	return nil
}

func (l *MongoBookingLog) CountByHostAndDay(ctx context.Context, hostID, day string) (int, error) {
	n, err := l.coll.CountDocuments(ctx, bson.M{"host.id": hostID, "day": day})
	if err != nil {
		return 0, fmt.Errorf("count bookings for host %s on %s: %w", hostID, day, err)
	}
	return int(n), nil
}

func (l *MongoBookingLog) ListByDay(ctx context.Context, day string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := l.coll.Find(ctx, bson.M{"day": day}, opts)
	if err != nil {
		return nil, fmt.Errorf("find bookings on %s: %w", day, err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bookings on %s: %w", day, err)
	}

	bookings := make([]models.Booking, 0, len(docs))
	for _, d := range docs {
		bookings = append(bookings, d.Booking)
	}
	return bookings, nil
}
