package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rishabhcod/event-registration-system2/config"
	"github.com/rishabhcod/event-registration-system2/model"
)

// MongoStore keeps each event with its registrations as a single document, so every
// seat mutation is a single-document update and atomic on the server.
type MongoStore struct {
	events *mongo.Collection
}

func NewMongoStore(events *mongo.Collection) *MongoStore {
	return &MongoStore{events: events}
}

// DBInit connects to the server named by cfg and returns the client together with the
// events collection.
func DBInit(ctx context.Context, cfg config.Config) (*mongo.Client, *mongo.Collection, error) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot connect to the db: %w", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("db is not available: %w", err)
	}

	return client, client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection), nil
}

// EnsureIndexes creates the index that backs lookups by ticket id.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.events.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{primitive.E{Key: "registrations.ticketId", Value: 1}}},
		{Keys: bson.D{primitive.E{Key: "date", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateEvent(ctx context.Context, event model.NewEvent) (model.Event, error) {
	doc := newEventDocument(event, primitive.NewObjectID())
	if _, err := s.events.InsertOne(ctx, doc); err != nil {
		return model.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return doc, nil
}

func (s *MongoStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	findOptions := options.Find().SetSort(bson.D{primitive.E{Key: "date", Value: 1}})
	cur, err := s.events.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}

	events := []model.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

func (s *MongoStore) FindEventById(ctx context.Context, eventId string) (model.Event, error) {
	objId, err := primitive.ObjectIDFromHex(eventId)
	if err != nil {
		return model.Event{}, ErrNotFound
	}
	return s.findOne(ctx, bson.D{primitive.E{Key: "_id", Value: objId}})
}

func (s *MongoStore) FindEventByTicketId(ctx context.Context, ticketId string) (model.Event, error) {
	return s.findOne(ctx, bson.D{primitive.E{Key: "registrations.ticketId", Value: ticketId}})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.D) (model.Event, error) {
	var event model.Event
	err := s.events.FindOne(ctx, filter).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Event{}, ErrNotFound
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("find event: %w", err)
	}
	return event, nil
}

func (s *MongoStore) ConditionalRegister(ctx context.Context, eventId string, reg model.Registration) (model.Event, error) {
	objId, err := primitive.ObjectIDFromHex(eventId)
	if err != nil {
		return model.Event{}, ErrPreconditionFailed
	}

	// a ticket id appears at most once per event, so the $pull in
	// RemoveRegistrationAndRestoreSeat never frees more than one seat
	filter := bson.D{
		primitive.E{Key: "_id", Value: objId},
		primitive.E{Key: "availableSeats", Value: bson.D{primitive.E{Key: "$gt", Value: 0}}},
		primitive.E{Key: "registrations.ticketId", Value: bson.D{primitive.E{Key: "$ne", Value: reg.TicketId}}},
	}
	update := bson.D{
		primitive.E{Key: "$inc", Value: bson.D{primitive.E{Key: "availableSeats", Value: -1}}},
		primitive.E{Key: "$push", Value: bson.D{primitive.E{Key: "registrations", Value: reg}}},
		primitive.E{Key: "$set", Value: bson.D{primitive.E{Key: "updatedAt", Value: now()}}},
	}
	updateOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var event model.Event
	err = s.events.FindOneAndUpdate(ctx, filter, update, updateOptions).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Event{}, ErrPreconditionFailed
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("register for event %v: %w", eventId, err)
	}
	return event, nil
}

func (s *MongoStore) RemoveRegistrationAndRestoreSeat(ctx context.Context, ticketId string) error {
	filter := bson.D{primitive.E{Key: "registrations.ticketId", Value: ticketId}}
	update := bson.D{
		primitive.E{Key: "$pull", Value: bson.D{primitive.E{Key: "registrations",
			Value: bson.D{primitive.E{Key: "ticketId", Value: ticketId}}}}},
		primitive.E{Key: "$inc", Value: bson.D{primitive.E{Key: "availableSeats", Value: 1}}},
		primitive.E{Key: "$set", Value: bson.D{primitive.E{Key: "updatedAt", Value: now()}}},
	}

	res, err := s.events.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("remove registration %v: %w", ticketId, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountEvents is used by seeding to detect an empty collection.
func (s *MongoStore) CountEvents(ctx context.Context) (int64, error) {
	count, err := s.events.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}
