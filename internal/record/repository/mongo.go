package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogotex/entertext/internal/record"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// namespaceExists is the server error code for creating a collection that already exists.
const namespaceExists = 48

// MongoRepo stores the record as one document in database <namespace>, collection <table>.
// The record id (string form) is the document _id; createdAt comes from $currentDate.
type MongoRepo struct {
	client *mongo.Client
	db     *mongo.Database
	col    *mongo.Collection
}

func NewMongoRepo(client *mongo.Client, loc record.Location) *MongoRepo {
	db := client.Database(loc.Namespace)
	return &MongoRepo{client: client, db: db, col: db.Collection(loc.Table)}
}

func (m *MongoRepo) Init(ctx context.Context) error {
	err := m.db.CreateCollection(ctx, m.col.Name())
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == namespaceExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create collection %s.%s: %w", m.db.Name(), m.col.Name(), err)
	}
	return nil
}

func (m *MongoRepo) Get(ctx context.Context, id uuid.UUID) (*record.Record, error) {
	var raw struct {
		Content   string    `bson:"content"`
		CreatedAt time.Time `bson:"createdAt"`
	}
	err := m.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, record.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record.Record{ID: id, Content: raw.Content, CreatedAt: raw.CreatedAt.UTC()}, nil
}

func (m *MongoRepo) Upsert(ctx context.Context, id uuid.UUID, content string) error {
	update := bson.M{
		"$set":         bson.M{"content": content},
		"$currentDate": bson.M{"createdAt": true},
	}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, bson.M{"_id": id.String()}, update, opts)
	return err
}

func (m *MongoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := m.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	return err
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoRepo) Close() error {
	return m.client.Disconnect(context.Background())
}
