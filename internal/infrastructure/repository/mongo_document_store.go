package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/wyg1997/VoiceRoute/internal/domain"
)

// mongoDocumentStore implements DocumentStore on MongoDB
type mongoDocumentStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDocumentStore connects to MongoDB using the stable v1 server API
// and pings the primary before returning
func NewMongoDocumentStore(ctx context.Context, uri, database string) (domain.DocumentStore, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	return &mongoDocumentStore{
		client: client,
		db:     client.Database(database),
	}, nil
}

// SaveTranscript inserts into the transcript collection
func (r *mongoDocumentStore) SaveTranscript(ctx context.Context, t *domain.Transcript) (string, error) {
	return r.insert(ctx, domain.CollectionTranscripts, t)
}

// SaveFeedback inserts into the feedback collection
func (r *mongoDocumentStore) SaveFeedback(ctx context.Context, f *domain.FeedbackDocument) (string, error) {
	return r.insert(ctx, domain.CollectionFeedback, f)
}

// Close disconnects the client
func (r *mongoDocumentStore) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *mongoDocumentStore) insert(ctx context.Context, collection string, doc interface{}) (string, error) {
	res, err := r.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return insertedIDString(res.InsertedID), nil
}

// insertedIDString renders a generated _id the way clients see it
func insertedIDString(id interface{}) string {
	switch v := id.(type) {
	case bson.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
