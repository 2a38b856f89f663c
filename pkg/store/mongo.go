package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	archerrors "github.com/archscope/archscope/pkg/errors"
	"github.com/archscope/archscope/pkg/report"
)

// MongoStore archives reports in a MongoDB collection.
// Reports are stored as BSON documents keyed by their UUID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "archscope"
	Collection string // defaults to "reports"
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "archscope"
	}
	if cfg.Collection == "" {
		cfg.Collection = "reports"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, archerrors.Wrap(archerrors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, archerrors.Wrap(archerrors.ErrCodeInternal, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save upserts the report document by id.
func (s *MongoStore) Save(ctx context.Context, rep *report.Report) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": rep.ID},
		rep,
		options.Replace().SetUpsert(true))
	if err != nil {
		return archerrors.Wrap(archerrors.ErrCodeInternal, err, "save report %q", rep.ID)
	}
	return nil
}

// Get returns the report with the given id.
func (s *MongoStore) Get(ctx context.Context, id string) (*report.Report, error) {
	var rep report.Report
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rep)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, archerrors.New(archerrors.ErrCodeReportNotFound, "report %q not found", id)
	}
	if err != nil {
		return nil, archerrors.Wrap(archerrors.ErrCodeInternal, err, "load report %q", id)
	}
	return &rep, nil
}

// List returns summaries of all stored reports, newest first.
func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{
			"_id":                  1,
			"root":                 1,
			"created_at":           1,
			"stats.total_files":    1,
			"circular.cycle_count": 1,
		})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, archerrors.Wrap(archerrors.ErrCodeInternal, err, "list reports")
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []Summary
	for cur.Next(ctx) {
		var doc report.Report
		if err := cur.Decode(&doc); err != nil {
			return nil, archerrors.Wrap(archerrors.ErrCodeInternal, err, "decode report summary")
		}
		out = append(out, summarize(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, archerrors.Wrap(archerrors.ErrCodeInternal, err, "iterate reports")
	}
	return out, nil
}

// Delete removes a report document. Missing ids are not an error.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return archerrors.Wrap(archerrors.ErrCodeInternal, err, "delete report %q", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
