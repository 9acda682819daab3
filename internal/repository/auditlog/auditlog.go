package auditlog

import (
	"context"
	"log"
	"time"

	mg "vas_import/internal/config/connections/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ActivityLogCollection = "activity_logs"

const (
	SeverityInfo    = "INFO"
	SeverityWarning = "WARNING"
	SeverityError   = "ERROR"
)

// Entry is an immutable audit record. The pipeline appends one for every
// entity creation, every file move, and every processing error; nothing ever
// updates or deletes them.
type Entry struct {
	ID         any       `bson:"_id,omitempty" json:"id"`
	EntityType string    `bson:"entity_type" json:"entity_type"`
	EntityID   string    `bson:"entity_id" json:"entity_id"`
	Action     string    `bson:"action" json:"action"`
	Details    string    `bson:"details" json:"details"`
	Severity   string    `bson:"severity" json:"severity"`
	UserID     string    `bson:"user_id" json:"user_id"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

func Insert(ctx context.Context, m *mg.Mongo, e Entry) (*mongo.InsertOneResult, error) {
	coll := m.Collection(ActivityLogCollection)
	if coll == nil {
		return nil, mongo.ErrClientDisconnected
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Severity == "" {
		e.Severity = SeverityInfo
	}

	doc := bson.D{
		{Key: "entity_type", Value: e.EntityType},
		{Key: "entity_id", Value: e.EntityID},
		{Key: "action", Value: e.Action},
		{Key: "details", Value: e.Details},
		{Key: "severity", Value: e.Severity},
		{Key: "user_id", Value: e.UserID},
		{Key: "created_at", Value: e.CreatedAt},
	}

	return coll.InsertOne(ctx, doc, options.InsertOne())
}

// Log appends an entry and swallows the error: a broken audit sink must not
// abort the import itself.
func Log(ctx context.Context, m *mg.Mongo, e Entry) {
	if _, err := Insert(ctx, m, e); err != nil {
		log.Printf("[AUDIT][ERR] entity=%s/%s action=%s err=%v", e.EntityType, e.EntityID, e.Action, err)
	}
}

func List(ctx context.Context, m *mg.Mongo, filter bson.M, limit, skip int64) ([]Entry, int64, error) {
	coll := m.Collection(ActivityLogCollection)
	if coll == nil {
		return nil, 0, mongo.ErrClientDisconnected
	}
	if filter == nil {
		filter = bson.M{}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if skip > 0 {
		opts.SetSkip(skip)
	}

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	entries := make([]Entry, 0)
	for cur.Next(ctx) {
		var e Entry
		if err := cur.Decode(&e); err != nil {
			continue
		}
		if oid, ok := e.ID.(primitive.ObjectID); ok {
			e.ID = oid.Hex()
		}
		entries = append(entries, e)
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		total = int64(len(entries))
	}
	return entries, total, nil
}
