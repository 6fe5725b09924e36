package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kndndrj/iltable/core"
)

// Register client
func init() {
	_ = register(&Mongo{}, "mongo", "mongodb")
}

var _ core.Adapter = (*Mongo)(nil)

// Mongo loads every document of a collection:
//
//	mongodb://host:27017/<database>?collection=<collection>
type Mongo struct{}

func (m *Mongo) Connect(rawURL string) (core.Source, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("mongo: invalid url: %w", err)
	}

	// collection is ours, the driver would choke on it
	q := u.Query()
	collection := q.Get("collection")
	q.Del("collection")
	u.RawQuery = q.Encode()

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" || collection == "" {
		return nil, errors.New("mongo: url needs both a database path and a collection parameter")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(u.String()))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect: %w", err)
	}

	return &mongoSource{
		client:     client,
		collection: client.Database(dbName).Collection(collection),
	}, nil
}

type mongoSource struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func (ms *mongoSource) Records(ctx context.Context) ([]*core.Record, error) {
	cursor, err := ms.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("collection.Find: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*core.Record
	for cursor.Next(ctx) {
		var doc bson.D
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("cursor.Decode: %w", err)
		}
		records = append(records, mongoRecord(doc))
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor.Err: %w", err)
	}

	return records, nil
}

func (ms *mongoSource) Close() {
	_ = ms.client.Disconnect(context.Background())
}

// mongoRecord keeps the field order of the document.
func mongoRecord(doc bson.D) *core.Record {
	record := core.NewRecord()
	for _, elem := range doc {
		record.Set(elem.Key, core.ValueOf(normalizeMongo(elem.Value)))
	}
	return record
}

// normalizeMongo converts bson specific types to plain go values.
func normalizeMongo(v any) any {
	switch val := v.(type) {
	case bson.D:
		// maps would lose the field order
		b, err := bson.MarshalExtJSON(val, false, false)
		if err != nil {
			return nil
		}
		return core.Object(string(b))
	case bson.M:
		m := make(map[string]any, len(val))
		for k, elem := range val {
			m[k] = normalizeMongo(elem)
		}
		return m
	case bson.A:
		a := make([]any, len(val))
		for i, elem := range val {
			a[i] = normalizeMongo(elem)
		}
		return a
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339)
	case primitive.Timestamp:
		return time.Unix(int64(val.T), 0).UTC().Format(time.RFC3339)
	case primitive.Decimal128:
		return val.String()
	case primitive.Null, primitive.Undefined:
		return nil
	}
	return v
}
