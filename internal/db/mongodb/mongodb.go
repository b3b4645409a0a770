package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/querygate/querygate/internal/config"
	"github.com/querygate/querygate/internal/db"
)

const defaultCollection = "default"

// MongoDB implements the Handler interface for MongoDB
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	config   config.MongoDBConfig
}

// New creates a new MongoDB handler
func New(cfg config.MongoDBConfig) *MongoDB {
	return &MongoDB{config: cfg}
}

// Kind returns the database kind identifier
func (m *MongoDB) Kind() string {
	return db.KindMongoDB
}

// Connect establishes connection to MongoDB
func (m *MongoDB) Connect(ctx context.Context) error {
	clientOptions := options.Client().ApplyURI(m.config.URI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m.client = client
	m.database = client.Database(m.config.Database)
	return nil
}

// Close closes the MongoDB connection
func (m *MongoDB) Close(ctx context.Context) error {
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}
	return nil
}

// Ping checks the database connection
func (m *MongoDB) Ping(ctx context.Context) error {
	if m.client == nil {
		return db.ErrNotConnected
	}
	return m.client.Ping(ctx, nil)
}

// Execute runs one document operation. The parameters mapping carries the
// collection name and the operation body (filter, document(s), update or
// pipeline). Reads are normalized into field mappings with ObjectIDs
// rendered as hex strings; writes are reported as counts.
func (m *MongoDB) Execute(ctx context.Context, operation, query string, params any) (*db.Result, error) {
	if m.database == nil {
		return nil, db.ErrNotConnected
	}

	p, err := paramsMap(params)
	if err != nil {
		return nil, err
	}
	coll := m.database.Collection(collectionName(p))

	switch operation {
	case "find":
		return m.find(ctx, coll, p)
	case "insert":
		return m.insert(ctx, coll, p)
	case "update":
		return m.update(ctx, coll, p)
	case "delete":
		return m.delete(ctx, coll, p)
	case "count":
		n, err := coll.CountDocuments(ctx, filterOf(p))
		if err != nil {
			return nil, err
		}
		return db.Count(n), nil
	case "aggregate":
		return m.aggregate(ctx, coll, p)
	default:
		return nil, fmt.Errorf("%w for MongoDB: %s", db.ErrUnsupportedOperation, operation)
	}
}

func (m *MongoDB) find(ctx context.Context, coll *mongo.Collection, p map[string]any) (*db.Result, error) {
	opts := options.Find()
	if limit, ok := intParam(p, "limit"); ok {
		opts.SetLimit(limit)
	}

	cursor, err := coll.Find(ctx, filterOf(p), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeCursor(ctx, cursor)
}

func (m *MongoDB) insert(ctx context.Context, coll *mongo.Collection, p map[string]any) (*db.Result, error) {
	if docs, ok := p["documents"].([]any); ok {
		res, err := coll.InsertMany(ctx, docs)
		if err != nil {
			return nil, err
		}
		return db.Count(int64(len(res.InsertedIDs))), nil
	}

	doc, ok := p["document"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("insert requires a 'document' mapping or a 'documents' sequence")
	}
	if _, err := coll.InsertOne(ctx, bson.M(doc)); err != nil {
		return nil, err
	}
	return db.Count(1), nil
}

func (m *MongoDB) update(ctx context.Context, coll *mongo.Collection, p map[string]any) (*db.Result, error) {
	update, ok := p["update"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("update requires an 'update' mapping")
	}
	res, err := coll.UpdateMany(ctx, filterOf(p), bson.M(update))
	if err != nil {
		return nil, err
	}
	return db.Count(res.ModifiedCount), nil
}

func (m *MongoDB) delete(ctx context.Context, coll *mongo.Collection, p map[string]any) (*db.Result, error) {
	res, err := coll.DeleteMany(ctx, filterOf(p))
	if err != nil {
		return nil, err
	}
	return db.Count(res.DeletedCount), nil
}

func (m *MongoDB) aggregate(ctx context.Context, coll *mongo.Collection, p map[string]any) (*db.Result, error) {
	stages, ok := p["pipeline"].([]any)
	if !ok {
		return nil, fmt.Errorf("aggregate requires a 'pipeline' sequence")
	}

	pipeline := make(mongo.Pipeline, 0, len(stages))
	for i, stage := range stages {
		sm, ok := stage.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("pipeline stage %d is not a mapping", i)
		}
		d := bson.D{}
		for k, v := range sm {
			d = append(d, bson.E{Key: k, Value: v})
		}
		pipeline = append(pipeline, d)
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeCursor(ctx, cursor)
}

// decodeCursor drains a cursor into the normalized row shape
func decodeCursor(ctx context.Context, cursor *mongo.Cursor) (*db.Result, error) {
	rows := []map[string]any{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		rows = append(rows, normalizeDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return db.Rows(rows), nil
}

// normalizeDocument converts BSON-specific types into plain values so
// documents survive a JSON round-trip through the cache unchanged
func normalizeDocument(doc bson.M) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC().Format("2006-01-02T15:04:05.999Z07:00")
	case bson.M:
		return normalizeDocument(val)
	case bson.A:
		arr := make([]any, len(val))
		for i, item := range val {
			arr[i] = normalizeValue(item)
		}
		return arr
	default:
		return v
	}
}

func paramsMap(params any) (map[string]any, error) {
	switch p := params.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return p, nil
	default:
		return nil, fmt.Errorf("document backends take a parameter mapping, got %T", params)
	}
}

func collectionName(p map[string]any) string {
	if name, ok := p["collection"].(string); ok && name != "" {
		return name
	}
	return defaultCollection
}

// filterOf reads the operation filter, accepting the legacy "query" key
func filterOf(p map[string]any) bson.M {
	for _, key := range []string{"filter", "query"} {
		if f, ok := p[key].(map[string]any); ok {
			return bson.M(f)
		}
	}
	return bson.M{}
}

// intParam reads a numeric parameter that may arrive as a JSON float
func intParam(p map[string]any, key string) (int64, bool) {
	switch n := p[key].(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
