// Package audit records moderation actions in a MongoDB collection.
//
// Moderation state changes (suspend, unsuspend, ban) are the authoritative,
// durable effects of an admin action; the audit trail is a secondary record
// and must never slow down or fail the action itself. Entries are therefore
// enqueued into a buffered channel and flushed by a single background
// goroutine in batches. A full queue drops the entry.
//
//	trail, err := audit.Open(config.AuditMongoURI())
//	trail.Record(audit.Entry{Action: "ban", ActorID: adminID, TargetID: sellerID, Reason: reason})
//	defer trail.Close()
package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/sokoni/pkg/logger"
)

const (
	queueSize = 1024
	batchSize = 50
	drainTick = 2 * time.Second

	database   = "sokoni"
	collection = "moderation_audit"
)

// Entry is one moderation action as stored in MongoDB.
type Entry struct {
	Time     time.Time `bson:"time"`
	Action   string    `bson:"action"`
	ActorID  uint      `bson:"actor_id"`
	TargetID uint      `bson:"target_id"`
	Reason   string    `bson:"reason,omitempty"`
	Detail   bson.M    `bson:"detail,omitempty"`
}

// Trail is an asynchronous audit writer. The zero value (and a nil *Trail)
// discard all entries, so callers never need to nil-check.
type Trail struct {
	col    *mongo.Collection
	client *mongo.Client
	queue  chan Entry
	done   chan struct{}
}

// Open connects to MongoDB and starts the drain goroutine.
// An empty uri returns a nil trail that discards entries.
func Open(uri string) (*Trail, error) {
	if uri == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("audit: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("audit: ping: %w", err)
	}

	col := client.Database(database).Collection(collection)

	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "target_id", Value: 1}, {Key: "time", Value: -1}},
	})

	t := &Trail{
		col:    col,
		client: client,
		queue:  make(chan Entry, queueSize),
		done:   make(chan struct{}),
	}

	go t.drainLoop()
	return t, nil
}

// Record enqueues an entry. Non-blocking; drops when the queue is full.
func (t *Trail) Record(e Entry) {
	if t == nil {
		return
	}

	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	select {
	case t.queue <- e:
	default:
		logger.Warn("audit: queue full, entry dropped", "action", e.Action, "target_id", e.TargetID)
	}
}

// Close flushes pending entries and disconnects.
func (t *Trail) Close() error {
	if t == nil {
		return nil
	}

	close(t.queue)
	<-t.done

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return t.client.Disconnect(ctx)
}

func (t *Trail) drainLoop() {
	defer close(t.done)

	ticker := time.NewTicker(drainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if _, err := t.col.InsertMany(ctx, batch); err != nil {
			logger.Error("audit: insert batch", "error", err, "count", len(batch))
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case e, ok := <-t.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, e)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
