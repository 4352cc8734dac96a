package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marketplace/identity-api/internal/core/domain"
)

const loginEventsCollection = "login_events"

// LoginEventRepository persists the authentication audit trail.
type LoginEventRepository struct {
	coll *mongo.Collection
}

// NewLoginEventRepository creates a LoginEventRepository on db.
func NewLoginEventRepository(db *mongo.Database) *LoginEventRepository {
	return &LoginEventRepository{coll: db.Collection(loginEventsCollection)}
}

type loginEventDoc struct {
	Fingerprint string    `bson:"fingerprint,omitempty"`
	Outcome     string    `bson:"outcome"`
	UserID      string    `bson:"user_id,omitempty"`
	Role        string    `bson:"role,omitempty"`
	SessionID   string    `bson:"session_id,omitempty"`
	IP          string    `bson:"ip,omitempty"`
	UserAgent   string    `bson:"user_agent,omitempty"`
	Timestamp   time.Time `bson:"timestamp"`
	RecordedAt  time.Time `bson:"recorded_at"`
}

// EnsureIndexes creates the lookup indexes used by audit queries.
func (r *LoginEventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "fingerprint", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create login event indexes: %w", err)
	}
	return nil
}

// Insert appends one event to the audit trail.
func (r *LoginEventRepository) Insert(ctx context.Context, event *domain.LoginEvent) error {
	doc := loginEventDoc{
		Fingerprint: event.Fingerprint,
		Outcome:     string(event.Outcome),
		UserID:      event.UserID,
		Role:        string(event.Role),
		SessionID:   event.SessionID,
		IP:          event.IP,
		UserAgent:   event.UserAgent,
		Timestamp:   event.Timestamp.UTC(),
		RecordedAt:  time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert login event: %w", err)
	}
	return nil
}
