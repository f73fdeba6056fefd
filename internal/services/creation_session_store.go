package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pressmind/internal/database"
	"pressmind/internal/models"
)

// Sentinel errors for the session error taxonomy. Not-found/expired is the
// only terminal category for a conversation; handlers map these to distinct
// codes so the client can prompt the user to start over.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// CreationSessionStore persists guided-creation sessions in MongoDB.
type CreationSessionStore struct {
	db         *database.MongoDB
	collection *mongo.Collection
	ttl        time.Duration
	maxAge     time.Duration
}

// NewCreationSessionStore creates the session store. ttl drives the document
// TTL index; maxAge is the hard ceiling enforced by FindActive.
func NewCreationSessionStore(db *database.MongoDB, ttl, maxAge time.Duration) *CreationSessionStore {
	var collection *mongo.Collection
	if db != nil {
		collection = db.Collection(database.CollectionSessions)
	}
	return &CreationSessionStore{
		db:         db,
		collection: collection,
		ttl:        ttl,
		maxAge:     maxAge,
	}
}

// Create starts a new session at topic_discovery with the welcome message
// already in the log.
func (s *CreationSessionStore) Create(ctx context.Context, userID string) (*models.CreationSession, error) {
	now := time.Now()
	session := &models.CreationSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Stage:     models.StageTopicDiscovery,
		Progress:  models.StageTopicDiscovery.Progress(),
		Status:    models.SessionStatusActive,
		Messages: []models.SessionMessage{{
			ID:        uuid.NewString(),
			Role:      models.RoleAgent,
			Content:   "Let's create a blog post together. What topic do you want to write about?",
			Stage:     models.StageTopicDiscovery,
			Timestamp: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	result, err := s.collection.InsertOne(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.ID = result.InsertedID.(primitive.ObjectID)
	return session, nil
}

// FindActive loads a session that can still accept messages. It rejects
// cancelled and expired sessions, sessions past the maximum age, and sessions
// whose draft was already saved.
func (s *CreationSessionStore) FindActive(ctx context.Context, sessionID, userID string) (*models.CreationSession, error) {
	var session models.CreationSession
	err := s.collection.FindOne(ctx, bson.M{"sessionId": sessionID, "userId": userID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	now := time.Now()
	switch {
	case session.Status == models.SessionStatusCancelled:
		return nil, ErrSessionExpired
	case session.Status == models.SessionStatusExpired:
		return nil, ErrSessionExpired
	case now.After(session.ExpiresAt):
		return nil, ErrSessionExpired
	case now.Sub(session.CreatedAt) > s.maxAge:
		return nil, ErrSessionExpired
	case session.Stage.IsTerminal():
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// Get loads a session regardless of its lifecycle state (for history display).
func (s *CreationSessionStore) Get(ctx context.Context, sessionID, userID string) (*models.CreationSession, error) {
	var session models.CreationSession
	err := s.collection.FindOne(ctx, bson.M{"sessionId": sessionID, "userId": userID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

// Commit persists the session's mutable state in one update so stage and
// collected data always land together. The TTL window slides forward on every
// commit.
func (s *CreationSessionStore) Commit(ctx context.Context, session *models.CreationSession) error {
	now := time.Now()
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(s.ttl)
	session.Progress = session.Stage.Progress()

	_, err := s.collection.UpdateOne(ctx,
		bson.M{"sessionId": session.SessionID},
		bson.M{"$set": bson.M{
			"stage":           session.Stage,
			"progress":        session.Progress,
			"collected":       session.Collected,
			"messages":        session.Messages,
			"categoryOptions": session.CategoryOptions,
			"generation":      session.Generation,
			"savedPostId":     session.SavedPostID,
			"status":          session.Status,
			"updatedAt":       session.UpdatedAt,
			"expiresAt":       session.ExpiresAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	return nil
}

// ExpireStale marks active sessions past the maximum age as expired.
// Called by the background expiry job; returns the number of sessions touched.
func (s *CreationSessionStore) ExpireStale(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.maxAge)
	result, err := s.collection.UpdateMany(ctx,
		bson.M{"status": models.SessionStatusActive, "createdAt": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"status": models.SessionStatusExpired, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale sessions: %w", err)
	}
	return result.ModifiedCount, nil
}

// ListByUser returns the user's sessions sorted by recency.
func (s *CreationSessionStore) ListByUser(ctx context.Context, userID string, limit int64) ([]models.CreationSession, error) {
	opts := options.Find().SetSort(bson.M{"updatedAt": -1}).SetLimit(limit)
	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.CreationSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}
