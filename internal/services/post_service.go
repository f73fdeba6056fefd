package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pressmind/internal/database"
	"pressmind/internal/models"
)

// ErrPostNotFound is returned when a post does not exist or belongs to
// another user.
var ErrPostNotFound = errors.New("post not found")

// PostService persists content records. The assistant flow only ever creates
// drafts; editing and publishing happen through the regular CMS endpoints.
type PostService struct {
	db         *database.MongoDB
	collection *mongo.Collection
}

// NewPostService creates a new post service.
func NewPostService(db *database.MongoDB) *PostService {
	var collection *mongo.Collection
	if db != nil {
		collection = db.Collection(database.CollectionPosts)
	}
	return &PostService{db: db, collection: collection}
}

// CreateDraft inserts a new draft post from a completed generation payload.
// Called once per saveDraft; there is deliberately no dedup guard, so calling
// saveDraft twice creates two records (known product gap).
func (s *PostService) CreateDraft(ctx context.Context, userID string, draft *models.DraftPayload, tagIDs []primitive.ObjectID) (*models.Post, error) {
	categoryID, err := primitive.ObjectIDFromHex(draft.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id on draft: %w", err)
	}

	now := time.Now()
	post := &models.Post{
		UserID:     userID,
		Title:      draft.Title,
		Content:    draft.Content,
		HTML:       draft.HTML,
		Excerpt:    draft.Excerpt,
		CategoryID: categoryID,
		TagIDs:     tagIDs,
		SEO: &models.PostSEO{
			MetaTitle:       draft.Title,
			MetaDescription: draft.Excerpt,
			Keywords:        draft.Keywords,
			Score:           draft.SEOScore,
		},
		Status:    models.PostStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := s.collection.InsertOne(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft post: %w", err)
	}
	post.ID = result.InsertedID.(primitive.ObjectID)

	log.Printf("✅ Created draft post %s for user %s", post.ID.Hex(), userID)
	return post, nil
}

// GetByID returns a post owned by the user.
func (s *PostService) GetByID(ctx context.Context, id, userID string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post id: %w", err)
	}

	var post models.Post
	err = s.collection.FindOne(ctx, bson.M{"_id": oid, "userId": userID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// ListByUser returns the user's posts sorted by recency.
func (s *PostService) ListByUser(ctx context.Context, userID string, limit int64) ([]models.PostListItem, error) {
	opts := options.Find().SetSort(bson.M{"updatedAt": -1}).SetLimit(limit)
	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.PostListItem
	for cursor.Next(ctx) {
		var post models.Post
		if err := cursor.Decode(&post); err != nil {
			log.Printf("⚠️ Failed to decode post: %v", err)
			continue
		}
		items = append(items, post.ToListItem())
	}
	return items, nil
}
