package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pressmind/internal/database"
	"pressmind/internal/models"
)

const tagCacheKey = "tags:all"

// TagService manages content tags. Tags are resolved or created by name when
// drafts are saved; lookups are case-insensitive via slug.
type TagService struct {
	db         *database.MongoDB
	collection *mongo.Collection
	cache      *cache.Cache
}

// NewTagService creates a new tag service.
func NewTagService(db *database.MongoDB, ttl time.Duration) *TagService {
	var collection *mongo.Collection
	if db != nil {
		collection = db.Collection(database.CollectionTags)
	}
	return &TagService{
		db:         db,
		collection: collection,
		cache:      cache.New(ttl, 2*ttl),
	}
}

// List returns all tags sorted by name, served from cache when fresh.
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	if cached, found := s.cache.Get(tagCacheKey); found {
		return cached.([]models.Tag), nil
	}

	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer cursor.Close(ctx)

	var tags []models.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}

	s.cache.SetDefault(tagCacheKey, tags)
	return tags, nil
}

// ResolveOrCreate maps tag names to ids, creating missing tags. Matching is
// by slug so "Next.js" and "next.js" resolve to the same record.
func (s *TagService) ResolveOrCreate(ctx context.Context, names []string) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	seen := map[string]bool{}
	dirty := false

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		slug := Slugify(name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true

		var tag models.Tag
		err := s.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&tag)
		switch {
		case err == mongo.ErrNoDocuments:
			tag = models.Tag{Name: name, Slug: slug, CreatedAt: time.Now()}
			result, insertErr := s.collection.InsertOne(ctx, tag)
			if insertErr != nil {
				return nil, fmt.Errorf("failed to create tag %q: %w", name, insertErr)
			}
			ids = append(ids, result.InsertedID.(primitive.ObjectID))
			dirty = true
		case err != nil:
			return nil, fmt.Errorf("failed to look up tag %q: %w", name, err)
		default:
			ids = append(ids, tag.ID)
		}
	}

	if dirty {
		s.cache.Flush()
	}
	return ids, nil
}
