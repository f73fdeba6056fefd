package services

import (
	"context"
	"fmt"
	"log"
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

const categoryCacheKey = "categories:all"

// CategoryService manages the content category catalog with a read-through
// TTL cache. Any write flushes the cache entirely.
type CategoryService struct {
	db         *database.MongoDB
	collection *mongo.Collection
	cache      *cache.Cache
}

// NewCategoryService creates a new category service.
func NewCategoryService(db *database.MongoDB, ttl time.Duration) *CategoryService {
	var collection *mongo.Collection
	if db != nil {
		collection = db.Collection(database.CollectionCategories)
	}
	return &CategoryService{
		db:         db,
		collection: collection,
		cache:      cache.New(ttl, 2*ttl),
	}
}

// List returns all categories sorted by name, served from cache when fresh.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	if cached, found := s.cache.Get(categoryCacheKey); found {
		return cached.([]models.Category), nil
	}

	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	s.cache.SetDefault(categoryCacheKey, categories)
	return categories, nil
}

// GetByID returns one category or mongo.ErrNoDocuments when the id is unknown.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid category id: %w", err)
	}

	var category models.Category
	if err := s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Create inserts a category and invalidates the cache.
func (s *CategoryService) Create(ctx context.Context, name, description string) (*models.Category, error) {
	category := &models.Category{
		Name:        name,
		Slug:        Slugify(name),
		Description: description,
		CreatedAt:   time.Now(),
	}

	result, err := s.collection.InsertOne(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	category.ID = result.InsertedID.(primitive.ObjectID)

	s.cache.Flush()
	return category, nil
}

// defaultCategories seed the catalog on an empty database.
var defaultCategories = []string{
	"Web Development",
	"Backend",
	"DevOps",
	"Databases",
	"AI & Machine Learning",
	"Career",
}

// Seed inserts the default catalog when the collection is empty.
func (s *CategoryService) Seed(ctx context.Context) error {
	count, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(defaultCategories))
	for _, name := range defaultCategories {
		docs = append(docs, models.Category{Name: name, Slug: Slugify(name), CreatedAt: now})
	}
	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	log.Printf("✅ Seeded %d default categories", len(defaultCategories))
	s.cache.Flush()
	return nil
}

// Slugify converts a display name to a URL-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var sb strings.Builder
	lastDash := false
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && sb.Len() > 0 {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
