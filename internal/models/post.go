package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post status values
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// Post is a persisted content record. Drafts created by the assistant flow
// start with status "draft" and are never mutated by the orchestrator again.
type Post struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID        string               `bson:"userId" json:"user_id"`
	Title         string               `bson:"title" json:"title"`
	Content       string               `bson:"content" json:"content"`
	HTML          string               `bson:"html,omitempty" json:"html,omitempty"`
	Excerpt       string               `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	CategoryID    primitive.ObjectID   `bson:"categoryId,omitempty" json:"category_id,omitempty"`
	TagIDs        []primitive.ObjectID `bson:"tagIds,omitempty" json:"tag_ids,omitempty"`
	FeaturedImage string               `bson:"featuredImage,omitempty" json:"featured_image,omitempty"`
	SEO           *PostSEO             `bson:"seo,omitempty" json:"seo,omitempty"`
	Status        string               `bson:"status" json:"status"`
	CommentsOff   bool                 `bson:"commentsOff,omitempty" json:"comments_off,omitempty"`
	CreatedAt     time.Time            `bson:"createdAt" json:"created_at"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updated_at"`
}

// PostSEO is the SEO metadata block attached to a post.
type PostSEO struct {
	MetaTitle       string   `bson:"metaTitle,omitempty" json:"meta_title,omitempty"`
	MetaDescription string   `bson:"metaDescription,omitempty" json:"meta_description,omitempty"`
	Keywords        []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
	Score           int      `bson:"score,omitempty" json:"score,omitempty"`
}

// PostListItem is a summary for listing posts without the full body.
type PostListItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToListItem converts a post to its list summary.
func (p *Post) ToListItem() PostListItem {
	return PostListItem{
		ID:        p.ID.Hex(),
		Title:     p.Title,
		Excerpt:   p.Excerpt,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
