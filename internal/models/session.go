package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stage is a named state in the guided blog-creation conversation.
type Stage string

const (
	StageInitialized         Stage = "initialized"
	StageTopicDiscovery      Stage = "topic_discovery"
	StageTypeSelection       Stage = "type_selection"
	StageDetailsCollection   Stage = "details_collection"
	StageCategorySelection   Stage = "category_selection"
	StageReviewAndConfirm    Stage = "review_and_confirm"
	StageFinalConfirmation   Stage = "final_confirmation"
	StageGenerating          Stage = "generating"
	StageGenerationCompleted Stage = "generation_completed"
	StageDraftSaved          Stage = "draft_saved"
	StageCancelled           Stage = "cancelled"
)

// stageProgress maps each stage to a presentation-only completion percentage.
// The map order mirrors the forward progression through the flow; backtracking
// (review -> details on "modify") and cancellation are the only exceptions.
var stageProgress = map[Stage]int{
	StageInitialized:         0,
	StageTopicDiscovery:      10,
	StageTypeSelection:       25,
	StageDetailsCollection:   40,
	StageCategorySelection:   55,
	StageReviewAndConfirm:    70,
	StageFinalConfirmation:   75,
	StageGenerating:          85,
	StageGenerationCompleted: 95,
	StageDraftSaved:          100,
	StageCancelled:           0,
}

// Progress returns the display percentage for a stage.
func (s Stage) Progress() int {
	return stageProgress[s]
}

// IsTerminal reports whether no further user messages are accepted at this stage.
func (s Stage) IsTerminal() bool {
	return s == StageDraftSaved || s == StageCancelled
}

// Session lifecycle status values
const (
	SessionStatusActive    = "active"
	SessionStatusCancelled = "cancelled"
	SessionStatusExpired   = "expired"
)

// MessageRole values for the session message log
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// CreationSession is one in-progress (or completed) guided blog-creation
// conversation. Stage and Collected are always committed together in a single
// update; Messages is append-only.
type CreationSession struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SessionID       string             `bson:"sessionId" json:"sessionId"`
	UserID          string             `bson:"userId" json:"userId"`
	Stage           Stage              `bson:"stage" json:"stage"`
	Progress        int                `bson:"progress" json:"progress"`
	Collected       Collected          `bson:"collected" json:"collected"`
	Messages        []SessionMessage   `bson:"messages" json:"messages"`
	CategoryOptions []CategoryOption   `bson:"categoryOptions,omitempty" json:"-"`
	Generation      *Generation        `bson:"generation,omitempty" json:"generation,omitempty"`
	SavedPostID     string             `bson:"savedPostId,omitempty" json:"savedPostId,omitempty"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
	ExpiresAt       time.Time          `bson:"expiresAt" json:"expiresAt"`
}

// Collected is the accumulating set of answers supplied across stages. Each
// field is written once by its stage handler and only cleared by an explicit
// "modify" backtrack.
type Collected struct {
	Topic    string   `bson:"topic,omitempty" json:"topic,omitempty"`
	Title    string   `bson:"title,omitempty" json:"title,omitempty"`
	Template string   `bson:"template,omitempty" json:"template,omitempty"`
	Audience string   `bson:"audience,omitempty" json:"audience,omitempty"`
	Length   int      `bson:"length,omitempty" json:"length,omitempty"`
	Keywords []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
	Category string   `bson:"category,omitempty" json:"category,omitempty"`
}

// SessionMessage is one entry in the append-only conversation log.
type SessionMessage struct {
	ID        string    `bson:"id" json:"id"`
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Stage     Stage     `bson:"stage" json:"stage"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// CategoryOption is one entry of the category list last presented to the user,
// kept on the session so ordinal answers can be resolved.
type CategoryOption struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Generation status values. A nil *Generation on the session means generation
// has not started; once created the record only moves pending -> completed or
// pending -> failed and is never re-opened.
const (
	GenerationPending   = "pending"
	GenerationCompleted = "completed"
	GenerationFailed    = "failed"
)

// Generation holds the state of the one generation attempt sub-record.
type Generation struct {
	GenerationID string              `bson:"generationId" json:"generationId"`
	Status       string              `bson:"status" json:"status"`
	Content      string              `bson:"content,omitempty" json:"content,omitempty"`
	Metadata     *GenerationMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Draft        *DraftPayload       `bson:"draft,omitempty" json:"draft,omitempty"`
	Error        string              `bson:"error,omitempty" json:"error,omitempty"`
	StartedAt    time.Time           `bson:"startedAt" json:"startedAt"`
	CompletedAt  *time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// NewPendingGeneration starts a generation sub-record.
func NewPendingGeneration(generationID string) *Generation {
	return &Generation{
		GenerationID: generationID,
		Status:       GenerationPending,
		StartedAt:    time.Now(),
	}
}

// Complete finalizes the record with the generated draft. No-op if the record
// already left the pending state.
func (g *Generation) Complete(content string, meta *GenerationMetadata, draft *DraftPayload) {
	if g.Status != GenerationPending {
		return
	}
	now := time.Now()
	g.Status = GenerationCompleted
	g.Content = content
	g.Metadata = meta
	g.Draft = draft
	g.CompletedAt = &now
}

// Fail finalizes the record with an error, preserving collected session state
// for retry. No-op if the record already left the pending state.
func (g *Generation) Fail(errMsg string) {
	if g.Status != GenerationPending {
		return
	}
	now := time.Now()
	g.Status = GenerationFailed
	g.Error = errMsg
	g.CompletedAt = &now
}

// GenerationMetadata is simple derived data about the generated text.
type GenerationMetadata struct {
	WordCount     int      `bson:"wordCount" json:"wordCount"`
	SEOScore      int      `bson:"seoScore" json:"seoScore"`
	TagCandidates []string `bson:"tagCandidates,omitempty" json:"tagCandidates,omitempty"`
	Model         string   `bson:"model,omitempty" json:"model,omitempty"`
	DurationMs    int64    `bson:"durationMs" json:"durationMs"`
}

// DraftPayload is the draft content assembled from a completed generation,
// consumed by saveDraft to create the Post record.
type DraftPayload struct {
	Title      string   `bson:"title" json:"title"`
	Content    string   `bson:"content" json:"content"`
	HTML       string   `bson:"html" json:"html"`
	Excerpt    string   `bson:"excerpt" json:"excerpt"`
	CategoryID string   `bson:"categoryId" json:"categoryId"`
	Keywords   []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
	Template   string   `bson:"template,omitempty" json:"template,omitempty"`
	SEOScore   int      `bson:"seoScore" json:"seoScore"`
}

// SessionResponse is the session JSON shape exposed to callers.
type SessionResponse struct {
	SessionID  string           `json:"sessionId"`
	Stage      Stage            `json:"stage"`
	Progress   int              `json:"progress"`
	Collected  Collected        `json:"collected"`
	Messages   []SessionMessage `json:"messages"`
	Generation *Generation      `json:"generation,omitempty"`
	Status     string           `json:"status"`
	PostID     string           `json:"postId,omitempty"`
}

// ToResponse converts a session document to its caller-facing shape.
func (s *CreationSession) ToResponse() SessionResponse {
	msgs := s.Messages
	if msgs == nil {
		msgs = []SessionMessage{}
	}
	return SessionResponse{
		SessionID:  s.SessionID,
		Stage:      s.Stage,
		Progress:   s.Stage.Progress(),
		Collected:  s.Collected,
		Messages:   msgs,
		Generation: s.Generation,
		Status:     s.Status,
		PostID:     s.SavedPostID,
	}
}

// UserMessageRequest is the request body for posting a message to a session.
type UserMessageRequest struct {
	Message string `json:"message"`
}

// StartSessionRequest optionally seeds the topic at session creation.
type StartSessionRequest struct {
	Topic string `json:"topic,omitempty"`
}
