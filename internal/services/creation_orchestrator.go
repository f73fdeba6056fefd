package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pressmind/internal/generation"
	"pressmind/internal/models"
)

// ErrSessionBusy is returned when another message for the same session is
// already being processed (single-writer lock held).
var ErrSessionBusy = errors.New("another message for this session is being processed")

// sessionLockTTL must outlive the slowest generation call the lock protects;
// server timeouts cap a conversation turn at five minutes.
const sessionLockTTL = 5 * time.Minute

// Narrow views of the services the orchestrator depends on. The Mongo-backed
// implementations satisfy them; tests substitute in-memory fakes.
type sessionStore interface {
	Create(ctx context.Context, userID string) (*models.CreationSession, error)
	FindActive(ctx context.Context, sessionID, userID string) (*models.CreationSession, error)
	Get(ctx context.Context, sessionID, userID string) (*models.CreationSession, error)
	Commit(ctx context.Context, session *models.CreationSession) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.CreationSession, error)
}

type categoryCatalog interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
}

type tagResolver interface {
	ResolveOrCreate(ctx context.Context, names []string) ([]primitive.ObjectID, error)
}

type draftWriter interface {
	CreateDraft(ctx context.Context, userID string, draft *models.DraftPayload, tagIDs []primitive.ObjectID) (*models.Post, error)
}

// MessageResponse is the orchestrator output for one user message.
type MessageResponse struct {
	Success        bool                   `json:"success"`
	Message        string                 `json:"message"`
	Questions      []Question             `json:"questions,omitempty"`
	Actions        []string               `json:"actions,omitempty"`
	ShouldGenerate bool                   `json:"shouldGenerate,omitempty"`
	Session        models.SessionResponse `json:"session"`
}

type stageHandler func(ctx context.Context, session *models.CreationSession, message string) stageResult

// CreationOrchestrator drives the guided blog-creation conversation: it
// dispatches each user message to the handler for the session's current
// stage, commits stage and collected data together, and triggers generation
// and draft persistence at the terminal stages.
type CreationOrchestrator struct {
	store      sessionStore
	categories categoryCatalog
	tags       tagResolver
	posts      draftWriter
	gateway    *generation.Gateway
	redis      *RedisService
	metrics    *Metrics

	handlers map[models.Stage]stageHandler
}

// NewCreationOrchestrator wires the orchestrator. redis and metrics may be nil.
func NewCreationOrchestrator(
	store sessionStore,
	categories categoryCatalog,
	tags tagResolver,
	posts draftWriter,
	gateway *generation.Gateway,
	redis *RedisService,
	metrics *Metrics,
) *CreationOrchestrator {
	o := &CreationOrchestrator{
		store:      store,
		categories: categories,
		tags:       tags,
		posts:      posts,
		gateway:    gateway,
		redis:      redis,
		metrics:    metrics,
	}
	// Explicit per-stage dispatch table; stages without an entry do not
	// accept user messages.
	o.handlers = map[models.Stage]stageHandler{
		models.StageTopicDiscovery:      o.handleTopicDiscovery,
		models.StageTypeSelection:       o.handleTypeSelection,
		models.StageDetailsCollection:   o.handleDetailsCollection,
		models.StageCategorySelection:   o.handleCategorySelection,
		models.StageReviewAndConfirm:    o.handleReviewAndConfirm,
		models.StageFinalConfirmation:   o.handleFinalConfirmation,
		models.StageGenerating:          o.handleGenerating,
		models.StageGenerationCompleted: o.handleGenerationCompleted,
	}
	return o
}

// StartSession creates a new session. When topic is non-empty it is processed
// immediately as the first user message.
func (o *CreationOrchestrator) StartSession(ctx context.Context, userID, topic string) (*MessageResponse, error) {
	session, err := o.store.Create(ctx, userID)
	if err != nil {
		return nil, err
	}
	if o.metrics != nil {
		o.metrics.SessionsStarted.Inc()
	}
	log.Printf("📝 Started creation session %s for user %s", session.SessionID, userID)

	if strings.TrimSpace(topic) != "" {
		return o.processMessage(ctx, session, topic)
	}

	return &MessageResponse{
		Success:   true,
		Message:   session.Messages[0].Content,
		Session:   session.ToResponse(),
		Questions: nil,
	}, nil
}

// HandleMessage processes one user message for a session, holding the
// per-session writer lock when Redis is configured.
func (o *CreationOrchestrator) HandleMessage(ctx context.Context, sessionID, userID, message string) (*MessageResponse, error) {
	if o.redis != nil {
		acquired, err := o.redis.AcquireSessionLock(ctx, sessionID, sessionLockTTL)
		if err != nil {
			// Lock service failure degrades to last-write-wins rather than
			// blocking the conversation.
			log.Printf("⚠️ Session lock unavailable for %s: %v", sessionID, err)
		} else if !acquired {
			return nil, ErrSessionBusy
		} else {
			defer func() {
				if err := o.redis.ReleaseSessionLock(context.Background(), sessionID); err != nil {
					log.Printf("⚠️ Failed to release session lock for %s: %v", sessionID, err)
				}
			}()
		}
	}

	session, err := o.store.FindActive(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	return o.processMessage(ctx, session, message)
}

// processMessage appends the user message, dispatches the stage handler,
// commits the session, and triggers generation when requested.
func (o *CreationOrchestrator) processMessage(ctx context.Context, session *models.CreationSession, message string) (*MessageResponse, error) {
	o.appendMessage(session, models.RoleUser, message)

	handler, ok := o.handlers[session.Stage]
	if !ok {
		return nil, fmt.Errorf("session %s does not accept messages at stage %s", session.SessionID, session.Stage)
	}

	result := handler(ctx, session, message)

	if result.Success && result.NextStage != "" {
		session.Stage = result.NextStage
		if result.NextStage == models.StageCancelled {
			session.Status = models.SessionStatusCancelled
		}
	}
	o.appendMessage(session, models.RoleAgent, result.Message)

	if o.metrics != nil {
		o.metrics.SessionMessages.WithLabelValues(string(session.Stage)).Inc()
	}

	if err := o.store.Commit(ctx, session); err != nil {
		return nil, err
	}

	if result.ShouldGenerate {
		o.runGeneration(ctx, session)
	}

	return &MessageResponse{
		Success:        result.Success,
		Message:        result.Message,
		Questions:      result.Questions,
		Actions:        result.Actions,
		ShouldGenerate: result.ShouldGenerate,
		Session:        session.ToResponse(),
	}, nil
}

func (o *CreationOrchestrator) appendMessage(session *models.CreationSession, role, content string) {
	session.Messages = append(session.Messages, models.SessionMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Stage:     session.Stage,
		Timestamp: time.Now(),
	})
}

// ---- stage handlers ----

func (o *CreationOrchestrator) handleTopicDiscovery(_ context.Context, session *models.CreationSession, message string) stageResult {
	topic := strings.TrimSpace(message)
	if topic == "" {
		return stageResult{Success: false, Message: "Tell me the topic you want to write about."}
	}

	session.Collected.Topic = topic
	session.Collected.Title = GenerateTitleFromTopic(topic)

	return stageResult{
		Success:   true,
		NextStage: models.StageTypeSelection,
		Message:   fmt.Sprintf("Great, we'll write about \"%s\".", topic),
		Questions: []Question{templateQuestion()},
	}
}

func (o *CreationOrchestrator) handleTypeSelection(_ context.Context, session *models.CreationSession, message string) stageResult {
	key, matched := generation.ResolveTemplate(message)
	session.Collected.Template = key

	t, _ := generation.GetTemplate(key)
	reply := fmt.Sprintf("We'll structure it as a %s.", strings.ToLower(t.Name))
	if !matched {
		// Explicit permissive fallback: unknown input selects the
		// informative template instead of failing the stage.
		reply = fmt.Sprintf("I didn't recognize that format, so I'll go with an %s.", strings.ToLower(t.Name))
	}

	return stageResult{
		Success:   true,
		NextStage: models.StageDetailsCollection,
		Message:   reply,
		Questions: []Question{detailsQuestion()},
	}
}

func (o *CreationOrchestrator) handleDetailsCollection(ctx context.Context, session *models.CreationSession, message string) stageResult {
	categories, err := o.categories.List(ctx)
	if err != nil {
		log.Printf("❌ Failed to load categories for session %s: %v", session.SessionID, err)
		return stageResult{
			Success: false,
			Message: "I couldn't load the category catalog just now. Please send your details again.",
		}
	}
	if len(categories) == 0 {
		return stageResult{
			Success: false,
			Message: "There are no categories configured yet. Ask an administrator to create one, then try again.",
		}
	}

	audience, length, keywords := parseDetails(message)
	session.Collected.Audience = audience
	session.Collected.Length = length
	if len(keywords) > 0 {
		session.Collected.Keywords = keywords
	}

	options := make([]models.CategoryOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, models.CategoryOption{ID: c.ID.Hex(), Name: c.Name})
	}
	session.CategoryOptions = options

	return stageResult{
		Success:   true,
		NextStage: models.StageCategorySelection,
		Message:   fmt.Sprintf("Noted: %s readers, about %d words.", audience, length),
		Questions: []Question{categoryQuestion(options)},
	}
}

func (o *CreationOrchestrator) handleCategorySelection(ctx context.Context, session *models.CreationSession, message string) stageResult {
	resolved := resolveCategoryInput(message, session.CategoryOptions)

	category, err := o.categories.GetByID(ctx, resolved)
	if err != nil {
		return stageResult{
			Success:   false,
			Message:   "That doesn't match any category. Pick one of the listed options by number, id or name.",
			Questions: []Question{categoryQuestion(session.CategoryOptions)},
		}
	}

	session.Collected.Category = category.ID.Hex()

	return stageResult{
		Success:   true,
		NextStage: models.StageReviewAndConfirm,
		Message:   renderSummary(session.Collected, category.Name),
	}
}

func (o *CreationOrchestrator) handleReviewAndConfirm(_ context.Context, session *models.CreationSession, message string) stageResult {
	switch ClassifyIntent(message) {
	case IntentModify:
		// Explicit backtrack: detail fields are re-collected, topic and
		// template stay.
		session.Collected.Audience = ""
		session.Collected.Length = 0
		session.Collected.Keywords = nil
		session.Collected.Category = ""
		return stageResult{
			Success:   true,
			NextStage: models.StageDetailsCollection,
			Message:   "No problem, let's adjust the details.",
			Questions: []Question{detailsQuestion()},
		}
	case IntentCancel:
		return stageResult{
			Success:   true,
			NextStage: models.StageCancelled,
			Message:   "Session cancelled. Start a new one whenever you're ready.",
		}
	case IntentConfirm:
		return stageResult{
			Success:        true,
			NextStage:      models.StageGenerating,
			ShouldGenerate: true,
			Message:        "Generating your post now. This can take a minute…",
		}
	default:
		return stageResult{
			Success:   true,
			NextStage: models.StageFinalConfirmation,
			Message:   "Just to confirm: should I generate the post with this configuration? Anything other than \"cancel\" starts the generation.",
		}
	}
}

func (o *CreationOrchestrator) handleFinalConfirmation(_ context.Context, session *models.CreationSession, message string) stageResult {
	if ClassifyIntent(message) == IntentCancel {
		return stageResult{
			Success:   true,
			NextStage: models.StageCancelled,
			Message:   "Session cancelled. Start a new one whenever you're ready.",
		}
	}
	return stageResult{
		Success:        true,
		NextStage:      models.StageGenerating,
		ShouldGenerate: true,
		Message:        "Generating your post now. This can take a minute…",
	}
}

func (o *CreationOrchestrator) handleGenerating(_ context.Context, session *models.CreationSession, message string) stageResult {
	gen := session.Generation
	// A nil record here means the pending write never landed; like a failed
	// generation it retries with the same collected data.
	if gen == nil || gen.Status == models.GenerationFailed {
		if ClassifyIntent(message) == IntentCancel {
			return stageResult{
				Success:   true,
				NextStage: models.StageCancelled,
				Message:   "Session cancelled.",
			}
		}
		return stageResult{
			Success:        true,
			ShouldGenerate: true,
			Message:        "Retrying the generation with the same configuration…",
		}
	}
	return stageResult{
		Success: true,
		Message: "The post is still being generated, one moment…",
	}
}

func (o *CreationOrchestrator) handleGenerationCompleted(_ context.Context, session *models.CreationSession, _ string) stageResult {
	return stageResult{
		Success: true,
		Message: "Your draft is ready. Save it to your posts, or cancel the session to discard it.",
		Actions: []string{"save_draft", "cancel"},
	}
}

// ---- generation + persistence ----

// runGeneration performs the out-of-band generation step. Failures are
// isolated to the generation sub-record; collected data stays intact and the
// session remains active for retry.
func (o *CreationOrchestrator) runGeneration(ctx context.Context, session *models.CreationSession) {
	gen := models.NewPendingGeneration(uuid.NewString())
	session.Generation = gen
	session.Stage = models.StageGenerating
	if err := o.store.Commit(ctx, session); err != nil {
		log.Printf("❌ Failed to persist pending generation for %s: %v", session.SessionID, err)
		return
	}

	if o.metrics != nil {
		o.metrics.GenerationRequests.Inc()
	}

	categoryName := session.Collected.Topic
	if cat, err := o.categories.GetByID(ctx, session.Collected.Category); err == nil {
		categoryName = cat.Name
	}

	result, err := o.gateway.Generate(ctx, generation.Request{
		Title:     session.Collected.Title,
		Topic:     session.Collected.Topic,
		Category:  categoryName,
		Template:  session.Collected.Template,
		Audience:  session.Collected.Audience,
		WordCount: session.Collected.Length,
		Keywords:  session.Collected.Keywords,
	})
	if err != nil {
		log.Printf("❌ Generation failed for session %s: %v", session.SessionID, err)
		gen.Fail(err.Error())
		if o.metrics != nil {
			o.metrics.GenerationFailures.Inc()
		}
		o.appendMessage(session, models.RoleAgent, "The generation failed. Send any message to retry, or \"cancelar\" to stop.")
		if commitErr := o.store.Commit(ctx, session); commitErr != nil {
			log.Printf("❌ Failed to persist failed generation for %s: %v", session.SessionID, commitErr)
		}
		return
	}

	html, err := generation.RenderHTML(result.Content)
	if err != nil {
		log.Printf("⚠️ HTML render failed for session %s: %v", session.SessionID, err)
	}

	draft := &models.DraftPayload{
		Title:      session.Collected.Title,
		Content:    result.Content,
		HTML:       html,
		Excerpt:    generation.Excerpt(result.Content, 160),
		CategoryID: session.Collected.Category,
		Keywords:   session.Collected.Keywords,
		Template:   session.Collected.Template,
		SEOScore:   result.SEOScore,
	}
	meta := &models.GenerationMetadata{
		WordCount:     result.WordCount,
		SEOScore:      result.SEOScore,
		TagCandidates: result.TagCandidates,
		Model:         result.Model,
		DurationMs:    result.Duration.Milliseconds(),
	}

	gen.Complete(result.Content, meta, draft)
	session.Stage = models.StageGenerationCompleted
	if o.metrics != nil {
		o.metrics.GenerationLatency.Observe(result.Duration.Seconds())
	}

	o.appendMessage(session, models.RoleAgent,
		fmt.Sprintf("Done! I generated a %d-word draft (SEO pre-score %d). Save it when you're ready.", result.WordCount, result.SEOScore))

	if err := o.store.Commit(ctx, session); err != nil {
		log.Printf("❌ Failed to persist completed generation for %s: %v", session.SessionID, err)
	}
}

// SaveDraft persists the finalized generation draft as a new post owned by
// the requesting user and links it back onto the session. There is no dedup
// guard: calling it twice creates two posts (known product gap).
func (o *CreationOrchestrator) SaveDraft(ctx context.Context, sessionID, userID string) (*models.Post, error) {
	session, err := o.store.FindActive(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	gen := session.Generation
	if gen == nil || gen.Status != models.GenerationCompleted || gen.Draft == nil {
		return nil, fmt.Errorf("session %s has no completed generation draft to save", sessionID)
	}

	tagNames := gen.Draft.Keywords
	if len(tagNames) == 0 && gen.Metadata != nil {
		tagNames = gen.Metadata.TagCandidates
		if len(tagNames) > 5 {
			tagNames = tagNames[:5]
		}
	}
	tagIDs, err := o.tags.ResolveOrCreate(ctx, tagNames)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}

	post, err := o.posts.CreateDraft(ctx, userID, gen.Draft, tagIDs)
	if err != nil {
		return nil, err
	}

	session.SavedPostID = post.ID.Hex()
	session.Stage = models.StageDraftSaved
	o.appendMessage(session, models.RoleAgent, fmt.Sprintf("Draft saved as post %s.", post.ID.Hex()))
	if err := o.store.Commit(ctx, session); err != nil {
		log.Printf("⚠️ Draft %s saved but session %s not updated: %v", post.ID.Hex(), sessionID, err)
	}

	if o.metrics != nil {
		o.metrics.DraftsSaved.Inc()
	}
	return post, nil
}

// Cancel terminates a session from any non-terminal stage.
func (o *CreationOrchestrator) Cancel(ctx context.Context, sessionID, userID string) (*models.SessionResponse, error) {
	session, err := o.store.FindActive(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	session.Status = models.SessionStatusCancelled
	session.Stage = models.StageCancelled
	o.appendMessage(session, models.RoleAgent, "Session cancelled.")
	if err := o.store.Commit(ctx, session); err != nil {
		return nil, err
	}

	resp := session.ToResponse()
	return &resp, nil
}

// ListSessions returns the caller's most recent sessions.
func (o *CreationOrchestrator) ListSessions(ctx context.Context, userID string) ([]models.SessionResponse, error) {
	sessions, err := o.store.ListByUser(ctx, userID, 20)
	if err != nil {
		return nil, err
	}
	out := make([]models.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, sessions[i].ToResponse())
	}
	return out, nil
}

// GetSession returns a session in its caller-facing shape regardless of
// lifecycle state (history display).
func (o *CreationOrchestrator) GetSession(ctx context.Context, sessionID, userID string) (*models.SessionResponse, error) {
	session, err := o.store.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	resp := session.ToResponse()
	return &resp, nil
}
