package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pressmind/internal/generation"
	"pressmind/internal/models"
)

// In-memory fakes for the orchestrator's narrow service views.

type fakeSessionStore struct {
	sessions map[string]*models.CreationSession
	commits  int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*models.CreationSession{}}
}

func (f *fakeSessionStore) Create(_ context.Context, userID string) (*models.CreationSession, error) {
	session := &models.CreationSession{
		SessionID: fmt.Sprintf("session-%d", len(f.sessions)+1),
		UserID:    userID,
		Stage:     models.StageTopicDiscovery,
		Status:    models.SessionStatusActive,
		Messages: []models.SessionMessage{{
			ID:      "m0",
			Role:    models.RoleAgent,
			Content: "What topic do you want to write about?",
			Stage:   models.StageTopicDiscovery,
		}},
	}
	f.sessions[session.SessionID] = session
	return session, nil
}

func (f *fakeSessionStore) FindActive(_ context.Context, sessionID, userID string) (*models.CreationSession, error) {
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, ErrSessionNotFound
	}
	if s.Status != models.SessionStatusActive || s.Stage.IsTerminal() {
		return nil, ErrSessionExpired
	}
	return s, nil
}

func (f *fakeSessionStore) Get(_ context.Context, sessionID, userID string) (*models.CreationSession, error) {
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) Commit(_ context.Context, session *models.CreationSession) error {
	f.commits++
	f.sessions[session.SessionID] = session
	return nil
}

func (f *fakeSessionStore) ListByUser(_ context.Context, userID string, limit int64) ([]models.CreationSession, error) {
	var out []models.CreationSession
	for _, s := range f.sessions {
		if s.UserID == userID && int64(len(out)) < limit {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeCategoryCatalog struct {
	categories []models.Category
}

func (f *fakeCategoryCatalog) List(_ context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoryCatalog) GetByID(_ context.Context, id string) (*models.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID.Hex() == id {
			return &f.categories[i], nil
		}
	}
	return nil, errors.New("category not found")
}

type fakeTagResolver struct {
	resolved [][]string
}

func (f *fakeTagResolver) ResolveOrCreate(_ context.Context, names []string) ([]primitive.ObjectID, error) {
	f.resolved = append(f.resolved, names)
	ids := make([]primitive.ObjectID, len(names))
	for i := range names {
		ids[i] = primitive.NewObjectID()
	}
	return ids, nil
}

type fakeDraftWriter struct {
	created []*models.DraftPayload
}

func (f *fakeDraftWriter) CreateDraft(_ context.Context, userID string, draft *models.DraftPayload, _ []primitive.ObjectID) (*models.Post, error) {
	f.created = append(f.created, draft)
	return &models.Post{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Title:  draft.Title,
		Status: models.PostStatusDraft,
	}, nil
}

// testOrchestrator builds an orchestrator with no backing services; only the
// pure stage handlers are exercised.
func testOrchestrator() *CreationOrchestrator {
	return NewCreationOrchestrator(nil, nil, nil, nil, nil, nil, nil)
}

func newTestSession(stage models.Stage) *models.CreationSession {
	return &models.CreationSession{
		SessionID: "test-session",
		UserID:    "user-1",
		Stage:     stage,
		Status:    models.SessionStatusActive,
	}
}

func TestHandleTopicDiscovery(t *testing.T) {
	o := testOrchestrator()
	session := newTestSession(models.StageTopicDiscovery)

	result := o.handleTopicDiscovery(context.Background(), session, "  cómo escalar microservicios  ")

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.NextStage != models.StageTypeSelection {
		t.Errorf("expected transition to type_selection, got %s", result.NextStage)
	}
	if session.Collected.Topic != "cómo escalar microservicios" {
		t.Errorf("topic not collected: %q", session.Collected.Topic)
	}
	if session.Collected.Title != "Cómo escalar microservicios" {
		t.Errorf("title not derived: %q", session.Collected.Title)
	}
	if len(result.Questions) != 1 || len(result.Questions[0].Options) == 0 {
		t.Errorf("expected the template question, got %v", result.Questions)
	}
}

func TestHandleTopicDiscoveryEmpty(t *testing.T) {
	o := testOrchestrator()
	session := newTestSession(models.StageTopicDiscovery)

	result := o.handleTopicDiscovery(context.Background(), session, "   ")

	if result.Success {
		t.Error("blank topic should not succeed")
	}
	if result.NextStage != "" {
		t.Errorf("blank topic should not transition, got %s", result.NextStage)
	}
	if session.Collected.Topic != "" {
		t.Errorf("blank topic should not be collected, got %q", session.Collected.Topic)
	}
}

func TestHandleTypeSelection(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantTemplate string
		wantFallback bool
	}{
		{"by key", "tutorial", "tutorial", false},
		{"by ordinal", "2", "guide", false},
		{"free text", "quiero un tutorial paso a paso", "tutorial", false},
		{"unknown falls back", "surprise me", "informative", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := testOrchestrator()
			session := newTestSession(models.StageTypeSelection)

			result := o.handleTypeSelection(context.Background(), session, tt.input)

			if !result.Success || result.NextStage != models.StageDetailsCollection {
				t.Fatalf("expected transition to details_collection, got %+v", result)
			}
			if session.Collected.Template != tt.wantTemplate {
				t.Errorf("expected template %s, got %s", tt.wantTemplate, session.Collected.Template)
			}
			mentionsFallback := strings.Contains(result.Message, "didn't recognize")
			if mentionsFallback != tt.wantFallback {
				t.Errorf("fallback messaging mismatch for %q: %s", tt.input, result.Message)
			}
		})
	}
}

func TestHandleReviewAndConfirm(t *testing.T) {
	base := models.Collected{
		Topic:    "microservicios",
		Title:    "Microservicios",
		Template: "guide",
		Audience: "advanced",
		Length:   2000,
		Keywords: []string{"go"},
		Category: "64f0aa",
	}

	t.Run("confirm triggers generation", func(t *testing.T) {
		o := testOrchestrator()
		session := newTestSession(models.StageReviewAndConfirm)
		session.Collected = base

		result := o.handleReviewAndConfirm(context.Background(), session, "sí, generar")

		if !result.ShouldGenerate || result.NextStage != models.StageGenerating {
			t.Errorf("expected generation transition, got %+v", result)
		}
	})

	t.Run("modify backtracks and clears details", func(t *testing.T) {
		o := testOrchestrator()
		session := newTestSession(models.StageReviewAndConfirm)
		session.Collected = base

		result := o.handleReviewAndConfirm(context.Background(), session, "quiero modificar la longitud")

		if result.NextStage != models.StageDetailsCollection {
			t.Fatalf("expected backtrack to details_collection, got %s", result.NextStage)
		}
		if session.Collected.Audience != "" || session.Collected.Length != 0 || session.Collected.Category != "" {
			t.Errorf("detail fields should be cleared on modify, got %+v", session.Collected)
		}
		if session.Collected.Topic != "microservicios" || session.Collected.Template != "guide" {
			t.Errorf("topic and template must survive modify, got %+v", session.Collected)
		}
	})

	t.Run("cancel terminates", func(t *testing.T) {
		o := testOrchestrator()
		session := newTestSession(models.StageReviewAndConfirm)
		session.Collected = base

		result := o.handleReviewAndConfirm(context.Background(), session, "cancelar")

		if result.NextStage != models.StageCancelled {
			t.Errorf("expected cancelled, got %s", result.NextStage)
		}
	})

	t.Run("unclear asks final confirmation", func(t *testing.T) {
		o := testOrchestrator()
		session := newTestSession(models.StageReviewAndConfirm)
		session.Collected = base

		result := o.handleReviewAndConfirm(context.Background(), session, "hmm what")

		if result.NextStage != models.StageFinalConfirmation || result.ShouldGenerate {
			t.Errorf("unclear answer should move to final_confirmation without generating, got %+v", result)
		}
	})
}

func TestHandleFinalConfirmation(t *testing.T) {
	o := testOrchestrator()

	t.Run("anything but cancel generates", func(t *testing.T) {
		session := newTestSession(models.StageFinalConfirmation)
		result := o.handleFinalConfirmation(context.Background(), session, "whatever")
		if !result.ShouldGenerate || result.NextStage != models.StageGenerating {
			t.Errorf("expected permissive generation, got %+v", result)
		}
	})

	t.Run("cancel still cancels", func(t *testing.T) {
		session := newTestSession(models.StageFinalConfirmation)
		result := o.handleFinalConfirmation(context.Background(), session, "cancel")
		if result.NextStage != models.StageCancelled {
			t.Errorf("expected cancelled, got %s", result.NextStage)
		}
	})
}

func TestHandleGeneratingRetry(t *testing.T) {
	o := testOrchestrator()
	session := newTestSession(models.StageGenerating)
	gen := models.NewPendingGeneration("g1")
	gen.Fail("provider timeout")
	session.Generation = gen

	result := o.handleGenerating(context.Background(), session, "try again")
	if !result.ShouldGenerate {
		t.Errorf("failed generation plus non-cancel answer should retry, got %+v", result)
	}

	result = o.handleGenerating(context.Background(), session, "cancelar")
	if result.NextStage != models.StageCancelled {
		t.Errorf("cancel during failed generation should cancel, got %+v", result)
	}
}

func TestHandleGeneratingInProgress(t *testing.T) {
	o := testOrchestrator()
	session := newTestSession(models.StageGenerating)
	session.Generation = models.NewPendingGeneration("g1")

	result := o.handleGenerating(context.Background(), session, "is it done?")
	if result.ShouldGenerate || result.NextStage != "" {
		t.Errorf("pending generation should only report status, got %+v", result)
	}
}

func TestHandleGeneratingMissingRecord(t *testing.T) {
	o := testOrchestrator()
	session := newTestSession(models.StageGenerating)
	// Stage says generating but no generation record was ever persisted
	// (the pending write was lost). The session must stay recoverable.

	result := o.handleGenerating(context.Background(), session, "is it done?")
	if !result.ShouldGenerate {
		t.Errorf("missing generation record must be retryable, got %+v", result)
	}

	result = o.handleGenerating(context.Background(), session, "cancelar")
	if result.NextStage != models.StageCancelled {
		t.Errorf("cancel with missing generation record should cancel, got %+v", result)
	}
}

func TestSessionLockOutlivesGeneration(t *testing.T) {
	// Generation latency is tracked up to three minutes; a lock that expires
	// earlier would let a second message start a duplicate generation.
	slowestGeneration := 3 * time.Minute
	if sessionLockTTL <= slowestGeneration {
		t.Errorf("session lock TTL %v can expire mid-generation (slowest tracked run %v)", sessionLockTTL, slowestGeneration)
	}
}

func TestSaveDraftRequiresCompletedDraft(t *testing.T) {
	store := newFakeSessionStore()
	posts := &fakeDraftWriter{}
	o := NewCreationOrchestrator(store, nil, &fakeTagResolver{}, posts, nil, nil, nil)
	ctx := context.Background()

	resp, err := o.StartSession(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sessionID := resp.Session.SessionID
	session := store.sessions[sessionID]
	session.Stage = models.StageGenerationCompleted

	if _, err := o.SaveDraft(ctx, sessionID, "user-1"); err == nil || !strings.Contains(err.Error(), "no completed generation draft") {
		t.Fatalf("expected descriptive rejection without a generation record, got %v", err)
	}

	session.Generation = models.NewPendingGeneration("g1")
	session.Generation.Fail("provider timeout")
	if _, err := o.SaveDraft(ctx, sessionID, "user-1"); err == nil || !strings.Contains(err.Error(), "no completed generation draft") {
		t.Fatalf("expected descriptive rejection for failed generation, got %v", err)
	}

	if len(posts.created) != 0 {
		t.Errorf("no post may be created without a completed draft, got %d", len(posts.created))
	}
}

func TestGuidedFlowEndToEnd(t *testing.T) {
	store := newFakeSessionStore()
	catalog := &fakeCategoryCatalog{categories: []models.Category{
		{ID: primitive.NewObjectID(), Name: "Backend"},
		{ID: primitive.NewObjectID(), Name: "DevOps"},
	}}
	tags := &fakeTagResolver{}
	posts := &fakeDraftWriter{}
	gateway := generation.NewGateway(generation.MockLLM{}, "mock-model", 0.7, 0)
	o := NewCreationOrchestrator(store, catalog, tags, posts, gateway, nil, nil)
	ctx := context.Background()

	resp, err := o.StartSession(ctx, "user-1", "microservicios con go")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sessionID := resp.Session.SessionID
	if resp.Session.Stage != models.StageTypeSelection {
		t.Fatalf("topic should advance to type_selection, got %s", resp.Session.Stage)
	}

	steps := []struct {
		message   string
		wantStage models.Stage
	}{
		{"2", models.StageDetailsCollection},
		{"Audiencia: avanzado, Longitud: 2000, Keywords: go, grpc", models.StageCategorySelection},
		{"1", models.StageReviewAndConfirm},
	}
	for _, step := range steps {
		resp, err = o.HandleMessage(ctx, sessionID, "user-1", step.message)
		if err != nil {
			t.Fatalf("message %q: %v", step.message, err)
		}
		if resp.Session.Stage != step.wantStage {
			t.Fatalf("after %q expected stage %s, got %s", step.message, step.wantStage, resp.Session.Stage)
		}
	}

	resp, err = o.HandleMessage(ctx, sessionID, "user-1", "sí, generar")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !resp.ShouldGenerate {
		t.Error("confirmation should trigger generation")
	}

	session := store.sessions[sessionID]
	if session.Stage != models.StageGenerationCompleted {
		t.Fatalf("mock backend generates synchronously, expected generation_completed, got %s", session.Stage)
	}
	if session.Generation == nil || session.Generation.Status != models.GenerationCompleted || session.Generation.Draft == nil {
		t.Fatalf("expected completed generation with draft, got %+v", session.Generation)
	}
	if session.Collected.Template != "guide" || session.Collected.Audience != "advanced" || session.Collected.Length != 2000 {
		t.Errorf("collected data lost along the flow: %+v", session.Collected)
	}
	if session.Collected.Category != catalog.categories[0].ID.Hex() {
		t.Errorf("ordinal 1 should resolve the first category, got %q", session.Collected.Category)
	}

	post, err := o.SaveDraft(ctx, sessionID, "user-1")
	if err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	if len(posts.created) != 1 {
		t.Fatalf("expected exactly one post, got %d", len(posts.created))
	}
	if len(tags.resolved) != 1 || len(tags.resolved[0]) != 2 {
		t.Errorf("keywords should resolve to tags, got %v", tags.resolved)
	}
	if session.Stage != models.StageDraftSaved {
		t.Errorf("saving should finalize the session, got %s", session.Stage)
	}
	if session.SavedPostID != post.ID.Hex() {
		t.Errorf("session should link the saved post, got %q", session.SavedPostID)
	}
}

func TestStageDispatchTable(t *testing.T) {
	o := testOrchestrator()

	for _, stage := range []models.Stage{
		models.StageTopicDiscovery,
		models.StageTypeSelection,
		models.StageDetailsCollection,
		models.StageCategorySelection,
		models.StageReviewAndConfirm,
		models.StageFinalConfirmation,
		models.StageGenerating,
		models.StageGenerationCompleted,
	} {
		if _, ok := o.handlers[stage]; !ok {
			t.Errorf("no handler registered for stage %s", stage)
		}
	}

	for _, stage := range []models.Stage{models.StageDraftSaved, models.StageCancelled} {
		if _, ok := o.handlers[stage]; ok {
			t.Errorf("terminal stage %s must not accept messages", stage)
		}
	}
}

func TestGenerationTransitionGuards(t *testing.T) {
	gen := models.NewPendingGeneration("g1")
	gen.Complete("content", nil, &models.DraftPayload{Title: "t"})

	if gen.Status != models.GenerationCompleted {
		t.Fatalf("expected completed, got %s", gen.Status)
	}

	// A finalized record never re-opens.
	gen.Fail("late failure")
	if gen.Status != models.GenerationCompleted || gen.Error != "" {
		t.Errorf("completed generation must ignore Fail, got %+v", gen)
	}

	gen2 := models.NewPendingGeneration("g2")
	gen2.Fail("boom")
	gen2.Complete("content", nil, nil)
	if gen2.Status != models.GenerationFailed {
		t.Errorf("failed generation must ignore Complete, got %+v", gen2)
	}
}
