package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pressmind/internal/database"
	"pressmind/internal/models"
)

// LeadService manages CRM leads and their append-only message logs.
type LeadService struct {
	db       *database.MongoDB
	leads    *mongo.Collection
	messages *mongo.Collection
}

// NewLeadService creates a new lead service.
func NewLeadService(db *database.MongoDB) *LeadService {
	var leads, messages *mongo.Collection
	if db != nil {
		leads = db.Collection(database.CollectionLeads)
		messages = db.Collection(database.CollectionLeadMessages)
	}
	return &LeadService{db: db, leads: leads, messages: messages}
}

// validLeadStatuses guards status transitions from the update endpoint.
var validLeadStatuses = map[string]bool{
	models.LeadStatusNew:       true,
	models.LeadStatusContacted: true,
	models.LeadStatusQualified: true,
	models.LeadStatusLost:      true,
}

// Create registers a new lead with status "new".
func (s *LeadService) Create(ctx context.Context, req *models.CreateLeadRequest) (*models.Lead, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	now := time.Now()
	lead := &models.Lead{
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Company:   strings.TrimSpace(req.Company),
		Source:    strings.TrimSpace(req.Source),
		Status:    models.LeadStatusNew,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := s.leads.InsertOne(ctx, lead)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("a lead with email %s already exists", email)
		}
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	lead.ID = result.InsertedID.(primitive.ObjectID)

	log.Printf("✅ Registered lead %s (%s)", lead.ID.Hex(), email)
	return lead, nil
}

// List returns leads, optionally filtered by status, sorted by recency.
func (s *LeadService) List(ctx context.Context, status string, limit int64) ([]models.Lead, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"updatedAt": -1}).SetLimit(limit)
	cursor, err := s.leads.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("failed to decode leads: %w", err)
	}
	return leads, nil
}

// UpdateStatus moves a lead through the pipeline.
func (s *LeadService) UpdateStatus(ctx context.Context, leadID, status string) error {
	if !validLeadStatuses[status] {
		return fmt.Errorf("invalid lead status %q", status)
	}
	oid, err := primitive.ObjectIDFromHex(leadID)
	if err != nil {
		return fmt.Errorf("invalid lead id: %w", err)
	}

	result, err := s.leads.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("lead not found")
	}
	return nil
}

// AddMessage appends a message to the lead's log and touches the lead.
func (s *LeadService) AddMessage(ctx context.Context, leadID, sentBy string, req *models.LeadMessageRequest) (*models.LeadMessage, error) {
	if req.Direction != "inbound" && req.Direction != "outbound" {
		return nil, fmt.Errorf("direction must be inbound or outbound")
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("message body is required")
	}
	oid, err := primitive.ObjectIDFromHex(leadID)
	if err != nil {
		return nil, fmt.Errorf("invalid lead id: %w", err)
	}

	if err := s.leads.FindOne(ctx, bson.M{"_id": oid}).Err(); err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("lead not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up lead: %w", err)
	}

	msg := &models.LeadMessage{
		LeadID:    oid,
		Direction: req.Direction,
		Subject:   req.Subject,
		Body:      req.Body,
		SentBy:    sentBy,
		CreatedAt: time.Now(),
	}
	result, err := s.messages.InsertOne(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to add lead message: %w", err)
	}
	msg.ID = result.InsertedID.(primitive.ObjectID)

	_, _ = s.leads.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"updatedAt": time.Now()}})
	return msg, nil
}

// ListMessages returns a lead's message log, newest first.
func (s *LeadService) ListMessages(ctx context.Context, leadID string, limit int64) ([]models.LeadMessage, error) {
	oid, err := primitive.ObjectIDFromHex(leadID)
	if err != nil {
		return nil, fmt.Errorf("invalid lead id: %w", err)
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := s.messages.Find(ctx, bson.M{"leadId": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list lead messages: %w", err)
	}
	defer cursor.Close(ctx)

	var msgs []models.LeadMessage
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode lead messages: %w", err)
	}
	return msgs, nil
}
