package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead status values
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusLost      = "lost"
)

// Lead is a CRM contact captured from the site (contact form, newsletter, etc.).
type Lead struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Company   string             `bson:"company,omitempty" json:"company,omitempty"`
	Source    string             `bson:"source,omitempty" json:"source,omitempty"`
	Status    string             `bson:"status" json:"status"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// LeadMessage is one entry in a lead's append-only message log.
type LeadMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LeadID    primitive.ObjectID `bson:"leadId" json:"lead_id"`
	Direction string             `bson:"direction" json:"direction"` // "inbound" or "outbound"
	Subject   string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Body      string             `bson:"body" json:"body"`
	SentBy    string             `bson:"sentBy,omitempty" json:"sent_by,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

// CreateLeadRequest is the request body for registering a lead.
type CreateLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Source  string `json:"source,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// LeadMessageRequest is the request body for appending a message to a lead.
type LeadMessageRequest struct {
	Direction string `json:"direction"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body"`
}
