package models

import (
	"time"
)

// Report status values.
const (
	ReportPending  = "pending"
	ReportResolved = "resolved"
)

// PromptReport is a user's complaint about a prompt they can see. Reports
// queue as pending until an admin resolves them, usually after deciding
// whether to force-unshare the prompt.
type PromptReport struct {
	ID       ReportID `bson:"_id" json:"id"`
	AppID    string   `bson:"app_id" json:"appId"`
	PromptID PromptID `bson:"prompt_id" json:"promptId"`

	ReportedBy UserID `bson:"reported_by" json:"reportedBy"`
	Reason     string `bson:"reason" json:"reason"`
	Details    string `bson:"details,omitempty" json:"details,omitempty"`
	Status     string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
