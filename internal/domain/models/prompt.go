package models

import (
	"time"
)

// Prompt is a shareable AI prompt in the prompt app. IsShared prompts are
// visible outside their category through the public shared listing;
// everything else is membership-scoped like any other resource.
type Prompt struct {
	ID         PromptID   `bson:"_id" json:"id"`
	AppID      string     `bson:"app_id" json:"appId"`
	CategoryID CategoryID `bson:"category_id" json:"categoryId"`

	Title      string   `bson:"title" json:"title"`
	Content    string   `bson:"content,omitempty" json:"content,omitempty"`
	IsShared   bool     `bson:"is_shared" json:"isShared"`
	UsageCount int      `bson:"usage_count" json:"usageCount"`
	ImageURLs  []string `bson:"image_urls,omitempty" json:"imageUrls,omitempty"`
	SortOrder  int      `bson:"sort_order" json:"sortOrder"`

	CreatedBy UserID    `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
