package models

import (
	"time"
)

// Item is a shopping/TODO entry in the kaumono app. It always belongs to a
// category; handlers must check the caller's membership in that category
// (derived from the item itself, never from a caller-supplied category)
// before any read or write.
type Item struct {
	ID         ItemID     `bson:"_id" json:"id"`
	AppID      string     `bson:"app_id" json:"appId"`
	CategoryID CategoryID `bson:"category_id" json:"categoryId"`

	Title   string `bson:"title" json:"title"`
	Details string `bson:"details,omitempty" json:"details,omitempty"`
	Done    bool   `bson:"done" json:"done"`

	ReminderTime    time.Time `bson:"reminder_time,omitempty" json:"reminderTime,omitempty"`
	ReminderEnabled bool      `bson:"reminder_enabled" json:"reminderEnabled"`

	CreatedBy UserID    `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
