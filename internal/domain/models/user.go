package models

import (
	"time"
)

// User is a local mirror of an identity-provider account. The provider owns
// the account; listhub upserts this record on every login (get-or-create
// keyed by app_id + external_id, display name and email refreshed each
// time) and never deletes it.
type User struct {
	ID    UserID `bson:"_id" json:"id"`
	AppID string `bson:"app_id" json:"appId"`

	// ExternalID is the identity provider's subject claim
	// (e.g. a Google "sub" value).
	ExternalID string `bson:"external_id" json:"externalId"`

	DisplayName   string `bson:"display_name" json:"displayName"`
	DisplayNameCI string `bson:"display_name_ci" json:"-"`
	Email         string `bson:"email" json:"email"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
