package models

import (
	"time"
)

// App namespaces sharing the listhub database. Every document carries one
// of these in its app_id field so the otherwise-identical schemas used by
// the different apps stay separated.
const (
	AppKaumono = "kaumono"
	AppPrompt  = "prompt"
	AppOCRCSV  = "ocrcsv"
)

// ValidApp reports whether app is a known app namespace.
func ValidApp(app string) bool {
	switch app {
	case AppKaumono, AppPrompt, AppOCRCSV:
		return true
	}
	return false
}

// Category is the collaborative workspace all other resources belong to.
//
// NOTE:
//   - MemberIDs has set semantics (no duplicates); insertion order is
//     preserved for display but carries no other meaning.
//   - OwnerID is always present in MemberIDs and never changes after
//     creation; there is no ownership transfer.
//   - At most one invitation token is live per category. Only its hash is
//     stored; the plaintext is handed to the issuer exactly once.
type Category struct {
	ID     CategoryID `bson:"_id" json:"id"`
	AppID  string     `bson:"app_id" json:"appId"`
	Name   string     `bson:"name" json:"name"`
	NameCI string     `bson:"name_ci" json:"-"`

	OwnerID   UserID   `bson:"owner_id" json:"ownerId"`
	MemberIDs []UserID `bson:"member_ids" json:"memberIds"`

	// JoinTokenHash is the BLAKE2b-256 hex digest of the active invite
	// token, empty when no token has been issued. A zero
	// JoinTokenExpiresAt on a non-empty hash means the token never
	// expires (legacy documents only; new tokens always get an expiry).
	JoinTokenHash      string    `bson:"join_token_hash,omitempty" json:"-"`
	JoinTokenExpiresAt time.Time `bson:"join_token_expires_at,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsOwner reports whether uid is the category owner.
func (c Category) IsOwner(uid UserID) bool {
	return c.OwnerID == uid
}

// IsMember reports whether uid is in the membership set.
func (c Category) IsMember(uid UserID) bool {
	for _, m := range c.MemberIDs {
		if m == uid {
			return true
		}
	}
	return false
}
