package models

// Each entity gets its own ID type so an item ID can never be passed where
// a category ID is expected. The underlying representation is still a Mongo
// ObjectID; the marshal methods keep the wire format identical to a plain
// primitive.ObjectID (hex string in JSON, ObjectID in BSON).

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryID identifies a category document.
type CategoryID primitive.ObjectID

// UserID identifies a user document.
type UserID primitive.ObjectID

// ItemID identifies an item document.
type ItemID primitive.ObjectID

// ImageID identifies an image document.
type ImageID primitive.ObjectID

// PromptID identifies a prompt document.
type PromptID primitive.ObjectID

// ReportID identifies a prompt report document.
type ReportID primitive.ObjectID

func NewCategoryID() CategoryID { return CategoryID(primitive.NewObjectID()) }
func NewUserID() UserID         { return UserID(primitive.NewObjectID()) }
func NewItemID() ItemID         { return ItemID(primitive.NewObjectID()) }
func NewImageID() ImageID       { return ImageID(primitive.NewObjectID()) }
func NewPromptID() PromptID     { return PromptID(primitive.NewObjectID()) }
func NewReportID() ReportID     { return ReportID(primitive.NewObjectID()) }

// ParseCategoryID parses a hex ObjectID string (e.g. a chi URL param).
func ParseCategoryID(s string) (CategoryID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	return CategoryID(oid), err
}

// ParseUserID parses a hex ObjectID string.
func ParseUserID(s string) (UserID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	return UserID(oid), err
}

// ParseItemID parses a hex ObjectID string.
func ParseItemID(s string) (ItemID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	return ItemID(oid), err
}

// ParseImageID parses a hex ObjectID string.
func ParseImageID(s string) (ImageID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	return ImageID(oid), err
}

// ParsePromptID parses a hex ObjectID string.
func ParsePromptID(s string) (PromptID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	return PromptID(oid), err
}

// ParseReportID parses a hex ObjectID string.
func ParseReportID(s string) (ReportID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	return ReportID(oid), err
}

func (id CategoryID) OID() primitive.ObjectID { return primitive.ObjectID(id) }
func (id CategoryID) Hex() string             { return primitive.ObjectID(id).Hex() }
func (id CategoryID) IsZero() bool            { return primitive.ObjectID(id).IsZero() }

func (id CategoryID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

func (id *CategoryID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var oid primitive.ObjectID
	if err := bson.UnmarshalValue(t, data, &oid); err != nil {
		return err
	}
	*id = CategoryID(oid)
	return nil
}

func (id CategoryID) MarshalJSON() ([]byte, error) { return primitive.ObjectID(id).MarshalJSON() }

func (id *CategoryID) UnmarshalJSON(b []byte) error {
	var oid primitive.ObjectID
	if err := oid.UnmarshalJSON(b); err != nil {
		return err
	}
	*id = CategoryID(oid)
	return nil
}

func (id UserID) OID() primitive.ObjectID { return primitive.ObjectID(id) }
func (id UserID) Hex() string             { return primitive.ObjectID(id).Hex() }
func (id UserID) IsZero() bool            { return primitive.ObjectID(id).IsZero() }

func (id UserID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

func (id *UserID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var oid primitive.ObjectID
	if err := bson.UnmarshalValue(t, data, &oid); err != nil {
		return err
	}
	*id = UserID(oid)
	return nil
}

func (id UserID) MarshalJSON() ([]byte, error) { return primitive.ObjectID(id).MarshalJSON() }

func (id *UserID) UnmarshalJSON(b []byte) error {
	var oid primitive.ObjectID
	if err := oid.UnmarshalJSON(b); err != nil {
		return err
	}
	*id = UserID(oid)
	return nil
}

func (id ItemID) OID() primitive.ObjectID { return primitive.ObjectID(id) }
func (id ItemID) Hex() string             { return primitive.ObjectID(id).Hex() }
func (id ItemID) IsZero() bool            { return primitive.ObjectID(id).IsZero() }

func (id ItemID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

func (id *ItemID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var oid primitive.ObjectID
	if err := bson.UnmarshalValue(t, data, &oid); err != nil {
		return err
	}
	*id = ItemID(oid)
	return nil
}

func (id ItemID) MarshalJSON() ([]byte, error) { return primitive.ObjectID(id).MarshalJSON() }

func (id *ItemID) UnmarshalJSON(b []byte) error {
	var oid primitive.ObjectID
	if err := oid.UnmarshalJSON(b); err != nil {
		return err
	}
	*id = ItemID(oid)
	return nil
}

func (id ImageID) OID() primitive.ObjectID { return primitive.ObjectID(id) }
func (id ImageID) Hex() string             { return primitive.ObjectID(id).Hex() }
func (id ImageID) IsZero() bool            { return primitive.ObjectID(id).IsZero() }

func (id ImageID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

func (id *ImageID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var oid primitive.ObjectID
	if err := bson.UnmarshalValue(t, data, &oid); err != nil {
		return err
	}
	*id = ImageID(oid)
	return nil
}

func (id ImageID) MarshalJSON() ([]byte, error) { return primitive.ObjectID(id).MarshalJSON() }

func (id *ImageID) UnmarshalJSON(b []byte) error {
	var oid primitive.ObjectID
	if err := oid.UnmarshalJSON(b); err != nil {
		return err
	}
	*id = ImageID(oid)
	return nil
}

func (id PromptID) OID() primitive.ObjectID { return primitive.ObjectID(id) }
func (id PromptID) Hex() string             { return primitive.ObjectID(id).Hex() }
func (id PromptID) IsZero() bool            { return primitive.ObjectID(id).IsZero() }

func (id PromptID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

func (id *PromptID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var oid primitive.ObjectID
	if err := bson.UnmarshalValue(t, data, &oid); err != nil {
		return err
	}
	*id = PromptID(oid)
	return nil
}

func (id PromptID) MarshalJSON() ([]byte, error) { return primitive.ObjectID(id).MarshalJSON() }

func (id *PromptID) UnmarshalJSON(b []byte) error {
	var oid primitive.ObjectID
	if err := oid.UnmarshalJSON(b); err != nil {
		return err
	}
	*id = PromptID(oid)
	return nil
}

func (id ReportID) OID() primitive.ObjectID { return primitive.ObjectID(id) }
func (id ReportID) Hex() string             { return primitive.ObjectID(id).Hex() }
func (id ReportID) IsZero() bool            { return primitive.ObjectID(id).IsZero() }

func (id ReportID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

func (id *ReportID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var oid primitive.ObjectID
	if err := bson.UnmarshalValue(t, data, &oid); err != nil {
		return err
	}
	*id = ReportID(oid)
	return nil
}

func (id ReportID) MarshalJSON() ([]byte, error) { return primitive.ObjectID(id).MarshalJSON() }

func (id *ReportID) UnmarshalJSON(b []byte) error {
	var oid primitive.ObjectID
	if err := oid.UnmarshalJSON(b); err != nil {
		return err
	}
	*id = ReportID(oid)
	return nil
}
