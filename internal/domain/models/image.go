package models

import (
	"time"
)

// Image is an uploaded page image plus its OCR text in the ocrcsv app.
// The binary itself lives in external storage under StorageKey; listhub
// stores only metadata and the recognized text.
type Image struct {
	ID         ImageID    `bson:"_id" json:"id"`
	AppID      string     `bson:"app_id" json:"appId"`
	CategoryID CategoryID `bson:"category_id" json:"categoryId"`

	FileName   string `bson:"file_name" json:"fileName"`
	StorageKey string `bson:"storage_key" json:"storageKey"`
	MimeType   string `bson:"mime_type" json:"mimeType"`
	OCRResult  string `bson:"ocr_result" json:"ocrResult"`
	SortOrder  int    `bson:"sort_order" json:"sortOrder"`

	CreatedBy UserID    `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
