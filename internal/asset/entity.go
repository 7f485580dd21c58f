// AngelaMos | 2026
// entity.go

package asset

import (
	"time"
)

type Type string

const TypeImage Type = "IMAGE"

type Asset struct {
	ID        string    `db:"id"`
	Type      Type      `db:"type"`
	StorageID string    `db:"storage_id"`
	URL       string    `db:"url"`
	FileName  string    `db:"file_name"`
	MimeType  string    `db:"mime_type"`
	SizeBytes int64     `db:"size_bytes"`
	Alt       *string   `db:"alt"`
	CreatedAt time.Time `db:"created_at"`
}
