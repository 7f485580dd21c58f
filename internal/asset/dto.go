// AngelaMos | 2026
// dto.go

package asset

import (
	"time"
)

type AssetResponse struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	Alt       *string   `json:"alt,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToAssetResponse(a *Asset) AssetResponse {
	return AssetResponse{
		ID:        a.ID,
		Type:      a.Type,
		URL:       a.URL,
		Name:      a.FileName,
		MimeType:  a.MimeType,
		Size:      a.SizeBytes,
		Alt:       a.Alt,
		CreatedAt: a.CreatedAt,
	}
}

func ToAssetResponseList(assets []Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		out = append(out, ToAssetResponse(&assets[i]))
	}
	return out
}
