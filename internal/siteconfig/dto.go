// AngelaMos | 2026
// dto.go

package siteconfig

import (
	"time"
)

type SetRequest struct {
	Key   string  `json:"key"   validate:"required,min=1,max=100"`
	Value string  `json:"value" validate:"max=2000"`
	Label *string `json:"label" validate:"omitempty,max=200"`
}

type BatchRequest struct {
	Items []SetRequest `json:"items" validate:"required,min=1,max=50,dive"`
}

type EntryResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Label     *string   `json:"label"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToEntryResponse(e *Entry) EntryResponse {
	return EntryResponse{
		Key:       e.Key,
		Value:     e.Value,
		Label:     e.Label,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToEntryResponseList(entries []Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToEntryResponse(&entries[i]))
	}
	return out
}
