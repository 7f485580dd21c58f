// AngelaMos | 2026
// entity.go

package siteconfig

import (
	"time"
)

const (
	KeyWhatsAppLink    = "whatsapp_group_link"
	KeyWhatsAppEnabled = "whatsapp_enabled"
	KeySiteName        = "site_name"
	KeySupportEmail    = "support_email"
	KeySupportPhone    = "support_phone"
)

// KnownKeys lists the settings the storefront reads.
var KnownKeys = []string{
	KeyWhatsAppLink,
	KeyWhatsAppEnabled,
	KeySiteName,
	KeySupportEmail,
	KeySupportPhone,
}

type Entry struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	Label     *string   `db:"label"`
	UpdatedAt time.Time `db:"updated_at"`
}
