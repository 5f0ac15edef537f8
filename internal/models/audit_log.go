package models

// AuditLog records completed operations for later reconciliation.
type AuditLog struct {
	Base
	Actor        string `gorm:"size:32;not null;index" json:"actor"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   uint   `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
