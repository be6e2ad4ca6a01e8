package domain

import (
	"time"
)

// Contact is a deduplicated person/organization record keyed by email.
// At most one row exists per email; re-submission with the same email
// updates name/company/updated_at in place.
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email"`
	Company   *string   `json:"company"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}

// ServiceInquiry represents one submission event, always tied to exactly
// one contact. Rows are immutable once created.
type ServiceInquiry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ContactID   uint      `gorm:"not null;index" json:"contact_id"`
	ServiceType string    `gorm:"not null" json:"service_type"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for ServiceInquiry
func (ServiceInquiry) TableName() string {
	return "service_inquiries"
}
