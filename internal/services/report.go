package services

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	apperrors "automateace/pkg/errors"
)

const reportLimit = 50

// SubmissionRecord is one row of the operator report: a contact joined
// to one of its inquiries. Inquiry fields are nil for a contact that has
// no inquiry yet (left join).
type SubmissionRecord struct {
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Company     *string    `json:"company"`
	ServiceType *string    `json:"service_type"`
	Message     *string    `json:"message"`
	CreatedAt   *time.Time `json:"created_at"`
}

// ReportService serves the read-only submissions report for operator
// visibility. It has no write path.
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// ListSubmissions returns contacts joined to their inquiries, newest
// inquiry first, capped at 50 rows. Contacts without an inquiry carry a
// NULL created_at; NULLS LAST pins them to the end on both Postgres
// (which would otherwise sort them first under DESC) and SQLite.
func (s *ReportService) ListSubmissions(ctx context.Context) ([]SubmissionRecord, error) {
	records := []SubmissionRecord{}
	err := s.db.WithContext(ctx).
		Table("contacts").
		Select("contacts.name, contacts.email, contacts.company, service_inquiries.service_type, service_inquiries.message, service_inquiries.created_at").
		Joins("LEFT JOIN service_inquiries ON contacts.id = service_inquiries.contact_id").
		Order("service_inquiries.created_at DESC NULLS LAST").
		Limit(reportLimit).
		Scan(&records).Error
	if err != nil {
		log.Printf("[REPORT] submissions query failed: %v", err)
		return nil, apperrors.Storage("Failed to fetch submissions", err)
	}
	return records, nil
}
