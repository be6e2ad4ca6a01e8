package services

import (
	"context"
	"log"
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"automateace/internal/domain"
	"automateace/internal/metrics"
	apperrors "automateace/pkg/errors"
)

// Client-visible messages. 400 responses carry the specific reason, 500
// responses stay generic.
const (
	MsgSubmitSuccess = "Thank you! Your inquiry has been submitted successfully."
	MsgSubmitFailed  = "Failed to submit inquiry. Please try again."
	MsgMissingFields = "Name, email, and service are required fields"
	MsgInvalidEmail  = "Please enter a valid email address"
)

// Syntactic sanity check only, does not guarantee deliverability.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubmissionRequest is the raw field set of an inquiry submission
type SubmissionRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Message string `json:"message"`
	Company string `json:"company"`
}

// Submission is a validated, normalized submission ready for persistence
type Submission struct {
	Name    string
	Email   string
	Service string
	Message string
	Company *string
}

// ValidateSubmission rejects malformed requests before any storage
// access. On success it returns the normalized record: message defaults
// to the empty string, company to nil when not provided. Email case is
// preserved; contacts are keyed by email exactly as submitted.
func ValidateSubmission(req *SubmissionRequest) (*Submission, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	service := strings.TrimSpace(req.Service)

	if name == "" || email == "" || service == "" {
		return nil, apperrors.Validation(MsgMissingFields)
	}
	if !emailRegex.MatchString(email) {
		return nil, apperrors.Validation(MsgInvalidEmail)
	}

	sub := &Submission{
		Name:    name,
		Email:   email,
		Service: service,
		Message: strings.TrimSpace(req.Message),
	}
	if company := strings.TrimSpace(req.Company); company != "" {
		sub.Company = &company
	}
	return sub, nil
}

// SubmissionService owns the write path to contacts and service
// inquiries; no other component mutates them.
type SubmissionService struct {
	db           *gorm.DB
	emailService *EmailService
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(db *gorm.DB, emailService *EmailService) *SubmissionService {
	return &SubmissionService{
		db:           db,
		emailService: emailService,
	}
}

// Submit validates the request, then persists the contact and its
// inquiry. The contact is upserted by email: a single atomic
// ON CONFLICT (email) DO UPDATE resolves concurrent submissions with the
// same new email through the uniqueness constraint, never through
// application-level check-then-insert. Each successful call appends a
// new inquiry row even for a returning contact.
//
// Both writes run in one transaction: a failed inquiry insert rolls the
// contact write back rather than leaving an orphaned contact.
func (s *SubmissionService) Submit(ctx context.Context, req *SubmissionRequest) error {
	log.Printf("[SUBMIT] request: name=%s, email=%s, service=%s",
		strings.TrimSpace(req.Name), strings.TrimSpace(req.Email), strings.TrimSpace(req.Service))

	sub, err := ValidateSubmission(req)
	if err != nil {
		log.Printf("[SUBMIT] rejected: %v", err)
		metrics.RecordInquirySubmission("rejected")
		return err
	}

	var inquiry domain.ServiceInquiry
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contact := domain.Contact{
			Name:    sub.Name,
			Email:   sub.Email,
			Company: sub.Company,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "company", "updated_at"}),
		}).Create(&contact).Error; err != nil {
			return err
		}

		// The driver does not reliably report the row id on the
		// conflict-update path, so resolve it by email inside the same
		// transaction.
		var persisted domain.Contact
		if err := tx.Where("email = ?", sub.Email).Take(&persisted).Error; err != nil {
			return err
		}

		inquiry = domain.ServiceInquiry{
			ContactID:   persisted.ID,
			ServiceType: sub.Service,
			Message:     sub.Message,
		}
		return tx.Create(&inquiry).Error
	})
	if err != nil {
		log.Printf("[SUBMIT] failed: database error: %v", err)
		metrics.RecordInquirySubmission("failed")
		return apperrors.Storage(MsgSubmitFailed, err)
	}

	log.Printf("[SUBMIT] successful: inquiry=%d, contact=%d, service=%s",
		inquiry.ID, inquiry.ContactID, inquiry.ServiceType)
	metrics.RecordInquirySubmission("accepted")

	// Notify the admin asynchronously; the submission already succeeded,
	// so a notification failure is only logged.
	if s.emailService != nil {
		go func(inq domain.ServiceInquiry, sub Submission) {
			if err := s.emailService.SendInquiryNotification(&inq, &sub); err != nil {
				log.Printf("[SUBMIT] Warning: failed to send notification email: %v", err)
			}
		}(inquiry, *sub)
	}

	return nil
}
