package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"automateace/internal/domain"
	apperrors "automateace/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Single connection so the in-memory database is shared across the
	// pool.
	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        ":memory:",
		Conn:       sqlDB,
	}, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.Contact{},
		&domain.ServiceInquiry{},
		&domain.PortfolioProject{},
		&domain.Service{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name    string
		req     SubmissionRequest
		wantErr string
	}{
		{
			name:    "missing name",
			req:     SubmissionRequest{Email: "jane@x.com", Service: "automation"},
			wantErr: MsgMissingFields,
		},
		{
			name:    "missing email",
			req:     SubmissionRequest{Name: "Jane", Service: "automation"},
			wantErr: MsgMissingFields,
		},
		{
			name:    "missing service",
			req:     SubmissionRequest{Name: "Jane", Email: "jane@x.com"},
			wantErr: MsgMissingFields,
		},
		{
			name:    "whitespace-only name",
			req:     SubmissionRequest{Name: "   ", Email: "jane@x.com", Service: "automation"},
			wantErr: MsgMissingFields,
		},
		{
			name:    "email without at sign",
			req:     SubmissionRequest{Name: "Jane", Email: "not-an-email", Service: "automation"},
			wantErr: MsgInvalidEmail,
		},
		{
			name:    "email without dot in domain",
			req:     SubmissionRequest{Name: "Jane", Email: "jane@localhost", Service: "automation"},
			wantErr: MsgInvalidEmail,
		},
		{
			name:    "email with spaces",
			req:     SubmissionRequest{Name: "Jane", Email: "jane doe@x.com", Service: "automation"},
			wantErr: MsgInvalidEmail,
		},
		{
			name: "valid minimal",
			req:  SubmissionRequest{Name: "Jane Doe", Email: "jane@x.com", Service: "automation"},
		},
		{
			name: "valid with all fields",
			req:  SubmissionRequest{Name: "Jane", Email: "jane@x.com", Service: "automation", Message: "hello", Company: "Acme"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := ValidateSubmission(&tt.req)
			if tt.wantErr != "" {
				require.Error(t, err)
				require.True(t, apperrors.IsValidation(err))
				var appErr *apperrors.AppError
				require.ErrorAs(t, err, &appErr)
				require.Equal(t, tt.wantErr, appErr.Message)
				require.Nil(t, sub)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, sub)
		})
	}
}

func TestValidateSubmissionNormalizes(t *testing.T) {
	sub, err := ValidateSubmission(&SubmissionRequest{
		Name:    "  Jane Doe  ",
		Email:   " Jane@X.com ",
		Service: " automation ",
	})
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", sub.Name)
	require.Equal(t, "Jane@X.com", sub.Email, "email case is preserved")
	require.Equal(t, "automation", sub.Service)
	require.Equal(t, "", sub.Message, "message defaults to empty string")
	require.Nil(t, sub.Company, "company defaults to absent")

	sub, err = ValidateSubmission(&SubmissionRequest{
		Name:    "Jane",
		Email:   "jane@x.com",
		Service: "automation",
		Company: "Acme",
	})
	require.NoError(t, err)
	require.NotNil(t, sub.Company)
	require.Equal(t, "Acme", *sub.Company)
}

func TestSubmitCreatesContactAndInquiry(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, nil)

	err := svc.Submit(context.Background(), &SubmissionRequest{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Service: "automation",
	})
	require.NoError(t, err)

	var contact domain.Contact
	require.NoError(t, db.Where("email = ?", "jane@x.com").First(&contact).Error)
	require.Equal(t, "Jane Doe", contact.Name)
	require.Nil(t, contact.Company)

	var inquiries []domain.ServiceInquiry
	require.NoError(t, db.Find(&inquiries).Error)
	require.Len(t, inquiries, 1)
	require.Equal(t, contact.ID, inquiries[0].ContactID)
	require.Equal(t, "automation", inquiries[0].ServiceType)
	require.Equal(t, "", inquiries[0].Message, "absent message stored as empty string, not null")
}

func TestSubmitUpsertsContactByEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, nil)
	ctx := context.Background()

	require.NoError(t, svc.Submit(ctx, &SubmissionRequest{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Service: "automation",
		Company: "Acme",
	}))
	require.NoError(t, svc.Submit(ctx, &SubmissionRequest{
		Name:    "Jane Smith",
		Email:   "jane@x.com",
		Service: "integration",
		Message: "second time around",
	}))

	var contacts []domain.Contact
	require.NoError(t, db.Find(&contacts).Error)
	require.Len(t, contacts, 1, "re-submission must not duplicate the contact")
	require.Equal(t, "Jane Smith", contacts[0].Name, "name from the second submission wins")
	require.Nil(t, contacts[0].Company, "company is overwritten, not merged")

	var inquiries []domain.ServiceInquiry
	require.NoError(t, db.Order("id ASC").Find(&inquiries).Error)
	require.Len(t, inquiries, 2, "every submission event is recorded")
	for _, inq := range inquiries {
		require.Equal(t, contacts[0].ID, inq.ContactID)
	}
	require.Equal(t, "automation", inquiries[0].ServiceType)
	require.Equal(t, "integration", inquiries[1].ServiceType)
}

func TestSubmitDistinctEmailsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, nil)
	ctx := context.Background()

	require.NoError(t, svc.Submit(ctx, &SubmissionRequest{
		Name: "Jane", Email: "jane@x.com", Service: "automation",
	}))
	require.NoError(t, svc.Submit(ctx, &SubmissionRequest{
		Name: "John", Email: "john@x.com", Service: "consulting",
	}))

	var contacts []domain.Contact
	require.NoError(t, db.Order("id ASC").Find(&contacts).Error)
	require.Len(t, contacts, 2)
	require.Equal(t, "Jane", contacts[0].Name)
	require.Equal(t, "John", contacts[1].Name)
}

func TestSubmitConcurrentSameEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, nil)

	// Concurrent submissions with the same new email race on contact
	// creation; the uniqueness constraint must resolve it, never
	// application-level check-then-insert.
	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Submit(context.Background(), &SubmissionRequest{
				Name:    fmt.Sprintf("Jane %d", i),
				Email:   "jane@x.com",
				Service: "automation",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "submission %d", i)
	}

	var contacts int64
	require.NoError(t, db.Model(&domain.Contact{}).Count(&contacts).Error)
	require.EqualValues(t, 1, contacts, "racing submissions converge on one contact")

	var inquiries []domain.ServiceInquiry
	require.NoError(t, db.Find(&inquiries).Error)
	require.Len(t, inquiries, workers, "every submission event is recorded")

	var contact domain.Contact
	require.NoError(t, db.Where("email = ?", "jane@x.com").First(&contact).Error)
	for _, inq := range inquiries {
		require.Equal(t, contact.ID, inq.ContactID)
	}
}

func TestSubmitConcurrentDistinctEmails(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, nil)

	emails := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"}
	var wg sync.WaitGroup
	errs := make([]error, len(emails))
	for i, email := range emails {
		wg.Add(1)
		go func(i int, email string) {
			defer wg.Done()
			errs[i] = svc.Submit(context.Background(), &SubmissionRequest{
				Name:    "User " + email,
				Email:   email,
				Service: "automation",
			})
		}(i, email)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "submission %d", i)
	}

	var contacts []domain.Contact
	require.NoError(t, db.Find(&contacts).Error)
	require.Len(t, contacts, len(emails))

	// No write from one submission lost or overwritten by another.
	byEmail := make(map[string]string, len(contacts))
	for _, c := range contacts {
		byEmail[c.Email] = c.Name
	}
	for _, email := range emails {
		require.Equal(t, "User "+email, byEmail[email])
	}

	var inquiries int64
	require.NoError(t, db.Model(&domain.ServiceInquiry{}).Count(&inquiries).Error)
	require.EqualValues(t, len(emails), inquiries)
}

func TestSubmitEmailCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, nil)
	ctx := context.Background()

	require.NoError(t, svc.Submit(ctx, &SubmissionRequest{
		Name: "Jane", Email: "jane@x.com", Service: "automation",
	}))
	require.NoError(t, svc.Submit(ctx, &SubmissionRequest{
		Name: "Jane", Email: "Jane@x.com", Service: "automation",
	}))

	var count int64
	require.NoError(t, db.Model(&domain.Contact{}).Count(&count).Error)
	require.EqualValues(t, 2, count, "emails are stored case-sensitively")
}

func TestSubmitValidationFailureWritesNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, nil)

	err := svc.Submit(context.Background(), &SubmissionRequest{
		Name: "", Email: "jane@x.com", Service: "automation",
	})
	require.Error(t, err)
	require.True(t, apperrors.IsValidation(err))

	var contacts, inquiries int64
	require.NoError(t, db.Model(&domain.Contact{}).Count(&contacts).Error)
	require.NoError(t, db.Model(&domain.ServiceInquiry{}).Count(&inquiries).Error)
	require.Zero(t, contacts)
	require.Zero(t, inquiries)
}

func TestSubmitStorageFailureIsStorageError(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, nil)

	// Closing the pool makes every query fail.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = svc.Submit(context.Background(), &SubmissionRequest{
		Name: "Jane", Email: "jane@x.com", Service: "automation",
	})
	require.Error(t, err)
	require.True(t, apperrors.IsStorage(err))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, MsgSubmitFailed, appErr.Message)
	require.Error(t, appErr.Err, "underlying cause is attached")
}
