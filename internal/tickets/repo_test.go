package tickets

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	"github.com/harpsglobal/harps-portal-backend/pkg/enums"
	"github.com/harpsglobal/harps-portal-backend/pkg/pagination"
)

func setupTicketsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	for _, table := range []string{"support_tickets", "profiles"} {
		require.NoError(t, db.Exec("DROP TABLE IF EXISTS "+table).Error)
	}
	statements := []string{
		`CREATE TABLE support_tickets (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  subject TEXT NOT NULL,
  message TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'open',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE profiles (
  user_id TEXT PRIMARY KEY,
  company_name TEXT NOT NULL,
  email TEXT NOT NULL,
  tax_id TEXT,
  address TEXT,
  city TEXT,
  zip TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedTicket(t *testing.T, db *gorm.DB, userID uuid.UUID, subject string, status enums.TicketStatus, createdAt time.Time) *models.SupportTicket {
	t.Helper()

	ticket := &models.SupportTicket{
		ID:        uuid.New(),
		UserID:    userID,
		Subject:   subject,
		Message:   "message body",
		Status:    status,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(ticket).Error)
	return ticket
}

func TestRepositoryListByUserPagination(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)

	seedTicket(t, db, userID, "First", enums.TicketStatusOpen, base.Add(-2*time.Hour))
	seedTicket(t, db, userID, "Second", enums.TicketStatusOpen, base.Add(-time.Hour))
	seedTicket(t, db, uuid.New(), "Other", enums.TicketStatusOpen, base)

	first, err := repo.ListByUser(context.Background(), userID, pagination.Params{Limit: 1}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, first.Tickets, 1)
	assert.Equal(t, "Second", first.Tickets[0].Subject)
	require.NotEmpty(t, first.NextCursor)

	second, err := repo.ListByUser(context.Background(), userID, pagination.Params{Limit: 1, Cursor: first.NextCursor}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, second.Tickets, 1)
	assert.Equal(t, "First", second.Tickets[0].Subject)
	assert.Empty(t, second.NextCursor)
}

func TestRepositoryListAllJoinsReporterProfile(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, db.Create(&models.Profile{
		UserID:      userID,
		CompanyName: "Acme Kft.",
		Email:       "buyer@acme.hu",
	}).Error)
	seedTicket(t, db, userID, "Known reporter", enums.TicketStatusOpen, base.Add(-time.Hour))
	seedTicket(t, db, uuid.New(), "Unknown reporter", enums.TicketStatusResolved, base)

	list, err := repo.ListAll(context.Background(), pagination.Params{Limit: 10}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, list.Tickets, 2)
	assert.Equal(t, "Unknown reporter", list.Tickets[0].Subject)
	assert.Empty(t, list.Tickets[0].CompanyName)
	assert.Equal(t, "Acme Kft.", list.Tickets[1].CompanyName)

	status := enums.TicketStatusResolved
	filtered, err := repo.ListAll(context.Background(), pagination.Params{Limit: 10}, ListFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, filtered.Tickets, 1)
	assert.Equal(t, "Unknown reporter", filtered.Tickets[0].Subject)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)

	ticket := seedTicket(t, db, uuid.New(), "Broken box", enums.TicketStatusOpen, time.Now().UTC())
	require.NoError(t, repo.UpdateStatus(context.Background(), ticket.ID, enums.TicketStatusClosed))

	reloaded, err := repo.Find(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.TicketStatusClosed, reloaded.Status)
}
