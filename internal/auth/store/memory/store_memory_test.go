package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veriport/internal/auth/models"
	id "veriport/pkg/domain"
	"veriport/pkg/platform/sentinel"
)

func newAccount(email string) *models.Account {
	return &models.Account{
		ID:        id.NewAccountID(),
		Email:     email,
		FullName:  "Test User",
		Role:      id.RoleVerifier,
		Active:    true,
		CreatedAt: time.Now(),
	}
}

func TestCreateAndFind(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newAccount("hr@acme.com")
	require.NoError(t, s.Create(ctx, a))

	byID, err := s.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Email, byID.Email)

	byEmail, err := s.FindByEmail(ctx, "HR@ACME.COM")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byEmail.ID)
}

func TestCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Create(ctx, newAccount("hr@acme.com")))
	assert.ErrorIs(t, s.Create(ctx, newAccount("Hr@Acme.com")), sentinel.ErrConflict)
}

func TestFindMissing(t *testing.T) {
	s := New()
	_, err := s.FindByID(context.Background(), id.NewAccountID())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = s.FindByEmail(context.Background(), "nobody@acme.com")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRecordLogin(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newAccount("hr@acme.com")
	require.NoError(t, s.Create(ctx, a))

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.RecordLogin(ctx, a.ID, at))
	got, err := s.FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.Equal(t, at, *got.LastLoginAt)

	assert.ErrorIs(t, s.RecordLogin(ctx, id.NewAccountID(), at), sentinel.ErrNotFound)
}

func TestReturnedAccountsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newAccount("hr@acme.com")
	require.NoError(t, s.Create(ctx, a))
	got, _ := s.FindByID(ctx, a.ID)
	got.FullName = "changed"
	again, _ := s.FindByID(ctx, a.ID)
	assert.Equal(t, "Test User", again.FullName)
}
