package payments_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/internal/infra/storage/migrations"
	"github.com/m04kA/mehndi-booking-service/internal/infra/storage/payments"
	"github.com/m04kA/mehndi-booking-service/pkg/logger"
)

// openTestDB connects to TEST_DATABASE_DSN and applies migrations
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db, logger.NewNop()))
	return db
}

func TestClaim_SecondDeliveryIsNotClaimed(t *testing.T) {
	repo := payments.NewRepository(openTestDB(t))
	ctx := context.Background()
	id := "pi_" + uuid.NewString()
	staleBefore := time.Now().Add(-10 * time.Minute)

	record, claimed, err := repo.Claim(ctx, id, staleBefore)
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Equal(t, 1, record.Attempts)
	assert.Equal(t, domain.PaymentProcessing, record.Status)

	_, claimed, err = repo.Claim(ctx, id, staleBefore)
	require.NoError(t, err)
	assert.False(t, claimed)

	require.NoError(t, repo.MarkCompleted(ctx, id, "evt-1"))
	record, claimed, err = repo.Claim(ctx, id, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, domain.PaymentCompleted, record.Status)
	require.NotNil(t, record.CalendarEventID)
	assert.Equal(t, "evt-1", *record.CalendarEventID)
}

func TestClaim_ReleasedPaymentIsReclaimed(t *testing.T) {
	repo := payments.NewRepository(openTestDB(t))
	ctx := context.Background()
	id := "pi_" + uuid.NewString()
	staleBefore := time.Now().Add(-10 * time.Minute)

	_, claimed, err := repo.Claim(ctx, id, staleBefore)
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, repo.Release(ctx, id, "calendar timeout"))

	record, claimed, err := repo.Claim(ctx, id, staleBefore)
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Equal(t, 2, record.Attempts)
}

func TestMarkStatus_UnknownPayment(t *testing.T) {
	repo := payments.NewRepository(openTestDB(t))
	err := repo.MarkStatus(context.Background(), "pi_missing_"+uuid.NewString(), domain.PaymentEscalated, "x")
	assert.ErrorIs(t, err, payments.ErrPaymentNotFound)
}
