//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
	"github.com/pro-joshi-grammer/sahayatha/internal/testutil"
)

func TestTicketRepository_CreateAssignsPublicID(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()
	require.NoError(t, testutil.TruncateAll(ctx, pool))

	repo := NewTicketRepository(pool)

	ticket, err := repo.Create(ctx, &domain.Ticket{
		Type:   domain.TicketTypeCertificate,
		Title:  "Caste Certificate",
		Status: domain.StatusInReview,
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("CERT-%06d", ticket.ID), ticket.PublicID)
	assert.Equal(t, domain.StatusInReview, ticket.Status)

	complaint, err := repo.Create(ctx, &domain.Ticket{
		Type:   domain.TicketTypeComplaint,
		Title:  "Street light not working",
		Status: domain.StatusInReview,
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("COMP-%06d", complaint.ID), complaint.PublicID)
	assert.NotEqual(t, ticket.PublicID, complaint.PublicID)
}

func TestTicketRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()
	require.NoError(t, testutil.TruncateAll(ctx, pool))

	repo := NewTicketRepository(pool)

	for i := 1; i <= 3; i++ {
		_, err := repo.Create(ctx, &domain.Ticket{
			Type:   domain.TicketTypeScheme,
			Title:  fmt.Sprintf("Pension Scheme %d", i),
			Status: domain.StatusInReview,
		})
		require.NoError(t, err)
	}

	tickets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	assert.Equal(t, "Pension Scheme 3", tickets[0].Title)
	assert.Equal(t, "Pension Scheme 1", tickets[2].Title)
}

func TestTicketRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()
	require.NoError(t, testutil.TruncateAll(ctx, pool))

	repo := NewTicketRepository(pool)

	created, err := repo.Create(ctx, &domain.Ticket{
		Type:   domain.TicketTypeOther,
		Title:  "Trade License",
		Status: domain.StatusInReview,
	})
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, created.PublicID, domain.StatusPaymentPending)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaymentPending, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	_, err = repo.UpdateStatus(ctx, "APP-999999", domain.StatusApproved)
	assert.Equal(t, domain.ErrTicketNotFound, err)

	got, err := repo.GetByPublicID(ctx, created.PublicID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaymentPending, got.Status)
}

func TestTicketRepository_SeedMigrationRecords(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewTicketRepository(pool)

	tickets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	byTitle := map[string]domain.Ticket{}
	for _, ticket := range tickets {
		byTitle[ticket.Title] = ticket
	}
	assert.Equal(t, domain.StatusApproved, byTitle["Income Certificate"].Status)
	assert.Equal(t, domain.StatusRejected, byTitle["New Water Connection"].Status)
}
