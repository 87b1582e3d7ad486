package app

import (
	"context"
	"testing"
	"time"

	"gavel-auction-service/internal/domain/notification"
	apperrors "gavel-auction-service/internal/errors"
	"gavel-auction-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func outcomesFor(notifications []*notification.Notification, recipientID uuid.UUID) []notification.Outcome {
	var outcomes []notification.Outcome
	for _, current := range notifications {
		if current.RecipientID == recipientID {
			outcomes = append(outcomes, current.Outcome)
		}
	}
	return outcomes
}

func TestDispatchRequiresClosedAuction(t *testing.T) {
	fixture := newAuctionFixture(t)
	owner := fixture.seedUser(t)
	stillOpen := fixture.seedAuction(t, owner.ID, time.Now().Add(time.Hour), true)

	err := fixture.notifications.Dispatch(context.Background(), stillOpen)
	require.True(t, apperrors.IsKind(err, apperrors.KindInternal))
	require.Empty(t, fixture.notificationRepo.all())
}

func TestDispatchWithNoBids(t *testing.T) {
	fixture := newAuctionFixture(t)
	owner := fixture.seedUser(t)
	closed := fixture.seedAuction(t, owner.ID, time.Now().Add(-time.Hour), false)

	err := fixture.notifications.Dispatch(context.Background(), closed)
	require.NoError(t, err)
	require.Empty(t, fixture.notificationRepo.all())

	events := fixture.publisher.recorded()
	require.Len(t, events, 1)
	require.Equal(t, outbound.EventTypeAuctionClosed, events[0].Type)
	require.Equal(t, 0, events[0].Data["bid_count"])
	require.NotContains(t, events[0].Data, "winner_id")
}

func TestDispatchNotifiesWinnerAndOutbid(t *testing.T) {
	fixture := newAuctionFixture(t)
	owner := fixture.seedUser(t)
	alice := fixture.seedUser(t)
	bob := fixture.seedUser(t)
	closed := fixture.seedAuction(t, owner.ID, time.Now().Add(-time.Hour), false)
	fixture.seedBid(t, closed.ID, alice.ID, 20, time.Now().Add(-2*time.Hour))
	fixture.seedBid(t, closed.ID, bob.ID, 30, time.Now().Add(-time.Hour))

	err := fixture.notifications.Dispatch(context.Background(), closed)
	require.NoError(t, err)

	all := fixture.notificationRepo.all()
	require.Len(t, all, 2)
	require.Equal(t, []notification.Outcome{notification.OutcomeWon}, outcomesFor(all, bob.ID))
	require.Equal(t, []notification.Outcome{notification.OutcomeOutbid}, outcomesFor(all, alice.ID))

	events := fixture.publisher.recorded()
	require.Len(t, events, 1)
	require.Equal(t, bob.ID.String(), events[0].Data["winner_id"])
	require.Equal(t, 2, events[0].Data["bid_count"])
}

func TestDispatchNotifiesOncePerLosingBid(t *testing.T) {
	// A user who raised their own bid several times and still lost gets one
	// outbid notification per bid, not one per user.
	fixture := newAuctionFixture(t)
	owner := fixture.seedUser(t)
	loser := fixture.seedUser(t)
	winner := fixture.seedUser(t)
	closed := fixture.seedAuction(t, owner.ID, time.Now().Add(-time.Hour), false)
	fixture.seedBid(t, closed.ID, loser.ID, 12, time.Now().Add(-4*time.Hour))
	fixture.seedBid(t, closed.ID, loser.ID, 14, time.Now().Add(-3*time.Hour))
	fixture.seedBid(t, closed.ID, loser.ID, 16, time.Now().Add(-2*time.Hour))
	fixture.seedBid(t, closed.ID, winner.ID, 30, time.Now().Add(-time.Hour))

	err := fixture.notifications.Dispatch(context.Background(), closed)
	require.NoError(t, err)

	all := fixture.notificationRepo.all()
	require.Len(t, all, 4)
	require.Len(t, outcomesFor(all, loser.ID), 3)
	require.Equal(t, []notification.Outcome{notification.OutcomeWon}, outcomesFor(all, winner.ID))
}

func TestDispatchSkipsWinnersOwnLowerBids(t *testing.T) {
	fixture := newAuctionFixture(t)
	owner := fixture.seedUser(t)
	rival := fixture.seedUser(t)
	winner := fixture.seedUser(t)
	closed := fixture.seedAuction(t, owner.ID, time.Now().Add(-time.Hour), false)
	fixture.seedBid(t, closed.ID, winner.ID, 15, time.Now().Add(-3*time.Hour))
	fixture.seedBid(t, closed.ID, rival.ID, 20, time.Now().Add(-2*time.Hour))
	fixture.seedBid(t, closed.ID, winner.ID, 25, time.Now().Add(-time.Hour))

	err := fixture.notifications.Dispatch(context.Background(), closed)
	require.NoError(t, err)

	all := fixture.notificationRepo.all()
	require.Len(t, all, 2)
	require.Equal(t, []notification.Outcome{notification.OutcomeWon}, outcomesFor(all, winner.ID))
	require.Equal(t, []notification.Outcome{notification.OutcomeOutbid}, outcomesFor(all, rival.ID))
}

func TestDispatchTieGoesToEarliestBid(t *testing.T) {
	fixture := newAuctionFixture(t)
	owner := fixture.seedUser(t)
	early := fixture.seedUser(t)
	late := fixture.seedUser(t)
	closed := fixture.seedAuction(t, owner.ID, time.Now().Add(-time.Hour), false)
	fixture.seedBid(t, closed.ID, early.ID, 20, time.Now().Add(-3*time.Hour))
	fixture.seedBid(t, closed.ID, late.ID, 20, time.Now().Add(-2*time.Hour))

	err := fixture.notifications.Dispatch(context.Background(), closed)
	require.NoError(t, err)

	all := fixture.notificationRepo.all()
	require.Equal(t, []notification.Outcome{notification.OutcomeWon}, outcomesFor(all, early.ID))
	require.Equal(t, []notification.Outcome{notification.OutcomeOutbid}, outcomesFor(all, late.ID))
}

func TestInboxListsOnlyTheRecipients(t *testing.T) {
	ctx := context.Background()
	fixture := newAuctionFixture(t)
	owner := fixture.seedUser(t)
	alice := fixture.seedUser(t)
	bob := fixture.seedUser(t)
	closed := fixture.seedAuction(t, owner.ID, time.Now().Add(-time.Hour), false)

	require.NoError(t, fixture.notificationRepo.Create(ctx, &notification.Notification{
		ID: uuid.New(), RecipientID: alice.ID, AuctionID: closed.ID, Outcome: notification.OutcomeWon,
	}))
	require.NoError(t, fixture.notificationRepo.Create(ctx, &notification.Notification{
		ID: uuid.New(), RecipientID: bob.ID, AuctionID: closed.ID, Outcome: notification.OutcomeOutbid,
	}))

	inbox, err := fixture.notifications.Inbox(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	require.Equal(t, alice.ID, inbox[0].RecipientID)
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("missing notification reports not found before recipient check", func(t *testing.T) {
		fixture := newAuctionFixture(t)
		caller := fixture.seedUser(t)

		_, err := fixture.notifications.MarkRead(ctx, uuid.New(), caller.ID)
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})

	t.Run("non-recipient is forbidden", func(t *testing.T) {
		fixture := newAuctionFixture(t)
		owner := fixture.seedUser(t)
		recipient := fixture.seedUser(t)
		stranger := fixture.seedUser(t)
		closed := fixture.seedAuction(t, owner.ID, time.Now().Add(-time.Hour), false)

		seeded := &notification.Notification{
			ID: uuid.New(), RecipientID: recipient.ID, AuctionID: closed.ID, Outcome: notification.OutcomeWon,
		}
		require.NoError(t, fixture.notificationRepo.Create(ctx, seeded))

		_, err := fixture.notifications.MarkRead(ctx, seeded.ID, stranger.ID)
		require.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	})

	t.Run("recipient marks read and the flag persists", func(t *testing.T) {
		fixture := newAuctionFixture(t)
		owner := fixture.seedUser(t)
		recipient := fixture.seedUser(t)
		closed := fixture.seedAuction(t, owner.ID, time.Now().Add(-time.Hour), false)

		seeded := &notification.Notification{
			ID: uuid.New(), RecipientID: recipient.ID, AuctionID: closed.ID, Outcome: notification.OutcomeWon,
		}
		require.NoError(t, fixture.notificationRepo.Create(ctx, seeded))

		marked, err := fixture.notifications.MarkRead(ctx, seeded.ID, recipient.ID)
		require.NoError(t, err)
		require.True(t, marked.IsRead)

		stored, err := fixture.notificationRepo.GetByID(ctx, seeded.ID)
		require.NoError(t, err)
		require.True(t, stored.IsRead)
	})
}
