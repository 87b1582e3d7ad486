package app

import (
	"context"
	"time"

	"gavel-auction-service/internal/config"
	"gavel-auction-service/internal/domain/auction"
	"gavel-auction-service/internal/domain/notification"
	apperrors "gavel-auction-service/internal/errors"
	"gavel-auction-service/internal/ports/outbound"

	"github.com/alitto/pond"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NotificationService implements outcome dispatch and the per-user inbox
type NotificationService struct {
	notificationRepo outbound.NotificationRepository
	bidRepo          outbound.BidRepository
	publisher        outbound.Publisher
	pool             *pond.WorkerPool
	logger           zerolog.Logger
}

type NotificationServiceParams struct {
	NotificationRepo outbound.NotificationRepository
	BidRepo          outbound.BidRepository
	Publisher        outbound.Publisher
	Logger           zerolog.Logger
}

// NewNotificationService creates a new notification service with its own
// dispatch worker pool
func NewNotificationService(params NotificationServiceParams) *NotificationService {
	pool := pond.New(
		config.DispatchMaxWorkers,
		config.DispatchMaxCapacity,
		pond.Strategy(pond.Balanced()),
	)

	return &NotificationService{
		notificationRepo: params.NotificationRepo,
		bidRepo:          params.BidRepo,
		publisher:        params.Publisher,
		pool:             pool,
		logger:           params.Logger.With().Str("component", "notification_service").Logger(),
	}
}

// Close drains and stops the dispatch worker pool
func (service *NotificationService) Close() {
	service.pool.StopAndWait()
}

// Dispatch notifies every participant of a closed auction's outcome exactly
// once per bid row. The winner (owner of the highest bid) receives a "won"
// notification; every other bid row whose owner differs from the winner
// receives an "outbid" notification. A user with several losing bids is
// notified once per bid, not once per user. Outbid notifications fan out on
// the worker pool; individual failures are logged and do not abort the rest.
//
// The caller must have persisted the auction's closure before dispatching.
func (service *NotificationService) Dispatch(ctx context.Context, closed *auction.Auction) error {
	if closed.IsActive {
		return apperrors.NewInternalError("dispatch requires a closed auction")
	}

	bids, err := service.bidRepo.ListByAuction(ctx, closed.ID)
	if err != nil {
		service.logger.Error().Err(err).Str("auction_id", closed.ID.String()).Msg("Failed to load bids for dispatch")
		return apperrors.Classify(err, "something went wrong while loading bids for dispatch")
	}

	if len(bids) == 0 {
		service.logger.Info().Str("auction_id", closed.ID.String()).Msg("Auction closed with no bids, nothing to dispatch")
		service.publishClosed(ctx, closed, nil, len(bids))
		return nil
	}

	// Bids arrive ordered highest amount first, earliest created on ties
	winning := bids[0]

	won := &notification.Notification{
		ID:          uuid.New(),
		RecipientID: winning.OwnerID,
		AuctionID:   closed.ID,
		Outcome:     notification.OutcomeWon,
	}
	if err := service.notificationRepo.Create(ctx, won); err != nil {
		service.logger.Error().Err(err).
			Str("auction_id", closed.ID.String()).
			Str("recipient_id", winning.OwnerID.String()).
			Msg("Failed to create won notification")
		return apperrors.Classify(err, "something went wrong while creating the winner notification")
	}

	service.logger.Info().
		Str("auction_id", closed.ID.String()).
		Str("winner_id", winning.OwnerID.String()).
		Str("final_price", winning.Amount.String()).
		Msg("Winner notified")

	group := service.pool.Group()
	for _, loser := range bids[1:] {
		if loser.IsOwnedBy(winning.OwnerID) {
			// The winner's own lower bids carry no outcome of their own
			continue
		}

		loser := loser
		group.Submit(func() {
			outbid := &notification.Notification{
				ID:          uuid.New(),
				RecipientID: loser.OwnerID,
				AuctionID:   closed.ID,
				Outcome:     notification.OutcomeOutbid,
			}
			if err := service.notificationRepo.Create(ctx, outbid); err != nil {
				service.logger.Error().Err(err).
					Str("auction_id", closed.ID.String()).
					Str("recipient_id", loser.OwnerID.String()).
					Str("bid_id", loser.ID.String()).
					Msg("Failed to create outbid notification")
			}
		})
	}
	group.Wait()

	service.publishClosed(ctx, closed, &winning.OwnerID, len(bids))
	return nil
}

// publishClosed publishes the auction-closed event, best effort
func (service *NotificationService) publishClosed(ctx context.Context, closed *auction.Auction, winnerID *uuid.UUID, bidCount int) {
	if service.publisher == nil {
		return
	}

	data := map[string]interface{}{
		"bid_count": bidCount,
	}
	if winnerID != nil {
		data["winner_id"] = winnerID.String()
	}

	event := outbound.Event{
		Type:      outbound.EventTypeAuctionClosed,
		AuctionID: closed.ID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	if err := service.publisher.Publish(ctx, closed.ID, event); err != nil {
		service.logger.Error().Err(err).Str("auction_id", closed.ID.String()).Msg("Failed to publish auction closed event")
	}
}

// Inbox retrieves the caller's notifications, newest first
func (service *NotificationService) Inbox(ctx context.Context, recipientID uuid.UUID) ([]*notification.Notification, error) {
	notifications, err := service.notificationRepo.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, apperrors.Classify(err, "something went wrong while listing notifications")
	}
	return notifications, nil
}

// MarkRead marks one of the caller's notifications as read. Existence is
// checked before recipient identity, matching the auction CRUD guard order.
func (service *NotificationService) MarkRead(ctx context.Context, notificationID, callerID uuid.UUID) (*notification.Notification, error) {
	found, err := service.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, apperrors.Classify(err, "something went wrong while loading the notification")
	}

	if !found.IsFor(callerID) {
		service.logger.Warn().
			Str("notification_id", notificationID.String()).
			Str("caller_id", callerID.String()).
			Msg("Mark-read attempt by non-recipient")
		return nil, apperrors.NewForbiddenError("you are not the recipient of this notification")
	}

	found.MarkRead()
	if err := service.notificationRepo.Update(ctx, found); err != nil {
		service.logger.Error().Err(err).Str("notification_id", notificationID.String()).Msg("Failed to mark notification read")
		return nil, apperrors.Classify(err, "something went wrong while marking the notification read")
	}

	return found, nil
}
