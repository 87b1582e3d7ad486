package app

import (
	"context"
	"time"

	apperrors "gavel-auction-service/internal/errors"
)

// sweepExpired closes every active auction whose end date has passed and
// dispatches its outcome notifications. The sweep runs inline with listing
// reads; there is no background timer, so an expired auction stays open in
// storage until the next read arrives.
//
// The read-close-save sequence is not wrapped in a transaction: a failure
// mid-sweep surfaces to the reading caller while transitions already applied
// for earlier auctions stand, and two concurrent sweeps can both close the
// same auction and dispatch its notifications twice.
func (service *AuctionService) sweepExpired(ctx context.Context) error {
	now := time.Now()

	active, err := service.auctionRepo.ListActive(ctx)
	if err != nil {
		return apperrors.Classify(err, "something went wrong while sweeping expired auctions")
	}

	for _, current := range active {
		if !current.CloseIfExpired(now) {
			continue
		}

		if err := service.auctionRepo.Update(ctx, current); err != nil {
			service.logger.Error().Err(err).
				Str("auction_id", current.ID.String()).
				Msg("Failed to persist auction closure")
			return apperrors.Classify(err, "something went wrong while closing an expired auction")
		}

		service.logger.Info().
			Str("auction_id", current.ID.String()).
			Time("end_date", current.EndDate).
			Msg("Auction closed by sweep")

		// Dispatch only after the closure is durably persisted, so a
		// notification never describes a state that was not committed.
		if err := service.notifier.Dispatch(ctx, current); err != nil {
			service.logger.Error().Err(err).
				Str("auction_id", current.ID.String()).
				Msg("Failed to dispatch closure notifications")
			return apperrors.Classify(err, "something went wrong while dispatching closure notifications")
		}
	}

	return nil
}
