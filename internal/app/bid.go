package app

import (
	"context"
	"fmt"
	"time"

	"gavel-auction-service/internal/domain/bid"
	apperrors "gavel-auction-service/internal/errors"
	"gavel-auction-service/internal/ports/inbound"
	"gavel-auction-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BidService implements the bid admission rules
type BidService struct {
	bidRepo     outbound.BidRepository
	auctionRepo outbound.AuctionRepository
	publisher   outbound.Publisher
	logger      zerolog.Logger
}

type BidServiceParams struct {
	BidRepo     outbound.BidRepository
	AuctionRepo outbound.AuctionRepository
	Publisher   outbound.Publisher
	Logger      zerolog.Logger
}

// NewBidService creates a new bid service
func NewBidService(params BidServiceParams) *BidService {
	return &BidService{
		bidRepo:     params.BidRepo,
		auctionRepo: params.AuctionRepo,
		publisher:   params.Publisher,
		logger:      params.Logger.With().Str("component", "bid_service").Logger(),
	}
}

// PlaceBid validates a candidate bid and appends it to the auction's ledger.
// Checks run in order: the auction must exist, the bidder must not be its
// owner, and the amount must strictly exceed the current highest bid (or the
// starting price when no bids exist). Liveness is deliberately not
// re-checked here: an expired auction that no read has swept yet still
// admits bids.
//
// The highest-bid read and the insert are not serialized, so two concurrent
// bids can both pass validation against the same snapshot; that race is
// accepted rather than locked away.
func (service *BidService) PlaceBid(ctx context.Context, req inbound.PlaceBidRequest) (*bid.Bid, error) {
	service.logger.Info().
		Str("auction_id", req.AuctionID.String()).
		Str("bidder_id", req.BidderID.String()).
		Str("amount", req.Amount.String()).
		Msg("Attempting to place bid")

	target, err := service.auctionRepo.GetByID(ctx, req.AuctionID)
	if err != nil {
		return nil, apperrors.Classify(err, "something went wrong while loading the auction")
	}

	if target.IsOwnedBy(req.BidderID) {
		service.logger.Warn().
			Str("auction_id", req.AuctionID.String()).
			Str("bidder_id", req.BidderID.String()).
			Msg("Owner attempted to bid on own auction")
		return nil, apperrors.NewBadRequestError("SELF_BID", "cannot bid on your own auction")
	}

	highest, err := service.bidRepo.GetHighest(ctx, req.AuctionID)
	if err != nil {
		service.logger.Error().Err(err).Str("auction_id", req.AuctionID.String()).Msg("Failed to get highest bid")
		return nil, apperrors.Classify(err, "something went wrong while loading the highest bid")
	}

	candidate := &bid.Bid{
		ID:        uuid.New(),
		AuctionID: req.AuctionID,
		OwnerID:   req.BidderID,
		Amount:    req.Amount,
	}

	floor := target.StartingPrice
	floorName := "starting price"
	if highest != nil {
		floor = highest.Amount
		floorName = "current highest bid"
	}

	if !candidate.Exceeds(floor) {
		service.logger.Warn().
			Str("auction_id", req.AuctionID.String()).
			Str("floor", floor.String()).
			Str("amount", req.Amount.String()).
			Msg("Bid amount too low")
		return nil, apperrors.NewBadRequestError("BID_TOO_LOW",
			fmt.Sprintf("bid must be strictly greater than the %s of %s", floorName, floor.String()))
	}

	if err := service.bidRepo.Create(ctx, candidate); err != nil {
		service.logger.Error().Err(err).Str("bid_id", candidate.ID.String()).Msg("Failed to save bid")
		return nil, apperrors.Classify(err, "something went wrong while placing the bid")
	}

	service.logger.Info().
		Str("bid_id", candidate.ID.String()).
		Str("auction_id", req.AuctionID.String()).
		Str("bidder_id", req.BidderID.String()).
		Str("amount", req.Amount.String()).
		Msg("Bid placed")

	// Best effort: a lost event never fails an admitted bid
	if service.publisher != nil {
		event := outbound.Event{
			Type:      outbound.EventTypeBidPlaced,
			AuctionID: req.AuctionID,
			Data: map[string]interface{}{
				"bid_id":    candidate.ID.String(),
				"bidder_id": candidate.OwnerID.String(),
				"amount":    candidate.Amount.String(),
			},
			Timestamp: time.Now().Unix(),
		}
		if err := service.publisher.Publish(ctx, req.AuctionID, event); err != nil {
			service.logger.Error().Err(err).Str("bid_id", candidate.ID.String()).Msg("Failed to publish bid event")
		}
	}

	return candidate, nil
}

// ListByAuction retrieves an auction's bids, highest first
func (service *BidService) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error) {
	if _, err := service.auctionRepo.GetByID(ctx, auctionID); err != nil {
		return nil, apperrors.Classify(err, "something went wrong while loading the auction")
	}

	bids, err := service.bidRepo.ListByAuction(ctx, auctionID)
	if err != nil {
		return nil, apperrors.Classify(err, "something went wrong while listing bids")
	}
	return bids, nil
}
