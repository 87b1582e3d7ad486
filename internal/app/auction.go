package app

import (
	"context"
	"time"

	"gavel-auction-service/internal/domain/auction"
	apperrors "gavel-auction-service/internal/errors"
	"gavel-auction-service/internal/ports/inbound"
	"gavel-auction-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuctionService implements the auction use cases, including the lazy
// lifecycle sweep that closes expired auctions on listing reads
type AuctionService struct {
	auctionRepo outbound.AuctionRepository
	userRepo    outbound.UserRepository
	notifier    inbound.NotificationService
	logger      zerolog.Logger
}

type AuctionServiceParams struct {
	AuctionRepo outbound.AuctionRepository
	UserRepo    outbound.UserRepository
	Notifier    inbound.NotificationService
	Logger      zerolog.Logger
}

// NewAuctionService creates a new auction service
func NewAuctionService(params AuctionServiceParams) *AuctionService {
	return &AuctionService{
		auctionRepo: params.AuctionRepo,
		userRepo:    params.UserRepo,
		notifier:    params.Notifier,
		logger:      params.Logger.With().Str("component", "auction_service").Logger(),
	}
}

// Create creates a new auction owned by the caller
func (service *AuctionService) Create(ctx context.Context, req inbound.CreateAuctionRequest) (*auction.Auction, error) {
	service.logger.Info().
		Str("owner_id", req.OwnerID.String()).
		Str("title", req.Title).
		Str("end_date", req.EndDate).
		Str("starting_price", req.StartingPrice.String()).
		Msg("Attempting to create auction")

	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		service.logger.Warn().Str("end_date", req.EndDate).Msg("Invalid end date format")
		return nil, apperrors.NewBadRequestError("INVALID_TIME_FORMAT", "end date must be an RFC3339 timestamp")
	}

	now := time.Now()
	if !endDate.After(now) {
		service.logger.Warn().Time("end_date", endDate).Time("current_time", now).Msg("End date cannot be in the past")
		return nil, apperrors.NewBadRequestError("INVALID_END_DATE", "end date must be in the future")
	}

	if !req.StartingPrice.IsPositive() {
		service.logger.Warn().Str("starting_price", req.StartingPrice.String()).Msg("Starting price must be greater than 0")
		return nil, apperrors.NewBadRequestError("INVALID_STARTING_PRICE", "starting price must be greater than 0")
	}

	owner, err := service.userRepo.GetByID(ctx, req.OwnerID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			service.logger.Warn().Str("owner_id", req.OwnerID.String()).Msg("Owner not found")
			return nil, apperrors.NewBadRequestError("OWNER_NOT_FOUND", "owner does not exist")
		}
		return nil, apperrors.Classify(err, "failed to validate auction owner")
	}

	newAuction := &auction.Auction{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		Image:         req.Image,
		StartingPrice: req.StartingPrice,
		EndDate:       endDate,
		IsActive:      true,
		OwnerID:       owner.ID,
	}

	if err := service.auctionRepo.Create(ctx, newAuction); err != nil {
		service.logger.Error().Err(err).Str("auction_id", newAuction.ID.String()).Msg("Failed to save auction")
		return nil, apperrors.Classify(err, "something went wrong while creating the auction")
	}

	service.logger.Info().
		Str("auction_id", newAuction.ID.String()).
		Str("owner_id", owner.ID.String()).
		Time("end_date", newAuction.EndDate).
		Msg("Auction created")

	return newAuction, nil
}

// Get retrieves a single auction with its owner and bids
func (service *AuctionService) Get(ctx context.Context, auctionID uuid.UUID) (*auction.Auction, error) {
	found, err := service.auctionRepo.GetByID(ctx, auctionID, "Owner", "Bids")
	if err != nil {
		return nil, apperrors.Classify(err, "something went wrong while loading the auction")
	}
	return found, nil
}

// ListAll retrieves every auction, sweeping expired ones closed first
func (service *AuctionService) ListAll(ctx context.Context) ([]*auction.Auction, error) {
	if err := service.sweepExpired(ctx); err != nil {
		return nil, err
	}

	auctions, err := service.auctionRepo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Classify(err, "something went wrong while listing auctions")
	}
	return auctions, nil
}

// ListActive retrieves auctions that are still open, sweeping first
func (service *AuctionService) ListActive(ctx context.Context) ([]*auction.Auction, error) {
	if err := service.sweepExpired(ctx); err != nil {
		return nil, err
	}

	auctions, err := service.auctionRepo.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Classify(err, "something went wrong while listing active auctions")
	}
	return auctions, nil
}

// ListByOwner retrieves the caller's auctions, sweeping first
func (service *AuctionService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*auction.Auction, error) {
	if err := service.sweepExpired(ctx); err != nil {
		return nil, err
	}

	auctions, err := service.auctionRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Classify(err, "something went wrong while listing the user's auctions")
	}
	return auctions, nil
}

// Update updates an auction's listing fields. Existence is checked before
// ownership, so a missing auction reports not-found rather than forbidden.
// Owner and end date are immutable.
func (service *AuctionService) Update(ctx context.Context, auctionID, callerID uuid.UUID, req inbound.UpdateAuctionRequest) (*auction.Auction, error) {
	found, err := service.auctionRepo.GetByID(ctx, auctionID)
	if err != nil {
		return nil, apperrors.Classify(err, "something went wrong while loading the auction")
	}

	if !found.IsOwnedBy(callerID) {
		service.logger.Warn().
			Str("auction_id", auctionID.String()).
			Str("caller_id", callerID.String()).
			Msg("Update attempt by non-owner")
		return nil, apperrors.NewForbiddenError("you are not the owner of this auction")
	}

	if req.Title != nil {
		found.Title = *req.Title
	}
	if req.Description != nil {
		found.Description = *req.Description
	}
	if req.Image != nil {
		found.Image = req.Image
	}
	if req.StartingPrice != nil {
		if !req.StartingPrice.IsPositive() {
			return nil, apperrors.NewBadRequestError("INVALID_STARTING_PRICE", "starting price must be greater than 0")
		}
		found.StartingPrice = *req.StartingPrice
	}

	if err := service.auctionRepo.Update(ctx, found); err != nil {
		service.logger.Error().Err(err).Str("auction_id", auctionID.String()).Msg("Failed to update auction")
		return nil, apperrors.Classify(err, "something went wrong while updating the auction")
	}

	service.logger.Info().Str("auction_id", auctionID.String()).Msg("Auction updated")
	return found, nil
}

// Delete deletes an auction and, through the schema's cascade, its bids and
// notifications. Existence is checked before ownership.
func (service *AuctionService) Delete(ctx context.Context, auctionID, callerID uuid.UUID) (*auction.Auction, error) {
	found, err := service.auctionRepo.GetByID(ctx, auctionID)
	if err != nil {
		return nil, apperrors.Classify(err, "something went wrong while loading the auction")
	}

	if !found.IsOwnedBy(callerID) {
		service.logger.Warn().
			Str("auction_id", auctionID.String()).
			Str("caller_id", callerID.String()).
			Msg("Delete attempt by non-owner")
		return nil, apperrors.NewForbiddenError("you are not the owner of this auction")
	}

	if err := service.auctionRepo.Delete(ctx, auctionID); err != nil {
		service.logger.Error().Err(err).Str("auction_id", auctionID.String()).Msg("Failed to delete auction")
		return nil, apperrors.Classify(err, "something went wrong while deleting the auction")
	}

	service.logger.Info().Str("auction_id", auctionID.String()).Msg("Auction deleted")
	return found, nil
}
