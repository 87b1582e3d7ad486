package httpapi

import (
	"net/http"

	apperrors "gavel-auction-service/internal/errors"
	"gavel-auction-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type AuctionHandler struct {
	auctions inbound.AuctionService
	logger   zerolog.Logger
}

type AuctionHandlerParams struct {
	Auctions inbound.AuctionService
	Logger   zerolog.Logger
}

func NewAuctionHandler(params AuctionHandlerParams) *AuctionHandler {
	return &AuctionHandler{
		auctions: params.Auctions,
		logger:   params.Logger.With().Str("component", "auction_handler").Logger(),
	}
}

type createAuctionPayload struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Image         *string         `json:"image"`
	StartingPrice decimal.Decimal `json:"starting_price" binding:"required"`
	EndDate       string          `json:"end_date" binding:"required"`
}

type updateAuctionPayload struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Image         *string          `json:"image"`
	StartingPrice *decimal.Decimal `json:"starting_price"`

	// Bound only so an edit attempt can be rejected; the update request
	// type cannot carry an end date.
	EndDate *string `json:"end_date"`
}

func (h *AuctionHandler) ListAll(c *gin.Context) {
	auctions, err := h.auctions.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, auctions)
}

func (h *AuctionHandler) ListActive(c *gin.Context) {
	auctions, err := h.auctions.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, auctions)
}

func (h *AuctionHandler) Get(c *gin.Context) {
	auctionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidIDParam(c, "auction id")
		return
	}

	auction, err := h.auctions.Get(c.Request.Context(), auctionID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, auction)
}

func (h *AuctionHandler) ListMine(c *gin.Context) {
	auctions, err := h.auctions.ListByOwner(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, auctions)
}

func (h *AuctionHandler) Create(c *gin.Context) {
	var payload createAuctionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidPayload(c, err)
		return
	}

	auction, err := h.auctions.Create(c.Request.Context(), inbound.CreateAuctionRequest{
		OwnerID:       currentUser(c),
		Title:         payload.Title,
		Description:   payload.Description,
		Image:         payload.Image,
		StartingPrice: payload.StartingPrice,
		EndDate:       payload.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info().Str("auction_id", auction.ID.String()).Msg("auction created")
	respondJSON(c, http.StatusCreated, auction)
}

func (h *AuctionHandler) Update(c *gin.Context) {
	auctionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidIDParam(c, "auction id")
		return
	}

	var payload updateAuctionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidPayload(c, err)
		return
	}

	if payload.EndDate != nil {
		respondError(c, apperrors.NewBadRequestError("IMMUTABLE_END_DATE", "end date cannot be changed after creation"))
		return
	}

	auction, err := h.auctions.Update(c.Request.Context(), auctionID, currentUser(c), inbound.UpdateAuctionRequest{
		Title:         payload.Title,
		Description:   payload.Description,
		Image:         payload.Image,
		StartingPrice: payload.StartingPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, auction)
}

func (h *AuctionHandler) Delete(c *gin.Context) {
	auctionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidIDParam(c, "auction id")
		return
	}

	auction, err := h.auctions.Delete(c.Request.Context(), auctionID, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info().Str("auction_id", auction.ID.String()).Msg("auction deleted")
	respondJSON(c, http.StatusOK, auction)
}
