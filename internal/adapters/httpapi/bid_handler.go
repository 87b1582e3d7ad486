package httpapi

import (
	"net/http"

	"gavel-auction-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type BidHandler struct {
	bids   inbound.BidService
	logger zerolog.Logger
}

type BidHandlerParams struct {
	Bids   inbound.BidService
	Logger zerolog.Logger
}

func NewBidHandler(params BidHandlerParams) *BidHandler {
	return &BidHandler{
		bids:   params.Bids,
		logger: params.Logger.With().Str("component", "bid_handler").Logger(),
	}
}

type placeBidPayload struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

func (h *BidHandler) Place(c *gin.Context) {
	auctionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidIDParam(c, "auction id")
		return
	}

	var payload placeBidPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidPayload(c, err)
		return
	}

	placed, err := h.bids.PlaceBid(c.Request.Context(), inbound.PlaceBidRequest{
		AuctionID: auctionID,
		BidderID:  currentUser(c),
		Amount:    payload.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info().
		Str("bid_id", placed.ID.String()).
		Str("auction_id", auctionID.String()).
		Msg("bid placed")
	respondJSON(c, http.StatusOK, placed)
}

func (h *BidHandler) ListByAuction(c *gin.Context) {
	auctionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidIDParam(c, "auction id")
		return
	}

	bids, err := h.bids.ListByAuction(c.Request.Context(), auctionID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, bids)
}
