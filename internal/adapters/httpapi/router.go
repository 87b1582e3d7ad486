package httpapi

import (
	"net/http"

	"gavel-auction-service/internal/adapters/ws"
	"gavel-auction-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type RouterParams struct {
	Auctions      inbound.AuctionService
	Bids          inbound.BidService
	Notifications inbound.NotificationService
	Users         inbound.UserService
	Verifier      *TokenVerifier
	WSHandler     *ws.Handler
	Logger        zerolog.Logger
}

// NewRouter wires the HTTP surface. Read endpoints are public; everything
// that acts on behalf of a user sits behind bearer auth.
func NewRouter(params RouterParams) *gin.Engine {
	auctionHandler := NewAuctionHandler(AuctionHandlerParams{
		Auctions: params.Auctions,
		Logger:   params.Logger,
	})
	bidHandler := NewBidHandler(BidHandlerParams{
		Bids:   params.Bids,
		Logger: params.Logger,
	})
	notificationHandler := NewNotificationHandler(NotificationHandlerParams{
		Notifications: params.Notifications,
		Logger:        params.Logger,
	})
	userHandler := NewUserHandler(UserHandlerParams{
		Users:  params.Users,
		Logger: params.Logger,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(params.Logger))

	router.GET("/health", handleHealth)
	router.POST("/signup", userHandler.Signup)

	router.GET("/auctions", auctionHandler.ListAll)
	router.GET("/active-auctions", auctionHandler.ListActive)
	router.GET("/auction/:id", auctionHandler.Get)
	router.GET("/auction/:id/bids", bidHandler.ListByAuction)

	authed := router.Group("/", RequireAuth(params.Verifier))
	authed.GET("/me/auctions", auctionHandler.ListMine)
	authed.POST("/me/auction", auctionHandler.Create)
	authed.PATCH("/me/auction/:id", auctionHandler.Update)
	authed.DELETE("/me/auction/:id", auctionHandler.Delete)
	authed.POST("/auctions/:id/bid", bidHandler.Place)
	authed.GET("/me/notifications", notificationHandler.Inbox)
	authed.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)

	if params.WSHandler != nil {
		router.GET("/ws", func(c *gin.Context) {
			params.WSHandler.HandleWebSocket(c.Writer, c.Request)
		})
	}

	return router
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "auction-service"})
}
