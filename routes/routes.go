package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/waatech/merch-backend/config"
	"github.com/waatech/merch-backend/controllers"
	apperrors "github.com/waatech/merch-backend/errors"
	"github.com/waatech/merch-backend/logger"
	"github.com/waatech/merch-backend/middleware"
	"github.com/waatech/merch-backend/repository"
	"github.com/waatech/merch-backend/sender"
	"github.com/waatech/merch-backend/services"
)

// RegisterRoutes wires repositories, services, and controllers onto the
// router. notificationRepo may be nil when no database is configured.
func RegisterRoutes(
	r *gin.Engine,
	redisClient *redis.Client,
	emailSender sender.EmailSender,
	notificationRepo repository.NotificationRepository,
	cfg config.Config,
	log *zap.Logger,
) {
	r.Use(logger.RequestLogger())
	r.Use(apperrors.ErrorMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.BaseURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Session-ID", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	chainClient := services.NewJSONRPCChainClient(cfg.ChainRPCURL, cfg.MembershipContract)
	ledger := repository.NewRedisRedemptionLedger(redisClient)
	membershipSvc := services.NewMembershipService(chainClient, ledger, log)

	mailer := services.NewMailer(emailSender, notificationRepo, cfg.AdminEmails, log)
	orderSvc := services.NewOrderService(mailer, cfg.OrderIDMode, cfg.OrderTimezone, log)

	stripeProvider := services.NewStripeProvider(cfg.StripeSecretKey, cfg.BaseURL, log)
	coinbaseProvider := services.NewCoinbaseProvider(cfg.CoinbaseAPIKey, cfg.BaseURL, log)

	catalogCtrl := controllers.NewCatalogController()
	persistFor := func(sessionID string) repository.CartPersistence {
		return repository.NewRedisCartPersistence(redisClient, sessionID, cfg.CartTTL)
	}
	cartCtrl := controllers.NewCartController(persistFor, membershipSvc, log)
	checkoutCtrl := controllers.NewCheckoutController(stripeProvider, coinbaseProvider, log)
	membershipCtrl := controllers.NewMembershipController(membershipSvc, log)
	orderCtrl := controllers.NewOrderController(orderSvc, log)
	webhookCtrl := controllers.NewWebhookController(cfg.StripeWebhookSecret, cfg.CoinbaseWebhookSecret, log)

	submitLimiter := middleware.RateLimitMiddleware(rate.Every(time.Minute/30), 10)

	api := r.Group("/api")
	{
		api.GET("/products", catalogCtrl.ListProducts)
		api.GET("/products/:id", catalogCtrl.GetProduct)

		api.GET("/membership", membershipCtrl.CheckMembership)
		api.GET("/redemption", membershipCtrl.CheckRedemption)
		api.POST("/redemption", membershipCtrl.MarkRedeemed)

		api.POST("/checkout/stripe", submitLimiter, checkoutCtrl.CreateStripeSession)
		api.POST("/checkout/crypto", submitLimiter, checkoutCtrl.CreateCryptoSession)
		api.POST("/order", submitLimiter, orderCtrl.SubmitOrder)

		api.POST("/webhooks/stripe", webhookCtrl.StripeWebhook)
		api.POST("/webhooks/coinbase", webhookCtrl.CoinbaseWebhook)
	}

	cart := r.Group("/cart")
	{
		cart.GET("", cartCtrl.GetCart)
		cart.POST("/items", cartCtrl.AddItem)
		cart.PATCH("/items", cartCtrl.UpdateQuantity)
		cart.DELETE("/items", cartCtrl.RemoveItem)
		cart.DELETE("", cartCtrl.ClearCart)
	}
}
