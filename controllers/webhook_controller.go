package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/webhook"
	"go.uber.org/zap"

	"github.com/waatech/merch-backend/models"
)

// WebhookController receives asynchronous payment events from both
// providers. Signatures are verified over the raw body before any
// parsing; confirmed payments are logged, which is the designated
// extension point for order persistence and confirmation email.
type WebhookController struct {
	stripeWebhookSecret   string
	coinbaseWebhookSecret string
	logger                *zap.Logger
}

func NewWebhookController(stripeWebhookSecret, coinbaseWebhookSecret string, logger *zap.Logger) *WebhookController {
	return &WebhookController{
		stripeWebhookSecret:   stripeWebhookSecret,
		coinbaseWebhookSecret: coinbaseWebhookSecret,
		logger:                logger,
	}
}

// StripeWebhook handles POST /api/webhooks/stripe.
func (wc *WebhookController) StripeWebhook(c *gin.Context) {
	if wc.stripeWebhookSecret == "" {
		wc.logger.Error("STRIPE_WEBHOOK_SECRET is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook not configured"})
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), wc.stripeWebhookSecret)
	if err != nil {
		wc.logger.Warn("stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			wc.logger.Error("failed to unmarshal checkout session", zap.Error(err))
			break
		}
		fields := []zap.Field{
			zap.String("session_id", sess.ID),
			zap.Int64("amount_total", sess.AmountTotal),
		}
		if sess.CustomerDetails != nil {
			fields = append(fields, zap.String("customer_email", sess.CustomerDetails.Email))
		}
		wc.logger.Info("payment successful", fields...)

	case "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			wc.logger.Error("failed to unmarshal payment intent", zap.Error(err))
			break
		}
		wc.logger.Info("payment failed", zap.String("payment_intent_id", pi.ID))

	default:
		wc.logger.Info("unhandled stripe event type", zap.String("event_type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// CoinbaseWebhook handles POST /api/webhooks/coinbase.
func (wc *WebhookController) CoinbaseWebhook(c *gin.Context) {
	if wc.coinbaseWebhookSecret == "" {
		wc.logger.Error("COINBASE_WEBHOOK_SECRET is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook not configured"})
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	signature := c.GetHeader("X-CC-Webhook-Signature")
	if signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing signature"})
		return
	}

	if !verifyCoinbaseSignature(payload, signature, wc.coinbaseWebhookSecret) {
		wc.logger.Warn("coinbase webhook signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	wc.handleCoinbaseEvent(payload)
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (wc *WebhookController) handleCoinbaseEvent(payload []byte) {
	var event models.CoinbaseWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		wc.logger.Error("failed to parse coinbase event", zap.Error(err))
		return
	}

	switch event.Type {
	case "charge:confirmed":
		wc.logger.Info("crypto payment confirmed",
			zap.String("charge_id", event.Data.ID),
			zap.String("code", event.Data.Code),
			zap.String("amount", event.Data.Pricing.Local.Amount),
			zap.String("currency", event.Data.Pricing.Local.Currency),
		)
		if event.Data.Metadata.Items != "" {
			wc.logger.Info("order items", zap.String("items", event.Data.Metadata.Items))
		}

	case "charge:pending":
		wc.logger.Info("crypto payment pending", zap.String("code", event.Data.Code))

	case "charge:failed":
		wc.logger.Info("crypto payment failed", zap.String("code", event.Data.Code))

	case "charge:delayed":
		wc.logger.Info("crypto payment delayed", zap.String("code", event.Data.Code))

	default:
		wc.logger.Info("unhandled coinbase event type", zap.String("event_type", event.Type))
	}
}

// verifyCoinbaseSignature checks the hex HMAC-SHA256 of the raw body in
// constant time.
func verifyCoinbaseSignature(payload []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
