package controllers_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/waatech/merch-backend/controllers"
)

const coinbaseSecret = "whsec_coinbase_test"

func setupWebhookRouter(stripeSecret, coinbaseSecret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	logger, _ := zap.NewDevelopment()
	wc := controllers.NewWebhookController(stripeSecret, coinbaseSecret, logger)
	r.POST("/api/webhooks/stripe", wc.StripeWebhook)
	r.POST("/api/webhooks/coinbase", wc.CoinbaseWebhook)
	return r
}

func signCoinbase(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCoinbaseWebhook_ValidSignature(t *testing.T) {
	r := setupWebhookRouter("", coinbaseSecret)
	body := []byte(`{"id":"evt-1","type":"charge:confirmed","data":{"id":"charge-1","code":"ABCDEF","pricing":{"local":{"amount":"64.99","currency":"USD"}}}}`)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/coinbase", bytes.NewReader(body))
	req.Header.Set("X-CC-Webhook-Signature", signCoinbase(body, coinbaseSecret))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
}

func TestCoinbaseWebhook_TamperedBodyRejected(t *testing.T) {
	r := setupWebhookRouter("", coinbaseSecret)
	body := []byte(`{"id":"evt-1","type":"charge:confirmed","data":{"id":"charge-1"}}`)
	signature := signCoinbase(body, coinbaseSecret)

	tampered := []byte(`{"id":"evt-1","type":"charge:confirmed","data":{"id":"charge-FORGED"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/coinbase", bytes.NewReader(tampered))
	req.Header.Set("X-CC-Webhook-Signature", signature)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid signature")
}

func TestCoinbaseWebhook_MissingSignature(t *testing.T) {
	r := setupWebhookRouter("", coinbaseSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/coinbase", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing signature")
}

func TestCoinbaseWebhook_UnknownEventTypeStillAccepted(t *testing.T) {
	r := setupWebhookRouter("", coinbaseSecret)
	body := []byte(`{"id":"evt-2","type":"charge:resolved","data":{"code":"XYZ"}}`)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/coinbase", bytes.NewReader(body))
	req.Header.Set("X-CC-Webhook-Signature", signCoinbase(body, coinbaseSecret))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
}

func TestCoinbaseWebhook_NotConfigured(t *testing.T) {
	r := setupWebhookRouter("", "")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/coinbase", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("X-CC-Webhook-Signature", "deadbeef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStripeWebhook_InvalidSignatureRejected(t *testing.T) {
	r := setupWebhookRouter("whsec_stripe_test", coinbaseSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader([]byte(`{"type":"checkout.session.completed"}`)))
	req.Header.Set("Stripe-Signature", "t=1,v1=bogus")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeWebhook_NotConfigured(t *testing.T) {
	r := setupWebhookRouter("", coinbaseSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
