package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/waatech/merch-backend/errors"
	"github.com/waatech/merch-backend/models"
)

const coinbaseCommerceAPI = "https://api.commerce.coinbase.com"

// CoinbaseProvider creates Coinbase Commerce charges for crypto checkout.
// Standard shipping is pre-added to the charge total since Coinbase has no
// native shipping options. Without an API key it runs in demo mode.
type CoinbaseProvider struct {
	apiKey     string
	baseURL    string
	apiURL     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewCoinbaseProvider(apiKey, baseURL string, logger *zap.Logger) *CoinbaseProvider {
	return &CoinbaseProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		apiURL:  coinbaseCommerceAPI,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// ---- Coinbase Commerce API request/response structs ----

type coinbaseLocalPrice struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type coinbaseChargeRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	PricingType string             `json:"pricing_type"`
	LocalPrice  coinbaseLocalPrice `json:"local_price"`
	Metadata    map[string]string  `json:"metadata"`
	RedirectURL string             `json:"redirect_url"`
	CancelURL   string             `json:"cancel_url"`
}

type coinbaseChargeResponse struct {
	Data struct {
		ID        string `json:"id"`
		HostedURL string `json:"hosted_url"`
		Code      string `json:"code"`
	} `json:"data"`
}

func (p *CoinbaseProvider) CreateSession(ctx context.Context, items []models.CartItem) (*CheckoutSession, error) {
	if len(items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	if p.apiKey == "" {
		p.logger.Info("DEMO MODE: simulating Coinbase checkout", zap.Int("items", len(items)))
		return &CheckoutSession{
			URL:  fmt.Sprintf("%s/merch/success?demo=true&charge_id=demo_crypto_%d", p.baseURL, time.Now().UnixMilli()),
			Demo: true,
		}, nil
	}

	total := models.Subtotal(items) + ShippingStandardCents

	reqBody, err := json.Marshal(coinbaseChargeRequest{
		Name:        "WAA Merch Order",
		Description: orderDescription(items),
		PricingType: "fixed_price",
		LocalPrice: coinbaseLocalPrice{
			Amount:   fmt.Sprintf("%.2f", float64(total)/100),
			Currency: "USD",
		},
		Metadata: map[string]string{
			"items":  serializeItems(items),
			"source": "waa-merch-store",
		},
		RedirectURL: p.baseURL + "/merch/success",
		CancelURL:   p.baseURL + "/merch/cancel",
	})
	if err != nil {
		return nil, apperrors.New(apperrors.ErrProvider.Code, apperrors.ErrProvider.Message, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+"/charges", bytes.NewReader(reqBody))
	if err != nil {
		return nil, apperrors.New(apperrors.ErrProvider.Code, apperrors.ErrProvider.Message, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CC-Api-Key", p.apiKey)
	req.Header.Set("X-CC-Version", "2018-03-22")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Error("coinbase charge request failed", zap.Error(err))
		return nil, apperrors.New(apperrors.ErrProvider.Code, apperrors.ErrProvider.Message, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		p.logger.Error("coinbase charge creation failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, apperrors.New(apperrors.ErrProvider.Code, apperrors.ErrProvider.Message,
			fmt.Errorf("coinbase returned status %d", resp.StatusCode))
	}

	var chargeResp coinbaseChargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&chargeResp); err != nil {
		return nil, apperrors.New(apperrors.ErrProvider.Code, apperrors.ErrProvider.Message, err)
	}

	return &CheckoutSession{URL: chargeResp.Data.HostedURL}, nil
}
