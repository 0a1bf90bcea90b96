package services

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"go.uber.org/zap"

	apperrors "github.com/waatech/merch-backend/errors"
	"github.com/waatech/merch-backend/models"
)

// StripeProvider creates hosted Stripe Checkout sessions. Without a secret
// key it runs in demo mode and never contacts Stripe.
type StripeProvider struct {
	secretKey string
	baseURL   string
	logger    *zap.Logger
}

func NewStripeProvider(secretKey, baseURL string, logger *zap.Logger) *StripeProvider {
	if secretKey != "" {
		stripe.Key = secretKey
	}
	return &StripeProvider{
		secretKey: secretKey,
		baseURL:   baseURL,
		logger:    logger,
	}
}

func (p *StripeProvider) CreateSession(ctx context.Context, items []models.CartItem) (*CheckoutSession, error) {
	if len(items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	if p.secretKey == "" {
		p.logger.Info("DEMO MODE: simulating Stripe checkout", zap.Int("items", len(items)))
		return &CheckoutSession{
			URL:  fmt.Sprintf("%s/merch/success?demo=true&session_id=demo_%d", p.baseURL, time.Now().UnixMilli()),
			Demo: true,
		}, nil
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("usd"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(itemLabel(item)),
					Description: stripe.String(item.Product.Description),
					Images:      stripe.StringSlice([]string{p.baseURL + item.Product.Image}),
				},
				UnitAmount: stripe.Int64(int64(item.Product.Price)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(p.baseURL + "/merch/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(p.baseURL + "/merch/cancel"),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"US"}),
		},
		ShippingOptions: []*stripe.CheckoutSessionShippingOptionParams{
			shippingOption("Standard Shipping", ShippingStandardCents, 5, 7),
			shippingOption("Express Shipping", ShippingExpressCents, 1, 3),
		},
	}
	params.Context = ctx
	params.AddMetadata("source", "waa-merch-store")
	params.AddMetadata("items", serializeItems(items))

	sess, err := session.New(params)
	if err != nil {
		p.logger.Error("stripe session creation failed", zap.Error(err))
		return nil, apperrors.New(apperrors.ErrProvider.Code, apperrors.ErrProvider.Message, err)
	}

	return &CheckoutSession{URL: sess.URL}, nil
}

func shippingOption(name string, amountCents int64, minDays, maxDays int64) *stripe.CheckoutSessionShippingOptionParams {
	return &stripe.CheckoutSessionShippingOptionParams{
		ShippingRateData: &stripe.CheckoutSessionShippingOptionShippingRateDataParams{
			Type: stripe.String("fixed_amount"),
			FixedAmount: &stripe.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
				Amount:   stripe.Int64(amountCents),
				Currency: stripe.String("usd"),
			},
			DisplayName: stripe.String(name),
			DeliveryEstimate: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateParams{
				Minimum: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateMinimumParams{
					Unit:  stripe.String("business_day"),
					Value: stripe.Int64(minDays),
				},
				Maximum: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateMaximumParams{
					Unit:  stripe.String("business_day"),
					Value: stripe.Int64(maxDays),
				},
			},
		},
	}
}
