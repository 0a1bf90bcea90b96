package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waatech/merch-backend/config"
	"github.com/waatech/merch-backend/models"
)

// Basic email-shape check: non-whitespace, @, non-whitespace, dot,
// non-whitespace. Deliberately lax; deliverability is confirmed by the
// confirmation email itself.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// OrderService validates manually submitted orders, logs them, and
// dispatches notifications. The logged summary is the durability floor:
// once validation passes and the summary is logged the order counts as
// placed, whatever happens to email delivery.
type OrderService struct {
	notifier    OrderNotifier
	validate    *validator.Validate
	orderIDMode string
	location    *time.Location
	logger      *zap.Logger
}

func NewOrderService(notifier OrderNotifier, orderIDMode, timezone string, logger *zap.Logger) *OrderService {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("invalid order timezone, falling back to UTC", zap.String("timezone", timezone), zap.Error(err))
		loc = time.UTC
	}
	return &OrderService{
		notifier:    notifier,
		validate:    validator.New(),
		orderIDMode: orderIDMode,
		location:    loc,
		logger:      logger,
	}
}

// SubmitOrder validates and places an order. Validation failures are the
// only errors a caller sees; notification failures are logged and the
// order still succeeds.
func (s *OrderService) SubmitOrder(ctx context.Context, req *models.OrderSubmission) (*models.OrderResult, *ServiceError) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Name, email, and items are required"}
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ServiceError{StatusCode: 400, Message: "Name, email, and items are required"}
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid email format"}
	}

	order := &models.Order{
		OrderID:        s.generateOrderID(),
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		WalletAddress:  req.WalletAddress,
		Items:          append([]models.CartItem(nil), req.Items...),
		Subtotal:       models.Subtotal(req.Items),
		HasFreePackage: hasFreePackage(req.Items),
		PlacedAt:       time.Now().In(s.location),
	}

	// Durability floor: the order is observable in server logs even if
	// every downstream notification fails.
	s.logger.Info("order received",
		zap.String("order_id", order.OrderID),
		zap.String("summary", orderSummary(order)),
	)

	if err := s.notifier.SendOrderNotifications(ctx, order); err != nil {
		s.logger.Error("order notification delivery failed",
			zap.String("order_id", order.OrderID),
			zap.Error(err),
		)
	}

	return &models.OrderResult{
		Success: true,
		Message: "Order submitted successfully! Check your email for payment instructions and pickup details.",
		OrderID: order.OrderID,
	}, nil
}

// generateOrderID produces "WAA-" plus a short base-36 timestamp by
// default, or a UUID fragment when configured for collision safety.
func (s *OrderService) generateOrderID() string {
	if s.orderIDMode == config.OrderIDModeUUID {
		return "WAA-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	}
	return "WAA-" + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}

func hasFreePackage(items []models.CartItem) bool {
	for _, item := range items {
		if item.Product.MemberExclusive || item.Product.ID == models.WelcomePackage.ID {
			return true
		}
	}
	return false
}

func orderSummary(order *models.Order) string {
	var b strings.Builder

	b.WriteString("NEW ORDER FROM WAA MERCH STORE\n")
	b.WriteString("================================\n\n")
	b.WriteString("Customer Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", order.Name)
	fmt.Fprintf(&b, "- Email: %s\n", order.Email)
	if order.Phone != "" {
		fmt.Fprintf(&b, "- Phone: %s\n", order.Phone)
	}
	if order.WalletAddress != "" {
		fmt.Fprintf(&b, "- Wallet: %s\n", order.WalletAddress)
	}

	b.WriteString("\nOrder Details:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %dx %s - %s\n", item.Quantity, itemLabel(item), models.FormatPrice(item.LineTotal()))
	}

	fmt.Fprintf(&b, "\nSubtotal: %s\n", models.FormatPrice(order.Subtotal))
	if order.HasFreePackage {
		b.WriteString("Includes member welcome package.\n")
	}
	b.WriteString("\n================================\n")
	fmt.Fprintf(&b, "Order placed at: %s", order.PlacedAt.Format("Jan 2, 2006 3:04:05 PM MST"))

	return b.String()
}
