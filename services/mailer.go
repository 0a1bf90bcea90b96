package services

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"go.uber.org/zap"

	"github.com/waatech/merch-backend/models"
	"github.com/waatech/merch-backend/repository"
	"github.com/waatech/merch-backend/sender"
)

// OrderNotifier dispatches order notifications. Callers must treat a
// returned error as advisory only: an order is placed regardless of
// delivery outcome.
type OrderNotifier interface {
	SendOrderNotifications(ctx context.Context, order *models.Order) error
}

const customerTextTemplate = `Hi {{.Order.Name}}!

Thank you for your order! We've received your request and will be in touch shortly with payment instructions and pickup details.

{{range .Lines}}{{.}}
{{end}}
Subtotal: {{.SubtotalLabel}}

Order ID: {{.Order.OrderID}}
Pickup Location: (To be provided)
Payment: You'll receive payment instructions via email.

Questions? Reply to this email or contact us at hello@waatech.xyz

- The WAA Team`

const customerHTMLTemplate = `<html><body>
<h2>Thanks for your order, {{.Order.Name}}!</h2>
<p>We've received your request and will be in touch shortly with payment instructions and pickup details.</p>
<ul>
{{range .Lines}}<li>{{.}}</li>
{{end}}</ul>
<p><strong>Subtotal: {{.SubtotalLabel}}</strong></p>
<p>Order ID: <code>{{.Order.OrderID}}</code></p>
<p>Questions? Reply to this email or contact us at hello@waatech.xyz</p>
<p>- The WAA Team</p>
</body></html>`

const adminTextTemplate = `NEW ORDER FROM WAA MERCH STORE
================================

Order ID: {{.Order.OrderID}}

Customer Information:
- Name: {{.Order.Name}}
- Email: {{.Order.Email}}
{{if .Order.Phone}}- Phone: {{.Order.Phone}}
{{end}}{{if .Order.WalletAddress}}- Wallet: {{.Order.WalletAddress}}
{{end}}
Order Details:
{{range .Lines}}{{.}}
{{end}}
Subtotal: {{.SubtotalLabel}}
{{if .Order.HasFreePackage}}Includes member welcome package.
{{end}}
================================
Order placed at: {{.PlacedAtLabel}}`

const adminHTMLTemplate = `<html><body>
<h2>New WAA Merch Order</h2>
<p>Order ID: <code>{{.Order.OrderID}}</code></p>
<h3>Customer</h3>
<ul>
<li>Name: {{.Order.Name}}</li>
<li>Email: {{.Order.Email}}</li>
{{if .Order.Phone}}<li>Phone: {{.Order.Phone}}</li>{{end}}
{{if .Order.WalletAddress}}<li>Wallet: {{.Order.WalletAddress}}</li>{{end}}
</ul>
<h3>Items</h3>
<ul>
{{range .Lines}}<li>{{.}}</li>
{{end}}</ul>
<p><strong>Subtotal: {{.SubtotalLabel}}</strong></p>
{{if .Order.HasFreePackage}}<p>Includes member welcome package.</p>{{end}}
<p>Order placed at: {{.PlacedAtLabel}}</p>
</body></html>`

var (
	customerText = texttemplate.Must(texttemplate.New("customer_text").Parse(customerTextTemplate))
	adminText    = texttemplate.Must(texttemplate.New("admin_text").Parse(adminTextTemplate))
	customerHTML = htmltemplate.Must(htmltemplate.New("customer_html").Parse(customerHTMLTemplate))
	adminHTML    = htmltemplate.Must(htmltemplate.New("admin_html").Parse(adminHTMLTemplate))
)

type mailData struct {
	Order         *models.Order
	Lines         []string
	SubtotalLabel string
	PlacedAtLabel string
}

// Mailer renders and sends the admin and customer order emails. Each send
// is retried the usual three times; failures are logged and recorded in
// the notification log when one is configured.
type Mailer struct {
	sender      sender.EmailSender
	repo        repository.NotificationRepository // nil skips persistence
	adminEmails []string
	logger      *zap.Logger
}

func NewMailer(emailSender sender.EmailSender, repo repository.NotificationRepository, adminEmails []string, logger *zap.Logger) *Mailer {
	return &Mailer{
		sender:      emailSender,
		repo:        repo,
		adminEmails: adminEmails,
		logger:      logger,
	}
}

func (m *Mailer) SendOrderNotifications(ctx context.Context, order *models.Order) error {
	data := buildMailData(order)

	var failures []string

	adminSubject := fmt.Sprintf("New WAA Merch Order from %s", order.Name)
	adminTextBody, adminHTMLBody, err := render(adminText, adminHTML, data)
	if err != nil {
		return fmt.Errorf("failed to render admin notification: %w", err)
	}
	for _, admin := range m.adminEmails {
		if err := m.sendWithRetry(ctx, order, models.TypeOrderAdmin, admin, adminSubject, adminTextBody, adminHTMLBody); err != nil {
			failures = append(failures, fmt.Sprintf("admin %s: %v", admin, err))
		}
	}

	customerSubject := "Your WAA Merch Order Confirmation"
	customerTextBody, customerHTMLBody, err := render(customerText, customerHTML, data)
	if err != nil {
		return fmt.Errorf("failed to render customer notification: %w", err)
	}
	if err := m.sendWithRetry(ctx, order, models.TypeOrderCustomer, order.Email, customerSubject, customerTextBody, customerHTMLBody); err != nil {
		failures = append(failures, fmt.Sprintf("customer: %v", err))
	}

	if len(failures) > 0 {
		return fmt.Errorf("notification delivery incomplete: %s", strings.Join(failures, "; "))
	}
	return nil
}

func (m *Mailer) sendWithRetry(ctx context.Context, order *models.Order, notifType, to, subject, textBody, htmlBody string) error {
	var lastErr error

retry:
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				lastErr = fmt.Errorf("retry aborted: %w", ctx.Err())
				break retry
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		if _, lastErr = m.sender.SendEmail(ctx, to, subject, textBody, htmlBody); lastErr == nil {
			break
		}

		m.logger.Warn("email send attempt failed",
			zap.String("type", notifType),
			zap.String("order_id", order.OrderID),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
	}

	status := models.StatusSent
	errMsg := ""
	if lastErr != nil {
		status = models.StatusFailed
		errMsg = lastErr.Error()
	}

	if m.repo != nil {
		entry := &models.NotificationLog{
			OrderID:   order.OrderID,
			Recipient: to,
			Type:      notifType,
			Channel:   models.ChannelEmail,
			Status:    status,
			Error:     errMsg,
		}
		if err := m.repo.SaveLog(ctx, entry); err != nil {
			m.logger.Error("failed to save notification log", zap.Error(err))
		}
	}

	return lastErr
}

func buildMailData(order *models.Order) mailData {
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("• %dx %s - %s", item.Quantity, itemLabel(item), models.FormatPrice(item.LineTotal())))
	}
	return mailData{
		Order:         order,
		Lines:         lines,
		SubtotalLabel: models.FormatPrice(order.Subtotal),
		PlacedAtLabel: order.PlacedAt.Format("Jan 2, 2006 3:04:05 PM MST"),
	}
}

func render(text *texttemplate.Template, html *htmltemplate.Template, data mailData) (string, string, error) {
	var textBuf, htmlBuf bytes.Buffer
	if err := text.Execute(&textBuf, data); err != nil {
		return "", "", err
	}
	if err := html.Execute(&htmlBuf, data); err != nil {
		return "", "", err
	}
	return textBuf.String(), htmlBuf.String(), nil
}
