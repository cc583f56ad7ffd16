package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/meatshop/backend/internal/domain/order"
	"github.com/meatshop/backend/internal/infrastructure/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridNotifier emails an order summary to the shop inbox whenever an
// order is placed. An unconfigured API key turns the notifier into a no-op:
// orders go through with or without mail.
type SendGridNotifier struct {
	cfg    config.SendGridConfig
	logger *zap.Logger
}

// NewSendGridNotifier creates a notifier from the sendgrid config section
func NewSendGridNotifier(cfg config.SendGridConfig, logger *zap.Logger) *SendGridNotifier {
	return &SendGridNotifier{cfg: cfg, logger: logger}
}

// NotifyOrderPlaced sends the order summary mail
func (n *SendGridNotifier) NotifyOrderPlaced(_ context.Context, o *order.Order) error {
	if n.cfg.APIKey == "" {
		n.logger.Debug("SendGrid not configured, skipping order notification",
			zap.String("order_id", o.ID),
		)
		return nil
	}
	if n.cfg.ToEmail == "" {
		return fmt.Errorf("sendgrid recipient address is empty")
	}

	from := mail.NewEmail(n.cfg.FromName, n.cfg.FromEmail)
	to := mail.NewEmail(n.cfg.ToName, n.cfg.ToEmail)
	subject := fmt.Sprintf("New order %s (%s)", o.ID, o.TotalAmount)
	body := renderOrderBody(o)
	message := mail.NewSingleEmail(from, subject, to, body, fmt.Sprintf("<pre>%s</pre>", body))

	client := sendgrid.NewSendClient(n.cfg.APIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	n.logger.Info("Order notification sent",
		zap.String("order_id", o.ID),
		zap.Int("status", response.StatusCode),
	)
	return nil
}

// renderOrderBody builds the plain-text order summary
func renderOrderBody(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s placed at %s\n\n", o.ID, o.CreatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Customer: %s <%s> %s\n", o.Customer.Name, o.Customer.Email, o.Customer.Phone)
	fmt.Fprintf(&b, "Deliver to: %s, %s %s, %s, %s\n", o.Address.StreetAddress, o.Address.City, o.Address.PostalCode, o.Address.Country, o.Address.PhoneNumber)
	if o.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", o.Message)
	}
	b.WriteString("\nItems:\n")
	for _, it := range o.Items {
		weight := ""
		if it.Weight != nil {
			weight = fmt.Sprintf(" (%g %s)", it.Weight.Value, it.Weight.Unit)
		}
		fmt.Fprintf(&b, "  %dx %s%s @ %s\n", it.Quantity, it.Name, weight, it.Price)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", o.TotalAmount)
	return b.String()
}
