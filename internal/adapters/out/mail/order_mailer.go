// backend/internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	orderdom "verseone/internal/domain/order"
)

// EmailClient は実際のメール送信クライアント（SendGrid など）を
// 抽象化した下位レベルのインターフェースです。
type EmailClient interface {
	Send(ctx context.Context, m Message) error
}

// OrderMailer tells the shop owner about a new order, with the order CSV
// attached. It implements usecase.OrderNotifier.
type OrderMailer struct {
	client      EmailClient
	fromAddress string
	toAddress   string
}

func NewOrderMailer(client EmailClient, fromAddress, toAddress string) *OrderMailer {
	return &OrderMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
		toAddress:   strings.TrimSpace(toAddress),
	}
}

func (m *OrderMailer) NotifyOrderPlaced(ctx context.Context, o orderdom.Order, csv string, filename string) error {
	if m == nil || m.client == nil {
		return errors.New("order_mailer: client is nil")
	}
	return m.client.Send(ctx, Message{
		From:    m.fromAddress,
		To:      m.toAddress,
		Subject: fmt.Sprintf("New order #%s from %s", o.OrderID, o.Customer.Name),
		Body:    buildOrderBody(o),
		Attachments: []Attachment{{
			Filename:    filename,
			ContentType: orderdom.CSVContentType,
			Content:     []byte(csv),
		}},
	})
}

func buildOrderBody(o orderdom.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order ID: %s\n", o.OrderID)
	fmt.Fprintf(&b, "Date: %s\n", o.Date)
	fmt.Fprintf(&b, "Customer: %s\n", o.Customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", o.Customer.Phone)
	if o.Customer.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", o.Customer.Email)
	}
	if o.Customer.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", o.Customer.Address)
	}
	b.WriteString("\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s x%d  %s\n", it.Title, it.Quantity, it.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", o.Total().StringFixed(2))
	return b.String()
}

// SendTest sends a plain message to the notification address so an operator
// can check the SendGrid setup without placing an order.
func (m *OrderMailer) SendTest(ctx context.Context) error {
	if m == nil || m.client == nil {
		return errors.New("order_mailer: client is nil")
	}
	return m.client.Send(ctx, Message{
		From:    m.fromAddress,
		To:      m.toAddress,
		Subject: "SendGrid Debug Test",
		Body:    "This is a debug email from the VerseOne backend.",
	})
}
