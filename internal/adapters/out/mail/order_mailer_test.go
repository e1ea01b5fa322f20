package mail

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "verseone/internal/domain/order"
)

type captureClient struct {
	sent []Message
}

func (c *captureClient) Send(_ context.Context, m Message) error {
	c.sent = append(c.sent, m)
	return nil
}

func sampleOrder() orderdom.Order {
	return orderdom.Order{
		OrderID:  "007",
		Customer: orderdom.Customer{Name: "Ruth", Phone: "555", Email: "ruth@example.com"},
		Date:     "2025-03-14T09:26:53.000Z",
		Items: []orderdom.LineItem{
			{ProductID: "p1", Title: "Psalm 23", Price: 100, Quantity: 2, TotalPrice: 200},
		},
	}
}

func TestOrderMailer_SendsCSVAttachment(t *testing.T) {
	c := &captureClient{}
	m := NewOrderMailer(c, "shop@example.com", "owner@example.com")

	err := m.NotifyOrderPlaced(context.Background(), sampleOrder(), "csv-body", "order_007_1.csv")
	require.NoError(t, err)
	require.Len(t, c.sent, 1)

	msg := c.sent[0]
	assert.Equal(t, "owner@example.com", msg.To)
	assert.Equal(t, "New order #007 from Ruth", msg.Subject)
	assert.Contains(t, msg.Body, "- Psalm 23 x2  200.00")
	assert.Contains(t, msg.Body, "Total: 200.00")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "order_007_1.csv", msg.Attachments[0].Filename)
	assert.Equal(t, orderdom.CSVContentType, msg.Attachments[0].ContentType)
}

func TestBuildSendGridMessage_EncodesAttachment(t *testing.T) {
	sg := buildSendGridMessage(Message{
		From: "shop@example.com", To: "owner@example.com", Subject: "s", Body: "b",
		Attachments: []Attachment{{Filename: "a.csv", ContentType: "text/csv", Content: []byte("x,y\n")}},
	})
	require.Len(t, sg.Attachments, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("x,y\n")), sg.Attachments[0].Content)
	assert.Equal(t, "VerseOne", sg.From.Name)
}

func TestNewOrderMailerWithSendGrid_DisabledWithoutConfig(t *testing.T) {
	assert.Nil(t, NewOrderMailerWithSendGrid("", "a@b", "c@d"))
	assert.Nil(t, NewOrderMailerWithSendGrid("key", "", "c@d"))
	assert.NotNil(t, NewOrderMailerWithSendGrid("key", "a@b", "c@d"))
}

func TestOrderMailer_SendTest(t *testing.T) {
	c := &captureClient{}
	m := NewOrderMailer(c, " shop@example.com ", "owner@example.com")

	require.NoError(t, m.SendTest(context.Background()))
	require.Len(t, c.sent, 1)
	assert.Equal(t, "shop@example.com", c.sent[0].From)
	assert.Equal(t, "owner@example.com", c.sent[0].To)
	assert.Empty(t, c.sent[0].Attachments)

	var nilMailer *OrderMailer
	assert.Error(t, nilMailer.SendTest(context.Background()))
}
