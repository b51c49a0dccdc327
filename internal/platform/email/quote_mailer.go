// Package email sends itinerary quote summaries to clients via Resend.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	"github.com/wanderplan/trip_pricing_app/internal/middleware"
)

const quoteEmailTemplate = `
<h2>{{.ItineraryName}}</h2>
<p>Dear {{.ClientName}},</p>
<p>Please find below the cost summary for your trip.</p>
<table border="0" cellpadding="4">
  {{range .Days}}
  <tr><td>Day {{.DayNumber}} {{.Title}}</td><td align="right">{{.Subtotal}} {{$.Currency}}</td></tr>
  {{end}}
  <tr><td><strong>Total</strong></td><td align="right"><strong>{{.GrandTotal}} {{.Currency}}</strong></td></tr>
</table>
<p>Prices are indicative until the itinerary is confirmed.</p>
`

// QuoteMailer formats and sends cost summaries.
type QuoteMailer struct {
	client      *resend.Client
	fromAddress string
}

// NewQuoteMailer creates a mailer. An empty API key yields a mailer that
// fails on send, which is fine for environments without email.
func NewQuoteMailer(apiKey, fromAddress string) *QuoteMailer {
	return &QuoteMailer{
		client:      resend.NewClient(apiKey),
		fromAddress: fromAddress,
	}
}

// SendQuote renders the summary into HTML and emails it to the client.
func (m *QuoteMailer) SendQuote(ctx context.Context, toAddress, clientName, itineraryName string, summary *domain.CostSummary) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tmpl, err := template.New("quote").Parse(quoteEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse quote template: %w", err)
	}

	data := map[string]any{
		"ItineraryName": itineraryName,
		"ClientName":    clientName,
		"Days":          summary.Days,
		"GrandTotal":    summary.GrandTotal,
		"Currency":      summary.DisplayCurrency,
	}

	var htmlContent bytes.Buffer
	if err := tmpl.Execute(&htmlContent, data); err != nil {
		return fmt.Errorf("failed to execute quote template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("WanderPlan Quotes <%s>", m.fromAddress),
		To:      []string{toAddress},
		Subject: fmt.Sprintf("Trip quote: %s", itineraryName),
		Html:    htmlContent.String(),
	}

	if _, err := m.client.Emails.Send(params); err != nil {
		logger.Error("Failed to send quote email", "error", err, "to", toAddress)
		return fmt.Errorf("email send failed: %w", err)
	}

	logger.Info("Quote email sent", "to", toAddress, "itinerary", itineraryName)
	return nil
}
