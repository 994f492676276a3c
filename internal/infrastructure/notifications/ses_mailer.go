package notifications

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"supportforge/internal/domain/entities"
	"supportforge/internal/infrastructure/database"
	"supportforge/internal/logger"
	"supportforge/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog"
)

var ErrMissingSenderAddress = errors.New("missing SES_SENDER_ADDRESS")

const dateLayout = "2006-01-02"

// SESMailer sends invoice emails through Amazon SES.
type SESMailer struct {
	client *sesv2.Client
	sender string
	log    zerolog.Logger
}

var _ interfaces.INotificationGateway = (*SESMailer)(nil)

// NewSESMailer builds the production mailer. The sender address comes from
// SES_SENDER_ADDRESS and must be a verified SES identity.
func NewSESMailer(ctx context.Context) (*SESMailer, error) {
	sender := strings.TrimSpace(os.Getenv("SES_SENDER_ADDRESS"))
	if sender == "" {
		return nil, ErrMissingSenderAddress
	}

	cfg, err := database.NewAWSConfigFromEnv(ctx)
	if err != nil {
		return nil, err
	}
	return &SESMailer{
		client: sesv2.NewFromConfig(cfg),
		sender: sender,
		log:    logger.WithComponent("notifications.ses"),
	}, nil
}

func (m *SESMailer) SendInvoiceCreated(ctx context.Context, inv entities.Invoice, client entities.Client) error {
	return m.send(ctx, client.Email, invoiceCreatedSubject(inv), invoiceCreatedBody(inv, client))
}

func (m *SESMailer) SendInvoiceStatusChanged(ctx context.Context, inv entities.Invoice, client entities.Client, oldStatus, newStatus entities.InvoiceStatus) error {
	return m.send(ctx, client.Email, invoiceStatusChangedSubject(inv, newStatus), invoiceStatusChangedBody(inv, client, oldStatus, newStatus))
}

func (m *SESMailer) send(ctx context.Context, to, subject, body string) error {
	_, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.sender),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return err
	}
	m.log.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

func invoiceCreatedSubject(inv entities.Invoice) string {
	return fmt.Sprintf("Invoice %s from Support Forge", inv.Number)
}

func invoiceCreatedBody(inv entities.Invoice, client entities.Client) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", client.Name)
	fmt.Fprintf(&b, "A new invoice %s has been issued to you.\n\n", inv.Number)
	for _, it := range inv.Items {
		fmt.Fprintf(&b, "  %s  x%d  @ %s\n", it.Description, it.Quantity, it.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", inv.Amount.StringFixed(2))
	fmt.Fprintf(&b, "Due date: %s\n\n", inv.DueDate.Format(dateLayout))
	b.WriteString("Thank you,\nSupport Forge Billing\n")
	return b.String()
}

func invoiceStatusChangedSubject(inv entities.Invoice, newStatus entities.InvoiceStatus) string {
	return fmt.Sprintf("Invoice %s is now %s", inv.Number, newStatus)
}

func invoiceStatusChangedBody(inv entities.Invoice, client entities.Client, oldStatus, newStatus entities.InvoiceStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", client.Name)
	fmt.Fprintf(&b, "Invoice %s changed from %s to %s.\n", inv.Number, oldStatus, newStatus)
	if newStatus == entities.InvoiceStatusPaid && inv.PaidDate != nil {
		fmt.Fprintf(&b, "Payment received on %s. Thank you!\n", inv.PaidDate.Format(dateLayout))
	}
	fmt.Fprintf(&b, "\nAmount: %s\n\n", inv.Amount.StringFixed(2))
	b.WriteString("Support Forge Billing\n")
	return b.String()
}
