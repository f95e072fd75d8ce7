package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"elyseeWeb/internal/modules/reservations/application/port"
	"elyseeWeb/internal/modules/reservations/domain"
)

const emailCharset = "UTF-8"

type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESRelay sends the reservation as a plain text email through Amazon SES.
type SESRelay struct {
	api  sesAPI
	from string
	to   []string
}

// NewSESRelay loads the default AWS configuration chain for region.
func NewSESRelay(ctx context.Context, region, from string, to []string) (*SESRelay, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region = strings.TrimSpace(region); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newSESRelay(sesv2.NewFromConfig(awsCfg), from, to), nil
}

func newSESRelay(api sesAPI, from string, to []string) *SESRelay {
	return &SESRelay{api: api, from: strings.TrimSpace(from), to: to}
}

func (r *SESRelay) Send(ctx context.Context, req domain.Request) error {
	if r.from == "" || len(r.to) == 0 {
		return fmt.Errorf("ses relay missing sender or recipients")
	}
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(r.from),
		Destination:      &types.Destination{ToAddresses: r.to},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject(req)), Charset: aws.String(emailCharset)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(req.ComposeMessage()), Charset: aws.String(emailCharset)},
				},
			},
		},
	}
	if req.Email != "" {
		input.ReplyToAddresses = []string{req.Email}
	}

	out, err := r.api.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}
	slog.Debug("ses email sent", slog.String("messageId", aws.ToString(out.MessageId)))
	return nil
}

func subject(req domain.Request) string {
	s := "Reservation request: " + req.Name
	if req.Date != "" {
		s += " on " + req.Date
	}
	return s
}

var _ port.EmailRelay = (*SESRelay)(nil)
