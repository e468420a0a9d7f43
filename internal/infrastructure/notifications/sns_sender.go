package notifications

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/rs/zerolog/log"

	"github.com/ecogai/pollution-backend/internal/domain/providers"
)

// SNSAPI is the subset of the SNS client the sender needs.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSender delivers one-time passcodes through an SNS topic. The topic
// fans out to email/SMS subscriptions configured outside this service.
type SNSSender struct {
	client   SNSAPI
	topicARN string
}

// NewSNSSender creates a new SNS-backed OTP sender.
func NewSNSSender(client SNSAPI, topicARN string) providers.OTPSender {
	return &SNSSender{client: client, topicARN: topicARN}
}

// SendCode publishes the verification code for the destination address.
func (s *SNSSender) SendCode(ctx context.Context, destination, code string) error {
	msg := fmt.Sprintf("Your EcoGai verification code is %s. It expires in 5 minutes.", code)

	input := &sns.PublishInput{
		Message: aws.String(msg),
		Subject: aws.String("EcoGai verification code"),
	}
	if s.topicARN != "" {
		input.TopicArn = aws.String(s.topicARN)
		input.MessageAttributes = messageAttributes(destination)
	} else {
		// No topic configured: treat the destination as a phone number
		// and publish directly.
		input.PhoneNumber = aws.String(destination)
	}

	if _, err := s.client.Publish(ctx, input); err != nil {
		return fmt.Errorf("failed to publish verification code: %w", err)
	}

	log.Debug().Str("destination", destination).Msg("verification code published")
	return nil
}

func messageAttributes(destination string) map[string]types.MessageAttributeValue {
	return map[string]types.MessageAttributeValue{
		"destination": {
			DataType:    aws.String("String"),
			StringValue: aws.String(destination),
		},
	}
}

// NoopSender discards codes; used in development when SNS is not wired.
type NoopSender struct{}

// SendCode logs the code instead of delivering it.
func (NoopSender) SendCode(ctx context.Context, destination, code string) error {
	log.Info().Str("destination", destination).Str("code", code).Msg("otp delivery disabled, code logged")
	return nil
}
