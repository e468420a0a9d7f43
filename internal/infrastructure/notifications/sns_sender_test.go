package notifications_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecogai/pollution-backend/internal/infrastructure/notifications"
)

type stubSNS struct {
	captured *sns.PublishInput
	err      error
}

func (s *stubSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	s.captured = params
	if s.err != nil {
		return nil, s.err
	}
	return &sns.PublishOutput{}, nil
}

func TestSendCode_PublishesToTopic(t *testing.T) {
	client := &stubSNS{}
	sender := notifications.NewSNSSender(client, "arn:aws:sns:ap-southeast-1:123456789012:otp-topic")

	require.NoError(t, sender.SendCode(context.Background(), "maria@example.com", "0427"))

	require.NotNil(t, client.captured)
	assert.Equal(t, "arn:aws:sns:ap-southeast-1:123456789012:otp-topic", *client.captured.TopicArn)
	assert.Contains(t, *client.captured.Message, "0427")
	assert.Contains(t, *client.captured.Message, "expires in 5 minutes")
	assert.Equal(t, "maria@example.com", *client.captured.MessageAttributes["destination"].StringValue)
}

func TestSendCode_NoTopicPublishesDirectly(t *testing.T) {
	client := &stubSNS{}
	sender := notifications.NewSNSSender(client, "")

	require.NoError(t, sender.SendCode(context.Background(), "+639171234567", "0427"))

	require.NotNil(t, client.captured)
	assert.Nil(t, client.captured.TopicArn)
	assert.Equal(t, "+639171234567", *client.captured.PhoneNumber)
}

func TestSendCode_PublishFailure(t *testing.T) {
	sender := notifications.NewSNSSender(&stubSNS{err: errors.New("throttled")}, "")

	err := sender.SendCode(context.Background(), "+639171234567", "0427")
	require.Error(t, err)
}

func TestNoopSender(t *testing.T) {
	assert.NoError(t, notifications.NoopSender{}.SendCode(context.Background(), "maria@example.com", "0427"))
}
