package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/providers"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
	"github.com/ecogai/pollution-backend/pkg/retry"
)

const (
	anthropicVersion    = "bedrock-2023-05-31"
	advisoryMaxTokens   = 500
	contextualMaxTokens = 200
	modelTemperature    = 0.7
)

// BedrockAPI is the slice of the Bedrock runtime client the adapter
// uses.
type BedrockAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockAdapter generates health advice through a Bedrock-hosted
// Anthropic model. Invocations are retried with backoff; callers fall
// back to the canned responder when the adapter errors out.
type BedrockAdapter struct {
	client  BedrockAPI
	modelID string
}

// NewBedrockAdapter creates a new Bedrock advice adapter.
func NewBedrockAdapter(client BedrockAPI, modelID string) providers.AdviceProvider {
	return &BedrockAdapter{client: client, modelID: modelID}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// GenerateAdvice produces voice-ready advisory text. A non-empty Query
// yields a short conversational answer; otherwise the full advisory
// prompt is used.
func (a *BedrockAdapter) GenerateAdvice(ctx context.Context, req providers.AdviceRequest) (string, error) {
	var prompt string
	maxTokens := advisoryMaxTokens
	if strings.TrimSpace(req.Query) != "" {
		prompt = buildContextualPrompt(req)
		maxTokens = contextualMaxTokens
	} else {
		prompt = buildAdvisoryPrompt(req)
	}

	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        maxTokens,
		Temperature:      modelTemperature,
		Messages:         []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", apperrors.NewInternalError("failed to marshal model request", err)
	}

	var text string
	err = retry.Do(ctx, retry.DefaultConfig(), func() error {
		out, err := a.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
			ModelId:     aws.String(a.modelID),
			ContentType: aws.String("application/json"),
			Accept:      aws.String("application/json"),
			Body:        body,
		})
		if err != nil {
			return err
		}

		var resp anthropicResponse
		if err := json.Unmarshal(out.Body, &resp); err != nil {
			return err
		}
		if len(resp.Content) == 0 {
			return fmt.Errorf("model returned no content")
		}
		text = strings.TrimSpace(resp.Content[0].Text)
		return nil
	})
	if err != nil {
		return "", apperrors.NewExternalError("advice generation failed", err)
	}
	return text, nil
}

func buildAdvisoryPrompt(req providers.AdviceRequest) string {
	name := firstName(req.UserName)
	barangay := req.Barangay
	if barangay == "" {
		barangay = "your area"
	}

	conditions := "no specific health conditions"
	if len(req.HealthConditions) > 0 {
		conditions = strings.Join(req.HealthConditions, ", ")
	}

	var critical, high int
	for _, r := range req.Nearby {
		switch r.Severity {
		case entities.SeverityCritical:
			critical++
		case entities.SeverityHigh:
			high++
		}
	}
	pollutionContext := ""
	if len(req.Nearby) > 0 {
		pollutionContext = fmt.Sprintf("%d critical and %d high severity pollution reports nearby. ", critical, high)
	}

	urgency := "ADVISORY"
	if req.TriggerReason == "emergency" {
		urgency = "URGENT"
	} else if critical > 0 || high > 0 {
		urgency = "IMPORTANT"
	}

	return fmt.Sprintf(`You are a voice health assistant speaking to %s via voice call about pollution in %s.

CONTEXT:
- User has: %s
- Nearby pollution: %s
- Urgency level: %s

Generate health advice that will be SPOKEN to the user. Requirements:

1. Start with greeting: "Hello %s,"
2. State the situation clearly and urgently if needed
3. Give 3-4 SHORT, ACTIONABLE steps (each under 20 words)
4. End with reassurance or warning
5. Use conversational tone - this will be SPOKEN, not read
6. Total length: 150-200 words maximum
7. Use simple language, avoid medical jargon

Format for voice:
- Short sentences
- Clear pauses (use periods)
- Emphasize key words naturally
- Sound calm but urgent if critical

Generate the health advisory now:`, name, barangay, conditions, pollutionContext, urgency, name)
}

func buildContextualPrompt(req providers.AdviceRequest) string {
	name := firstName(req.UserName)

	conditions := "none"
	if len(req.HealthConditions) > 0 {
		conditions = strings.Join(req.HealthConditions, ", ")
	}

	return fmt.Sprintf(`You are a voice health assistant in an active call with %s.

User's health conditions: %s

Their question: "%s"

Nearby pollution: %d reports

Respond naturally in 30-50 words. Be conversational, helpful, and direct. This will be SPOKEN.`,
		name, conditions, req.Query, len(req.Nearby))
}

func firstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "User"
	}
	return fields[0]
}
