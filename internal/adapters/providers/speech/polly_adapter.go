package speech

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"

	"github.com/ecogai/pollution-backend/internal/domain/providers"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

const defaultVoiceID = "Joanna"

// PollyAPI is the slice of the Polly client the adapter uses.
type PollyAPI interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// PollyAdapter synthesizes advisory text with Polly and stores the
// resulting MP3 in the media store.
type PollyAdapter struct {
	client PollyAPI
	media  providers.MediaStore
}

// NewPollyAdapter creates a new Polly speech adapter.
func NewPollyAdapter(client PollyAPI, media providers.MediaStore) providers.SpeechProvider {
	return &PollyAdapter{client: client, media: media}
}

// Synthesize renders the text to MP3 and returns the stored audio URL.
func (a *PollyAdapter) Synthesize(ctx context.Context, userID, audioID string, req providers.SpeechRequest) (string, error) {
	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	textType := types.TextTypeText
	if req.SSML {
		textType = types.TextTypeSsml
	}

	out, err := a.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         aws.String(req.Text),
		TextType:     textType,
		OutputFormat: types.OutputFormatMp3,
		VoiceId:      types.VoiceId(voiceID),
		Engine:       types.EngineNeural,
	})
	if err != nil {
		return "", apperrors.NewExternalError("speech synthesis failed", err)
	}
	defer out.AudioStream.Close()

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return "", apperrors.NewExternalError("failed to read audio stream", err)
	}

	key := fmt.Sprintf("health-audio/%s/%s_%d.mp3", userID, audioID, time.Now().Unix())
	url, err := a.media.PutObject(ctx, key, audio, "audio/mpeg", map[string]string{
		"userId":  userID,
		"audioId": audioID,
	})
	if err != nil {
		return "", err
	}
	return url, nil
}
