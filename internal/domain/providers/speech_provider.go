package providers

import "context"

// SpeechRequest describes a text-to-speech synthesis job.
type SpeechRequest struct {
	Text    string
	VoiceID string
	SSML    bool
}

// SpeechProvider synthesizes advisory text into audio and returns a URL
// the client (or the Agora channel player) can stream.
type SpeechProvider interface {
	Synthesize(ctx context.Context, userID, audioID string, req SpeechRequest) (string, error)
}
