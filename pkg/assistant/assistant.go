// Package assistant drives the voice assistant conversation loop: a
// four-state machine over pluggable transcription, advice and speech
// ports.
package assistant

import (
	"context"
	"errors"
	"sync"
)

// State is the assistant's current phase.
type State string

// Assistant states. Transitions: idle → listening → processing →
// speaking → idle.
const (
	StateIdle       State = "idle"
	StateListening  State = "listening"
	StateProcessing State = "processing"
	StateSpeaking   State = "speaking"
)

// ErrBusy is returned when StartListening is called while a session is
// already in flight.
var ErrBusy = errors.New("assistant is busy")

// Transcriber converts captured audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Advisor answers a transcribed message. The REST client's Chat method
// satisfies this through a small adapter.
type Advisor interface {
	Advise(ctx context.Context, message string) (string, error)
}

// Speaker plays synthesized speech.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Stop() error
}

// Snapshot is the state notification delivered to subscribers.
type Snapshot struct {
	State      State
	Transcript string
	Reply      string
	Err        error
}

// Assistant is the conversation state machine. All transitions are
// serialized by a mutex; a second StartListening while a session is in
// flight fails with ErrBusy instead of racing the first.
type Assistant struct {
	mu          sync.Mutex
	state       State
	transcriber Transcriber
	advisor     Advisor
	speaker     Speaker
	listeners   []func(Snapshot)
}

// New creates an idle assistant.
func New(transcriber Transcriber, advisor Advisor, speaker Speaker) *Assistant {
	return &Assistant{
		state:       StateIdle,
		transcriber: transcriber,
		advisor:     advisor,
		speaker:     speaker,
	}
}

// State returns the current state.
func (a *Assistant) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Subscribe registers a callback invoked with every state snapshot.
func (a *Assistant) Subscribe(fn func(Snapshot)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// StartListening begins a capture session. Only valid from idle.
func (a *Assistant) StartListening(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateIdle {
		return ErrBusy
	}
	a.setStateLocked(Snapshot{State: StateListening})
	return nil
}

// StopListening ends capture, transcribes the audio and fetches the
// assistant's reply. Any transcription or advice failure routes through
// the offline fallback; the returned reply is never empty.
func (a *Assistant) StopListening(ctx context.Context, audio []byte) (string, error) {
	a.mu.Lock()
	if a.state != StateListening {
		a.mu.Unlock()
		return "", errors.New("assistant is not listening")
	}
	a.setStateLocked(Snapshot{State: StateProcessing})
	a.mu.Unlock()

	transcript, err := a.transcriber.Transcribe(ctx, audio)
	if err != nil {
		reply := FallbackReply("")
		a.finish(Snapshot{State: StateIdle, Reply: reply, Err: err})
		return reply, nil
	}
	a.notify(Snapshot{State: StateProcessing, Transcript: transcript})

	reply, err := a.advisor.Advise(ctx, transcript)
	if err != nil || reply == "" {
		reply = FallbackReply(transcript)
	}

	a.finish(Snapshot{State: StateIdle, Transcript: transcript, Reply: reply, Err: err})
	return reply, nil
}

// Speak plays a reply aloud. Valid from idle or processing.
func (a *Assistant) Speak(ctx context.Context, text string) error {
	a.mu.Lock()
	if a.state == StateListening || a.state == StateSpeaking {
		a.mu.Unlock()
		return errors.New("assistant cannot speak right now")
	}
	a.setStateLocked(Snapshot{State: StateSpeaking, Reply: text})
	a.mu.Unlock()

	err := a.speaker.Speak(ctx, text)
	a.finish(Snapshot{State: StateIdle, Reply: text, Err: err})
	return err
}

// StopSpeaking interrupts playback and returns to idle.
func (a *Assistant) StopSpeaking() error {
	a.mu.Lock()
	if a.state != StateSpeaking {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	err := a.speaker.Stop()
	a.finish(Snapshot{State: StateIdle, Err: err})
	return err
}

// setStateLocked updates the state and notifies while holding the lock.
func (a *Assistant) setStateLocked(snapshot Snapshot) {
	a.state = snapshot.State
	for _, fn := range a.listeners {
		fn(snapshot)
	}
}

func (a *Assistant) finish(snapshot Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.setStateLocked(snapshot)
}

func (a *Assistant) notify(snapshot Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, fn := range a.listeners {
		fn(snapshot)
	}
}
