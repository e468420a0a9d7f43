package client

import (
	"context"
	"errors"
)

// Chat asks the health assistant a question. The session's user, when
// present, personalises the answer.
func (c *Client) Chat(ctx context.Context, message string, location *Location) (*Advice, error) {
	body := struct {
		UserID   string    `json:"userId,omitempty"`
		Message  string    `json:"message"`
		Location *Location `json:"location,omitempty"`
	}{Message: message, Location: location}
	if c.session != nil {
		body.UserID = c.session.UserID
	}

	var advice Advice
	if err := c.Post(ctx, "/health-advice", body, &advice); err != nil {
		return nil, err
	}
	if advice.Response == "" {
		return nil, errors.New("advice response was empty")
	}
	return &advice, nil
}

// VoiceToken requests a voice channel credential for the logged-in
// user.
func (c *Client) VoiceToken(ctx context.Context, channelName string) (*AgoraToken, error) {
	if !c.session.LoggedIn() {
		return nil, errors.New("User not logged in")
	}

	body := map[string]string{
		"userId":      c.session.UserID,
		"channelName": channelName,
	}
	var token AgoraToken
	if err := c.Post(ctx, "/agora/token", body, &token); err != nil {
		return nil, err
	}
	return &token, nil
}
