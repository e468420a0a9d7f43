package providers

import "context"

// OTPSender delivers a one-time passcode to a user. Delivery is best
// effort; callers must not fail the request when sending errors.
type OTPSender interface {
	SendCode(ctx context.Context, destination, code string) error
}
