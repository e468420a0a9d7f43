package entities

// Verification stores a one-time passcode issued to an email address.
// ExpiresAt is a Unix timestamp used as the DynamoDB TTL attribute.
type Verification struct {
	Email     string `json:"email" dynamodbav:"email"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expiresAt" dynamodbav:"expiresAt"`
}
