package entities

import "time"

// User represents a registered reporter. Authentication lives in Cognito;
// this row only carries the profile attributes the app edits.
type User struct {
	ID               string    `json:"userId" dynamodbav:"userId"`
	Email            string    `json:"email" dynamodbav:"email"`
	Name             string    `json:"name" dynamodbav:"name"`
	Phone            string    `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	HealthConditions []string  `json:"healthConditions" dynamodbav:"healthConditions"`
	ProfileImage     string    `json:"profileImage,omitempty" dynamodbav:"profileImage,omitempty"`
	Barangay         string    `json:"barangay,omitempty" dynamodbav:"barangay,omitempty"`
	City             string    `json:"city,omitempty" dynamodbav:"city,omitempty"`
	IsActive         bool      `json:"isActive" dynamodbav:"isActive"`
	CreatedAt        time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
}

// ProfileUpdate carries the fields a profile PUT may change. Nil fields
// are left untouched; anything else in the request body is ignored.
type ProfileUpdate struct {
	Name             *string   `json:"name,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	HealthConditions *[]string `json:"healthConditions,omitempty"`
	ProfileImage     *string   `json:"profileImage,omitempty"`
	Barangay         *string   `json:"barangay,omitempty"`
	City             *string   `json:"city,omitempty"`
}
