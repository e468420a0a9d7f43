package client

// Location is a geographic position attached to reports and queries.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
	Barangay  string  `json:"barangay,omitempty"`
	City      string  `json:"city,omitempty"`
}

// Profile is a user's stored profile.
type Profile struct {
	UserID           string   `json:"userId"`
	Email            string   `json:"email"`
	Name             string   `json:"name"`
	Phone            string   `json:"phone,omitempty"`
	HealthConditions []string `json:"healthConditions"`
	ProfileImage     string   `json:"profileImage,omitempty"`
	Barangay         string   `json:"barangay,omitempty"`
	City             string   `json:"city,omitempty"`
	IsActive         bool     `json:"isActive"`
}

// ProfileUpdate carries the fields a profile update may change. Nil
// fields are left untouched.
type ProfileUpdate struct {
	Name             *string   `json:"name,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	HealthConditions *[]string `json:"healthConditions,omitempty"`
	ProfileImage     *string   `json:"profileImage,omitempty"`
	Barangay         *string   `json:"barangay,omitempty"`
	City             *string   `json:"city,omitempty"`
}

// Report is a stored pollution report.
type Report struct {
	ReportID      string   `json:"reportId"`
	UserID        string   `json:"userId"`
	Location      Location `json:"location"`
	PollutionType string   `json:"pollutionType"`
	Severity      string   `json:"severity"`
	Description   string   `json:"description,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Status        string   `json:"status"`
	Source        string   `json:"source,omitempty"`
	Timestamp     int64    `json:"timestamp"`
}

// ReportDraft is a report submission.
type ReportDraft struct {
	Location    *Location `json:"location"`
	Type        string    `json:"pollutionType"`
	Severity    string    `json:"severity"`
	Description string    `json:"description,omitempty"`
	ImageBase64 string    `json:"imageBase64,omitempty"`
}

// ReportReceipt is the server's acknowledgement of a new report.
type ReportReceipt struct {
	ReportID  string `json:"reportId"`
	Timestamp int64  `json:"timestamp"`
	ImageURL  string `json:"imageUrl"`
	Status    string `json:"status"`
}

// Place is a search or lookup result.
type Place struct {
	PlaceID     string   `json:"placeId"`
	Label       string   `json:"label"`
	Address     string   `json:"address,omitempty"`
	Coordinates Location `json:"coordinates"`
}

// Suggestion is an autocomplete entry.
type Suggestion struct {
	PlaceID string `json:"placeId,omitempty"`
	Text    string `json:"text"`
}

// Address is a reverse-geocoded position.
type Address struct {
	FormattedAddress string   `json:"formattedAddress"`
	Barangay         string   `json:"barangay,omitempty"`
	City             string   `json:"city,omitempty"`
	Region           string   `json:"region,omitempty"`
	Country          string   `json:"country,omitempty"`
	Coordinates      Location `json:"coordinates"`
}

// Route is a computed route summary.
type Route struct {
	DistanceKm      float64    `json:"distanceKm"`
	DurationSeconds float64    `json:"durationSeconds"`
	Geometry        []Location `json:"geometry,omitempty"`
}

// Advice is a generated health advisory.
type Advice struct {
	Response    string `json:"response"`
	Severity    string `json:"severity"`
	GeneratedBy string `json:"generatedBy"`
}

// AgoraToken is the credential set for a voice channel.
type AgoraToken struct {
	Token       string `json:"token"`
	AppID       string `json:"appId"`
	ChannelName string `json:"channelName"`
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	ExpiresAt   int64  `json:"expiresAt"`
}
