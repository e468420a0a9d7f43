package assistant

import "strings"

// cannedReplies maps message substrings to offline answers, checked in
// order. First match wins, so more specific phrases come first.
var cannedReplies = []struct {
	substr string
	reply  string
}{
	{"air quality", "Air quality in your area is being monitored. If you have a respiratory condition, keep a mask handy and limit time outdoors until conditions improve."},
	{"water", "If the water looks or smells unusual, avoid contact and do not drink it. Report the location so the barangay can investigate."},
	{"smoke", "If you can see or smell smoke, move indoors, close your windows, and wear a mask if you must go outside."},
	{"mask", "An N95 mask filters most airborne particles. Wear one whenever pollution levels are high or you can smell smoke."},
	{"report", "You can file a pollution report from the map screen. Add a photo and your location so responders can verify it quickly."},
	{"health", "If you feel dizzy, short of breath, or your eyes sting, move away from the polluted area and rest indoors. Seek medical help if symptoms persist."},
}

const defaultReply = "I'm having trouble reaching the assistant right now. Stay away from visible pollution, keep windows closed if the air smells bad, and try again in a moment."

// FallbackReply answers a chat message offline. It is a pure function
// of the input string: the same message always yields the same reply.
func FallbackReply(message string) string {
	lower := strings.ToLower(message)
	for _, canned := range cannedReplies {
		if strings.Contains(lower, canned.substr) {
			return canned.reply
		}
	}
	return defaultReply
}
