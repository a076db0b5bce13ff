package domain

// GeneratedPost is the structured output of a content generation request.
// Type is "post" when the model produced publishable content and "response"
// when it answered conversationally instead.
type GeneratedPost struct {
	Type           string   `json:"type"`
	Platform       string   `json:"platform"`
	Caption        string   `json:"caption"`
	Hashtags       []string `json:"hashtags"`
	Image          string   `json:"image"`
	PlatformReason string   `json:"platform_reason"`
}
