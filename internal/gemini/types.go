package gemini

// RequestData is the JSON payload sent to the model as the user turn.
type RequestData struct {
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language"`
	Text           string `json:"text"`
}

// ResponseData is the JSON object the model is instructed to return.
type ResponseData struct {
	TranslatedText   string        `json:"translatedText"`
	DetectedLanguage string        `json:"detectedLanguage"`
	Usage            UsageMetadata `json:"-"` // filled from the response metadata
}

// UsageMetadata holds token usage information.
type UsageMetadata struct {
	PromptTokenCount     int
	CandidatesTokenCount int
	TotalTokenCount      int
}
