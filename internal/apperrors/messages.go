package apperrors

var userMessages = map[Kind]string{
	KindMissingText:           "Please enter some text to translate.",
	KindEmptyText:             "The text to translate is empty.",
	KindTextTooLong:           "The text is too long to translate.",
	KindMissingTargetLanguage: "Please choose a target language.",
	KindInvalidURL:            "That does not look like a valid YouTube video link.",
	KindVideoNotFound:         "The video could not be found.",
	KindNoLyricsFound:         "No lyrics were found for this video.",
	KindTimeout:               "The request timed out. Please try again.",
	KindNetworkError:          "Network connection failed. Check your internet connection and try again.",
	KindRateLimited:           "Too many requests. Please wait a moment and try again.",
	KindServerError:           "The service encountered an error. Please try again.",
	KindServiceUnavailable:    "The service is temporarily unavailable. Please try again later.",
	KindQuotaExceeded:         "The translation quota has been exceeded.",
	KindAPIKeyMissing:         "The translation service is not configured.",
	KindInvalidResponse:       "The translation service returned an unexpected response.",
	KindTranslationEmpty:      "The translation service returned an empty translation.",
	KindServiceNotFound:       "The translation service endpoint was not found.",
	KindGoogleAPIError:        "Google Translate rejected the request.",
	KindLibreAPIError:         "LibreTranslate rejected the request.",
	KindGeminiAPIError:        "Gemini rejected the request.",
	KindOpenAIAPIError:        "OpenAI rejected the request.",
	KindHTTPError:             "The request failed.",
	KindAllServicesFailed:     "All translation services failed. Please try again later.",
}

// UserMessage returns the human-readable text shown for a kind. Raw provider
// text never reaches this table.
func UserMessage(kind Kind) string {
	if msg, ok := userMessages[kind]; ok {
		return msg
	}
	return "Request failed."
}
