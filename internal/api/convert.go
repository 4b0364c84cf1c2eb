package api

import (
	"strings"
	"time"

	"langengine/internal/engine"
	"langengine/internal/language"
)

// FromLanguage builds a LanguageResponse for code.
func FromLanguage(code string) LanguageResponse {
	resp := LanguageResponse{Language: code}
	if strings.TrimSpace(code) != "" {
		resp.Description = language.Describe(code)
	}
	return resp
}

// FromSetResult converts the outcome of engine.Set into its API form. current
// is the code active after the call, which is the previous one on failure.
func FromSetResult(current string, event engine.ChangeEvent, err error) SetLanguageResponse {
	status := engine.StatusFor(err)
	resp := SetLanguageResponse{
		Status:     int(status),
		StatusText: status.String(),
		Language:   current,
		Previous:   event.Previous,
		Changed:    event.Changed,
		EventID:    event.ID,
		ChangedAt:  formatTime(event.At),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// NullInput is the response for a set request without a code.
func NullInput(current string) SetLanguageResponse {
	return SetLanguageResponse{
		Status:     int(engine.StatusInvalidCode),
		StatusText: engine.StatusInvalidCode.String(),
		Language:   current,
		Error:      "language is required",
	}
}

// KnownLanguages returns the built-in language table in display order.
func KnownLanguages() []KnownLanguage {
	infos := language.Known()
	out := make([]KnownLanguage, 0, len(infos))
	for _, info := range infos {
		out = append(out, KnownLanguage{
			ISO2:    info.ISO2,
			ISO3:    info.ISO3,
			Name:    info.Name,
			Default: info.Default.String(),
		})
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

// FormatTime renders t the way API payloads carry timestamps.
func FormatTime(t time.Time) string {
	return formatTime(t)
}
