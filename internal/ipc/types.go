package ipc

import "langengine/internal/api"

// GetRequest fetches the active language.
type GetRequest struct{}

// GetResponse carries the active language.
type GetResponse = api.LanguageResponse

// SetRequest changes the active language. A nil Language is a null input.
type SetRequest = api.SetLanguageRequest

// SetResponse reports the setter outcome with the native status code.
type SetResponse = api.SetLanguageResponse

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents daemon status information.
type StatusResponse = api.DaemonStatus

// LanguagesRequest lists the built-in language table.
type LanguagesRequest struct{}

// LanguagesResponse carries the built-in language table.
type LanguagesResponse struct {
	Languages []api.KnownLanguage `json:"languages"`
}
