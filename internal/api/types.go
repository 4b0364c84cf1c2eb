package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// LanguageResponse reports the active language code.
type LanguageResponse struct {
	Language    string `json:"language"`
	Description string `json:"description,omitempty"`
}

// SetLanguageRequest carries a new code. A nil Language is a null input.
type SetLanguageRequest struct {
	Language *string `json:"language"`
}

// SetLanguageResponse mirrors the native setter result. Status carries the
// same integer the shared library returns.
type SetLanguageResponse struct {
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
	Language   string `json:"language"`
	Previous   string `json:"previous,omitempty"`
	Changed    bool   `json:"changed"`
	EventID    string `json:"eventId,omitempty"`
	ChangedAt  string `json:"changedAt,omitempty"`
	Error      string `json:"error,omitempty"`
}

// DaemonStatus aggregates daemon runtime information.
type DaemonStatus struct {
	Running      bool   `json:"running"`
	PID          int    `json:"pid"`
	Language     string `json:"language"`
	Description  string `json:"description,omitempty"`
	Store        string `json:"store"`
	Validate     bool   `json:"validate"`
	Watching     bool   `json:"watching"`
	LockFilePath string `json:"lockPath"`
	SocketPath   string `json:"socketPath,omitempty"`
	HTTPAddr     string `json:"httpAddr,omitempty"`
	StartedAt    string `json:"startedAt,omitempty"`
}

// KnownLanguage describes one entry of the built-in language table.
type KnownLanguage struct {
	ISO2    string `json:"iso2"`
	ISO3    string `json:"iso3"`
	Name    string `json:"name"`
	Default string `json:"default"`
}
