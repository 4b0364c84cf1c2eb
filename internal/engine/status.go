package engine

import "strconv"

// Status is the integer result reported across the native boundary.
type Status int

const (
	// StatusOK reports success.
	StatusOK Status = 0
	// StatusInvalidCode reports a code rejected by validation (or a null input in state mode).
	StatusInvalidCode Status = 1
	// StatusPersistFailed reports that the store refused the write; the previous code stays active.
	StatusPersistFailed Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidCode:
		return "invalid_code"
	case StatusPersistFailed:
		return "persist_failed"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Accessor is the two-operation surface exposed to the host application.
type Accessor interface {
	CurrentLanguage() string
	SetCurrentLanguage(code string) Status
}

// PlaceholderLanguage is the code the placeholder accessor always reports.
const PlaceholderLanguage = "en_US"

// Placeholder keeps the original stub behaviour: the getter and setter are
// not connected, nothing is stored, and the setter always succeeds.
type Placeholder struct{}

// CurrentLanguage always returns PlaceholderLanguage.
func (Placeholder) CurrentLanguage() string { return PlaceholderLanguage }

// SetCurrentLanguage discards code and returns StatusOK.
func (Placeholder) SetCurrentLanguage(string) Status { return StatusOK }
