package language

import (
	"errors"
	"fmt"
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrInvalidCode reports a language code that does not parse as a language tag.
var ErrInvalidCode = errors.New("invalid language code")

// Fallback is the code used when nothing else is configured or detected.
const Fallback Code = "en_US"

// Code is a language code in POSIX form: "ll" or "ll_RR".
type Code string

func (c Code) String() string { return string(c) }

// Base returns the language part of the code ("fr" for "fr_CA").
func (c Code) Base() string {
	base, _, _ := strings.Cut(string(c), "_")
	return base
}

// Region returns the region part of the code, or "" when absent.
func (c Code) Region() string {
	_, region, _ := strings.Cut(string(c), "_")
	return region
}

// Parse canonicalizes raw into a Code. It accepts POSIX locale names
// ("de_DE.UTF-8", "de_DE@euro") and BCP 47 tags ("de-DE"). Scripts and
// variants are dropped; the region is kept only when it was given explicitly.
func Parse(raw string) (Code, error) {
	trimmed := stripLocaleSuffix(strings.TrimSpace(raw))
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidCode)
	}
	if trimmed == "C" || trimmed == "POSIX" {
		return "", fmt.Errorf("%w: %q is not a language", ErrInvalidCode, raw)
	}

	tag, err := xlanguage.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidCode, raw, err)
	}

	// "und" and "root" parse, but their base is only a guess.
	base, confidence := tag.Base()
	if confidence != xlanguage.Exact {
		return "", fmt.Errorf("%w: %q has no language subtag", ErrInvalidCode, raw)
	}
	code := base.String()
	if region, conf := tag.Region(); conf == xlanguage.Exact {
		code += "_" + region.String()
	}
	return Code(code), nil
}

// Normalize returns a best-effort POSIX spelling of raw without validating it.
// Hyphens become underscores, codesets and modifiers are dropped, the language
// part is lowercased and a two-letter region is uppercased.
func Normalize(raw string) string {
	trimmed := strings.ReplaceAll(stripLocaleSuffix(strings.TrimSpace(raw)), "-", "_")
	base, region, ok := strings.Cut(trimmed, "_")
	if !ok {
		return strings.ToLower(base)
	}
	if len(region) == 2 {
		region = strings.ToUpper(region)
	}
	return strings.ToLower(base) + "_" + region
}

// Describe returns an English description of the code such as "French (Canada)".
// Unparseable codes fall back to DisplayName.
func Describe(code string) string {
	parsed, err := Parse(code)
	if err != nil {
		return DisplayName(code)
	}
	tag, err := xlanguage.Parse(strings.ReplaceAll(parsed.String(), "_", "-"))
	if err != nil {
		return DisplayName(code)
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return DisplayName(code)
}

// localeEnvKeys lists the variables consulted for the system locale, highest precedence first.
var localeEnvKeys = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// FromEnvironment detects the system language from the POSIX locale variables.
// lookup is usually os.LookupEnv. Unset, empty, "C", and "POSIX" values are skipped.
func FromEnvironment(lookup func(string) (string, bool)) (Code, bool) {
	if lookup == nil {
		return "", false
	}
	for _, key := range localeEnvKeys {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		code, err := Parse(value)
		if err != nil {
			continue
		}
		return code, true
	}
	return "", false
}

func stripLocaleSuffix(value string) string {
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		return value[:i]
	}
	return value
}
