package language

import "strings"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
	region  string   // Most common region, used for the POSIX default
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}, "US"},
	{"es", "spa", "", "Spanish", []string{"spanish"}, "ES"},
	{"fr", "fra", "fre", "French", []string{"french"}, "FR"},
	{"de", "deu", "ger", "German", []string{"german"}, "DE"},
	{"it", "ita", "", "Italian", []string{"italian"}, "IT"},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}, "BR"},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}, "JP"},
	{"ko", "kor", "", "Korean", []string{"korean"}, "KR"},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}, "CN"},
	{"ru", "rus", "", "Russian", []string{"russian"}, "RU"},
	{"ar", "ara", "", "Arabic", []string{"arabic"}, "SA"},
	{"hi", "hin", "", "Hindi", []string{"hindi"}, "IN"},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}, "NL"},
	{"pl", "pol", "", "Polish", []string{"polish"}, "PL"},
	{"sv", "swe", "", "Swedish", []string{"swedish"}, "SE"},
	{"da", "dan", "", "Danish", []string{"danish"}, "DK"},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}, "NO"},
	{"fi", "fin", "", "Finnish", []string{"finnish"}, "FI"},
	{"vi", "vie", "", "Vietnamese", []string{"vietnamese"}, "VN"},
	{"tr", "tur", "", "Turkish", []string{"turkish"}, "TR"},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO2 converts any recognized language code or word to ISO 639-1 (2-letter).
// Returns empty string for unrecognized input.
// If the input is already a 2-letter code (even if unknown), it passes through.
// POSIX codes such as "fr_FR" reduce to their language part.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if base, _, ok := strings.Cut(Normalize(code), "_"); ok {
		code = strings.ToLower(base)
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(ToISO2(code)); e != nil {
		return e.display
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Info describes one entry of the built-in language table.
type Info struct {
	ISO2    string
	ISO3    string
	Name    string
	Default Code
}

// Known returns the built-in language table in declaration order.
func Known() []Info {
	out := make([]Info, 0, len(languages))
	for _, e := range languages {
		out = append(out, Info{
			ISO2:    e.code2,
			ISO3:    e.code3,
			Name:    e.display,
			Default: Code(e.code2 + "_" + e.region),
		})
	}
	return out
}
