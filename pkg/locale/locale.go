package locale

import (
	"fmt"
	"sort"
	"strings"
)

// Labels holds the axis tick labels for one language. Months are ordered
// January..December, weekdays Monday..Sunday.
type Labels struct {
	Months   []string
	Weekdays []string
}

var locales = map[string]Labels{
	"en": {
		Months:   []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		Weekdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	},
	"ko": {
		Months:   []string{"1월", "2월", "3월", "4월", "5월", "6월", "7월", "8월", "9월", "10월", "11월", "12월"},
		Weekdays: []string{"월", "화", "수", "목", "금", "토", "일"},
	},
}

// ErrUnsupportedLanguage is returned by Get for language codes that have no
// label table.
type ErrUnsupportedLanguage struct {
	Language  string
	Supported []string
}

func (e *ErrUnsupportedLanguage) Error() string {
	return fmt.Sprintf("unsupported language code %q, supported languages are: %s",
		e.Language, strings.Join(e.Supported, ", "))
}

// Get returns the month and weekday labels for the given language code.
func Get(language string) (Labels, error) {
	labels, ok := locales[language]
	if !ok {
		return Labels{}, &ErrUnsupportedLanguage{Language: language, Supported: SupportedLanguages()}
	}
	return labels, nil
}

// SupportedLanguages lists all language codes Get accepts, sorted.
func SupportedLanguages() []string {
	codes := make([]string, 0, len(locales))
	for code := range locales {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
