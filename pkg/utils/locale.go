package utils

import "golang.org/x/text/language"

// ListSeparator returns the separator used to join list items for the
// given locale. Falls back to the comma-space separator when the locale
// cannot be parsed.
func ListSeparator(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return ", "
	}
	base, _ := tag.Base()
	switch base.String() {
	case "ja", "zh":
		return "、" // ideographic comma
	case "ar", "fa", "ur":
		return "، " // arabic comma
	default:
		return ", "
	}
}

// JoinList joins items with the locale's list separator.
func JoinList(locale string, items []string) string {
	sep := ListSeparator(locale)
	out := ""
	for i, item := range items {
		if i > 0 {
			out += sep
		}
		out += item
	}
	return out
}
