// internal/app/system/export/sheetname.go
package export

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxSheetName is the longest sheet name spreadsheet applications accept.
const MaxSheetName = 31

const defaultSheet = "Sheet1"

// SheetName makes name legal as a worksheet name: forbidden characters
// become '_', surrounding apostrophes and spaces are trimmed, the result
// is cut to 31 runes, and a blank name becomes "Sheet1".
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, name)
	name = strings.Trim(name, "' ")
	name = truncate(name, MaxSheetName)
	name = strings.TrimRight(name, "' ")
	if name == "" {
		return defaultSheet
	}
	return name
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// uniqueName suffixes name with " (2)", " (3)", ... until taken reports
// false, keeping the result within MaxSheetName. Sheet names compare
// case-insensitively.
func uniqueName(name string, taken map[string]bool) string {
	if !taken[strings.ToLower(name)] {
		return name
	}
	for i := 2; ; i++ {
		suffix := " (" + strconv.Itoa(i) + ")"
		base := truncate(name, MaxSheetName-utf8.RuneCountInString(suffix))
		cand := base + suffix
		if !taken[strings.ToLower(cand)] {
			return cand
		}
	}
}
