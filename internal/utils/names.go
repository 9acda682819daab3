package utils

import (
	"regexp"
	"strings"
)

var nonWordRun = regexp.MustCompile(`[^\w\s-]`)
var hyphenRun = regexp.MustCompile(`[-\s]+`)

// SafeFolderName turns a counterparty name into an archive folder segment:
// punctuation stripped, whitespace and hyphen runs collapsed to one hyphen.
func SafeFolderName(name string) string {
	s := nonWordRun.ReplaceAllString(strings.TrimSpace(name), "")
	return hyphenRun.ReplaceAllString(s, "-")
}
