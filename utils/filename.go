package utils

import (
	"regexp"
	"strings"
)

var (
	unsafeNameChars = regexp.MustCompile(`[^\p{L}\p{N}_\-.]+`)
	repeatedScore   = regexp.MustCompile(`_+`)
)

// ExportFileName builds the download name of an artifact from the deck
// title: whitespace becomes '_', unsafe characters are dropped.
// Example: "Q1 Review / Draft" + "pptx" -> "Q1_Review_Draft.pptx"
func ExportFileName(title, ext string) string {
	name := strings.Join(strings.Fields(title), "_")
	name = unsafeNameChars.ReplaceAllString(name, "")
	name = repeatedScore.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_.-")
	if name == "" {
		name = "Presentation"
	}
	if r := []rune(name); len(r) > 120 {
		name = string(r[:120])
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}
