package match

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

var dmp = diffmatchpatch.New()

// Similarity returns a character-sequence similarity ratio in [0, 1]:
// twice the number of characters common to both strings divided by the
// total number of characters, computed from a character-level diff.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	diffs := dmp.DiffMain(a, b, false)
	common := 0
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			common += utf8.RuneCountInString(d.Text)
		}
	}

	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	return 2 * float64(common) / float64(total)
}
