package differ

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffProcessor produces line-granular diffs between two snapshot versions.
type DiffProcessor struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffProcessor creates a new diff processor.
func NewDiffProcessor() *DiffProcessor {
	return &DiffProcessor{
		dmp: diffmatchpatch.New(),
	}
}

// ProcessDiff computes a line-mode diff between two content versions.
// Line mode keeps whole lines together, which is what a robots.txt reader
// wants: a changed directive shows up as one removed and one added line.
func (dp *DiffProcessor) ProcessDiff(previous, current string) []diffmatchpatch.Diff {
	prevChars, currChars, lines := dp.dmp.DiffLinesToChars(previous, current)
	diffs := dp.dmp.DiffMain(prevChars, currChars, false)
	return dp.dmp.DiffCharsToLines(diffs, lines)
}

// RenderText renders line-mode diffs as unified-style text: deleted lines are
// prefixed with "- ", inserted lines with "+ ", unchanged lines with two
// spaces.
func (dp *DiffProcessor) RenderText(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, diff := range diffs {
		prefix := "  "
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range splitLines(diff.Text) {
			b.WriteString(prefix)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// splitLines splits a diff segment into its lines, dropping the trailing empty
// element produced by a terminating newline but keeping interior empty lines.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
