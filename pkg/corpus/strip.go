package corpus

import (
	"regexp"
	"strings"
)

// quoteRegEx matches lines carried over from a quoted post: quote prefixes
// and the attribution lines that introduce them.
var quoteRegEx = regexp.MustCompile(`(writes in|writes:|wrote:|says:|said:|^In article|^Quoted from|^\||^>)`)

// StripHeader removes the message header block: everything up to and
// including the first blank line.
func StripHeader(text string) string {
	_, after, found := strings.Cut(text, "\n\n")
	if !found {
		return text
	}
	return after
}

// StripQuoting removes quoted text and quote attribution lines.
func StripQuoting(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if quoteRegEx.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// StripFooter removes a trailing signature block. The block is everything
// after the last line that is blank or a run of hyphens, scanning upward
// from the end of the post.
func StripFooter(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	lineNum := len(lines) - 1
	for ; lineNum >= 0; lineNum-- {
		trimmed := strings.Trim(strings.TrimSpace(lines[lineNum]), "-")
		if trimmed == "" {
			break
		}
	}
	if lineNum > 0 {
		return strings.Join(lines[:lineNum], "\n")
	}
	return text
}

// Strip applies header, footer, and quote stripping in that order, leaving
// only the body text an author actually wrote.
func Strip(text string) string {
	return StripQuoting(StripFooter(StripHeader(text)))
}
