package xmd

import "regexp"

// CleanupStep is one rewrite of the cleanup pipeline.
type CleanupStep struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

// The generic renderer tends to isolate short inline tokens (mentions,
// trailing punctuation) in their own paragraph. Each step pulls one such
// shape back into the surrounding line. Order matters.
var cleanupSteps = []CleanupStep{
	{
		Name:    "mention-lead",
		Pattern: regexp.MustCompile(`\n{2,}(@[A-Za-z0-9_]+)`),
		Replace: " ${1}",
	},
	{
		Name:    "mention-punctuation",
		Pattern: regexp.MustCompile(`(@[A-Za-z0-9_]+)\n{2,}([.,;:!?])`),
		Replace: "${1}${2}",
	},
	{
		Name:    "mention-pair",
		Pattern: regexp.MustCompile(`(@[A-Za-z0-9_]+[.,;:!?]?)\n{2,}(@[A-Za-z0-9_]+)`),
		Replace: "${1} ${2}",
	},
	{
		Name:    "orphan-punctuation",
		Pattern: regexp.MustCompile(`\n{2,}([.,;:!?])\s*\n`),
		Replace: "${1}\n",
	},
	{
		Name:    "trailing-punctuation",
		Pattern: regexp.MustCompile(`(?m)(@[A-Za-z0-9_]+)\n{2,}([.,;:!?])\s*$`),
		Replace: "${1}${2}",
	},
}

// CleanupSteps returns a copy of the ordered cleanup pipeline.
func CleanupSteps() []CleanupStep {
	return append([]CleanupStep(nil), cleanupSteps...)
}

// Cleanup normalizes whitespace around mentions and punctuation in rendered
// Markdown. The pipeline is applied until the text stops changing; every
// step strictly shortens its input, so this terminates, and the result is
// a fixed point: Cleanup(Cleanup(s)) == Cleanup(s).
func Cleanup(markdown string) string {
	for {
		next := cleanupPass(markdown)
		if next == markdown {
			return next
		}
		markdown = next
	}
}

func cleanupPass(s string) string {
	for _, step := range cleanupSteps {
		s = step.Pattern.ReplaceAllString(s, step.Replace)
	}
	return s
}
