package tutor

import "regexp"

// latexCleanups rewrite the LaTeX fragments models sprinkle into prose so
// explanations read as plain text.
var latexCleanups = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\\\(`), ""},
	{regexp.MustCompile(`\\\)`), ""},
	{regexp.MustCompile(`\^2`), "²"},
	{regexp.MustCompile(`\^3`), "³"},
	{regexp.MustCompile(`\\sqrt`), "√"},
	{regexp.MustCompile(`\\times`), "×"},
	{regexp.MustCompile(`\\div`), "÷"},
	{regexp.MustCompile(`\\frac\{(\d+)\}\{(\d+)\}`), "$1/$2"},
}

// EnhanceExplanation strips LaTeX delimiters and replaces the common math
// commands with their Unicode forms.
func EnhanceExplanation(s string) string {
	for _, c := range latexCleanups {
		s = c.re.ReplaceAllString(s, c.repl)
	}
	return s
}
