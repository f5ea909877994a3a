package ocr

import "strings"

// mathKeywords are vocabulary hints that OCR text poses a math problem.
var mathKeywords = []string{
	"area", "perimeter", "circumference", "radius", "diameter",
	"triangle", "rectangle", "square", "circle", "angle", "hypotenuse",
	"length", "width", "height", "side", "base", "volume",
	"solve", "calculate", "compute", "find", "degrees",
	"sin", "cos", "tan", "sine", "cosine", "tangent",
	"ratio", "equal", "sum", "equation",
}

// mathSymbols are operators and notation that mark an expression.
const mathSymbols = "+-*/=^√π×÷°%"

// ParseMathProblem collapses OCR text onto one line and returns it when it
// plausibly contains a math problem. It returns "" otherwise: prose with no
// digits-and-operators pair and no math vocabulary is not worth sending to
// the tutor.
func ParseMathProblem(text string) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	if cleaned == "" {
		return ""
	}

	hasDigit := strings.ContainsAny(cleaned, "0123456789")
	if hasDigit && strings.ContainsAny(cleaned, mathSymbols) {
		return cleaned
	}

	lower := strings.ToLower(cleaned)
	for _, kw := range mathKeywords {
		if strings.Contains(lower, kw) {
			return cleaned
		}
	}
	return ""
}
