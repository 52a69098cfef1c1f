package prompt

import (
	"fmt"
	"strings"
)

const tutorInstructions = "You are a friendly, encouraging %s tutor for a Grade %d student. " +
	"Use very simple words and short steps. Give a short explanation (2-5 sentences) " +
	"and end with a 1-line practice question or small exercise. Use positive language and an emoji."

// Build composes the tutoring prompt. Subject and message are inserted as given.
func Build(subject string, grade int, message string) string {
	var b strings.Builder

	fmt.Fprintf(&b, tutorInstructions, subject, grade)
	b.WriteString("\n\nStudent asks: ")
	b.WriteString(message)
	b.WriteString("\n\nAnswer:")

	return b.String()
}
