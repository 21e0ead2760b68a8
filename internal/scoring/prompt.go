package scoring

import (
	"fmt"
	"strings"
)

// SystemInstruction frames every scoring request.
const SystemInstruction = `You are a media bias analyst. You rate news articles along named bias dimensions.
Respond with a single JSON object and nothing else. Do not wrap it in markdown.`

const responseShape = `{
  "scores": [
    {"category": "<category name exactly as listed>", "score": <number from -1 to 1>, "explanation": "<one or two sentences>"}
  ],
  "summary": "<two or three sentence overall assessment>"
}`

// BuildPrompt renders the scoring prompt for content against the given rubrics.
// Every rubric is listed by name with its description, and the model is asked
// for one score per rubric on a continuous [-1, +1] scale.
func BuildPrompt(content string, rubrics []Rubric) string {
	var b strings.Builder

	b.WriteString("Score the article below on each of the following bias categories.\n")
	b.WriteString("Each score is a continuous value between -1 and +1. Use 0 when the article is neutral on that dimension.\n\n")

	b.WriteString("Categories:\n")
	for _, r := range rubrics {
		fmt.Fprintf(&b, "- %s: %s\n", r.Name, strings.TrimSpace(r.Description))
	}

	b.WriteString("\nReturn strict JSON in exactly this shape, with one entry per category:\n")
	b.WriteString(responseShape)

	b.WriteString("\n\nArticle:\n\"\"\"\n")
	b.WriteString(content)
	b.WriteString("\n\"\"\"\n")

	return b.String()
}
