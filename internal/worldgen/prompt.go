package worldgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a contract bridge teacher writing quiz questions for a learning game.

Rules:
- Write multiple-choice questions on the given world theme and topics.
- Each question has 4 options unless the topic naturally has fewer, never more than 6.
- Exactly one option is correct. Distractors should reflect common beginner mistakes.
- Use standard bridge terms and Standard American conventions unless the topic says otherwise.
- Write suits as words (spades, hearts, diamonds, clubs), not symbols.
- The explanation is one or two sentences and must not simply restate the answer.
- Questions should get slightly harder through the list.
- Do not repeat any question from the "already asked" list.`

func buildUserMessage(req Request, count, maxAvoid int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "World %d: %s\n", req.WorldID, req.Name)
	if req.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", req.Description)
	}
	if len(req.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(req.Topics, ", "))
	}
	fmt.Fprintf(&b, "Questions: %d\n", count)

	b.WriteString("\nAlready asked:\n")
	b.WriteString(numbered(req.Avoid, maxAvoid))
	return b.String()
}

// numbered lists the last max items, or "None".
func numbered(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}

	var b strings.Builder
	for i, s := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
