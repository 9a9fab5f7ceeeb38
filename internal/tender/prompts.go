package tender

import (
	"fmt"
	"strings"
)

const analysisSystem = `You are a procurement analyst. You read a free-form chat conversation between a buyer and an assistant and produce a structured analysis of the tender the buyer wants to publish. Respond with ONLY a JSON object, no other text.`

const analysisPrompt = `Analyze the following conversation and return a JSON object with these fields:

- "keyPoints": the concrete requirements stated or implied by the buyer (list of strings)
- "domain": the procurement industry category, one of "IT", "Medical", "Construction", "Logistics", "General"
- "recommendedTemplate": the name of the tender template that fits best (string)
- "reasoning": one short paragraph explaining the choice (string)
- "structure": a numbered section outline for the tender, e.g. ["1. Project Overview", "2. Scope of Work"] (list of strings)

Rules:
- Only list requirements actually supported by the conversation
- Keep each key point under 200 characters
- The structure must be numbered "1.", "2.", ... in order

Respond with ONLY the JSON object.`

const draftSystem = `You are a tender writer. You produce complete procurement tender documents in markdown. Use "#" headings for the document title, "##" for sections, "-" bullets for requirement lists, and "**" for emphasis. Append "[from clause library]" to headings whose body is a standard clause inserted verbatim, and "[generate by AI]" to headings whose body you wrote.`

const reviewSystem = `You are reviewing a procurement tender draft. Point out gaps, ambiguities, and compliance risks from the perspective of the given role. Respond in markdown.`

const chatSystem = `You are a procurement assistant helping a buyer shape a tender. Ask clarifying questions about scope, budget, timeline, and constraints. Keep answers short and concrete.`

// BuildAnalysisPrompt creates the analysis prompt for a conversation log.
func BuildAnalysisPrompt(conversationLog string) string {
	var sb strings.Builder
	sb.WriteString(analysisPrompt)
	sb.WriteString("\n\n---\n")
	sb.WriteString(conversationLog)
	return sb.String()
}

// BuildDraftPrompt creates the generation prompt from the analysis, the
// user-edited outline, and the standard clauses for the domain.
func BuildDraftPrompt(domain Domain, template string, keyPoints, structure []string, clauses []Clause) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Write a complete tender document for the %s domain using the %q template.\n\n", domain, template))

	sb.WriteString("Key requirements:\n")
	for _, kp := range keyPoints {
		sb.WriteString("- ")
		sb.WriteString(kp)
		sb.WriteString("\n")
	}

	sb.WriteString("\nFollow this section structure exactly, in order:\n")
	for _, s := range structure {
		sb.WriteString(s)
		sb.WriteString("\n")
	}

	if len(clauses) > 0 {
		sb.WriteString("\nInsert these standard clauses verbatim into the sections they match:\n")
		for _, c := range clauses {
			sb.WriteString(fmt.Sprintf("\n[%s] %s\n%s\n", c.ID, c.Title, c.Content))
		}
	}

	sb.WriteString("\nRespond with ONLY the markdown document.")
	return sb.String()
}

// BuildReviewPrompt creates the review prompt. The caller is responsible for
// capping draftText.
func BuildReviewPrompt(draftText, role string, domain Domain) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Review the following %s tender draft as a %s.\n\n---\n", domain, role))
	sb.WriteString(draftText)
	return sb.String()
}

// BuildChatPrompt flattens the conversation history into a single prompt for
// the next assistant turn.
func BuildChatPrompt(history []Message) string {
	var sb strings.Builder
	for _, m := range history {
		switch m.Role {
		case "assistant":
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString("User: ")
		}
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Assistant:")
	return sb.String()
}
