//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Portions copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

import "strings"

// promptPreamble is the fixed persona and instruction block for grounded
// answering.
const promptPreamble = `You are an expert Ayurvedic doctor. Answer the question using the provided context.

Guidelines:
- Extract as much relevant information as possible from the context.
- Only if you absolutely cannot find ANY relevant information, respond with 'I don't have enough information about this topic.'
- Otherwise, do your best to answer with the available information.
- Replace common medical terms with Ayurvedic terminology if appropriate.
- Ensure the response aligns with Ayurveda's holistic approach.
- If enough information is available, organize your answer into: Overview, Home Remedies, Dietary Recommendations, and Scientific Studies.
- Be thorough and detailed in your response.

`

// minTruncatedLen is the smallest remaining budget worth spending on a
// partial passage.
const minTruncatedLen = 200

// ComposePrompt builds the generation prompt from the question and the
// retrieved passages, preserving their ranking order. The context is capped
// at budget characters so a large retrieval cannot blow past the generation
// backend's input limit; lowest-ranked passages are dropped first and the
// passage on the boundary is cut at a sentence end. A budget of 0 disables
// the cap.
func ComposePrompt(question string, context []string, budget int) string {
	contextText := joinContext(context, budget)

	var sb strings.Builder
	sb.WriteString(promptPreamble)
	sb.WriteString("Context:\n")
	sb.WriteString(contextText)
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\nAnswer:")
	return sb.String()
}

// joinContext joins passages one per line, respecting the character budget.
func joinContext(context []string, budget int) string {
	if budget <= 0 {
		return strings.Join(context, "\n")
	}

	var sb strings.Builder
	total := 0

	for _, passage := range context {
		if total+len(passage) > budget {
			remaining := budget - total
			if remaining > minTruncatedLen {
				truncated := passage[:remaining]
				if idx := strings.LastIndex(truncated, ". "); idx > 0 {
					truncated = truncated[:idx+1]
				}
				if sb.Len() > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString(truncated)
				sb.WriteString("...")
			}
			break
		}

		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(passage)
		total += len(passage)
	}

	return sb.String()
}
