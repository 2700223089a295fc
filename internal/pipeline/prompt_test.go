//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Portions copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"strings"
	"testing"
)

func TestComposePrompt(t *testing.T) {
	question := "What helps with indigestion?"
	context := []string{
		"Ginger aids digestion.",
		"Warm water soothes agni.",
	}

	prompt := ComposePrompt(question, context, 0)

	if !strings.HasPrefix(prompt, "You are an expert Ayurvedic doctor.") {
		t.Error("prompt missing persona preamble")
	}
	if !strings.Contains(prompt, "Question: "+question) {
		t.Error("prompt missing verbatim question")
	}
	if !strings.HasSuffix(prompt, "\nAnswer:") {
		t.Error("prompt missing answer cue")
	}

	// Passages appear in ranking order
	first := strings.Index(prompt, "Ginger aids digestion.")
	second := strings.Index(prompt, "Warm water soothes agni.")
	if first < 0 || second < 0 {
		t.Fatal("prompt missing context passages")
	}
	if first > second {
		t.Error("context passages out of order")
	}
}

func TestComposePrompt_EmptyContext(t *testing.T) {
	prompt := ComposePrompt("What is vata?", nil, 0)

	if !strings.Contains(prompt, "Context:\n\n\nQuestion:") {
		t.Error("expected empty context block")
	}
}

func TestJoinContext_Budget(t *testing.T) {
	long := strings.Repeat("Vata governs movement. ", 50) // ~1150 chars
	context := []string{long, long, long}

	joined := joinContext(context, 2000)

	if len(joined) > 2000+len("...") {
		t.Errorf("joined context exceeds budget: %d chars", len(joined))
	}
	// The boundary passage is cut at a sentence end
	if !strings.HasSuffix(joined, "....") {
		t.Errorf("expected truncation at sentence boundary, got suffix %q",
			joined[len(joined)-10:])
	}
}

func TestJoinContext_SmallRemainderDropped(t *testing.T) {
	first := strings.Repeat("a", 950)
	second := strings.Repeat("b", 500)

	// 50 chars left after the first passage, below the minimum worth keeping
	joined := joinContext([]string{first, second}, 1000)

	if joined != first {
		t.Errorf("expected only the first passage, got %d chars", len(joined))
	}
}

func TestJoinContext_NoBudget(t *testing.T) {
	context := []string{"one", "two"}

	joined := joinContext(context, 0)

	if joined != "one\ntwo" {
		t.Errorf("expected passages joined by newline, got %q", joined)
	}
}
