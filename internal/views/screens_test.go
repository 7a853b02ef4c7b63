package views

import (
	"strings"
	"testing"
)

func TestScriptWidthAndLineGap(t *testing.T) {
	if got := ScriptWidth(60, 13); got != 60 {
		t.Fatalf("expected full width at default size, got %d", got)
	}
	if got := ScriptWidth(60, 26); got != 30 {
		t.Fatalf("expected halved width at double size, got %d", got)
	}
	if got := ScriptWidth(30, 32); got != 20 {
		t.Fatalf("expected minimum width, got %d", got)
	}
	if got := ScriptWidth(60, 10); got != 60 {
		t.Fatalf("expected width capped at available columns, got %d", got)
	}

	cases := map[float64]int{1.0: 0, 1.4: 0, 1.5: 1, 2.0: 1, 2.5: 2, 3.0: 2}
	for lh, want := range cases {
		if got := LineGap(lh); got != want {
			t.Fatalf("LineGap(%v) = %d, want %d", lh, got, want)
		}
	}
}

func TestRenderScriptEmptyState(t *testing.T) {
	out := RenderScript(ScriptData{Slide: 2, Width: 40, FontSize: 13, LineHeight: 1})
	if !strings.Contains(out, EmptyStateText) {
		t.Fatalf("expected empty state text, got %q", out)
	}
}

func TestRenderScriptAppliesLineGap(t *testing.T) {
	out := RenderScript(ScriptData{Script: "one\ntwo", Width: 40, FontSize: 13, LineHeight: 2})
	if !strings.Contains(out, "one\n\ntwo") {
		t.Fatalf("expected one blank line between lines, got %q", out)
	}
	out = RenderScript(ScriptData{Script: "one\ntwo", Width: 40, FontSize: 13, LineHeight: 1})
	if !strings.Contains(out, "one\ntwo") {
		t.Fatalf("expected no gap, got %q", out)
	}
}

func TestOutlineMarkdown(t *testing.T) {
	if got := OutlineMarkdown(nil); !strings.Contains(got, "No slides") {
		t.Fatalf("unexpected empty outline: %q", got)
	}
	md := OutlineMarkdown([]OutlineEntry{
		{Slide: 1, Title: "Intro", FirstLine: "Hello", Current: true},
		{Slide: 7},
	})
	if !strings.Contains(md, "- **1** Intro ◀ · Hello") {
		t.Fatalf("unexpected first entry: %q", md)
	}
	if !strings.Contains(md, "- **7** _untitled_") {
		t.Fatalf("unexpected second entry: %q", md)
	}
}

func TestRenderAppIncludesSections(t *testing.T) {
	out := RenderApp(AppData{
		Header:     "teleprompt | slide 3",
		Body:       "script body",
		Overlay:    "settings:",
		StatusLine: "Save failed",
		IsError:    true,
		Footer:     "keys",
		Width:      50,
	})
	for _, want := range []string{"teleprompt | slide 3", "script body", "settings:", "Save failed", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}
