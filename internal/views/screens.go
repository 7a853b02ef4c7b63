package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const EmptyStateText = "No script for this slide. Press [e] to write one."

type ScriptData struct {
	Slide      int
	Title      string
	Script     string
	FontSize   int
	LineHeight float64
	Width      int
}

type EditorData struct {
	Slide      int
	Title      string
	EditorView string
}

type TitleInputData struct {
	Slide     int
	InputView string
}

type SettingsData struct {
	FontSizeLabel   string
	LineHeightLabel string
	Preview         string
}

type OutlineEntry struct {
	Slide     int
	Title     string
	FirstLine string
	Current   bool
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

// ScriptWidth shrinks the wrap width as the font size grows, relative to the
// 13px default.
func ScriptWidth(width, fontSize int) int {
	if fontSize <= 0 {
		fontSize = 13
	}
	w := width * 13 / fontSize
	if w > width {
		w = width
	}
	if w < 20 {
		w = 20
	}
	return w
}

// LineGap is the number of blank lines between rendered lines.
func LineGap(lineHeight float64) int {
	gap := int(math.Round(lineHeight - 1))
	if gap < 0 {
		return 0
	}
	return gap
}

func RenderScript(data ScriptData) string {
	var b strings.Builder
	if data.Title != "" {
		b.WriteString(titleStyle.Render(data.Title))
		b.WriteString("\n\n")
	}
	if strings.TrimSpace(data.Script) == "" {
		b.WriteString(mutedStyle.Render(EmptyStateText))
		return b.String()
	}
	wrapped := wordwrap.String(data.Script, ScriptWidth(data.Width, data.FontSize))
	sep := "\n" + strings.Repeat("\n", LineGap(data.LineHeight))
	b.WriteString(strings.Join(strings.Split(wrapped, "\n"), sep))
	return b.String()
}

func RenderEditor(data EditorData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("editing slide %d", data.Slide))
	if data.Title != "" {
		b.WriteString(fmt.Sprintf(" (%s)", data.Title))
	}
	b.WriteString("\n")
	b.WriteString(data.EditorView)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("[ctrl+s] save  [esc] cancel"))
	return b.String()
}

func RenderTitleInput(data TitleInputData) string {
	return fmt.Sprintf("slide %d title:\n%s\n%s", data.Slide, data.InputView, mutedStyle.Render("[enter] save  [esc] cancel"))
}

func RenderSettings(data SettingsData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString(fmt.Sprintf("font size:   %s   [-/+]\n", data.FontSizeLabel))
	b.WriteString(fmt.Sprintf("line height: %s   [[/]]\n", data.LineHeightLabel))
	b.WriteString("\npreview:\n")
	b.WriteString(data.Preview)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("[esc] close"))
	return b.String()
}

// OutlineMarkdown lists the slides that have content.
func OutlineMarkdown(entries []OutlineEntry) string {
	if len(entries) == 0 {
		return "_No slides yet._"
	}
	var b strings.Builder
	b.WriteString("## Outline\n\n")
	for _, e := range entries {
		marker := ""
		if e.Current {
			marker = " ◀"
		}
		title := e.Title
		if title == "" {
			title = "_untitled_"
		}
		b.WriteString(fmt.Sprintf("- **%d** %s%s", e.Slide, title, marker))
		if e.FirstLine != "" {
			b.WriteString(" · " + e.FirstLine)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func RenderCommandPalette(input string) string {
	return fmt.Sprintf("command: %s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		strings.ToLower(data.Mode),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
