package update

import (
	"strings"

	"github.com/sandeepkv93/teleprompt/internal/views"
)

const outlineLineLimit = 40

func (m Model) outlineEntries() []views.OutlineEntry {
	var entries []views.OutlineEntry
	for _, n := range m.store.Numbers() {
		rec := m.store.Get(n)
		entries = append(entries, views.OutlineEntry{
			Slide:     n,
			Title:     rec.Title,
			FirstLine: firstLine(rec.Script, outlineLineLimit),
			Current:   n == m.CurrentSlide,
		})
	}
	return entries
}

func (m Model) renderOutline() string {
	return views.RenderMarkdown(views.OutlineMarkdown(m.outlineEntries()), m.scriptView.Width)
}

func firstLine(s string, limit int) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	r := []rune(s)
	if len(r) > limit {
		return string(r[:limit-1]) + "…"
	}
	return s
}
