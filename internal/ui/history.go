package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/datascope/datascope-cli/internal/i18n"
	"github.com/datascope/datascope-cli/internal/result"
)

// HistoryView renders the past-analyses listing with a movable cursor.
type HistoryView struct {
	entries []result.HistoryEntry
	cursor  int
	width   int
	height  int
}

func NewHistoryView(width, height int) HistoryView {
	return HistoryView{width: width, height: height}
}

func (hv *HistoryView) SetSize(width, height int) {
	hv.width = width
	hv.height = height
}

func (hv *HistoryView) SetEntries(entries []result.HistoryEntry) {
	hv.entries = entries
	if hv.cursor >= len(entries) {
		hv.cursor = 0
	}
}

func (hv *HistoryView) MoveCursor(delta int) {
	hv.cursor += delta
	if hv.cursor < 0 {
		hv.cursor = 0
	}
	if hv.cursor >= len(hv.entries) && len(hv.entries) > 0 {
		hv.cursor = len(hv.entries) - 1
	}
}

func (hv *HistoryView) Cursor() int {
	return hv.cursor
}

// Selected returns the entry under the cursor, nil when the list is empty.
func (hv *HistoryView) Selected() *result.HistoryEntry {
	if hv.cursor < 0 || hv.cursor >= len(hv.entries) {
		return nil
	}
	return &hv.entries[hv.cursor]
}

func (hv *HistoryView) View(lang i18n.Lang, st Styles) string {
	if len(hv.entries) == 0 {
		return st.Help.Render(i18n.T(lang,
			"No analyses yet. Submit an article to get started.",
			"Aucune analyse pour le moment. Soumettez un article pour commencer."))
	}

	titleWidth := hv.width - 6 - 12 - 18 - 8
	if titleWidth < 20 {
		titleWidth = 20
	}

	var b strings.Builder
	header := fmt.Sprintf("%s %s %s %s",
		runewidth.FillRight("ID", 6),
		runewidth.FillRight(i18n.T(lang, "Date", "Date"), 12),
		runewidth.FillRight("Score", 18),
		i18n.T(lang, "Title", "Titre"))
	b.WriteString(st.Label.Render(header))
	b.WriteString("\n")

	for i, entry := range hv.entries {
		date := ""
		if !entry.CreatedAt.IsZero() {
			date = entry.CreatedAt.Format("2006-01-02")
		}
		score := "-"
		if entry.Score != nil {
			score = fmt.Sprintf("%d%% %s", entry.Score.Percentage, TierLabel(entry.Score.Tier, lang))
		}
		title := entry.Title
		if title == "" {
			title = i18n.T(lang, "(untitled)", "(sans titre)")
		}

		row := fmt.Sprintf("%s %s %s %s",
			runewidth.FillRight(fmt.Sprintf("%d", entry.ID), 6),
			runewidth.FillRight(date, 12),
			runewidth.FillRight(runewidth.Truncate(score, 18, "…"), 18),
			runewidth.Truncate(title, titleWidth, "…"))

		if i == hv.cursor {
			b.WriteString(st.Selected.Render(row))
		} else {
			b.WriteString(st.Normal.Render(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}
