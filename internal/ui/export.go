package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/datascope/datascope-cli/internal/i18n"
	"github.com/datascope/datascope-cli/internal/result"
)

// CollectLinks gathers every dataset and source URL reachable from an
// analysis, in display order, skipping blanks and duplicates.
func CollectLinks(a *result.Analysis) []string {
	if a == nil {
		return nil
	}

	var links []string
	seen := make(map[string]bool)
	add := func(link string) {
		if link == "" || seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	}

	for _, ds := range a.Datasets {
		add(ds.Link)
	}
	for _, angle := range a.Angles {
		for _, ds := range angle.Datasets {
			add(ds.Link)
		}
		for _, src := range angle.Sources {
			add(src.Link)
		}
		for _, v := range angle.Visualizations {
			add(v.URL)
		}
	}

	return links
}

// copyLinks puts all dataset and source links of the current analysis on
// the system clipboard, one per line.
func (m *Model) copyLinks() {
	links := CollectLinks(m.analysis)
	if len(links) == 0 {
		m.statusMessage = i18n.T(m.lang,
			"No links to copy in this analysis.",
			"Aucun lien à copier dans cette analyse.")
		m.messageType = "error"
		return
	}

	if err := clipboard.WriteAll(strings.Join(links, "\n")); err != nil {
		m.statusMessage = i18n.T(m.lang, "Failed to copy: ", "Échec de la copie : ") + err.Error()
		m.messageType = "error"
		return
	}

	m.statusMessage = fmt.Sprintf("%d %s", len(links),
		i18n.T(m.lang, "link(s) copied to clipboard", "lien(s) copié(s) dans le presse-papiers"))
	m.messageType = "success"
}

// exportResult copies the normalized analysis as indented JSON, so the
// result can be pasted into notes or shared outside the terminal.
func (m *Model) exportResult() {
	if m.analysis == nil {
		return
	}

	data, err := json.MarshalIndent(m.analysis, "", "  ")
	if err != nil {
		m.statusMessage = err.Error()
		m.messageType = "error"
		return
	}

	if err := clipboard.WriteAll(string(data)); err != nil {
		m.statusMessage = i18n.T(m.lang, "Failed to copy: ", "Échec de la copie : ") + err.Error()
		m.messageType = "error"
		return
	}

	m.statusMessage = i18n.T(m.lang,
		"Analysis exported to clipboard as JSON",
		"Analyse exportée dans le presse-papiers au format JSON")
	m.messageType = "success"
}
