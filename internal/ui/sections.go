package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/datascope/datascope-cli/internal/i18n"
	"github.com/datascope/datascope-cli/internal/result"
)

// Status drives how a section renders before any data field is touched.
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusEmpty
	StatusReady
)

// Each section renders deterministically from its model slice, the
// language, and the status. Language is always passed in, never read
// from ambient state. Every section has distinct empty-state text so the
// absence of data is visible and assertable.

func sectionFrame(lang i18n.Lang, status Status, st Styles, empty string, ready func() string) string {
	switch status {
	case StatusLoading:
		return st.Help.Render(i18n.T(lang, "Loading...", "Chargement..."))
	case StatusError:
		return st.Error.Render(i18n.T(lang,
			"Something went wrong while loading this section.",
			"Une erreur est survenue lors du chargement de cette section."))
	case StatusEmpty:
		return st.Help.Render(empty)
	default:
		return ready()
	}
}

// RenderOverview shows the datafication score gauge, tier and article info.
func RenderOverview(a *result.Analysis, lang i18n.Lang, status Status, st Styles) string {
	if status == StatusReady && (a == nil || (a.Score == nil && a.Title == "" && a.Summary == "")) {
		status = StatusEmpty
	}
	return sectionFrame(lang, status, st,
		i18n.T(lang, "No overview available for this analysis.", "Aucun aperçu disponible pour cette analyse."),
		func() string {
			var b strings.Builder

			b.WriteString(st.Section.Render(i18n.T(lang, "Overview", "Aperçu")))
			b.WriteString("\n")

			if a.Title != "" {
				b.WriteString(st.Normal.Render(a.Title))
				b.WriteString("\n")
			}

			if a.Score != nil {
				b.WriteString(renderGauge(*a.Score, lang, st))
				b.WriteString("\n")
				b.WriteString(st.Help.Render(scoreComment(a.Score.Tier, lang)))
				b.WriteString("\n")
			}

			if a.ProfileLabel != "" {
				b.WriteString(st.Label.Render(i18n.T(lang, "Profile: ", "Profil : ")))
				b.WriteString(st.Normal.Render(a.ProfileLabel))
				b.WriteString("\n")
			}
			if a.Summary != "" {
				b.WriteString(st.Normal.Render(a.Summary))
				b.WriteString("\n")
			}

			return b.String()
		})
}

const gaugeWidth = 30

func renderGauge(s result.Score, lang i18n.Lang, st Styles) string {
	filled := s.Percentage * gaugeWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", gaugeWidth-filled)

	return fmt.Sprintf("%s %s  %s",
		st.Highlight.Render(bar),
		st.Normal.Render(fmt.Sprintf("%d%%", s.Percentage)),
		st.Badge.Render(TierLabel(s.Tier, lang)))
}

// TierLabel localizes a score tier.
func TierLabel(t result.Tier, lang i18n.Lang) string {
	switch t {
	case result.Low:
		return i18n.T(lang, "Low potential", "Potentiel faible")
	case result.Moderate:
		return i18n.T(lang, "Moderate potential", "Potentiel modéré")
	case result.High:
		return i18n.T(lang, "High potential", "Potentiel élevé")
	default:
		return i18n.T(lang, "Very high potential", "Potentiel très élevé")
	}
}

func scoreComment(t result.Tier, lang i18n.Lang) string {
	switch t {
	case result.Low:
		return i18n.T(lang,
			"Few usable data points – poorly structured",
			"Peu de données exploitables – article peu structuré")
	case result.Moderate:
		return i18n.T(lang,
			"Some structure detected – might be explored",
			"Contenu partiellement structuré – potentiel à explorer")
	case result.High:
		return i18n.T(lang,
			"Well-structured data – good candidate for analysis",
			"Données bien structurées – bon candidat pour l'analyse")
	default:
		return i18n.T(lang,
			"Rich, structured article – great for investigative work",
			"Article riche en données – excellent pour l'investigation")
	}
}

// RenderEntities shows entity counts grouped by category.
func RenderEntities(counts result.CategoryCounts, lang i18n.Lang, status Status, st Styles) string {
	if status == StatusReady && counts.Total() == 0 {
		status = StatusEmpty
	}
	return sectionFrame(lang, status, st,
		i18n.T(lang, "No entities were detected in this article.", "Aucune entité n'a été détectée dans cet article."),
		func() string {
			var b strings.Builder
			b.WriteString(st.Section.Render(i18n.T(lang, "Detected entities", "Entités détectées")))
			b.WriteString("\n")

			for _, cat := range result.Categories {
				n := counts[cat]
				if n == 0 {
					continue
				}
				b.WriteString(fmt.Sprintf("  %s %s\n",
					st.Label.Render(runewidth.FillRight(CategoryLabel(cat, lang), 20)),
					st.Normal.Render(fmt.Sprintf("%d", n))))
			}

			b.WriteString(st.Help.Render(fmt.Sprintf("  %s: %d",
				i18n.T(lang, "Total", "Total"), counts.Total())))
			return b.String()
		})
}

// CategoryLabel localizes an entity category.
func CategoryLabel(c result.Category, lang i18n.Lang) string {
	switch c {
	case result.Person:
		return i18n.T(lang, "Persons", "Personnes")
	case result.Organization:
		return i18n.T(lang, "Organizations", "Organisations")
	case result.Location:
		return i18n.T(lang, "Locations", "Lieux")
	case result.Date:
		return i18n.T(lang, "Dates", "Dates")
	case result.Number:
		return i18n.T(lang, "Numbers + Units", "Nombres + Unités")
	default:
		return i18n.T(lang, "Others", "Autres")
	}
}

// RenderAngles shows the suggested editorial angles with their scoped
// datasets, sources and visualization ideas.
func RenderAngles(angles []result.Angle, lang i18n.Lang, status Status, st Styles) string {
	if status == StatusReady && len(angles) == 0 {
		status = StatusEmpty
	}
	return sectionFrame(lang, status, st,
		i18n.T(lang, "No editorial angles were suggested.", "Aucun angle éditorial n'a été suggéré."),
		func() string {
			var b strings.Builder
			b.WriteString(st.Section.Render(i18n.T(lang, "Editorial angles", "Angles éditoriaux")))
			b.WriteString("\n")

			for _, angle := range angles {
				b.WriteString(st.Highlight.Render(fmt.Sprintf("%d. %s", angle.Index+1, angle.Title)))
				b.WriteString("\n")
				if angle.Description != "" {
					b.WriteString(st.Normal.Render("   " + angle.Description))
					b.WriteString("\n")
				}
				if len(angle.Keywords) > 0 {
					b.WriteString(st.Help.Render("   " + strings.Join(angle.Keywords, " · ")))
					b.WriteString("\n")
				}
				for _, ds := range angle.Datasets {
					b.WriteString(renderDatasetLine(ds, lang, st, "   "))
				}
				for _, src := range angle.Sources {
					b.WriteString(fmt.Sprintf("   %s %s",
						st.Label.Render(i18n.T(lang, "Portal:", "Portail :")),
						st.Normal.Render(src.Title)))
					if src.Link != "" {
						b.WriteString(st.Help.Render("  " + src.Link))
					}
					b.WriteString("\n")
				}
				if viz := RenderVisualizations(angle.Visualizations, lang, StatusReady, st); len(angle.Visualizations) > 0 {
					b.WriteString(indent(viz, "   "))
				}
				b.WriteString("\n")
			}
			return strings.TrimRight(b.String(), "\n") + "\n"
		})
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}

// RenderDatasets shows the top-level dataset suggestions.
func RenderDatasets(datasets []result.Dataset, lang i18n.Lang, status Status, st Styles) string {
	if status == StatusReady && len(datasets) == 0 {
		status = StatusEmpty
	}
	return sectionFrame(lang, status, st,
		i18n.T(lang, "No datasets were found for this article.", "Aucun jeu de données n'a été trouvé pour cet article."),
		func() string {
			var b strings.Builder
			b.WriteString(st.Section.Render(i18n.T(lang, "Suggested datasets", "Jeux de données suggérés")))
			b.WriteString("\n")
			for _, ds := range datasets {
				b.WriteString(renderDatasetLine(ds, lang, st, "  "))
			}
			return b.String()
		})
}

func renderDatasetLine(ds result.Dataset, lang i18n.Lang, st Styles, prefix string) string {
	var b strings.Builder

	title := ds.Title
	if title == "" {
		title = i18n.T(lang, "Untitled dataset", "Jeu sans titre")
	}
	b.WriteString(prefix)
	b.WriteString(st.Normal.Render("• " + title))
	if ds.FoundBy != "" {
		b.WriteString(st.Help.Render(fmt.Sprintf(" (%s)", strings.ToLower(ds.FoundBy))))
	}
	b.WriteString("\n")

	detail := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(prefix)
		b.WriteString("  ")
		b.WriteString(st.Label.Render(label + ": "))
		b.WriteString(st.Normal.Render(value))
		b.WriteString("\n")
	}

	detail("URL", ds.Link)
	detail(i18n.T(lang, "Source", "Source"), ds.SourceName)
	detail(i18n.T(lang, "Organization", "Organisation"), ds.Organization)
	detail(i18n.T(lang, "License", "Licence"), ds.License)
	detail(i18n.T(lang, "Last modified", "Modifié le"), ds.LastModified)
	if len(ds.Formats) > 0 {
		detail(i18n.T(lang, "Formats", "Formats"), strings.Join(ds.Formats, ", "))
	}
	if ds.HasRichness {
		detail(i18n.T(lang, "Richness", "Richesse"), fmt.Sprintf("%.0f", ds.Richness))
	}

	return b.String()
}

// RenderVisualizations shows chart ideas for the article or an angle.
func RenderVisualizations(vizzes []result.Viz, lang i18n.Lang, status Status, st Styles) string {
	if status == StatusReady && len(vizzes) == 0 {
		status = StatusEmpty
	}
	return sectionFrame(lang, status, st,
		i18n.T(lang, "No visualization ideas were suggested.", "Aucune idée de visualisation n'a été suggérée."),
		func() string {
			var b strings.Builder
			b.WriteString(st.Section.Render(i18n.T(lang, "Visual ideas", "Idées de visu")))
			b.WriteString("\n")
			for _, v := range vizzes {
				b.WriteString(st.Normal.Render("• " + v.Title))
				if v.ChartType != "" {
					b.WriteString(st.Help.Render(" [" + v.ChartType + "]"))
				}
				if v.X != "" || v.Y != "" {
					b.WriteString(st.Help.Render(fmt.Sprintf(" (x: %s, y: %s)", v.X, v.Y)))
				}
				if v.Note != "" {
					b.WriteString(st.Help.Render(" · " + v.Note))
				}
				b.WriteString("\n")
			}
			return b.String()
		})
}

// RenderResult composes the full result view from its sections.
func RenderResult(a *result.Analysis, lang i18n.Lang, status Status, st Styles) string {
	if status != StatusReady {
		return sectionFrame(lang, status, st,
			i18n.T(lang, "No analysis to display.", "Aucune analyse à afficher."),
			func() string { return "" })
	}

	sections := []string{
		RenderOverview(a, lang, StatusReady, st),
		RenderEntities(a.Counts, lang, StatusReady, st),
		RenderAngles(a.Angles, lang, StatusReady, st),
		RenderDatasets(a.Datasets, lang, StatusReady, st),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
