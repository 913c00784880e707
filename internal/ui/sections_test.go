package ui

import (
	"strings"
	"testing"

	"github.com/datascope/datascope-cli/internal/i18n"
	"github.com/datascope/datascope-cli/internal/result"
)

func plainStyles() Styles {
	// lipgloss degrades to plain text without a TTY, so rendered output
	// is assertable as substrings.
	return DefaultStyles()
}

func TestSectionStatusBranches(t *testing.T) {
	st := plainStyles()

	loading := RenderDatasets(nil, i18n.EN, StatusLoading, st)
	if !strings.Contains(loading, "Loading") {
		t.Errorf("loading state not rendered: %q", loading)
	}

	failed := RenderDatasets(nil, i18n.EN, StatusError, st)
	if !strings.Contains(failed, "Something went wrong") {
		t.Errorf("error state not rendered: %q", failed)
	}

	failedFR := RenderDatasets(nil, i18n.FR, StatusError, st)
	if !strings.Contains(failedFR, "Une erreur est survenue") {
		t.Errorf("French error state not rendered: %q", failedFR)
	}
}

func TestEmptyStatesAreDistinctPerSection(t *testing.T) {
	st := plainStyles()

	empties := map[string]string{
		"overview":       RenderOverview(nil, i18n.EN, StatusReady, st),
		"entities":       RenderEntities(nil, i18n.EN, StatusReady, st),
		"angles":         RenderAngles(nil, i18n.EN, StatusReady, st),
		"datasets":       RenderDatasets(nil, i18n.EN, StatusReady, st),
		"visualizations": RenderVisualizations(nil, i18n.EN, StatusReady, st),
	}

	seen := make(map[string]string)
	for section, text := range empties {
		if text == "" {
			t.Errorf("section %s has no empty-state text", section)
		}
		if other, dup := seen[text]; dup {
			t.Errorf("sections %s and %s share empty-state text %q", section, other, text)
		}
		seen[text] = section
	}
}

func TestRenderOverviewGaugeAndTier(t *testing.T) {
	st := plainStyles()
	score := result.DeriveScore(7.9)
	a := &result.Analysis{Title: "Floods in Brittany", Score: &score}

	out := RenderOverview(a, i18n.EN, StatusReady, st)

	if !strings.Contains(out, "79%") {
		t.Errorf("expected percentage in overview, got:\n%s", out)
	}
	if !strings.Contains(out, "High potential") {
		t.Errorf("expected tier badge, got:\n%s", out)
	}
	if !strings.Contains(out, "Floods in Brittany") {
		t.Errorf("expected article title, got:\n%s", out)
	}

	outFR := RenderOverview(a, i18n.FR, StatusReady, st)
	if !strings.Contains(outFR, "Potentiel élevé") {
		t.Errorf("expected French tier label, got:\n%s", outFR)
	}
}

func TestRenderEntitiesCountsAndTotal(t *testing.T) {
	st := plainStyles()
	counts := result.CategoryCounts{
		result.Person:       3,
		result.Organization: 2,
		result.Number:       7,
	}

	out := RenderEntities(counts, i18n.EN, StatusReady, st)

	for _, want := range []string{"Persons", "Organizations", "Numbers + Units", "Total: 12"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Locations") {
		t.Errorf("zero-count categories should be omitted:\n%s", out)
	}

	outFR := RenderEntities(counts, i18n.FR, StatusReady, st)
	if !strings.Contains(outFR, "Personnes") {
		t.Errorf("expected French category label, got:\n%s", outFR)
	}
}

func TestRenderAnglesNumbering(t *testing.T) {
	st := plainStyles()
	angles := []result.Angle{
		{Index: 0, Title: "Budget impact", Keywords: []string{"budget", "municipal"}},
		{Index: 1, Title: "Regional comparison", Datasets: []result.Dataset{
			{Title: "Flood zones 2023", Link: "https://data.example.org/floods"},
		}},
	}

	out := RenderAngles(angles, i18n.EN, StatusReady, st)

	if !strings.Contains(out, "1. Budget impact") {
		t.Errorf("angle numbering should be one-based, got:\n%s", out)
	}
	if !strings.Contains(out, "2. Regional comparison") {
		t.Errorf("second angle missing, got:\n%s", out)
	}
	if !strings.Contains(out, "https://data.example.org/floods") {
		t.Errorf("angle-scoped dataset link missing, got:\n%s", out)
	}
}

func TestRenderDatasetDetails(t *testing.T) {
	st := plainStyles()
	datasets := []result.Dataset{
		{
			Title:        "Water quality measurements",
			Link:         "https://data.example.org/water",
			SourceName:   "data.gouv.fr",
			License:      "Licence Ouverte",
			Formats:      []string{"csv", "json"},
			Richness:     42,
			HasRichness:  true,
			Organization: "Ministry of Ecology",
		},
		{},
	}

	out := RenderDatasets(datasets, i18n.EN, StatusReady, st)

	for _, want := range []string{
		"Water quality measurements",
		"https://data.example.org/water",
		"csv, json",
		"Licence Ouverte",
		"42",
		"Untitled dataset",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderVisualizationsAxes(t *testing.T) {
	st := plainStyles()
	vizzes := []result.Viz{
		{Title: "Rainfall over time", ChartType: "line", X: "month", Y: "mm"},
		{Title: "Just an idea"},
	}

	out := RenderVisualizations(vizzes, i18n.EN, StatusReady, st)

	if !strings.Contains(out, "[line]") {
		t.Errorf("chart type missing, got:\n%s", out)
	}
	if !strings.Contains(out, "(x: month, y: mm)") {
		t.Errorf("axes missing, got:\n%s", out)
	}
	if !strings.Contains(out, "Just an idea") {
		t.Errorf("bare idea missing, got:\n%s", out)
	}
}

func TestHistoryViewCursorAndSelection(t *testing.T) {
	hv := NewHistoryView(80, 24)

	if hv.Selected() != nil {
		t.Error("empty history should have no selection")
	}

	hv.SetEntries([]result.HistoryEntry{{ID: 1}, {ID: 2}, {ID: 3}})
	hv.MoveCursor(1)
	hv.MoveCursor(1)
	hv.MoveCursor(1) // clamped at the last entry

	if got := hv.Selected(); got == nil || got.ID != 3 {
		t.Errorf("expected entry 3 selected, got %+v", got)
	}

	hv.MoveCursor(-5)
	if got := hv.Selected(); got == nil || got.ID != 1 {
		t.Errorf("expected clamp at first entry, got %+v", got)
	}
}

func TestHistoryViewEmptyState(t *testing.T) {
	hv := NewHistoryView(80, 24)
	st := plainStyles()

	out := hv.View(i18n.EN, st)
	if !strings.Contains(out, "No analyses yet") {
		t.Errorf("expected empty-state text, got %q", out)
	}

	outFR := hv.View(i18n.FR, st)
	if !strings.Contains(outFR, "Aucune analyse") {
		t.Errorf("expected French empty-state text, got %q", outFR)
	}
}

func TestCollectLinks(t *testing.T) {
	a := &result.Analysis{
		Datasets: []result.Dataset{
			{Link: "https://a.example.org"},
			{Link: ""},
			{Link: "https://a.example.org"}, // duplicate
		},
		Angles: []result.Angle{
			{
				Datasets:       []result.Dataset{{Link: "https://b.example.org"}},
				Sources:        []result.Source{{Link: "https://c.example.org"}},
				Visualizations: []result.Viz{{URL: "https://d.example.org"}},
			},
		},
	}

	got := CollectLinks(a)
	want := []string{
		"https://a.example.org",
		"https://b.example.org",
		"https://c.example.org",
		"https://d.example.org",
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d links, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("link %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if links := CollectLinks(nil); links != nil {
		t.Errorf("nil analysis should yield no links, got %v", links)
	}
}
