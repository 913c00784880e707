package result

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// The backend schema has drifted across versions: the same field can show
// up under several names, nested or flat, as an object or a bare string.
// Everything in this file is tolerant and total: any JSON-like input
// produces a canonical record, with unusable fields left at their zero
// value so rendering can omit them.

// ParseAnalysis decodes a raw analysis payload into the canonical model.
// It only fails when the body is not a JSON object at all.
func ParseAnalysis(data []byte) (Analysis, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Analysis{}, fmt.Errorf("failed to parse analysis payload: %w", err)
	}
	return NormalizeAnalysis(raw), nil
}

// NormalizeAnalysis maps a loosely-typed payload object to an Analysis.
func NormalizeAnalysis(raw map[string]any) Analysis {
	a := Analysis{
		ID:           intField(raw, "id", "analysis_id"),
		ProfileLabel: stringField(raw, "profile_label", "profileLabel", "label"),
		Summary:      stringField(raw, "summary"),
	}

	if v, ok := floatField(raw, "score", "datafication_score"); ok {
		s := DeriveScore(v)
		a.Score = &s
	}

	if article, ok := mapField(raw, "article"); ok {
		a.Title = stringField(article, "title")
		a.Content = stringField(article, "content", "text", "excerpt")
	}
	if a.Title == "" {
		a.Title = stringField(raw, "title")
	}
	if a.Content == "" {
		a.Content = stringField(raw, "content", "text")
	}

	a.Entities, a.Counts = NormalizeEntities(firstValue(raw, "entities", "entity_summary"))
	a.Angles = normalizeAngles(firstValue(raw, "angles", "editorial_angles"))
	a.Datasets = normalizeDatasetList(firstValue(raw, "datasets", "dataset_suggestions", "suggested_datasets"))

	if s := stringField(raw, "created_at", "createdAt", "submitted_at"); s != "" {
		var ft FlexibleTime
		if err := ft.UnmarshalJSON([]byte(strconv.Quote(s))); err == nil {
			a.CreatedAt = ft.Time
		}
	}

	return a
}

// NormalizeCategory maps a free-text entity label to exactly one Category.
// Matching is case-insensitive substring matching over synonym groups, in
// fixed order, so the mapping is total and deterministic. Unrecognized
// labels land in Other.
func NormalizeCategory(label string) Category {
	s := strings.ToLower(strings.TrimSpace(label))

	groups := []struct {
		category Category
		synonyms []string
	}{
		{Person, []string{"person", "pers", "human", "people"}},
		{Organization, []string{"org", "company", "inst", "agency"}},
		{Location, []string{"loc", "place", "city", "country", "geo"}},
		{Date, []string{"date", "time"}},
		{Number, []string{"number", "unit", "measure", "num", "qty"}},
	}

	// NER tag abbreviations that are too short to substring-match safely
	switch s {
	case "per":
		return Person
	case "misc":
		return Other
	}

	for _, g := range groups {
		for _, syn := range g.synonyms {
			if strings.Contains(s, syn) {
				return g.category
			}
		}
	}
	return Other
}

// NormalizeEntities accepts either a list of entity objects (or bare label
// strings) or a pre-aggregated count object, and produces both the entity
// list and the per-category counts. A count object yields counts only.
func NormalizeEntities(v any) ([]Entity, CategoryCounts) {
	counts := make(CategoryCounts)

	switch val := v.(type) {
	case []any:
		var entities []Entity
		for _, e := range val {
			switch item := e.(type) {
			case map[string]any:
				label := stringField(item, "type", "label", "category", "entity_type")
				ent := Entity{
					Category: NormalizeCategory(label),
					Value:    stringField(item, "value", "text", "name", "entity"),
					Context:  stringField(item, "context"),
				}
				entities = append(entities, ent)
				counts[ent.Category]++
			case string:
				// A bare string carries its own label
				ent := Entity{Category: NormalizeCategory(item), Value: item}
				entities = append(entities, ent)
				counts[ent.Category]++
			}
		}
		return entities, counts

	case map[string]any:
		// Summary object, e.g. {"persons": 3, "orgs": 1, ...} with the
		// aliases older backends used
		counts[Person] = countField(val, "persons", "people", "PER", "PERSON", "Persons")
		counts[Organization] = countField(val, "orgs", "organizations", "ORG", "Organizations")
		counts[Location] = countField(val, "locations", "location", "LOC")
		counts[Date] = countField(val, "dates", "time")
		counts[Number] = countField(val, "numbers", "units", "quantities")
		counts[Other] = countField(val, "others", "misc")
		return nil, counts
	}

	return nil, counts
}

// NormalizeDataset maps one dataset suggestion object to its canonical
// form. The link is probed across every key the backend has used, falling
// back to the first resource entry that exposes a URL.
func NormalizeDataset(raw map[string]any) Dataset {
	ds := Dataset{
		Title:        stringField(raw, "title", "name"),
		Description:  stringField(raw, "description"),
		Link:         stringField(raw, "url", "link", "href", "source_url"),
		SourceName:   stringField(raw, "source_name", "source"),
		Organization: stringField(raw, "organization", "organisation"),
		License:      stringField(raw, "license", "licence"),
		LastModified: stringField(raw, "last_modified", "lastModified", "updated_at"),
		FoundBy:      stringField(raw, "found_by", "foundBy"),
	}

	if v, ok := floatField(raw, "richness"); ok {
		ds.Richness = v
		ds.HasRichness = true
	}

	resources, _ := firstValue(raw, "resources").([]any)
	if ds.Link == "" {
		for _, r := range resources {
			if rm, ok := r.(map[string]any); ok {
				if u := stringField(rm, "url"); u != "" {
					ds.Link = u
					break
				}
			}
		}
	}

	ds.Formats = collectFormats(raw, resources)
	return ds
}

// collectFormats aggregates format hints from the plural and singular
// top-level fields plus every resource entry, producing a lower-cased,
// de-duplicated, sorted set.
func collectFormats(raw map[string]any, resources []any) []string {
	seen := make(map[string]bool)

	add := func(v any) {
		if s, ok := v.(string); ok {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				seen[s] = true
			}
		}
	}

	if list, ok := firstValue(raw, "formats").([]any); ok {
		for _, f := range list {
			add(f)
		}
	} else {
		add(firstValue(raw, "formats"))
	}
	add(firstValue(raw, "format"))

	for _, r := range resources {
		if rm, ok := r.(map[string]any); ok {
			add(firstValue(rm, "format"))
			add(firstValue(rm, "mime"))
			add(firstValue(rm, "type"))
		}
	}

	if len(seen) == 0 {
		return nil
	}
	formats := make([]string, 0, len(seen))
	for f := range seen {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// NormalizeViz maps a visualization suggestion, which arrives either as an
// object or as a bare string. A bare string becomes the title with every
// other field absent. Returns false for anything else.
func NormalizeViz(v any) (Viz, bool) {
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return Viz{}, false
		}
		return Viz{Title: strings.TrimSpace(val)}, true
	case map[string]any:
		viz := Viz{
			Title:     stringField(val, "title", "name"),
			ChartType: stringField(val, "chart_type", "chartType", "type"),
			X:         stringField(val, "x"),
			Y:         stringField(val, "y"),
			Note:      stringField(val, "note"),
			URL:       stringField(val, "url", "link"),
		}
		if viz.Title == "" && viz.ChartType == "" {
			return Viz{}, false
		}
		return viz, true
	}
	return Viz{}, false
}

func normalizeSource(raw map[string]any) Source {
	return Source{
		Title:       stringField(raw, "title", "name"),
		Description: stringField(raw, "description"),
		Link:        stringField(raw, "link", "url", "href"),
		Provider:    stringField(raw, "source", "provider"),
	}
}

// normalizeAngles handles both a plain list and the wrapped form
// {"angles": [...]} that older payloads used. Angle indexes are taken from
// the payload when present but re-assigned whenever they are missing or
// collide, so they stay unique within one result.
func normalizeAngles(v any) []Angle {
	if wrapped, ok := v.(map[string]any); ok {
		v = firstValue(wrapped, "angles")
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}

	var angles []Angle
	seen := make(map[int]bool)
	for pos, item := range list {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		angle := Angle{
			Index:       pos,
			Title:       stringField(raw, "title"),
			Description: stringField(raw, "description"),
			Keywords:    stringList(firstValue(raw, "keywords")),
			Datasets:    normalizeDatasetList(firstValue(raw, "datasets")),
		}
		if idx, ok := floatField(raw, "index"); ok {
			angle.Index = int(idx)
		}
		if seen[angle.Index] {
			angle.Index = pos
		}
		seen[angle.Index] = true

		if sources, ok := firstValue(raw, "sources").([]any); ok {
			for _, s := range sources {
				if sm, ok := s.(map[string]any); ok {
					angle.Sources = append(angle.Sources, normalizeSource(sm))
				}
			}
		}
		if vizzes, ok := firstValue(raw, "visualizations", "visualisations").([]any); ok {
			for _, vz := range vizzes {
				if viz, ok := NormalizeViz(vz); ok {
					angle.Visualizations = append(angle.Visualizations, viz)
				}
			}
		}

		angles = append(angles, angle)
	}
	return angles
}

func normalizeDatasetList(v any) []Dataset {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var datasets []Dataset
	for _, item := range list {
		if raw, ok := item.(map[string]any); ok {
			datasets = append(datasets, NormalizeDataset(raw))
		}
	}
	return datasets
}

// ParseHistory decodes the history listing, which arrives either as
// {"results": [...]} or as a bare array. An explicit null results field
// means an empty history, not a malformed payload.
func ParseHistory(data []byte) ([]HistoryEntry, error) {
	var list []map[string]any

	var wrapped struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Results != nil {
		if err := json.Unmarshal(wrapped.Results, &list); err != nil {
			return nil, fmt.Errorf("failed to parse history payload: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to parse history payload: %w", err)
		}
	}

	entries := make([]HistoryEntry, 0, len(list))
	for _, raw := range list {
		a := NormalizeAnalysis(raw)
		entries = append(entries, HistoryEntry{
			ID:        a.ID,
			Title:     a.Title,
			Score:     a.Score,
			CreatedAt: a.CreatedAt,
		})
	}
	return entries, nil
}

// --- field probing helpers (first match wins) ---

func firstValue(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func floatField(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				return v, true
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func intField(m map[string]any, keys ...string) int64 {
	if v, ok := floatField(m, keys...); ok {
		return int64(v)
	}
	return 0
}

func countField(m map[string]any, keys ...string) int {
	if v, ok := floatField(m, keys...); ok && v > 0 {
		return int(v)
	}
	return 0
}

func mapField(m map[string]any, key string) (map[string]any, bool) {
	v, ok := m[key].(map[string]any)
	return v, ok
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
