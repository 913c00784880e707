package result

import (
	"fmt"
	"time"
)

// FlexibleTime is a time.Time that can parse the date formats the backend
// has been observed to emit.
type FlexibleTime struct {
	time.Time
}

// UnmarshalJSON implements custom JSON unmarshaling for FlexibleTime
func (ft *FlexibleTime) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, str); err == nil {
			ft.Time = t
			return nil
		}
	}

	return fmt.Errorf("unable to parse time: %s", str)
}

// MarshalJSON implements custom JSON marshaling
func (ft FlexibleTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", ft.Format(time.RFC3339))), nil
}

// Category is the canonical grouping for an extracted entity. Every raw
// label maps to exactly one category; anything unrecognized is Other.
type Category int

const (
	Person Category = iota
	Organization
	Location
	Date
	Number
	Other
)

func (c Category) String() string {
	switch c {
	case Person:
		return "Person"
	case Organization:
		return "Organization"
	case Location:
		return "Location"
	case Date:
		return "Date"
	case Number:
		return "Number"
	default:
		return "Other"
	}
}

// Categories lists all categories in display order.
var Categories = []Category{Person, Organization, Location, Date, Number, Other}

// Entity is a named element extracted from the article text.
type Entity struct {
	Category Category
	Value    string
	Context  string
}

// CategoryCounts holds the number of entities per category.
type CategoryCounts map[Category]int

// Total returns the number of entities across all categories.
func (cc CategoryCounts) Total() int {
	n := 0
	for _, v := range cc {
		n += v
	}
	return n
}

// Dataset is a canonical dataset suggestion. Optional string fields are
// empty when the payload carried nothing usable; rendering omits them.
type Dataset struct {
	Title        string
	Description  string
	Link         string
	SourceName   string
	Organization string
	License      string
	LastModified string
	Formats      []string
	FoundBy      string
	Richness     float64
	HasRichness  bool
}

// Source is an external open-data portal suggested for an angle.
type Source struct {
	Title       string
	Description string
	Link        string
	Provider    string
}

// Viz is a visualization suggestion. A bare string in the payload becomes
// a Viz with only the title set.
type Viz struct {
	Title     string
	ChartType string
	X         string
	Y         string
	Note      string
	URL       string
}

// Angle is a suggested editorial framing with its scoped resources.
type Angle struct {
	Index          int
	Title          string
	Description    string
	Keywords       []string
	Datasets       []Dataset
	Sources        []Source
	Visualizations []Viz
}

// Analysis is the canonical view model for one analysis result. Rendering
// code consumes only this type, never the raw payload.
type Analysis struct {
	ID           int64
	Score        *Score
	ProfileLabel string
	Title        string
	Content      string
	Summary      string
	Entities     []Entity
	Counts       CategoryCounts
	Angles       []Angle
	Datasets     []Dataset
	CreatedAt    time.Time
}

// HistoryEntry is one row of the analysis history listing.
type HistoryEntry struct {
	ID        int64
	Title     string
	Score     *Score
	CreatedAt time.Time
}
