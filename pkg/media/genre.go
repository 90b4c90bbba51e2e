package media

import (
	"sort"

	"github.com/kasuboski/marquee/pkg/tmdb"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// GenreSummary is a genre from the union of the movie and TV vocabularies.
// OccurrenceCount is the number of vocabularies the genre appears in.
type GenreSummary struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	OccurrenceCount int    `json:"occurrence_count"`
}

// MergeGenres unions vocabularies by id. When vocabularies disagree on a
// name, the later one wins.
func MergeGenres(vocabularies ...[]tmdb.Genre) []GenreSummary {
	byID := make(map[int]*GenreSummary)
	var order []int

	for _, vocabulary := range vocabularies {
		seen := make(map[int]bool, len(vocabulary))
		for _, g := range vocabulary {
			if seen[g.ID] {
				continue
			}
			seen[g.ID] = true

			summary, ok := byID[g.ID]
			if !ok {
				summary = &GenreSummary{ID: g.ID}
				byID[g.ID] = summary
				order = append(order, g.ID)
			}
			summary.Name = g.Name
			summary.OccurrenceCount++
		}
	}

	merged := make([]GenreSummary, 0, len(order))
	for _, id := range order {
		merged = append(merged, *byID[id])
	}

	SortGenres(merged)
	return merged
}

// SortGenres orders by occurrence count descending, then name in English
// collation order, then id.
func SortGenres(genres []GenreSummary) {
	col := collate.New(language.English)
	sort.SliceStable(genres, func(i, j int) bool {
		a, b := genres[i], genres[j]
		if a.OccurrenceCount != b.OccurrenceCount {
			return a.OccurrenceCount > b.OccurrenceCount
		}
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}
