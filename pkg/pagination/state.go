package pagination

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/kasuboski/marquee/pkg/media"
)

var ErrPageOutOfOrder = errors.New("page out of order")

// Page is one normalized provider page.
type Page struct {
	Number     int
	TotalPages int
	Items      []media.Record
}

// State is the accumulated result of one query+kind. It is a value: Apply
// returns the next State and never touches the receiver.
type State struct {
	Query       string
	Kind        media.Kind
	CurrentPage int
	TotalPages  int
	Accumulated []media.Record
}

func NewState(query string, kind media.Kind) State {
	return State{Query: NormalizeQuery(query), Kind: kind}
}

// Loaded is true once the first page has been applied.
func (s State) Loaded() bool {
	return s.CurrentPage >= 1
}

func (s State) Exhausted() bool {
	return s.Loaded() && s.CurrentPage >= s.TotalPages
}

// NextPage is the page number Apply accepts for an incremental load.
func (s State) NextPage() int {
	if !s.Loaded() {
		return 1
	}
	return s.CurrentPage + 1
}

// Apply merges p into the state. Page 1 replaces the accumulator and is the
// only page that gets sorted. Later pages must follow CurrentPage and are
// appended minus any ids already accumulated. newItems is what p added.
func (s State) Apply(p Page) (newItems []media.Record, next State, err error) {
	next = s

	switch {
	case p.Number == 1:
		sorted := slices.Clone(p.Items)
		SortByRatingThenDate(sorted)
		newItems = dedupe(sorted, nil)
		next.Accumulated = slices.Clone(newItems)
	case s.Loaded() && p.Number == s.CurrentPage+1:
		seen := make(map[int]struct{}, len(s.Accumulated))
		for _, r := range s.Accumulated {
			seen[r.Identity()] = struct{}{}
		}
		newItems = dedupe(p.Items, seen)
		next.Accumulated = append(slices.Clone(s.Accumulated), newItems...)
	default:
		return nil, s, fmt.Errorf("%w: at page %d, got page %d", ErrPageOutOfOrder, s.CurrentPage, p.Number)
	}

	next.CurrentPage = p.Number
	next.TotalPages = p.TotalPages
	return newItems, next, nil
}

// SortByRatingThenDate orders by vote average, then primary date, both descending.
func SortByRatingThenDate(records []media.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Rating() != b.Rating() {
			return a.Rating() > b.Rating()
		}
		return a.Date() > b.Date()
	})
}

func dedupe(records []media.Record, seen map[int]struct{}) []media.Record {
	if seen == nil {
		seen = make(map[int]struct{}, len(records))
	}

	out := make([]media.Record, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Identity()]; ok {
			continue
		}
		seen[r.Identity()] = struct{}{}
		out = append(out, r)
	}
	return out
}
