package media

import (
	"strings"

	"github.com/kasuboski/marquee/pkg/tmdb"
	"github.com/oapi-codegen/nullable"
)

const Untitled = "Untitled"

// Record is one discoverable title, the only media shape handed to callers.
// Nullable fields always serialize as a value or an explicit null.
type Record struct {
	ID           int                        `json:"id"`
	Kind         Kind                       `json:"media_type"`
	Title        string                     `json:"title"`
	PosterPath   nullable.Nullable[string]  `json:"poster_path"`
	PosterURL    nullable.Nullable[string]  `json:"poster_url"`
	BackdropPath nullable.Nullable[string]  `json:"backdrop_path"`
	BackdropURL  nullable.Nullable[string]  `json:"backdrop_url"`
	PrimaryDate  nullable.Nullable[string]  `json:"primary_date"`
	VoteAverage  nullable.Nullable[float64] `json:"vote_average"`
	Overview     nullable.Nullable[string]  `json:"overview"`
}

// Identity is the provider id, unique within a kind.
func (r Record) Identity() int {
	return r.ID
}

// Rating is the vote average, or 0 when the provider sent none.
func (r Record) Rating() float64 {
	v, err := r.VoteAverage.Get()
	if err != nil {
		return 0
	}
	return v
}

// Date is the primary date as sent by the provider, or "" when absent.
func (r Record) Date() string {
	v, err := r.PrimaryDate.Get()
	if err != nil {
		return ""
	}
	return v
}

// Usable is false for malformed upstream records that have no id and neither a title nor a name.
func Usable(raw tmdb.RawMedia) bool {
	return raw.ID != 0 || present(raw.Title) || present(raw.Name)
}

// Normalize maps raw provider records of one kind into Records. It is pure:
// the same inputs always produce the same output.
func Normalize(raw []tmdb.RawMedia, kind Kind, imageBase string) []Record {
	records := make([]Record, 0, len(raw))
	for _, r := range raw {
		records = append(records, NormalizeOne(r, kind, imageBase))
	}
	return records
}

// NormalizeOne maps a single raw record.
func NormalizeOne(raw tmdb.RawMedia, kind Kind, imageBase string) Record {
	title := Untitled
	switch {
	case raw.Title != nil:
		title = *raw.Title
	case raw.Name != nil:
		title = *raw.Name
	}

	return Record{
		ID:           raw.ID,
		Kind:         kind,
		Title:        title,
		PosterPath:   nonEmpty(raw.PosterPath),
		PosterURL:    ImageURL(imageBase, raw.PosterPath),
		BackdropPath: nonEmpty(raw.BackdropPath),
		BackdropURL:  ImageURL(imageBase, raw.BackdropPath),
		PrimaryDate:  fromPtr(primaryDate(raw, kind)),
		VoteAverage:  fromPtr(raw.VoteAverage),
		Overview:     fromPtr(raw.Overview),
	}
}

// ImageURL joins imageBase and a relative provider path. It is null when
// either part is missing so a bare relative path never escapes.
func ImageURL(imageBase string, path *string) nullable.Nullable[string] {
	if !present(path) || imageBase == "" {
		return nullable.NewNullNullable[string]()
	}

	return nullable.NewNullableWithValue(strings.TrimSuffix(imageBase, "/") + "/" + strings.TrimPrefix(*path, "/"))
}

func primaryDate(raw tmdb.RawMedia, kind Kind) *string {
	switch kind {
	case KindMovie:
		return raw.ReleaseDate
	case KindTV:
		return raw.FirstAirDate
	}
	return nil
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func nonEmpty(s *string) nullable.Nullable[string] {
	if !present(s) {
		return nullable.NewNullNullable[string]()
	}
	return nullable.NewNullableWithValue(*s)
}

func fromPtr[T any](p *T) nullable.Nullable[T] {
	if p == nil {
		return nullable.NewNullNullable[T]()
	}
	return nullable.NewNullableWithValue(*p)
}
