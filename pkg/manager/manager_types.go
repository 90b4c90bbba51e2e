package manager

import (
	"github.com/kasuboski/marquee/pkg/media"
	"github.com/kasuboski/marquee/pkg/pagination"
	"github.com/kasuboski/marquee/pkg/tmdb"
	"github.com/oapi-codegen/nullable"
)

// SearchRequest describes a single page of a title search
type SearchRequest struct {
	Query  string
	Kind   media.Kind
	Params pagination.Params
}

type SearchResult struct {
	Results []media.Record `json:"results"`
	pagination.Meta
}

// EmptySearchResult is the envelope for a search with nothing to show.
func EmptySearchResult(page int) SearchResult {
	meta := pagination.EmptyMeta()
	meta.Page = page
	return SearchResult{
		Results: []media.Record{},
		Meta:    meta,
	}
}

type ListResult struct {
	Results      []media.Record `json:"results"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

func EmptyListResult(page int) ListResult {
	return ListResult{
		Results: []media.Record{},
		Page:    page,
	}
}

type MovieDetail struct {
	media.Record
	Genres          []tmdb.Genre              `json:"genres"`
	Runtime         nullable.Nullable[int]    `json:"runtime"`
	Tagline         nullable.Nullable[string] `json:"tagline"`
	Status          string                    `json:"status,omitempty"`
	Trailer         nullable.Nullable[string] `json:"trailer"`
	Recommendations []media.Record            `json:"recommendations"`
}

type TVDetail struct {
	media.Record
	Genres           []tmdb.Genre              `json:"genres"`
	Seasons          []tmdb.Season             `json:"seasons"`
	NumberOfSeasons  int                       `json:"number_of_seasons"`
	NumberOfEpisodes int                       `json:"number_of_episodes"`
	Cast             []tmdb.CastMember         `json:"cast"`
	Trailer          nullable.Nullable[string] `json:"trailer"`
	Recommendations  []media.Record            `json:"recommendations"`
}
