package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/pkg/media"
	"github.com/kasuboski/marquee/pkg/pagination"
	"github.com/kasuboski/marquee/pkg/tmdb"
	"github.com/sourcegraph/conc"
)

// Genres merges the movie and TV genre vocabularies. Both lists are fetched
// concurrently and a failed list is treated as empty.
func (m MediaManager) Genres(ctx context.Context) []media.GenreSummary {
	var wg conc.WaitGroup
	kinds := media.Kinds()
	vocabularies := make([][]tmdb.Genre, len(kinds))

	for i, kind := range kinds {
		i, kind := i, kind
		wg.Go(func() {
			vocabularies[i] = m.genreList(ctx, kind)
		})
	}
	wg.Wait()

	// tv comes last in Kinds so its names win
	return media.MergeGenres(vocabularies...)
}

func (m MediaManager) genreList(ctx context.Context, kind media.Kind) []tmdb.Genre {
	log := logger.FromCtx(ctx, "kind", kind.String())

	b, err := m.tmdb.Fetch(ctx, tmdb.GenreListPath(kind.MediaType()), nil, tmdb.FreshDetail)
	if err != nil {
		log.Warnw("failed to fetch genre list", "error", err)
		return nil
	}

	list, err := tmdb.DecodeGenres(b)
	if err != nil {
		log.Warnw("failed to decode genre list", "error", err)
		return nil
	}
	return list.Genres
}

// GenreTitles returns TMDB's discover page for a genre, ordered by popularity.
func (m MediaManager) GenreTitles(ctx context.Context, kind media.Kind, genreID, page int) (json.RawMessage, error) {
	if page < 1 {
		page = pagination.DefaultPage
	}

	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pagination.DefaultPageSize))
	if kind == media.KindTV {
		params.Set("include_null_first_air_dates", "false")
	}

	b, err := m.tmdb.Fetch(ctx, tmdb.DiscoverPath(kind.MediaType()), params, tmdb.FreshDiscover)
	if err != nil {
		return nil, fmt.Errorf("failed to discover %s for genre %d: %w", kind, genreID, err)
	}
	return json.RawMessage(b), nil
}
