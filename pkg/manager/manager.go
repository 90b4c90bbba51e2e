package manager

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/pkg/media"
	"github.com/kasuboski/marquee/pkg/pagination"
	"github.com/kasuboski/marquee/pkg/player"
	"github.com/kasuboski/marquee/pkg/tmdb"
)

type TMDBClientInterface tmdb.ClientInterface

// MediaManager answers discovery queries from TMDB and shapes the results for clients.
type MediaManager struct {
	tmdb      TMDBClientInterface
	imageBase string
	linker    *player.Linker
}

func New(tmdbClient TMDBClientInterface, imageBase string, linker *player.Linker) MediaManager {
	return MediaManager{
		tmdb:      tmdbClient,
		imageBase: imageBase,
		linker:    linker,
	}
}

// Search runs a paged title search. An empty query never reaches TMDB.
func (m MediaManager) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	log := logger.FromCtx(ctx)

	query := pagination.NormalizeQuery(req.Query)
	params := req.Params
	if params.Page < 1 {
		params.Page = pagination.DefaultPage
	}
	if params.PageSize < 1 {
		params.PageSize = pagination.DefaultPageSize
	}

	if query == "" {
		log.Debug("search query is empty")
		return EmptySearchResult(pagination.DefaultPage), nil
	}

	page, err := m.searchTMDB(ctx, query, req.Kind, params.Page)
	if err != nil {
		log.Warnw("search failed", "query", query, "kind", req.Kind.String(), "error", err)
		return EmptySearchResult(params.Page), fmt.Errorf("failed to search %s: %w", req.Kind, err)
	}

	records := m.normalize(page.Results, req.Kind)
	return SearchResult{
		Results: pagination.Clip(records, params.PageSize),
		Meta:    params.BuildMeta(page.TotalResults),
	}, nil
}

// SearchPage loads one provider page of a search. It satisfies pagination.Fetcher.
func (m MediaManager) SearchPage(ctx context.Context, query string, kind media.Kind, page int) (pagination.Page, error) {
	res, err := m.searchTMDB(ctx, query, kind, page)
	if err != nil {
		return pagination.Page{}, err
	}

	return pagination.Page{
		Number:     res.Page,
		TotalPages: res.TotalPages,
		Items:      m.normalize(res.Results, kind),
	}, nil
}

func (m MediaManager) searchTMDB(ctx context.Context, query string, kind media.Kind, page int) (tmdb.Page, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")

	b, err := m.tmdb.Fetch(ctx, tmdb.SearchPath(kind.MediaType()), params, tmdb.FreshSearch)
	if err != nil {
		return tmdb.Page{}, err
	}
	return tmdb.DecodePage(b)
}

// Popular lists the currently popular titles of a kind.
func (m MediaManager) Popular(ctx context.Context, kind media.Kind, page int) (ListResult, error) {
	if page < 1 {
		page = pagination.DefaultPage
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	b, err := m.tmdb.Fetch(ctx, tmdb.PopularPath(kind.MediaType()), params, tmdb.FreshPopular)
	if err != nil {
		return EmptyListResult(page), fmt.Errorf("failed to list popular %s: %w", kind, err)
	}

	res, err := tmdb.DecodePage(b)
	if err != nil {
		return EmptyListResult(page), err
	}

	return ListResult{
		Results:      m.normalize(res.Results, kind),
		Page:         res.Page,
		TotalPages:   res.TotalPages,
		TotalResults: res.TotalResults,
	}, nil
}

// normalize drops malformed provider records before mapping the rest.
func (m MediaManager) normalize(raw []tmdb.RawMedia, kind media.Kind) []media.Record {
	usable := make([]tmdb.RawMedia, 0, len(raw))
	for _, r := range raw {
		if media.Usable(r) {
			usable = append(usable, r)
		}
	}
	return media.Normalize(usable, kind, m.imageBase)
}
