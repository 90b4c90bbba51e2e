package manager

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/pkg/media"
	"github.com/kasuboski/marquee/pkg/player"
	"github.com/kasuboski/marquee/pkg/tmdb"
	"github.com/oapi-codegen/nullable"
	"github.com/sourcegraph/conc"
)

// MaxRecommendations caps the recommendations returned with a detail page.
const MaxRecommendations = 6

// MovieDetails loads a movie with its trailer and recommendations. Only a
// failure of the movie itself is returned; videos and recommendations
// degrade to empty.
func (m MediaManager) MovieDetails(ctx context.Context, id int) (MovieDetail, error) {
	log := logger.FromCtx(ctx, "tmdb_id", id)

	detailPath, err := tmdb.MoviePath(id)
	if err != nil {
		return MovieDetail{}, err
	}

	var (
		wg         conc.WaitGroup
		details    tmdb.MovieDetails
		detailsErr error
		videos     tmdb.VideoList
		recs       tmdb.Page
	)

	wg.Go(func() {
		details, detailsErr = fetch(ctx, m.tmdb, detailPath, nil, tmdb.FreshDetail, tmdb.DecodeMovieDetails)
	})
	wg.Go(func() {
		videos = m.videos(ctx, tmdb.MovieVideosPath, id)
	})
	wg.Go(func() {
		path, err := tmdb.MovieRecommendationsPath(id)
		if err == nil {
			recs, err = fetch(ctx, m.tmdb, path, nil, tmdb.FreshDetail, tmdb.DecodePage)
		}
		if err != nil {
			log.Warnw("failed to fetch recommendations", "error", err)
		}
	})
	wg.Wait()

	if detailsErr != nil {
		return MovieDetail{}, fmt.Errorf("failed to get movie %d: %w", id, detailsErr)
	}

	return MovieDetail{
		Record:          media.NormalizeOne(details.RawMedia, media.KindMovie, m.imageBase),
		Genres:          nonNil(details.Genres),
		Runtime:         nullableFrom(details.Runtime),
		Tagline:         nullableFrom(details.Tagline),
		Status:          details.Status,
		Trailer:         m.trailer(ctx, videos),
		Recommendations: m.recommendations(recs.Results, media.KindMovie),
	}, nil
}

// TVDetails loads a series with its credits, seasons, trailer and recommendations.
func (m MediaManager) TVDetails(ctx context.Context, id int) (TVDetail, error) {
	detailPath, err := tmdb.TVPath(id)
	if err != nil {
		return TVDetail{}, err
	}

	params := url.Values{}
	params.Set("append_to_response", "credits,recommendations")

	var (
		wg         conc.WaitGroup
		details    tmdb.TVDetails
		detailsErr error
		videos     tmdb.VideoList
	)

	wg.Go(func() {
		details, detailsErr = fetch(ctx, m.tmdb, detailPath, params, tmdb.FreshDetail, tmdb.DecodeTVDetails)
	})
	wg.Go(func() {
		videos = m.videos(ctx, tmdb.TVVideosPath, id)
	})
	wg.Wait()

	if detailsErr != nil {
		return TVDetail{}, fmt.Errorf("failed to get tv series %d: %w", id, detailsErr)
	}

	var cast []tmdb.CastMember
	if details.Credits != nil {
		cast = details.Credits.Cast
	}
	var recs []tmdb.RawMedia
	if details.Recommendations != nil {
		recs = details.Recommendations.Results
	}

	return TVDetail{
		Record:           media.NormalizeOne(details.RawMedia, media.KindTV, m.imageBase),
		Genres:           nonNil(details.Genres),
		Seasons:          airedSeasons(details.Seasons),
		NumberOfSeasons:  details.NumberOfSeasons,
		NumberOfEpisodes: details.NumberOfEpisodes,
		Cast:             nonNil(cast),
		Trailer:          m.trailer(ctx, videos),
		Recommendations:  m.recommendations(recs, media.KindTV),
	}, nil
}

// MovieVideos returns TMDB's raw video list for a movie.
func (m MediaManager) MovieVideos(ctx context.Context, id int) (json.RawMessage, error) {
	path, err := tmdb.MovieVideosPath(id)
	if err != nil {
		return nil, err
	}

	b, err := m.tmdb.Fetch(ctx, path, nil, tmdb.FreshDetail)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos for movie %d: %w", id, err)
	}
	return json.RawMessage(b), nil
}

// Season returns TMDB's raw season detail.
func (m MediaManager) Season(ctx context.Context, id, season int) (json.RawMessage, error) {
	path, err := tmdb.SeasonPath(id, season)
	if err != nil {
		return nil, err
	}

	b, err := m.tmdb.Fetch(ctx, path, nil, tmdb.FreshDetail)
	if err != nil {
		return nil, fmt.Errorf("failed to get season %d of tv series %d: %w", season, id, err)
	}
	return json.RawMessage(b), nil
}

func (m MediaManager) videos(ctx context.Context, pathFor func(int) (string, error), id int) tmdb.VideoList {
	path, err := pathFor(id)
	if err == nil {
		var videos tmdb.VideoList
		videos, err = fetch(ctx, m.tmdb, path, nil, tmdb.FreshDetail, tmdb.DecodeVideos)
		if err == nil {
			return videos
		}
	}

	logger.FromCtx(ctx, "tmdb_id", id).Warnw("failed to fetch videos", "error", err)
	return tmdb.VideoList{}
}

// trailer is the embed URL of the first YouTube trailer, or null when there
// is none or it is not allowed to be framed.
func (m MediaManager) trailer(ctx context.Context, videos tmdb.VideoList) nullable.Nullable[string] {
	video, ok := videos.Trailer()
	if !ok {
		return nullable.NewNullNullable[string]()
	}

	link := player.YouTubeEmbedURL(video.Key)
	if err := m.linker.Guard().Check(link); err != nil {
		logger.FromCtx(ctx).Warnw("dropping trailer", "error", err)
		return nullable.NewNullNullable[string]()
	}
	return nullable.NewNullableWithValue(link)
}

func (m MediaManager) recommendations(raw []tmdb.RawMedia, kind media.Kind) []media.Record {
	records := m.normalize(raw, kind)
	if len(records) > MaxRecommendations {
		records = records[:MaxRecommendations]
	}
	return records
}

// airedSeasons drops specials (season 0) and orders the newest season first.
func airedSeasons(seasons []tmdb.Season) []tmdb.Season {
	aired := make([]tmdb.Season, 0, len(seasons))
	for _, s := range seasons {
		if s.SeasonNumber > 0 {
			aired = append(aired, s)
		}
	}
	slices.SortStableFunc(aired, func(a, b tmdb.Season) int {
		return cmp.Compare(b.SeasonNumber, a.SeasonNumber)
	})
	return aired
}

func fetch[T any](ctx context.Context, c TMDBClientInterface, path string, params url.Values, freshness time.Duration, decode func([]byte) (T, error)) (T, error) {
	var zero T
	b, err := c.Fetch(ctx, path, params, freshness)
	if err != nil {
		return zero, err
	}
	return decode(b)
}

func nullableFrom[T any](p *T) nullable.Nullable[T] {
	if p == nil {
		return nullable.NewNullNullable[T]()
	}
	return nullable.NewNullableWithValue(*p)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
