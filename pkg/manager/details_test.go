package manager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/kasuboski/marquee/pkg/player"
	"github.com/kasuboski/marquee/pkg/tmdb"
	tmdbMocks "github.com/kasuboski/marquee/pkg/tmdb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const movieJSON = `{"id":603,"title":"The Matrix","poster_path":"/m.jpg","release_date":"1999-03-31","vote_average":8.2,"overview":"Neo.","genres":[{"id":28,"name":"Action"}],"runtime":136,"tagline":"Free your mind.","status":"Released"}`

const videosJSON = `{"id":603,"results":[{"key":"abc","site":"Vimeo","type":"Trailer"},{"key":"m8e-FF8MsqU","site":"YouTube","type":"Teaser"},{"key":"vKQi3bBA1y8","site":"YouTube","type":"Trailer"}]}`

func recommendationsJSON(n int) []byte {
	results := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		results = append(results, fmt.Sprintf(`{"id":%d,"title":"Rec %d"}`, 1000+i, i))
	}
	return []byte(fmt.Sprintf(`{"page":1,"total_pages":1,"total_results":%d,"results":[%s]}`, n, strings.Join(results, ",")))
}

func TestMediaManager_MovieDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("detail with trailer and recommendations", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := tmdbMocks.NewMockClientInterface(ctrl)
		client.EXPECT().Fetch(gomock.Any(), "/movie/603", gomock.Any(), tmdb.FreshDetail).Return([]byte(movieJSON), nil)
		client.EXPECT().Fetch(gomock.Any(), "/movie/603/videos", gomock.Any(), tmdb.FreshDetail).Return([]byte(videosJSON), nil)
		client.EXPECT().Fetch(gomock.Any(), "/movie/603/recommendations", gomock.Any(), tmdb.FreshDetail).Return(recommendationsJSON(10), nil)

		m := newManager(t, client)
		got, err := m.MovieDetails(ctx, 603)
		require.NoError(t, err)

		assert.Equal(t, "The Matrix", got.Title)
		assert.Equal(t, imageBase+"/m.jpg", got.PosterURL.MustGet())
		assert.Equal(t, "1999-03-31", got.PrimaryDate.MustGet())
		assert.Equal(t, 136, got.Runtime.MustGet())
		assert.Equal(t, "Free your mind.", got.Tagline.MustGet())
		assert.Equal(t, []tmdb.Genre{{ID: 28, Name: "Action"}}, got.Genres)
		assert.Equal(t, "https://www.youtube.com/embed/vKQi3bBA1y8", got.Trailer.MustGet())
		require.Len(t, got.Recommendations, MaxRecommendations)
		assert.Equal(t, 1001, got.Recommendations[0].ID)
	})

	t.Run("videos and recommendations degrade", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := tmdbMocks.NewMockClientInterface(ctrl)
		client.EXPECT().Fetch(gomock.Any(), "/movie/603", gomock.Any(), gomock.Any()).Return([]byte(movieJSON), nil)
		client.EXPECT().Fetch(gomock.Any(), "/movie/603/videos", gomock.Any(), gomock.Any()).Return(nil, &tmdb.UpstreamError{Status: 500})
		client.EXPECT().Fetch(gomock.Any(), "/movie/603/recommendations", gomock.Any(), gomock.Any()).Return(nil, &tmdb.UpstreamError{Status: 500})

		m := newManager(t, client)
		got, err := m.MovieDetails(ctx, 603)
		require.NoError(t, err)

		assert.True(t, got.Trailer.IsNull())
		assert.Empty(t, got.Recommendations)

		b, err := json.Marshal(got)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"trailer":null`)
		assert.Contains(t, string(b), `"recommendations":[]`)
	})

	t.Run("detail failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := tmdbMocks.NewMockClientInterface(ctrl)
		client.EXPECT().Fetch(gomock.Any(), "/movie/1", gomock.Any(), gomock.Any()).Return(nil, &tmdb.UpstreamError{Status: 404, Message: "not found"})
		client.EXPECT().Fetch(gomock.Any(), "/movie/1/videos", gomock.Any(), gomock.Any()).Return([]byte(`{"results":[]}`), nil)
		client.EXPECT().Fetch(gomock.Any(), "/movie/1/recommendations", gomock.Any(), gomock.Any()).Return(recommendationsJSON(0), nil)

		m := newManager(t, client)
		_, err := m.MovieDetails(ctx, 1)

		var uerr *tmdb.UpstreamError
		require.True(t, errors.As(err, &uerr))
		assert.Equal(t, 404, uerr.Status)
	})

	t.Run("trailer outside the allow-list is dropped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := tmdbMocks.NewMockClientInterface(ctrl)
		client.EXPECT().Fetch(gomock.Any(), "/movie/603", gomock.Any(), gomock.Any()).Return([]byte(movieJSON), nil)
		client.EXPECT().Fetch(gomock.Any(), "/movie/603/videos", gomock.Any(), gomock.Any()).Return([]byte(videosJSON), nil)
		client.EXPECT().Fetch(gomock.Any(), "/movie/603/recommendations", gomock.Any(), gomock.Any()).Return(recommendationsJSON(1), nil)

		linker, err := player.NewLinker("", player.DefaultOptions(), player.NewGuard("vidlink.pro"))
		require.NoError(t, err)
		m := New(client, imageBase, linker)

		got, err := m.MovieDetails(ctx, 603)
		require.NoError(t, err)
		assert.True(t, got.Trailer.IsNull())
	})

	t.Run("negative id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := tmdbMocks.NewMockClientInterface(ctrl)
		client.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		m := newManager(t, client)
		_, err := m.MovieDetails(ctx, -1)
		assert.Error(t, err)
	})
}

func TestMediaManager_TVDetails(t *testing.T) {
	ctx := context.Background()

	tvJSON := `{
		"id": 1399,
		"name": "Game of Thrones",
		"first_air_date": "2011-04-17",
		"genres": [{"id": 18, "name": "Drama"}],
		"number_of_seasons": 3,
		"number_of_episodes": 30,
		"seasons": [
			{"id": 1, "name": "Specials", "season_number": 0},
			{"id": 2, "name": "Season 1", "season_number": 1},
			{"id": 4, "name": "Season 3", "season_number": 3},
			{"id": 3, "name": "Season 2", "season_number": 2}
		],
		"credits": {"cast": [{"id": 22970, "name": "Peter Dinklage", "character": "Tyrion Lannister"}]},
		"recommendations": {"page": 1, "results": [{"id": 1402, "name": "The Walking Dead"}]}
	}`

	t.Run("seasons newest first without specials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := tmdbMocks.NewMockClientInterface(ctrl)
		client.EXPECT().Fetch(gomock.Any(), "/tv/1399", gomock.Any(), tmdb.FreshDetail).
			DoAndReturn(func(_ context.Context, _ string, params url.Values, _ time.Duration) ([]byte, error) {
				assert.Equal(t, "credits,recommendations", params.Get("append_to_response"))
				return []byte(tvJSON), nil
			})
		client.EXPECT().Fetch(gomock.Any(), "/tv/1399/videos", gomock.Any(), tmdb.FreshDetail).
			Return([]byte(`{"results":[{"key":"bjqEWgDVPe0","site":"YouTube","type":"Trailer"}]}`), nil)

		m := newManager(t, client)
		got, err := m.TVDetails(ctx, 1399)
		require.NoError(t, err)

		assert.Equal(t, "Game of Thrones", got.Title)
		assert.Equal(t, "2011-04-17", got.PrimaryDate.MustGet())
		require.Len(t, got.Seasons, 3)
		assert.Equal(t, []int{3, 2, 1}, []int{got.Seasons[0].SeasonNumber, got.Seasons[1].SeasonNumber, got.Seasons[2].SeasonNumber})
		require.Len(t, got.Cast, 1)
		assert.Equal(t, "Peter Dinklage", got.Cast[0].Name)
		require.Len(t, got.Recommendations, 1)
		assert.Equal(t, "The Walking Dead", got.Recommendations[0].Title)
		assert.Equal(t, "https://www.youtube.com/embed/bjqEWgDVPe0", got.Trailer.MustGet())
	})

	t.Run("detail failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := tmdbMocks.NewMockClientInterface(ctrl)
		client.EXPECT().Fetch(gomock.Any(), "/tv/1", gomock.Any(), gomock.Any()).Return(nil, &tmdb.UpstreamError{Status: 404})
		client.EXPECT().Fetch(gomock.Any(), "/tv/1/videos", gomock.Any(), gomock.Any()).Return(nil, &tmdb.UpstreamError{Status: 404})

		m := newManager(t, client)
		_, err := m.TVDetails(ctx, 1)
		assert.Error(t, err)
	})
}

func TestMediaManager_RawPassThrough(t *testing.T) {
	ctx := context.Background()

	t.Run("movie videos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := tmdbMocks.NewMockClientInterface(ctrl)
		client.EXPECT().Fetch(gomock.Any(), "/movie/603/videos", gomock.Any(), tmdb.FreshDetail).Return([]byte(videosJSON), nil)

		m := newManager(t, client)
		got, err := m.MovieVideos(ctx, 603)
		require.NoError(t, err)
		assert.JSONEq(t, videosJSON, string(got))
	})

	t.Run("season", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := tmdbMocks.NewMockClientInterface(ctrl)
		client.EXPECT().Fetch(gomock.Any(), "/tv/1399/season/2", gomock.Any(), tmdb.FreshDetail).Return([]byte(`{"season_number":2}`), nil)

		m := newManager(t, client)
		got, err := m.Season(ctx, 1399, 2)
		require.NoError(t, err)
		assert.JSONEq(t, `{"season_number":2}`, string(got))
	})

	t.Run("season failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := tmdbMocks.NewMockClientInterface(ctrl)
		client.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, &tmdb.UpstreamError{Status: 404})

		m := newManager(t, client)
		_, err := m.Season(ctx, 1399, 99)
		assert.Error(t, err)
	})
}
