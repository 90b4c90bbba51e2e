package media

import (
	"encoding/json"
	"testing"

	"github.com/kasuboski/marquee/pkg/tmdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNormalizeOne(t *testing.T) {
	const base = "https://image.tmdb.org/t/p/w500"

	t.Run("movie", func(t *testing.T) {
		raw := tmdb.RawMedia{
			ID:           603,
			Title:        ptr("The Matrix"),
			PosterPath:   ptr("/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg"),
			BackdropPath: ptr("/fNG7i7RqMErkcqhohV2a6cV1Ehy.jpg"),
			ReleaseDate:  ptr("1999-03-30"),
			FirstAirDate: ptr("ignored"),
			VoteAverage:  ptr(8.2),
			Overview:     ptr("Set in the 22nd century."),
		}

		got := NormalizeOne(raw, KindMovie, base)
		assert.Equal(t, 603, got.ID)
		assert.Equal(t, KindMovie, got.Kind)
		assert.Equal(t, "The Matrix", got.Title)
		assert.Equal(t, "/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg", got.PosterPath.MustGet())
		assert.Equal(t, base+"/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg", got.PosterURL.MustGet())
		assert.Equal(t, base+"/fNG7i7RqMErkcqhohV2a6cV1Ehy.jpg", got.BackdropURL.MustGet())
		assert.Equal(t, "1999-03-30", got.PrimaryDate.MustGet())
		assert.Equal(t, 8.2, got.Rating())
		assert.Equal(t, "Set in the 22nd century.", got.Overview.MustGet())
	})

	t.Run("tv uses name and first air date", func(t *testing.T) {
		raw := tmdb.RawMedia{
			ID:           1399,
			Name:         ptr("Game of Thrones"),
			ReleaseDate:  ptr("ignored"),
			FirstAirDate: ptr("2011-04-17"),
		}

		got := NormalizeOne(raw, KindTV, base)
		assert.Equal(t, "Game of Thrones", got.Title)
		assert.Equal(t, "2011-04-17", got.Date())
		assert.True(t, got.PosterURL.IsNull())
		assert.True(t, got.VoteAverage.IsNull())
		assert.Equal(t, 0.0, got.Rating())
	})

	t.Run("title wins over name", func(t *testing.T) {
		got := NormalizeOne(tmdb.RawMedia{ID: 1, Title: ptr("Title"), Name: ptr("Name")}, KindMovie, base)
		assert.Equal(t, "Title", got.Title)
	})

	t.Run("untitled fallback", func(t *testing.T) {
		got := NormalizeOne(tmdb.RawMedia{ID: 7}, KindTV, base)
		assert.Equal(t, Untitled, got.Title)
		assert.True(t, got.PrimaryDate.IsNull())
	})

	t.Run("empty paths stay null", func(t *testing.T) {
		got := NormalizeOne(tmdb.RawMedia{ID: 7, PosterPath: ptr(""), BackdropPath: nil}, KindMovie, base)
		assert.True(t, got.PosterPath.IsNull())
		assert.True(t, got.PosterURL.IsNull())
		assert.True(t, got.BackdropURL.IsNull())
	})
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		path     *string
		wantNull bool
		want     string
	}{
		{name: "trailing slash base", base: "https://img/", path: ptr("/abc.jpg"), want: "https://img/abc.jpg"},
		{name: "bare base", base: "https://img", path: ptr("/abc.jpg"), want: "https://img/abc.jpg"},
		{name: "path without slash", base: "https://img", path: ptr("abc.jpg"), want: "https://img/abc.jpg"},
		{name: "null path", base: "https://img/", path: nil, wantNull: true},
		{name: "empty path", base: "https://img/", path: ptr(""), wantNull: true},
		{name: "no base", base: "", path: ptr("/abc.jpg"), wantNull: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImageURL(tt.base, tt.path)
			if tt.wantNull {
				assert.True(t, got.IsNull())
				return
			}
			assert.Equal(t, tt.want, got.MustGet())
		})
	}
}

func TestNormalize(t *testing.T) {
	raw := []tmdb.RawMedia{
		{ID: 1, Title: ptr("One"), PosterPath: ptr("/1.jpg"), VoteAverage: ptr(7.5)},
		{ID: 2, Name: ptr("Two")},
		{ID: 3},
	}

	t.Run("idempotent", func(t *testing.T) {
		first, err := json.Marshal(Normalize(raw, KindMovie, "https://img/"))
		require.NoError(t, err)

		second, err := json.Marshal(Normalize(raw, KindMovie, "https://img/"))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("explicit nulls on the wire", func(t *testing.T) {
		b, err := json.Marshal(Normalize(raw[1:2], KindTV, "https://img/"))
		require.NoError(t, err)

		assert.JSONEq(t, `[{
			"id": 2,
			"media_type": "tv",
			"title": "Two",
			"poster_path": null,
			"poster_url": null,
			"backdrop_path": null,
			"backdrop_url": null,
			"primary_date": null,
			"vote_average": null,
			"overview": null
		}]`, string(b))
	})

	t.Run("empty input", func(t *testing.T) {
		got := Normalize(nil, KindMovie, "https://img/")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestUsable(t *testing.T) {
	tests := []struct {
		name string
		raw  tmdb.RawMedia
		want bool
	}{
		{name: "id only", raw: tmdb.RawMedia{ID: 5}, want: true},
		{name: "title only", raw: tmdb.RawMedia{Title: ptr("Orphan")}, want: true},
		{name: "name only", raw: tmdb.RawMedia{Name: ptr("Orphan")}, want: true},
		{name: "nothing", raw: tmdb.RawMedia{Overview: ptr("no identity")}, want: false},
		{name: "empty strings", raw: tmdb.RawMedia{Title: ptr(""), Name: ptr("")}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Usable(tt.raw))
		})
	}
}
