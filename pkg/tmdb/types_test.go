package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePage(t *testing.T) {
	t.Run("movie and tv fields", func(t *testing.T) {
		b := []byte(`{"page":2,"total_pages":9,"total_results":170,"results":[
			{"id":603,"title":"The Matrix","release_date":"1999-03-30","vote_average":8.2,"poster_path":"/p.jpg"},
			{"id":1399,"name":"Game of Thrones","first_air_date":"2011-04-17","backdrop_path":null}
		]}`)

		page, err := DecodePage(b)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 9, page.TotalPages)
		assert.Equal(t, 170, page.TotalResults)
		require.Len(t, page.Results, 2)

		assert.Equal(t, "The Matrix", *page.Results[0].Title)
		assert.Nil(t, page.Results[0].Name)
		assert.Equal(t, "Game of Thrones", *page.Results[1].Name)
		assert.Nil(t, page.Results[1].BackdropPath)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := DecodePage([]byte(`{"results":`))
		assert.ErrorContains(t, err, "failed to decode tmdb page")
	})
}

func TestDecodeTVDetails(t *testing.T) {
	b := []byte(`{"id":1399,"name":"Game of Thrones","number_of_seasons":8,
		"seasons":[{"id":1,"season_number":0,"name":"Specials"},{"id":2,"season_number":1,"name":"Season 1"}],
		"credits":{"cast":[{"id":22,"name":"Peter Dinklage","character":"Tyrion","order":0}]},
		"recommendations":{"page":1,"results":[{"id":1402,"name":"The Walking Dead"}]}}`)

	details, err := DecodeTVDetails(b)
	require.NoError(t, err)
	assert.Equal(t, 1399, details.ID)
	assert.Equal(t, "Game of Thrones", *details.Name)
	assert.Len(t, details.Seasons, 2)
	require.NotNil(t, details.Credits)
	assert.Equal(t, "Tyrion", details.Credits.Cast[0].Character)
	require.NotNil(t, details.Recommendations)
	assert.Equal(t, 1402, details.Recommendations.Results[0].ID)
}

func TestVideoList_Trailer(t *testing.T) {
	tests := []struct {
		name   string
		videos []Video
		want   string
		found  bool
	}{
		{
			name: "first youtube trailer",
			videos: []Video{
				{Key: "teaser", Site: "YouTube", Type: "Teaser"},
				{Key: "vimeo", Site: "Vimeo", Type: "Trailer"},
				{Key: "yt1", Site: "YouTube", Type: "Trailer"},
				{Key: "yt2", Site: "YouTube", Type: "Trailer"},
			},
			want:  "yt1",
			found: true,
		},
		{
			name:   "no trailer",
			videos: []Video{{Key: "clip", Site: "YouTube", Type: "Clip"}},
		},
		{
			name: "empty list",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := VideoList{Results: tt.videos}.Trailer()
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got.Key)
		})
	}
}
