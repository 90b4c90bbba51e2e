package tmdb

import (
	"encoding/json"
	"fmt"
)

// RawMedia is a movie or show as TMDB lists it. Movies carry Title and
// ReleaseDate, shows carry Name and FirstAirDate.
type RawMedia struct {
	ID           int      `json:"id"`
	Title        *string  `json:"title,omitempty"`
	Name         *string  `json:"name,omitempty"`
	PosterPath   *string  `json:"poster_path,omitempty"`
	BackdropPath *string  `json:"backdrop_path,omitempty"`
	ReleaseDate  *string  `json:"release_date,omitempty"`
	FirstAirDate *string  `json:"first_air_date,omitempty"`
	VoteAverage  *float64 `json:"vote_average,omitempty"`
	Overview     *string  `json:"overview,omitempty"`
}

type Page struct {
	Page         int        `json:"page"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
	Results      []RawMedia `json:"results"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type GenreList struct {
	Genres []Genre `json:"genres"`
}

type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type VideoList struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// Trailer returns the first YouTube trailer in the list.
func (v VideoList) Trailer() (Video, bool) {
	for _, video := range v.Results {
		if video.Site == "YouTube" && video.Type == "Trailer" && video.Key != "" {
			return video, true
		}
	}
	return Video{}, false
}

type MovieDetails struct {
	RawMedia
	Genres  []Genre `json:"genres"`
	Runtime *int    `json:"runtime,omitempty"`
	Tagline *string `json:"tagline,omitempty"`
	Status  string  `json:"status"`
}

type Season struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	SeasonNumber int     `json:"season_number"`
	EpisodeCount int     `json:"episode_count"`
	AirDate      *string `json:"air_date,omitempty"`
	PosterPath   *string `json:"poster_path,omitempty"`
	Overview     string  `json:"overview"`
}

type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path,omitempty"`
	Order       int     `json:"order"`
}

type Credits struct {
	Cast []CastMember `json:"cast"`
}

type TVDetails struct {
	RawMedia
	Genres           []Genre  `json:"genres"`
	Seasons          []Season `json:"seasons"`
	NumberOfSeasons  int      `json:"number_of_seasons"`
	NumberOfEpisodes int      `json:"number_of_episodes"`
	Credits          *Credits `json:"credits,omitempty"`
	Recommendations  *Page    `json:"recommendations,omitempty"`
}

func DecodePage(b []byte) (Page, error) {
	return decode[Page](b, "page")
}

func DecodeGenres(b []byte) (GenreList, error) {
	return decode[GenreList](b, "genre list")
}

func DecodeVideos(b []byte) (VideoList, error) {
	return decode[VideoList](b, "video list")
}

func DecodeMovieDetails(b []byte) (MovieDetails, error) {
	return decode[MovieDetails](b, "movie details")
}

func DecodeTVDetails(b []byte) (TVDetails, error) {
	return decode[TVDetails](b, "tv details")
}

func decode[T any](b []byte, what string) (T, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("failed to decode tmdb %s: %w", what, err)
	}
	return v, nil
}
