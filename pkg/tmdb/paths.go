package tmdb

import (
	"fmt"

	"github.com/oapi-codegen/runtime"
)

// MediaType is the path segment TMDB uses to tell movies and shows apart.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

func SearchPath(t MediaType) string {
	return "/search/" + string(t)
}

func DiscoverPath(t MediaType) string {
	return "/discover/" + string(t)
}

func GenreListPath(t MediaType) string {
	return "/genre/" + string(t) + "/list"
}

func PopularPath(t MediaType) string {
	return "/" + string(t) + "/popular"
}

func MoviePath(id int) (string, error) {
	p, err := pathParam("movie_id", id)
	if err != nil {
		return "", err
	}
	return "/movie/" + p, nil
}

func MovieVideosPath(id int) (string, error) {
	p, err := MoviePath(id)
	if err != nil {
		return "", err
	}
	return p + "/videos", nil
}

func MovieRecommendationsPath(id int) (string, error) {
	p, err := MoviePath(id)
	if err != nil {
		return "", err
	}
	return p + "/recommendations", nil
}

func TVPath(id int) (string, error) {
	p, err := pathParam("series_id", id)
	if err != nil {
		return "", err
	}
	return "/tv/" + p, nil
}

func TVVideosPath(id int) (string, error) {
	p, err := TVPath(id)
	if err != nil {
		return "", err
	}
	return p + "/videos", nil
}

func SeasonPath(id, season int) (string, error) {
	p, err := TVPath(id)
	if err != nil {
		return "", err
	}

	s, err := pathParam("season_number", season)
	if err != nil {
		return "", err
	}
	return p + "/season/" + s, nil
}

func pathParam(name string, value int) (string, error) {
	if value < 0 {
		return "", fmt.Errorf("invalid %s: %d", name, value)
	}

	p, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", name, err)
	}
	return p, nil
}
