package media

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kasuboski/marquee/pkg/tmdb"
)

// Kind tells movies and TV shows apart. Every switch on Kind is exhaustive,
// adding a variant means visiting each of them.
type Kind int

const (
	KindMovie Kind = iota + 1
	KindTV
)

// Kinds lists every Kind in display order, movies first.
func Kinds() []Kind {
	return []Kind{KindMovie, KindTV}
}

// ParseKind never fails: anything that is not "tv" is a movie.
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), "tv") {
		return KindTV
	}
	return KindMovie
}

func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindTV:
		return "tv"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MediaType is the TMDB path segment for k.
func (k Kind) MediaType() tmdb.MediaType {
	switch k {
	case KindMovie:
		return tmdb.MediaTypeMovie
	case KindTV:
		return tmdb.MediaTypeTV
	}
	panic(fmt.Sprintf("media: unknown kind %d", int(k)))
}

func (k Kind) MarshalJSON() ([]byte, error) {
	switch k {
	case KindMovie, KindTV:
		return json.Marshal(k.String())
	}
	return nil, fmt.Errorf("media: cannot marshal unknown kind %d", int(k))
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	switch s {
	case "movie":
		*k = KindMovie
	case "tv":
		*k = KindTV
	default:
		return fmt.Errorf("media: unknown kind %q", s)
	}
	return nil
}
