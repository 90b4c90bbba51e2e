package player

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const DefaultBaseURL = "https://vidlink.pro"

// Options are the display customizations sent to the embed provider.
type Options struct {
	PrimaryColor   string
	SecondaryColor string
	IconColor      string
	Icons          string
	Title          bool
	Poster         bool
	Autoplay       bool
	NextButton     bool
}

func DefaultOptions() Options {
	return Options{
		PrimaryColor:   "63b8bc",
		SecondaryColor: "a2a2a2",
		IconColor:      "eefdec",
		Icons:          "default",
		Title:          true,
		Poster:         true,
		Autoplay:       false,
		NextButton:     true,
	}
}

// Values encodes the options with the provider's parameter names. Empty
// strings are left out.
func (o Options) Values() url.Values {
	v := url.Values{}
	setNonEmpty := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}

	setNonEmpty("primaryColor", o.PrimaryColor)
	setNonEmpty("secondaryColor", o.SecondaryColor)
	setNonEmpty("iconColor", o.IconColor)
	setNonEmpty("icons", o.Icons)
	v.Set("title", strconv.FormatBool(o.Title))
	v.Set("poster", strconv.FormatBool(o.Poster))
	v.Set("autoplay", strconv.FormatBool(o.Autoplay))
	v.Set("nextbutton", strconv.FormatBool(o.NextButton))
	return v
}

type Type int

const (
	TypeMovie Type = iota + 1
	TypeTV
	TypeAnime
)

// ParseType accepts movie, tv and anime.
func ParseType(s string) (Type, bool) {
	switch s {
	case "movie":
		return TypeMovie, true
	case "tv":
		return TypeTV, true
	case "anime":
		return TypeAnime, true
	}
	return 0, false
}

func (t Type) String() string {
	switch t {
	case TypeMovie:
		return "movie"
	case TypeTV:
		return "tv"
	case TypeAnime:
		return "anime"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Request carries the raw query parameters of a play link.
type Request struct {
	Type     string `validate:"required,oneof=movie tv anime"`
	TMDBID   string `validate:"omitempty,number"`
	MALID    string `validate:"omitempty,number"`
	Season   string `validate:"omitempty,number"`
	Episode  string `validate:"omitempty,number"`
	Number   string `validate:"omitempty,number"`
	SubOrDub string `validate:"omitempty,oneof=sub dub"`
}

// RequestFromQuery reads a Request from URL query values.
func RequestFromQuery(q url.Values) Request {
	return Request{
		Type:     q.Get("type"),
		TMDBID:   q.Get("tmdbId"),
		MALID:    q.Get("malId"),
		Season:   q.Get("season"),
		Episode:  q.Get("episode"),
		Number:   q.Get("number"),
		SubOrDub: q.Get("subOrDub"),
	}
}

var validate = validator.New()

// Linker builds play links into the embed provider.
type Linker struct {
	base    *url.URL
	options url.Values
	guard   Guard
}

// NewLinker creates a Linker for baseURL.
func NewLinker(baseURL string, options Options, guard Guard) (*Linker, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid embed url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid embed url %q: scheme and host are required", baseURL)
	}

	return &Linker{base: base, options: options.Values(), guard: guard}, nil
}

// Guard is the allow-list every built link is checked against.
func (l *Linker) Guard() Guard {
	return l.guard
}

// Build returns the play URL for req. It fails with *ValidationError when the
// fields req.Type needs are missing and with *UnsafeEmbedError when the
// result leaves the allow-list.
func (l *Linker) Build(req Request) (string, error) {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return "", &ValidationError{Field: verrs[0].Field(), Reason: "failed " + verrs[0].Tag()}
		}
		return "", &ValidationError{Field: "request", Reason: err.Error()}
	}

	segments, err := segmentsFor(req)
	if err != nil {
		return "", err
	}

	u := *l.base
	u.Path = strings.TrimSuffix(l.base.Path, "/") + "/" + strings.Join(segments, "/")
	u.RawPath = ""
	u.RawQuery = l.options.Encode()
	u.Fragment = ""

	link := u.String()
	if err := l.guard.Check(link); err != nil {
		return "", err
	}
	return link, nil
}

type field struct {
	name  string
	value string
}

func segmentsFor(req Request) ([]string, error) {
	t, ok := ParseType(req.Type)
	if !ok {
		return nil, &ValidationError{Field: "Type", Reason: "is unknown"}
	}

	switch t {
	case TypeMovie:
		if err := requireFields(field{"TMDBID", req.TMDBID}); err != nil {
			return nil, err
		}
		return []string{"movie", req.TMDBID}, nil
	case TypeTV:
		if err := requireFields(field{"TMDBID", req.TMDBID}, field{"Season", req.Season}, field{"Episode", req.Episode}); err != nil {
			return nil, err
		}
		return []string{"tv", req.TMDBID, req.Season, req.Episode}, nil
	case TypeAnime:
		if err := requireFields(field{"MALID", req.MALID}, field{"Number", req.Number}, field{"SubOrDub", req.SubOrDub}); err != nil {
			return nil, err
		}
		return []string{"anime", req.MALID, req.Number, req.SubOrDub}, nil
	}

	return nil, &ValidationError{Field: "Type", Reason: "is unknown"}
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return &ValidationError{Field: f.name, Reason: "is required"}
		}
	}
	return nil
}
