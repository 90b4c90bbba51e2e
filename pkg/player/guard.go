package player

import (
	"net/url"
	"strings"
)

var DefaultAllowedHosts = []string{"vidlink.pro", "youtube.com"}

// Guard accepts https URLs whose host is an allowed domain or one of its subdomains.
type Guard struct {
	hosts []string
}

func NewGuard(hosts ...string) Guard {
	g := Guard{}
	for _, h := range hosts {
		h = strings.Trim(strings.ToLower(strings.TrimSpace(h)), ".")
		if h != "" {
			g.hosts = append(g.hosts, h)
		}
	}
	return g
}

// Check returns an *UnsafeEmbedError unless raw may be placed in a frame.
func (g Guard) Check(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &UnsafeEmbedError{URL: raw}
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if u.Scheme != "https" || u.User != nil || host == "" {
		return &UnsafeEmbedError{URL: raw, Host: host}
	}

	for _, allowed := range g.hosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return nil
		}
	}

	return &UnsafeEmbedError{URL: raw, Host: host}
}

// YouTubeEmbedURL is the frame URL for a YouTube video key.
func YouTubeEmbedURL(key string) string {
	return "https://www.youtube.com/embed/" + url.PathEscape(key)
}
