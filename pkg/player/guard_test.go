package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard_Check(t *testing.T) {
	g := NewGuard(" VidLink.pro ", "youtube.com.", "")

	tests := []struct {
		name string
		url  string
		safe bool
	}{
		{name: "provider", url: "https://vidlink.pro/movie/603", safe: true},
		{name: "provider subdomain", url: "https://cdn.vidlink.pro/tv/1/1/1", safe: true},
		{name: "video sharing", url: "https://www.youtube.com/embed/abc", safe: true},
		{name: "upper case host", url: "https://VIDLINK.PRO/movie/1", safe: true},
		{name: "attacker host", url: "https://evil.example.com/movie/603", safe: false},
		{name: "suffix lookalike", url: "https://evilvidlink.pro/movie/603", safe: false},
		{name: "provider as subdomain of attacker", url: "https://vidlink.pro.evil.example.com/", safe: false},
		{name: "plain http", url: "http://vidlink.pro/movie/603", safe: false},
		{name: "javascript", url: "javascript:alert(1)", safe: false},
		{name: "userinfo", url: "https://vidlink.pro@evil.example.com/", safe: false},
		{name: "relative", url: "/movie/603", safe: false},
		{name: "garbage", url: "://", safe: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Check(tt.url)
			if tt.safe {
				assert.NoError(t, err)
				return
			}

			var uerr *UnsafeEmbedError
			assert.ErrorAs(t, err, &uerr)
		})
	}
}

func TestGuard_Empty(t *testing.T) {
	assert.Error(t, NewGuard().Check("https://vidlink.pro/movie/1"))
}

func TestYouTubeEmbedURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/embed/vKQi3bBA1y8", YouTubeEmbedURL("vKQi3bBA1y8"))
	assert.NoError(t, NewGuard(DefaultAllowedHosts...).Check(YouTubeEmbedURL("a/b")))
}
