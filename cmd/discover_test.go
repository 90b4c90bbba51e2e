package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kasuboski/marquee/config"
	"github.com/kasuboski/marquee/pkg/media"
	"github.com/kasuboski/marquee/pkg/player"
	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
)

func TestHumanDate(t *testing.T) {
	assert.Equal(t, "TBA", humanDate(""))
	assert.Equal(t, "sometime", humanDate("sometime"))
	assert.True(t, strings.HasPrefix(humanDate("1999-03-31"), "1999-03-31 ("))
	assert.True(t, strings.HasSuffix(humanDate("1999-03-31"), "ago)"))
}

func TestPrintRecords(t *testing.T) {
	var out bytes.Buffer
	printRecords(&out, []media.Record{
		{ID: 603, Title: "The Matrix", PrimaryDate: nullable.NewNullableWithValue("1999-03-31"), VoteAverage: nullable.NewNullableWithValue(8.2)},
		{ID: 1, Title: "Unrated", PrimaryDate: nullable.NewNullNullable[string](), VoteAverage: nullable.NewNullNullable[float64]()},
	})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[1], "The Matrix")
	assert.Contains(t, lines[1], "8.2")
	assert.Contains(t, lines[2], "TBA")
	assert.True(t, strings.HasSuffix(lines[2], "-"))
}

func TestEmbedOptions(t *testing.T) {
	got := embedOptions(config.EmbedOptions{
		PrimaryColor: "63b8bc",
		IconColor:    "ffffff",
		Autoplay:     true,
		Title:        true,
	})

	assert.Equal(t, player.Options{
		PrimaryColor: "63b8bc",
		IconColor:    "ffffff",
		Autoplay:     true,
		Title:        true,
	}, got)
}
