package gelbooru

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameFromURL(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"https://example.com/images/abc123.jpg":       "abc123.jpg",
		"https://example.com/images/ab/cd/b.png?x=1":  "b.png",
		"https://example.com/":                        "",
		"https://example.com":                         "",
		"":                                            "",
		"/images/relative.gif":                        "relative.gif",
		"https://example.com/images/with%20space.jpg": "with space.jpg",
	} {
		assert.Equal(t, want, filenameFromURL(in), "url %q", in)
	}
}

func TestSplitTags(t *testing.T) {
	t.Parallel()

	empty := splitTags("")
	assert.NotNil(t, empty)
	assert.Empty(t, empty, "an empty tag string has no tags")

	assert.Equal(t, []string{"cat", "solo"}, splitTags(" cat  solo "))
}

func TestRatingNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RatingExplicit, Rating("e").Normalize())
	assert.Equal(t, RatingQuestionable, Rating("q").Normalize())
	assert.Equal(t, RatingSensitive, Rating("S").Normalize())
	assert.Equal(t, RatingGeneral, Rating("General").Normalize())
	assert.Equal(t, Rating("unknown"), Rating("Unknown").Normalize())
}

func TestTagTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "artist", TagTypeArtist.String())
	assert.Equal(t, "character", TagTypeCharacter.String())
	assert.Equal(t, "unknown", TagType(2).String())
}

func TestImageHasTag(t *testing.T) {
	t.Parallel()

	img := Image{Tags: []string{"cat_ears", "solo"}}
	assert.True(t, img.HasTag("Cat Ears"))
	assert.False(t, img.HasTag("dog"))
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	created, err := Image{CreatedAt: "Sun Jun 30 00:39:42 -0500 2024"}.CreatedTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 30, 5, 39, 42, 0, time.UTC), created.UTC())

	changed, err := Image{Change: "1719725982"}.ChangedTime()
	require.NoError(t, err)
	assert.Equal(t, int64(1719725982), changed.Unix())

	_, err = ParseTime("yesterday")
	var parseErr *ParseTimeError
	assert.True(t, errors.As(err, &parseErr))
}
