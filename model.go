package gelbooru

import (
	"net/url"
	"path"
	"strings"
)

type (
	// Image is a single post returned by the dapi post endpoint.
	Image struct {
		ID          int      `json:"id" yaml:"id"`
		CreatorID   int      `json:"creator_id" yaml:"creator_id"`
		Owner       string   `json:"owner,omitempty" yaml:"owner,omitempty"`
		CreatedAt   string   `json:"created_at" yaml:"created_at"`
		FileURL     string   `json:"file_url" yaml:"file_url"`
		Filename    string   `json:"filename" yaml:"filename"`
		PreviewURL  string   `json:"preview_url,omitempty" yaml:"preview_url,omitempty"`
		SampleURL   string   `json:"sample_url,omitempty" yaml:"sample_url,omitempty"`
		Source      string   `json:"source,omitempty" yaml:"source,omitempty"`
		Hash        string   `json:"hash" yaml:"hash"`
		Height      int      `json:"height" yaml:"height"`
		Width       int      `json:"width" yaml:"width"`
		Rating      Rating   `json:"rating" yaml:"rating"`
		Score       int      `json:"score" yaml:"score"`
		ParentID    int      `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
		Status      string   `json:"status,omitempty" yaml:"status,omitempty"`
		HasSample   bool     `json:"has_sample" yaml:"has_sample"`
		HasComments bool     `json:"has_comments" yaml:"has_comments"`
		HasNotes    bool     `json:"has_notes" yaml:"has_notes"`
		Tags        []string `json:"tags" yaml:"tags"`
		Change      string   `json:"change" yaml:"change"`
		Directory   string   `json:"directory" yaml:"directory"`
	}

	// Tag is a searchable tag and its usage count.
	Tag struct {
		ID        int     `json:"id" yaml:"id"`
		Name      string  `json:"name" yaml:"name"`
		Count     int     `json:"count" yaml:"count"`
		Type      TagType `json:"type" yaml:"type"`
		Ambiguous bool    `json:"ambiguous" yaml:"ambiguous"`
	}

	// Rating is the content rating code of a post. Older API versions return
	// single letters, newer ones return the full word.
	Rating string

	// TagType is the category a tag belongs to.
	TagType int

	// SortField selects the orderby column of a tag list.
	SortField string

	// SortOrder selects the direction of a tag list.
	SortOrder string
)

const (
	RatingGeneral      Rating = "general"
	RatingSensitive    Rating = "sensitive"
	RatingQuestionable Rating = "questionable"
	RatingExplicit     Rating = "explicit"
)

const (
	TagTypeGeneral    TagType = 0
	TagTypeArtist     TagType = 1
	TagTypeCopyright  TagType = 3
	TagTypeCharacter  TagType = 4
	TagTypeMetadata   TagType = 5
	TagTypeDeprecated TagType = 6
)

const (
	SortCount SortField = "count"
	SortDate  SortField = "date"
	SortName  SortField = "name"

	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

var legacyRatings = map[Rating]Rating{
	"g": RatingGeneral,
	"s": RatingSensitive,
	"q": RatingQuestionable,
	"e": RatingExplicit,
}

// Normalize maps legacy single letter ratings to their full names. Unknown
// values are returned lowercased.
func (r Rating) Normalize() Rating {
	l := Rating(strings.ToLower(string(r)))
	if full, ok := legacyRatings[l]; ok {
		return full
	}
	return l
}

func (t TagType) String() string {
	switch t {
	case TagTypeGeneral:
		return "general"
	case TagTypeArtist:
		return "artist"
	case TagTypeCopyright:
		return "copyright"
	case TagTypeCharacter:
		return "character"
	case TagTypeMetadata:
		return "metadata"
	case TagTypeDeprecated:
		return "deprecated"
	default:
		return "unknown"
	}
}

// String returns the file url, so an Image can be dropped straight into a message.
func (i Image) String() string {
	return i.FileURL
}

func (t Tag) String() string {
	return t.Name
}

// HasTag reports whether the post carries the given tag after normalization.
func (i Image) HasTag(tag string) bool {
	tag = NormalizeTag(tag)
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// filenameFromURL returns the last path element of a file url, or "" if the
// url is empty or has no path.
func filenameFromURL(fileURL string) string {
	if fileURL == "" {
		return ""
	}
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// splitTags splits the provider's space separated tag string. An empty string
// yields an empty slice rather than a single empty tag.
func splitTags(s string) []string {
	return append([]string{}, strings.Fields(s)...)
}
