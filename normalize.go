package gelbooru

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

/*
The provider returns a result set in several shapes, depending on the API
version and on the number of results:

	[{"id": 1, ...}, {"id": 2, ...}]                   bare array (legacy JSON)
	{"@attributes": {...}, "post": [{...}, {...}]}     mapping with a nested list
	{"@attributes": {...}, "post": {...}}              mapping with a single object
	{"posts": {"@count": "1", "post": {"@id": ...}}}   XML converted to a mapping
	{"@attributes": {"count": 0, ...}}                 no results, key is absent
	""                                                  no results, empty body

records turns every one of them into a plain sequence of records, and fields
hides the "@" prefix that XML attributes carry.
*/

// records returns the records stored under key in body. A missing key or an
// empty body is an empty result, not an error.
func records(body []byte, key string) ([]gjson.Result, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}

	root := gjson.ParseBytes(body)
	switch {
	case root.IsArray():
		return root.Array(), nil
	case root.IsObject():
		for _, p := range []string{key, key + "s." + key} {
			if v := root.Get(p); v.Exists() {
				return sequence(v), nil
			}
		}
	}
	return nil, nil
}

// sequence treats a single object as a one element sequence.
func sequence(v gjson.Result) []gjson.Result {
	switch {
	case v.IsArray():
		return v.Array()
	case v.IsObject():
		return []gjson.Result{v}
	default:
		return nil
	}
}

// fields is a record keyed by field name without the XML "@" prefix. Every
// accessor has a zero default so constructing a record never fails.
type fields map[string]gjson.Result

func fieldsOf(r gjson.Result) fields {
	f := fields{}
	r.ForEach(func(k, v gjson.Result) bool {
		f[strings.TrimPrefix(k.String(), "@")] = v
		return true
	})
	return f
}

// str returns the first present key as a string.
func (f fields) str(keys ...string) string {
	for _, key := range keys {
		v, ok := f[key]
		if !ok || v.Type == gjson.Null {
			continue
		}
		return v.String()
	}
	return ""
}

// integer accepts numbers and numeric strings; anything else is 0.
func (f fields) integer(key string) int {
	v, ok := f[key]
	if !ok {
		return 0
	}
	switch v.Type {
	case gjson.Number:
		return int(v.Int())
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.Str))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// boolean accepts JSON booleans, 0/1 and "true"/"false" strings.
func (f fields) boolean(key string) bool {
	v, ok := f[key]
	if !ok {
		return false
	}
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(v.Str)))
		return err == nil && b
	default:
		return false
	}
}

func newImage(f fields) Image {
	fileURL := f.str("file_url")
	return Image{
		ID:          f.integer("id"),
		CreatorID:   f.integer("creator_id"),
		Owner:       f.str("owner"),
		CreatedAt:   f.str("created_at"),
		FileURL:     fileURL,
		Filename:    filenameFromURL(fileURL),
		PreviewURL:  f.str("preview_url"),
		SampleURL:   f.str("sample_url"),
		Source:      strings.TrimSpace(f.str("source")),
		Hash:        f.str("hash", "md5"),
		Height:      f.integer("height"),
		Width:       f.integer("width"),
		Rating:      Rating(f.str("rating")),
		Score:       f.integer("score"),
		ParentID:    f.integer("parent_id"),
		Status:      f.str("status"),
		HasSample:   f.boolean("sample"),
		HasComments: f.boolean("has_comments"),
		HasNotes:    f.boolean("has_notes"),
		Tags:        splitTags(f.str("tags")),
		Change:      f.str("change"),
		Directory:   f.str("directory"),
	}
}

func newTag(f fields) Tag {
	return Tag{
		ID:        f.integer("id"),
		Name:      f.str("name"),
		Count:     f.integer("count"),
		Type:      TagType(f.integer("type")),
		Ambiguous: f.boolean("ambiguous"),
	}
}
