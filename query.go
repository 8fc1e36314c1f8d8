package gelbooru

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	// MaxLimit is the largest page the provider serves per request.
	MaxLimit = 100

	// DefaultLimit is used when no positive limit is given.
	DefaultLimit = MaxLimit
)

type SearchOptions struct {
	Tags        []string
	ExcludeTags []string

	// Limit is clamped to MaxLimit; zero or negative means DefaultLimit.
	Limit int
}

type TagListOptions struct {
	// Selector filters the list by name; nil lists all tags.
	Selector TagSelector

	Limit     int
	SortBy    SortField
	SortOrder SortOrder
}

// TagSelector chooses which tags a tag list returns. Build one with ByName,
// ByNames, ByPattern or SelectTags.
type TagSelector interface {
	apply(q url.Values)

	// single reports whether the caller asked for one literal name, in which
	// case only the first record is returned.
	single() bool
}

type (
	byName    string
	byNames   []string
	byPattern string
)

func (s byName) apply(q url.Values)    { q.Set("name", string(s)) }
func (s byNames) apply(q url.Values)   { q.Set("names", strings.Join(s, " ")) }
func (s byPattern) apply(q url.Values) { q.Set("name_pattern", string(s)) }

func (byName) single() bool    { return true }
func (byNames) single() bool   { return false }
func (byPattern) single() bool { return false }

// ByName selects a single tag by its literal name.
func ByName(name string) TagSelector {
	name = NormalizeTag(name)
	if name == "" {
		return nil
	}
	return byName(name)
}

// ByNames selects every tag in names.
func ByNames(names ...string) TagSelector {
	names = NormalizeTags(names)
	if len(names) == 0 {
		return nil
	}
	return byNames(names)
}

// ByPattern selects tags whose name contains pattern (a LIKE search, so
// "choolgirl" acts as "*choolgirl*").
func ByPattern(pattern string) TagSelector {
	pattern = NormalizeTag(pattern)
	if pattern == "" {
		return nil
	}
	return byPattern(pattern)
}

// SelectTags resolves the name, names and pattern inputs into one selector.
// A single name is a literal lookup, several names a names lookup, and names
// always win over a pattern.
func SelectTags(names []string, pattern string) TagSelector {
	names = NormalizeTags(names)
	switch {
	case len(names) == 1:
		return byName(names[0])
	case len(names) > 1:
		return byNames(names)
	default:
		return ByPattern(pattern)
	}
}

// NormalizeTag trims and lowercases a tag and replaces spaces with underscores.
func NormalizeTag(tag string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(tag)), " ", "_")
}

// NormalizeTags normalizes every tag and drops the ones that end up empty.
func NormalizeTags(tags []string) []string {
	normalized := lo.Map(tags, func(t string, _ int) string {
		return NormalizeTag(t)
	})
	return lo.Filter(normalized, func(t string, _ int) bool {
		return t != ""
	})
}

// NormalizeExcludeTag normalizes a tag and prefixes it with exactly one "-",
// however many the input already had.
func NormalizeExcludeTag(tag string) string {
	t := NormalizeTag(strings.TrimLeft(strings.TrimSpace(tag), "-"))
	t = strings.TrimLeft(t, "-")
	if t == "" {
		return ""
	}
	return "-" + t
}

func NormalizeExcludeTags(tags []string) []string {
	normalized := lo.Map(tags, func(t string, _ int) string {
		return NormalizeExcludeTag(t)
	})
	return lo.Filter(normalized, func(t string, _ int) bool {
		return t != ""
	})
}

// JoinTags builds the tags query value: included tags followed by excluded
// ones, separated by single spaces.
func JoinTags(tags, excludeTags []string) string {
	return strings.Join(append(NormalizeTags(tags), NormalizeExcludeTags(excludeTags)...), " ")
}

// ClampLimit returns the limit actually sent to the provider.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

func sortField(f SortField) SortField {
	switch f := SortField(strings.ToLower(string(f))); f {
	case SortCount, SortDate, SortName:
		return f
	default:
		return SortCount
	}
}

func sortOrder(o SortOrder) SortOrder {
	switch o := SortOrder(strings.ToUpper(string(o))); o {
	case SortAsc, SortDesc:
		return o
	default:
		return SortDesc
	}
}

// endpoint returns the parameters shared by every dapi call.
func (c *Client) endpoint(s string) url.Values {
	q := url.Values{}
	q.Set("page", "dapi")
	q.Set("s", s)
	q.Set("q", "index")
	if c.format == FormatJSON {
		q.Set("json", "1")
	}

	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	if c.userID != "" {
		q.Set("user_id", c.userID)
	}
	return q
}

func (c *Client) buildURL(q url.Values) string {
	return c.baseURL + "?" + q.Encode()
}

// PostURL returns the request url of a post lookup.
func (c *Client) PostURL(id int) string {
	q := c.endpoint("post")
	q.Set("id", strconv.Itoa(id))
	return c.buildURL(q)
}

// SearchURL returns the request url of a post search.
func (c *Client) SearchURL(opts SearchOptions) string {
	q := c.endpoint("post")
	q.Set("limit", strconv.Itoa(ClampLimit(opts.Limit)))
	if tags := JoinTags(opts.Tags, opts.ExcludeTags); tags != "" {
		q.Set("tags", tags)
	}
	return c.buildURL(q)
}

// TagListURL returns the request url of a tag list.
func (c *Client) TagListURL(opts TagListOptions) string {
	q := c.endpoint("tag")
	q.Set("limit", strconv.Itoa(ClampLimit(opts.Limit)))
	if opts.Selector != nil {
		opts.Selector.apply(q)
	}
	q.Set("orderby", string(sortField(opts.SortBy)))
	q.Set("order", string(sortOrder(opts.SortOrder)))
	return c.buildURL(q)
}
