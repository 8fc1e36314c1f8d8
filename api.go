package gelbooru

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// GetPost looks up a single post by id. It returns an error wrapping
// ErrNotFound if the board has no such post.
func (c *Client) GetPost(ctx context.Context, id int) (Image, error) {
	body, err := c.request(ctx, "getPost", c.PostURL(id))
	if err != nil {
		return Image{}, err
	}

	recs, err := records(body, "post")
	if err != nil {
		return Image{}, fmt.Errorf("get post %d: %w", id, err)
	}
	if len(recs) == 0 {
		return Image{}, fmt.Errorf("%w: post %d", ErrNotFound, id)
	}
	return newImage(fieldsOf(recs[0])), nil
}

// SearchPosts returns up to opts.Limit posts matching the given tags. No match
// is an empty slice.
func (c *Client) SearchPosts(ctx context.Context, opts SearchOptions) ([]Image, error) {
	body, err := c.request(ctx, "searchPosts", c.SearchURL(opts))
	if err != nil {
		return nil, err
	}

	recs, err := records(body, "post")
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	images := lo.Map(recs, func(r gjson.Result, _ int) Image {
		return newImage(fieldsOf(r))
	})
	c.log.WithFields(logrus.Fields{
		"tags":  JoinTags(opts.Tags, opts.ExcludeTags),
		"count": len(images),
	}).Debugln("posts searched")
	return images, nil
}

// TagList returns tags ordered by opts.SortBy. When the selector is a single
// literal name (ByName) at most the first match is returned.
func (c *Client) TagList(ctx context.Context, opts TagListOptions) ([]Tag, error) {
	body, err := c.request(ctx, "tagList", c.TagListURL(opts))
	if err != nil {
		return nil, err
	}

	recs, err := records(body, "tag")
	if err != nil {
		return nil, fmt.Errorf("tag list: %w", err)
	}
	tags := lo.Map(recs, func(r gjson.Result, _ int) Tag {
		return newTag(fieldsOf(r))
	})
	if opts.Selector != nil && opts.Selector.single() && len(tags) > 1 {
		tags = tags[:1]
	}
	return tags, nil
}

// GetTag looks up one tag by its literal name.
func (c *Client) GetTag(ctx context.Context, name string) (Tag, error) {
	sel := ByName(name)
	if sel == nil {
		return Tag{}, fmt.Errorf("%w: empty tag name", ErrNotFound)
	}

	tags, err := c.TagList(ctx, TagListOptions{Selector: sel, Limit: 1})
	if err != nil {
		return Tag{}, err
	}
	if len(tags) == 0 {
		return Tag{}, fmt.Errorf("%w: tag %q", ErrNotFound, NormalizeTag(name))
	}
	return tags[0], nil
}
