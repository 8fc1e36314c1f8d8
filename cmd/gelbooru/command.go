package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	gelbooru "github.com/dictor/gelbooru-client"
)

// maxConcurrentLookups bounds the post lookups in flight at once.
const maxConcurrentLookups = 4

func newPostCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "post <id>...",
		Short: "Look up posts by id",
		Example: `  # Look up a single post
  gelbooru post 8542049

  # Look up several posts as JSON
  gelbooru post -o json 8542049 8542050`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.execPost,
	}
}

func newSearchCmd(a *app) *cobra.Command {
	var opts gelbooru.SearchOptions

	cmd := &cobra.Command{
		Use:   "search [tag]...",
		Short: "Search posts by tag",
		Example: `  # Latest posts tagged cat, without nsfw ones
  gelbooru search cat -x nsfw

  # Tags with spaces are normalized to underscores
  gelbooru search "cat ears" --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Tags = args
			return a.execSearch(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.ExcludeTags, "exclude", "x", nil, "tags to exclude from the results")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", gelbooru.DefaultLimit, "number of posts to return (at most 100)")

	return cmd
}

func newTagsCmd(a *app) *cobra.Command {
	var (
		pattern string
		opts    gelbooru.TagListOptions
		sortBy  string
		order   string
	)

	cmd := &cobra.Command{
		Use:   "tags [name]...",
		Short: "List tags and their usage counts",
		Long: `Lists tags ordered by usage count, date or name.

A single name is an exact lookup and prints at most one tag. Several names
list every one of them. Without names, --pattern performs a LIKE search.`,
		Example: `  # Usage count of one tag
  gelbooru tags fluffy

  # Tags containing "choolgirl", by name
  gelbooru tags -p choolgirl --sort name --order asc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Selector = gelbooru.SelectTags(args, pattern)
			opts.SortBy = gelbooru.SortField(sortBy)
			opts.SortOrder = gelbooru.SortOrder(order)
			return a.execTags(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "LIKE pattern, ignored when names are given")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", gelbooru.DefaultLimit, "number of tags to return (at most 100)")
	cmd.Flags().StringVar(&sortBy, "sort", string(gelbooru.SortCount), "sort by count, date or name")
	cmd.Flags().StringVar(&order, "order", string(gelbooru.SortDesc), "sort order: asc or desc")

	return cmd
}

/*
args = [post ids]
*/
func (a *app) execPost(cmd *cobra.Command, args []string) error {
	ids := make([]int, len(args))
	for i, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid post id %q: %w", arg, err)
		}
		ids[i] = id
	}

	found := make([]*gelbooru.Image, len(ids))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentLookups)
	for i, id := range ids {
		g.Go(func() error {
			img, err := a.client.GetPost(ctx, id)
			if errors.Is(err, gelbooru.ErrNotFound) {
				a.log.WithField("id", id).Warnf("(%d/%d) not found : %d", i+1, len(ids), id)
				return nil
			}
			if err != nil {
				a.log.WithFields(logrus.Fields{
					"error": err,
					"id":    id,
				}).Errorf("(%d/%d) error : %d", i+1, len(ids), id)
				return err
			}
			found[i] = &img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	images := make([]gelbooru.Image, 0, len(found))
	for _, img := range found {
		if img != nil {
			images = append(images, *img)
		}
	}
	a.log.Infof("%d of %d posts are found", len(images), len(ids))
	return a.printImages(cmd.OutOrStdout(), images)
}

func (a *app) execSearch(cmd *cobra.Command, opts gelbooru.SearchOptions) error {
	images, err := a.client.SearchPosts(cmd.Context(), opts)
	if err != nil {
		a.log.WithFields(logrus.Fields{
			"error": err,
			"tags":  gelbooru.JoinTags(opts.Tags, opts.ExcludeTags),
		}).Errorln("error caused during searching posts")
		return err
	}
	a.log.Infof("%d posts are found", len(images))
	return a.printImages(cmd.OutOrStdout(), images)
}

func (a *app) execTags(cmd *cobra.Command, opts gelbooru.TagListOptions) error {
	tags, err := a.client.TagList(cmd.Context(), opts)
	if err != nil {
		a.log.WithError(err).Errorln("error caused during listing tags")
		return err
	}
	a.log.Infof("%d tags are found", len(tags))
	return a.printTags(cmd.OutOrStdout(), tags)
}
