package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	gelbooru "github.com/dictor/gelbooru-client"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func (a *app) printImages(w io.Writer, images []gelbooru.Image) error {
	return a.print(w, images, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tRATING\tSIZE\tFILE\tTAGS")
		for _, img := range images {
			fmt.Fprintf(tw, "%d\t%s\t%dx%d\t%s\t%s\n",
				img.ID, img.Rating.Normalize(), img.Width, img.Height, img.FileURL, strings.Join(img.Tags, " "))
		}
	})
}

func (a *app) printTags(w io.Writer, tags []gelbooru.Tag) error {
	return a.print(w, tags, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tNAME\tCOUNT\tTYPE\tAMBIGUOUS")
		for _, t := range tags {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%t\n", t.ID, t.Name, t.Count, t.Type, t.Ambiguous)
		}
	})
}

func (a *app) print(w io.Writer, v any, text func(*tabwriter.Writer)) error {
	switch a.cfg.output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		text(tw)
		return tw.Flush()
	}
}
