package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nijaru/yt-transcript/infojson"
	"github.com/nijaru/yt-transcript/subtitles"
	"github.com/nijaru/yt-transcript/validation"
)

var defaultPriority = []string{"fr", "en", "es", "de", "it"}

type selectOptions struct {
	dir      string
	videoID  string
	lang     string
	priority []string
	ext      string
	info     bool
}

func newSelectCommand() *cobra.Command {
	opts := selectOptions{}

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Choose one subtitle track for a video and print it as plain text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Directory holding the downloaded subtitle files")
	cmd.Flags().StringVar(&opts.videoID, "id", "", "Video identifier used as the file name prefix")
	cmd.Flags().StringVar(&opts.lang, "lang", subtitles.AutoLanguage, `Language tag to select, or "auto"`)
	cmd.Flags().StringSliceVar(&opts.priority, "priority", defaultPriority, "Language order used in auto mode")
	cmd.Flags().StringVar(&opts.ext, "ext", subtitles.DefaultExt, "Subtitle file extension")
	cmd.Flags().BoolVar(&opts.info, "info", false, "Also print title and comments from <id>.info.json")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runSelect(out io.Writer, opts selectOptions) error {
	validator := validation.NewValidator()
	if err := validator.ValidateLanguage(opts.lang); err != nil {
		return err
	}

	candidates, err := subtitles.Discover(opts.dir, opts.videoID, opts.ext)
	if err != nil {
		return err
	}

	sel, ok := subtitles.Select(subtitles.Request{
		Language: strings.TrimSpace(opts.lang),
		Priority: opts.priority,
	}, candidates)

	if opts.info {
		if err := printInfo(out, filepath.Join(opts.dir, opts.videoID+".info.json")); err != nil {
			return err
		}
	}

	if !ok {
		fmt.Fprintf(out, "# no subtitles found for %s\n", opts.videoID)
		return nil
	}

	fmt.Fprintf(out, "# language=%s fallback=%t\n", sel.Language, sel.Fallback)
	if text := subtitles.Normalize(sel.Contents); text != "" {
		fmt.Fprintln(out, text)
	}
	return nil
}

func printInfo(out io.Writer, path string) error {
	info, err := infojson.ParseFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(out, "# title=%s\n", infojson.UnknownTitle)
			return nil
		}
		return err
	}

	fmt.Fprintf(out, "# title=%s\n", info.Title)
	for _, c := range info.Comments {
		fmt.Fprintf(out, "# comment %s: %s\n", c.Author, strings.ReplaceAll(c.Text, "\n", " "))
	}
	return nil
}
