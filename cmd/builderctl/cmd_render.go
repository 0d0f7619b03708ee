package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitebuilder/internal/render"
	"sitebuilder/internal/storage"
)

var renderFlags struct {
	view   string
	format string
}

var renderCmd = &cobra.Command{
	Use:   "render <pageId>",
	Short: "Print a saved page as HTML or Markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderFlags.view, "view", "desktop", "Canvas width for html: desktop, tablet or mobile")
	f.StringVar(&renderFlags.format, "format", "html", "Output format: html or markdown")
}

func runRender(cmd *cobra.Command, args []string) error {
	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	page, err := storage.NewPageStore(db).GetPage(args[0])
	if err != nil {
		return err
	}
	elems, err := page.Elements()
	if err != nil {
		return err
	}

	var out string
	switch renderFlags.format {
	case "markdown", "md":
		out, err = render.Markdown(elems)
	case "html":
		out, err = render.RenderCanvas(render.Canvas{
			Elements: elems,
			ViewMode: render.ParseViewMode(renderFlags.view),
		})
	default:
		return fmt.Errorf("unknown format %q (want html or markdown)", renderFlags.format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
