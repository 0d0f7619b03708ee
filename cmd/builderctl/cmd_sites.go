package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitebuilder/internal/storage"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List sites and their pages",
	RunE:  runSites,
}

func runSites(cmd *cobra.Command, _ []string) error {
	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sites, err := storage.NewSiteStore(db).ListSites()
	if err != nil {
		return err
	}
	pages := storage.NewPageStore(db)
	out := cmd.OutOrStdout()
	if len(sites) == 0 {
		fmt.Fprintln(out, "No sites yet.")
		return nil
	}
	for _, s := range sites {
		fmt.Fprintf(out, "%s  %s (%s)\n", s.ID, s.Name, s.Subdomain)
		list, err := pages.ListPages(s.ID)
		if err != nil {
			return err
		}
		for _, p := range list {
			fmt.Fprintf(out, "  %s  %s  /%s\n", p.ID, p.Name, p.Slug)
		}
	}
	return nil
}
