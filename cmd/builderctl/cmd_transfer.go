package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sitebuilder/internal/domain"
	"sitebuilder/internal/service"
	"sitebuilder/internal/storage"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <pageId>",
	Short: "Write a page's element tree as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var importName string

var importCmd = &cobra.Command{
	Use:   "import <siteId> <file.json>",
	Short: "Create a page from an exported element tree (- reads stdin)",
	Args:  cobra.ExactArgs(2),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	importCmd.Flags().StringVar(&importName, "name", "", "Page name (default: next \"Page N\")")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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
	data, err := json.MarshalIndent(elems, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if exportOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportOutput, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d element(s) to %s\n", len(elems), exportOutput)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if args[1] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[1])
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", args[1], err)
	}
	var elems []domain.Element
	if err := json.Unmarshal(data, &elems); err != nil {
		return fmt.Errorf("parse %s: %w", args[1], err)
	}

	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sites := service.NewSiteService(storage.NewSiteStore(db), storage.NewPageStore(db), service.NoopEmitter{})
	page, err := sites.ImportPage(cmd.Context(), args[0], importName, elems)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created page %s (%s) at /%s\n", page.ID, page.Name, page.Slug)
	return nil
}
