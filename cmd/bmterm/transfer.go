package main

import (
	"fmt"
	"os"

	"github.com/nikbrunner/bmterm/internal/exporter"
	"github.com/nikbrunner/bmterm/internal/importer"
	"github.com/nikbrunner/bmterm/internal/model"
	"github.com/nikbrunner/bmterm/internal/tree"
	"github.com/spf13/cobra"
)

func addImport(topLevel *cobra.Command, opts *rootOptions) {
	var folder string

	cmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import bookmarks from a Netscape bookmark HTML file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening file: %w", err)
			}
			defer file.Close()

			nodes, err := importer.ParseHTML(file)
			if err != nil {
				return fmt.Errorf("parsing HTML: %w", err)
			}

			stats, err := importer.Import(cmd.Context(), s.store, folder, nodes)
			if err != nil {
				return fmt.Errorf("importing: %w", err)
			}

			s.logger.Info("imported bookmarks", "file", args[0], "folder", folder,
				"bookmarks", stats.Bookmarks, "folders", stats.Folders)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bookmarks, %d folders\n", stats.Bookmarks, stats.Folders)
			return nil
		},
	}
	cmd.Flags().StringVar(&folder, "folder", model.BookmarksBarID, "id of the folder to import into")

	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export all bookmarks as Netscape bookmark HTML.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath := ""
			if len(args) == 1 {
				outputPath = args[0]
			} else {
				var err error
				outputPath, err = exporter.DefaultExportPath()
				if err != nil {
					return fmt.Errorf("getting default export path: %w", err)
				}
			}

			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			root, err := s.store.GetTree(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading bookmarks: %w", err)
			}

			if err := os.WriteFile(outputPath, []byte(exporter.ExportHTML(root)), 0644); err != nil {
				return fmt.Errorf("writing file: %w", err)
			}

			folders, bookmarks := tree.Count(root)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks, %d folders to %s\n", bookmarks, folders, outputPath)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
