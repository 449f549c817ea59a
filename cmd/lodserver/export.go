package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/earthmeta/lodserver/config"
	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/mapping"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

// exportCmd serializes the entity repositories to RDF on stdout
// without starting the server.
func exportCmd(configPath, logLevel *string) *cobra.Command {
	var (
		entityType string
		format     string
		ids        []string
		versionStr string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the entity repositories as RDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath, nil)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if *logLevel != "" {
				cfg.Log.Level = *logLevel
			}
			logger := config.NewLogger(cfg.Log)

			f, err := rdf.ParseFormat(format)
			if err != nil {
				return err
			}
			v, err := vocabulary.ParseVersion(versionStr)
			if err != nil {
				return err
			}

			fileStore := entity.NewFileStore(cfg.Entities.Dir, logger)
			if err := fileStore.Load(); err != nil {
				return fmt.Errorf("load entities: %w", err)
			}
			repos := entity.NewRegistry()
			fileStore.RegisterAll(repos)

			req := mapping.ExportRequest{Format: f, Version: v, IDs: ids}
			if entityType != "" {
				tag, err := entity.ParseTypeTag(entityType)
				if err != nil {
					return err
				}
				req.Type = tag
			}

			exporter := mapping.NewExporter(mapping.NewRegistry(logger), repos, logger)
			doc, err := exporter.Export(context.Background(), req)
			if err != nil {
				return err
			}

			if outPath == "" || outPath == "-" {
				fmt.Print(doc)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			logger.Info("export written", "path", outPath, "bytes", len(doc))
			return nil
		},
	}

	cmd.Flags().StringVar(&entityType, "type", "", "Entity type to export ("+strings.Join(typeNames(), ", ")+"); all types when empty")
	cmd.Flags().StringVar(&format, "format", "turtle", "Output format (turtle, json-ld)")
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "Explicit entity uids to export (requires --type)")
	cmd.Flags().StringVar(&versionStr, "version", "v1", "Vocabulary version (v1, v3)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (stdout when empty)")

	return cmd
}

func typeNames() []string {
	tags := entity.AllTypes()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = string(t)
	}
	return names
}
