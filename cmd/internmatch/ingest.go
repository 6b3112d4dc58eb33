// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pdiddy/internmatch/internal/catalog"
	"github.com/pdiddy/internmatch/internal/secrets"
	"github.com/pdiddy/internmatch/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load an internship table into the catalog store",
	Long: `Ingest reads an internship table from a local CSV file or a URL, derives
role level and company size, and replaces the contents of the SQLite catalog
store. Row order is preserved; it becomes the row order of fitted models.

The table needs the columns id, company, role, location, industry and
required_skills.`,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	url, _ := cmd.Flags().GetString("url")
	if csvPath != "" && url != "" {
		return fmt.Errorf("--csv and --url are mutually exclusive")
	}

	ctx := context.Background()
	records, source, err := readCatalog(ctx, appConfig.Catalog, csvPath, url)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(appConfig.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Replace(ctx, source, records); err != nil {
		return err
	}
	fmt.Printf("Ingested %d internships from %s into %s\n", len(records), source, store.Path())
	if !store.FullText() {
		fmt.Println("Full-text index unavailable (build with -tags sqlite_fts5); browse --query uses substring matching.")
	}
	return nil
}

// readCatalog loads records from url when set, otherwise from csvPath or
// the configured CSV path. It also returns a label for the source.
func readCatalog(ctx context.Context, cfg types.CatalogConfig, csvPath, url string) ([]types.InternshipRecord, string, error) {
	if url != "" {
		records, err := catalog.Fetch(ctx, url, catalog.FetchOptions{
			Client:  &http.Client{Timeout: cfg.FetchTimeout},
			Token:   loadedSecrets[secrets.CatalogToken],
			Retries: cfg.FetchRetries,
		}, catalog.DefaultClassifier())
		return records, url, err
	}
	if csvPath == "" {
		csvPath = cfg.CSVPath
	}
	records, err := catalog.LoadFile(csvPath, catalog.DefaultClassifier())
	return records, csvPath, err
}

func init() {
	ingestCmd.Flags().String("csv", "", "path to the internship CSV (default: catalog.csv_path)")
	ingestCmd.Flags().String("url", "", "download the internship CSV from this URL")

	rootCmd.AddCommand(ingestCmd)
}
