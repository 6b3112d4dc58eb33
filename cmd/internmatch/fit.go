// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/internmatch/internal/artifact"
	"github.com/pdiddy/internmatch/internal/catalog"
	"github.com/pdiddy/internmatch/internal/engine"
	"github.com/pdiddy/internmatch/pkg/types"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit the feature spaces and export a model bundle",
	Long: `Fit builds the three TF-IDF feature spaces (skills and role, industry,
location) over the catalog and exports them with the catalog, the weights and
a metadata document to the bundle directory. Rankings served from the bundle
need no refit.

The catalog comes from the SQLite store unless --csv names a table.`,
	RunE: runFit,
}

func runFit(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = appConfig.Artifacts.Dir
	}
	ctx := context.Background()

	var records []types.InternshipRecord
	if csvPath != "" {
		var err error
		if records, err = catalog.LoadFile(csvPath, catalog.DefaultClassifier()); err != nil {
			return err
		}
	} else {
		store, err := catalog.NewStore(appConfig.Catalog)
		if err != nil {
			return err
		}
		records, err = store.Records(ctx)
		store.Close()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return types.NewError(types.KindEmptyCatalog, "catalog store is empty; run ingest first or pass --csv")
		}
	}

	eng := engine.New(appConfig.Engine, engine.WithLogger(appLog))
	snap, err := eng.Fit(ctx, records)
	if err != nil {
		return err
	}
	man, err := artifact.Export(out, snap, appConfig.Artifacts.ModelVersion)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(man)
	}

	sizes := snap.Spaces.VocabularySizes()
	fmt.Printf("Fitted %d internships (vocabulary: main %d, industry %d, location %d)\n",
		snap.Rows(), sizes["main"], sizes["industry"], sizes["location"])
	fmt.Printf("Bundle %s written to %s\n", man.BundleID, man.Dir)
	names := make([]string, 0, len(man.Files))
	for name := range man.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s\n", man.Files[name])
	}
	return nil
}

func init() {
	fitCmd.Flags().String("csv", "", "fit from this CSV instead of the catalog store")
	fitCmd.Flags().String("out", "", "bundle directory (default: artifacts.dir)")
	fitCmd.Flags().Bool("json", false, "print the manifest as JSON")

	rootCmd.AddCommand(fitCmd)
}
