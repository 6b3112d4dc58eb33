// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/internmatch/internal/catalog"
	"github.com/pdiddy/internmatch/pkg/types"
)

var browseCmd = &cobra.Command{
	Use:   "browse [query]",
	Short: "List and search catalog internships",
	Long: `Browse lists catalog internships in catalog order, filtered by sector,
location, skill or company (case-insensitive substring). A query searches
role, company, skills, sector and location with the full-text index first;
the filters then narrow the matches.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	if limit < 0 || offset < 0 {
		return types.NewError(types.KindInvalidInput, "--limit and --offset must not be negative")
	}

	store, err := catalog.NewStore(appConfig.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := context.Background()

	var records []types.InternshipRecord
	if query != "" {
		count, err := store.Count(ctx)
		if err != nil {
			return err
		}
		records, err = store.Search(ctx, query, max(count, 1))
		if err != nil {
			return err
		}
	} else if records, err = catalogRecords(ctx, appConfig, store); err != nil {
		return err
	}

	f := catalog.Filter{Limit: limit, Offset: offset}
	f.Industry, _ = cmd.Flags().GetString("industry")
	f.Location, _ = cmd.Flags().GetString("location")
	f.Skill, _ = cmd.Flags().GetString("skill")
	f.Company, _ = cmd.Flags().GetString("company")
	page := catalog.Browse(records, f)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	if len(page.Internships) == 0 {
		fmt.Println("No internships found.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%-6s  %-24s  %-30s  %-14s  %-14s  %s\n",
		"ID", "Company", "Role", "Location", "Sector", "Skills")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, r := range page.Internships {
		fmt.Fprintf(os.Stdout, "%-6s  %-24s  %-30s  %-14s  %-14s  %s\n",
			truncate(r.ID, 6), truncate(r.Company, 24), truncate(r.Role, 30),
			truncate(r.Location, 14), truncate(r.Industry, 14), r.RequiredSkills)
	}
	fmt.Fprintf(os.Stdout, "\n%d of %d matching (%d in catalog)\n",
		len(page.Internships), page.FilteredCount, page.TotalCount)

	info, ok, err := store.LastIngest(ctx)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(os.Stdout, "Last ingest: %s from %s (%d rows)\n",
			info.IngestedAt.Local().Format(time.DateTime), info.Source, info.Rows)
	}
	return nil
}

func init() {
	browseCmd.Flags().String("industry", "", "filter by sector")
	browseCmd.Flags().String("location", "", "filter by location")
	browseCmd.Flags().String("skill", "", "filter by required skill")
	browseCmd.Flags().String("company", "", "filter by company")
	browseCmd.Flags().String("query", "", "full-text search query")
	browseCmd.Flags().Int("limit", 20, "maximum number of internships to list (0 for all)")
	browseCmd.Flags().Int("offset", 0, "number of matching internships to skip")
	browseCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(browseCmd)
}
