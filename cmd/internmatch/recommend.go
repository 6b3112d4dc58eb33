// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/pdiddy/internmatch/internal/catalog"
	"github.com/pdiddy/internmatch/internal/education"
	"github.com/pdiddy/internmatch/internal/engine"
	"github.com/pdiddy/internmatch/internal/profile"
	"github.com/pdiddy/internmatch/pkg/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank internships for a candidate profile",
	Long: `Recommend ranks the catalog for one candidate and prints the best matches
with a confidence score, the reasons for the match, and the skills the
candidate has and lacks for each posting.

The profile comes from flags, from a YAML or JSON file (--profile), or from
interactive prompts (--interactive). Flags override file values; prompts
ask only for what is still missing.`,
	RunE: runRecommend,
}

// profileFlags maps flag names to profile payload keys.
var profileFlags = map[string]string{
	"skills":      "skills",
	"aspirations": "aspirations",
	"education":   "education_level",
	"sector":      "sector_interest",
	"location":    "location_preference",
	"experience":  "experience",
}

func runRecommend(cmd *cobra.Command, args []string) error {
	p, err := candidateFromFlags(cmd)
	if err != nil {
		return err
	}

	eng, store, err := openEngine(appConfig)
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := context.Background()

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if p, err = promptMissing(ctx, eng, p); err != nil {
			return err
		}
	}
	if err := profile.Validate(p); err != nil {
		return err
	}

	topK, _ := cmd.Flags().GetInt("top-k")
	resp := eng.Recommend(ctx, p, topK)
	if !resp.OK() {
		return errors.New(resp.Error.Message)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp.Results)
	}
	printRecommendations(resp.Results)
	return nil
}

func candidateFromFlags(cmd *cobra.Command) (types.CandidateProfile, error) {
	var p types.CandidateProfile
	if path, _ := cmd.Flags().GetString("profile"); path != "" {
		var err error
		if p, err = profile.LoadFile(path); err != nil {
			return p, err
		}
	}

	overrides := make(map[string]any)
	for flag, key := range profileFlags {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			overrides[key] = v
		}
	}
	if len(overrides) == 0 {
		return p, nil
	}
	o, err := profile.Decode(overrides)
	if err != nil {
		return p, err
	}
	return mergeProfile(p, o), nil
}

// mergeProfile overlays the non-empty fields of o on p.
func mergeProfile(p, o types.CandidateProfile) types.CandidateProfile {
	if len(o.Skills) > 0 {
		p.Skills = o.Skills
	}
	if len(o.Aspirations) > 0 {
		p.Aspirations = o.Aspirations
	}
	if o.EducationLevel != "" {
		p.EducationLevel = o.EducationLevel
	}
	if o.SectorInterest != "" {
		p.SectorInterest = o.SectorInterest
	}
	if o.LocationPreference != "" {
		p.LocationPreference = o.LocationPreference
	}
	if o.Experience != "" {
		p.Experience = o.Experience
	}
	return p
}

// promptMissing asks for every required field p lacks. Sectors and
// locations are offered from the catalog when it can be loaded.
func promptMissing(ctx context.Context, eng *engine.Engine, p types.CandidateProfile) (types.CandidateProfile, error) {
	var records []types.InternshipRecord
	if snap, err := eng.Current(ctx); err == nil {
		records = snap.Records
	}

	if len(p.Skills) == 0 {
		v, err := ask("Skills (comma-separated)")
		if err != nil {
			return p, err
		}
		o, err := profile.Decode(map[string]any{"skills": v})
		if err != nil {
			return p, err
		}
		p.Skills = o.Skills
	}
	if p.EducationLevel == "" {
		v, err := choose("Education level", education.DefaultHierarchy.Levels())
		if err != nil {
			return p, err
		}
		p.EducationLevel = v
	}
	if p.SectorInterest == "" {
		v, err := choose("Sector of interest", catalog.Sectors(records))
		if err != nil {
			return p, err
		}
		p.SectorInterest = v
	}
	if p.LocationPreference == "" {
		v, err := choose("Preferred location", catalog.Locations(records))
		if err != nil {
			return p, err
		}
		p.LocationPreference = v
	}
	return p, nil
}

func ask(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(label))
			}
			return nil
		},
	}
	return prompt.Run()
}

// choose offers items in a select list, or a free-text prompt when there
// is nothing to offer.
func choose(label string, items []string) (string, error) {
	if len(items) == 0 {
		return ask(label)
	}
	sel := promptui.Select{Label: label, Items: items, Size: 10}
	_, v, err := sel.Run()
	return v, err
}

func printRecommendations(results []types.RecommendationResult) {
	if len(results) == 0 {
		fmt.Println("No recommendations.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-24s  %-30s  %-14s  %-6s  %s\n",
		"Rank", "Company", "Role", "Location", "Score", "Confidence")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))
	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%-4d  %-24s  %-30s  %-14s  %-6.3f  %.1f%%\n",
			i+1, truncate(r.Company, 24), truncate(r.Role, 30), truncate(r.Location, 14),
			r.Similarity, r.ConfidenceScore)
		fmt.Fprintf(os.Stdout, "      why: %s\n", r.MatchReasoning)
		fmt.Fprintf(os.Stdout, "      skills: have [%s] missing [%s] (%.0f%% match)\n",
			strings.Join(r.SkillsAnalysis.Matching, ", "),
			strings.Join(r.SkillsAnalysis.Missing, ", "),
			r.SkillsAnalysis.MatchPercentage*100)
	}
	fmt.Fprintf(os.Stdout, "\n%d recommendations\n", len(results))
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// addProfileFlags registers the flags read by candidateFromFlags.
func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().String("skills", "", "candidate skills (comma-separated)")
	cmd.Flags().String("aspirations", "", "career aspirations (comma-separated)")
	cmd.Flags().String("education", "", "education level, e.g. B.Tech, MBA, 12th")
	cmd.Flags().String("sector", "", "sector of interest")
	cmd.Flags().String("location", "", "preferred location")
	cmd.Flags().String("experience", "", "free-text experience summary")
	cmd.Flags().String("profile", "", "YAML or JSON candidate profile file")
}

func init() {
	addProfileFlags(recommendCmd)
	recommendCmd.Flags().Bool("interactive", false, "prompt for missing profile fields")
	recommendCmd.Flags().Int("top-k", 0, "number of recommendations (default: engine.top_k)")
	recommendCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(recommendCmd)
}
