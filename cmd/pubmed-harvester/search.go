// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-harvester/internal/harvest"
	"github.com/pdiddy/pubmed-harvester/internal/store"
	"github.com/pdiddy/pubmed-harvester/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search PubMed and fetch the matching articles",
	Long: `Search resolves a PubMed query to its matching identifiers, fetches the
records in batches, and prints the parsed articles. Query syntax is the
service's own, including field tags such as [Title] or [Author].

Use --save to record the run in a YAML query file and --store to index
the articles into the local database for later retrieval.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "maximum identifiers to resolve (0 = all)")
	searchCmd.Flags().Int("start-year", 0, "earliest publication year considered when partitioning large queries")
	searchCmd.Flags().String("skip", "", "drop one record variant from the output: paper or book")
	searchCmd.Flags().Bool("json", false, "output articles as JSON")
	searchCmd.Flags().String("save", "", "write the run to a YAML query file at this path")
	searchCmd.Flags().Bool("store", false, "index fetched articles into the local database")
	searchCmd.Flags().String("data-dir", "data", "directory for the local database")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	maxResults, _ := cmd.Flags().GetInt("max-results")
	startYear, _ := cmd.Flags().GetInt("start-year")
	skip, _ := cmd.Flags().GetString("skip")
	switch harvest.Skip(skip) {
	case harvest.SkipNone, harvest.SkipPaper, harvest.SkipBook:
	default:
		return fmt.Errorf("unsupported --skip value %q: use paper or book", skip)
	}

	opts := harvest.Options{
		MaxResults: maxResults,
		StartYear:  startYear,
		Skip:       harvest.Skip(skip),
	}

	client := newClient(cmd)
	out, err := harvest.Run(context.Background(), client, query, opts, os.Stderr)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := harvest.WriteQueryFile(savePath, query, opts, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved run to %s\n", savePath)
	}

	if doStore, _ := cmd.Flags().GetBool("store"); doStore {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		s, err := store.NewStore(types.StoreConfig{DataDir: dataDir})
		if err != nil {
			return err
		}
		defer s.Close()

		saved, err := s.Save(context.Background(), out.Articles)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Indexed %d article(s)\n", saved)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return printArticles(out.Articles, jsonOutput)
}

func printArticles(articles []types.Article, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(articles)
	}

	if len(articles) == 0 {
		fmt.Println("No articles found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-6s  %-12s  %s\n", "PMID", "Kind", "Date", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, a := range articles {
		base := a.Base()
		title := base.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		date := ""
		if !base.PublicationDate.IsZero() {
			date = base.PublicationDate.Format("2006-01-02")
		}
		fmt.Fprintf(os.Stdout, "%-10s  %-6s  %-12s  %s\n", base.PubmedID, a.Kind(), date, title)
	}

	fmt.Fprintf(os.Stdout, "\n%d article(s)\n", len(articles))
	return nil
}
