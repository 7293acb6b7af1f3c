// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-harvester/internal/store"
	"github.com/pdiddy/pubmed-harvester/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Query and export the local article database",
	Long: `Store manages the local SQLite article database built by search --store.
Use subcommands to query indexed articles or export them to a file.`,
}

// --- retrieve subcommand ---

var storeRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query stored articles with full-text search and filters",
	Long: `Retrieve searches the article database using FTS5 full-text search over
titles and abstracts, a kind filter, or both. Full-text matches are
ranked by relevance; structured queries sort by publication date.`,
	RunE: runStoreRetrieve,
}

func runStoreRetrieve(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := storeOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query or --kind")
	}

	results, err := s.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []store.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-10s  %-6s  %-12s  %s\n",
		"Rank", "PMID", "Kind", "Date", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for i, r := range results {
		title := r.Title
		if len(title) > 55 {
			title = title[:52] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-10s  %-6s  %-12s  %s\n",
			i+1, r.PubmedID, r.Kind, r.PublicationDate, title)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export stored articles to YAML or JSON",
	Long: `Export writes the article database (or a filtered subset) to a file.
The format follows the file extension unless --format overrides it.
Supports the same filter flags as retrieve for partial exports.`,
	Args: cobra.ExactArgs(1),
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		if strings.HasSuffix(path, ".json") {
			format = "json"
		} else {
			format = "yaml"
		}
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := storeOptsFromFlags(cmd, nil)

	switch format {
	case "yaml":
		err = s.ExportYAML(context.Background(), path, opts)
	case "json":
		err = s.ExportJSON(context.Background(), path, opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported to %s\n", path)
	return nil
}

// --- count subcommand ---

var storeCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of stored articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.Count(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return store.NewStore(types.StoreConfig{
		DataDir:    dataDir,
		MaxResults: maxResults,
	})
}

func storeOptsFromFlags(cmd *cobra.Command, args []string) store.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Query:      queryText,
		Kind:       types.ArticleKind(kind),
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("data-dir", "data", "directory for the local database")
	storeCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Retrieve flags.
	storeRetrieveCmd.Flags().String("query", "", "full-text search query")
	storeRetrieveCmd.Flags().String("kind", "", "filter by article kind: paper or book")
	storeRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	storeExportCmd.Flags().String("format", "", "export format: yaml or json (default from file extension)")
	storeExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	storeExportCmd.Flags().String("kind", "", "filter by article kind for partial export")
	storeExportCmd.Flags().Int("limit", 0, "maximum articles to export (0 = all)")

	// Wire subcommands.
	storeCmd.AddCommand(storeRetrieveCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeCountCmd)

	rootCmd.AddCommand(storeCmd)
}
