// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-harvester/internal/eutils"
	"github.com/pdiddy/pubmed-harvester/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <pmid...>",
	Short: "Fetch specific articles by PubMed identifier",
	Long: `Fetch retrieves the records for the given PubMed identifiers and prints
the parsed articles. Identifiers are fetched in batches of up to 250.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Bool("json", false, "output articles as JSON")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	client := newClient(cmd)

	var articles []types.Article
	for start := 0; start < len(args); start += eutils.FetchBatchSize {
		batch := args[start:min(start+eutils.FetchBatchSize, len(args))]
		fetched, err := client.Fetch(context.Background(), batch)
		if err != nil {
			return err
		}
		articles = append(articles, fetched...)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return printArticles(articles, jsonOutput)
}
