// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-harvester/internal/eutils"
)

var idsCmd = &cobra.Command{
	Use:   "ids <query>",
	Short: "Resolve a query to PubMed identifiers without fetching records",
	Long: `Ids resolves a query to the matching PubMed identifiers and prints them
one per line. Queries over the service's result cap are partitioned by
publication date, so the full identifier set is returned.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIDs,
}

func init() {
	idsCmd.Flags().Int("max-results", 0, "maximum identifiers to resolve (0 = all)")
	idsCmd.Flags().Int("start-year", 0, "earliest publication year considered when partitioning large queries")

	rootCmd.AddCommand(idsCmd)
}

func runIDs(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = eutils.Unbounded
	}
	startYear, _ := cmd.Flags().GetInt("start-year")

	client := newClient(cmd)
	ids, err := client.ArticleIDs(context.Background(), query, maxResults, startYear)
	if err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}
