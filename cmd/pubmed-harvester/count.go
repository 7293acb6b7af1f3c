// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count <query>",
	Short: "Print the number of records matching a query",
	Long: `Count probes the service for the total number of records matching a
query without retrieving any identifiers. Costs a single request.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	client := newClient(cmd)
	total, err := client.TotalResults(context.Background(), query)
	if err != nil {
		return err
	}

	fmt.Println(total)
	return nil
}
