// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest runs the full retrieval pipeline: resolve the
// identifiers matching a query, fetch the records in batches, and
// parse them into article entities.
package harvest

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/pubmed-harvester/internal/eutils"
	"github.com/pdiddy/pubmed-harvester/pkg/types"
)

// Skip optionally excludes one record variant from the output.
type Skip string

const (
	SkipNone  Skip = ""
	SkipPaper Skip = "paper"
	SkipBook  Skip = "book"
)

// Searcher is the client surface the pipeline needs. *eutils.Client
// implements it.
type Searcher interface {
	ArticleIDs(ctx context.Context, query string, maxResults, startYear int) ([]string, error)
	Fetch(ctx context.Context, ids []string) ([]types.Article, error)
}

// Options controls one pipeline run.
type Options struct {
	// MaxResults caps the number of identifiers resolved;
	// eutils.Unbounded retrieves everything.
	MaxResults int

	// StartYear bounds the partitioning date axis for over-cap
	// queries; zero uses the client default.
	StartYear int

	// Skip drops one record variant from the output.
	Skip Skip
}

// Output holds the pipeline result.
type Output struct {
	// Articles are the fetched records in identifier order, papers
	// before books within each fetch batch.
	Articles []types.Article

	// IDs are the resolved identifiers, in resolver order, before any
	// skip filtering.
	IDs []string
}

// Run resolves query to an identifier list, fetches the records in
// batches, and returns the parsed articles. Progress notes go to w.
func Run(ctx context.Context, client Searcher, query string, opts Options, w io.Writer) (Output, error) {
	if query == "" {
		return Output{}, fmt.Errorf("query is empty")
	}
	if opts.MaxResults == 0 {
		opts.MaxResults = eutils.Unbounded
	}

	ids, err := client.ArticleIDs(ctx, query, opts.MaxResults, opts.StartYear)
	if err != nil {
		return Output{}, fmt.Errorf("resolving identifiers: %w", err)
	}
	fmt.Fprintf(w, "Resolved %d identifier(s)\n", len(ids))

	out := Output{IDs: ids}
	for start := 0; start < len(ids); start += eutils.FetchBatchSize {
		batch := ids[start:min(start+eutils.FetchBatchSize, len(ids))]
		articles, err := client.Fetch(ctx, batch)
		if err != nil {
			return Output{}, fmt.Errorf("fetching batch of %d: %w", len(batch), err)
		}
		for _, a := range articles {
			if skipped(a, opts.Skip) {
				continue
			}
			out.Articles = append(out.Articles, a)
		}
	}

	fmt.Fprintf(w, "Fetched %d article(s)\n", len(out.Articles))
	return out, nil
}

func skipped(a types.Article, skip Skip) bool {
	switch skip {
	case SkipPaper:
		return a.Kind() == types.KindPaper
	case SkipBook:
		return a.Kind() == types.KindBook
	default:
		return false
	}
}
