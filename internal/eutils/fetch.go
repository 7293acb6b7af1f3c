// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/pubmed-harvester/internal/article"
	"github.com/pdiddy/pubmed-harvester/pkg/types"
)

// FetchBatchSize is the maximum number of identifiers one efetch
// request may carry.
const FetchBatchSize = 250

// Fetch retrieves the full records for a batch of identifiers and
// parses them into Paper and Book values. Callers are responsible for
// chunking larger identifier lists into batches of FetchBatchSize.
func (c *Client) Fetch(ctx context.Context, ids []string) ([]types.Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > FetchBatchSize {
		return nil, fmt.Errorf("batch of %d identifiers exceeds the efetch limit of %d", len(ids), FetchBatchSize)
	}

	params := c.baseParams()
	params.Set("id", strings.Join(ids, ","))

	body, err := c.Get(ctx, efetchPath, params, "xml")
	if err != nil {
		return nil, err
	}

	articles, err := article.ParseSet(body)
	if err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}
	return articles, nil
}
