// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ResultCap is the maximum number of identifiers the service returns
// for a single query, regardless of the true match count.
const ResultCap = 10000

// Unbounded asks the resolver to retrieve every matching identifier.
const Unbounded = -1

// esearchPage is one parsed esearch response: the total match count and
// the identifier page actually returned.
type esearchPage struct {
	count int
	ids   []string
}

// TotalResults returns the number of records matching query, without
// retrieving them. It issues a single count-only probe (retmax=1).
func (c *Client) TotalResults(ctx context.Context, query string) (int, error) {
	params := c.baseParams()
	params.Set("term", query)
	params.Set("retmax", "1")

	page, err := c.search(ctx, params)
	if err != nil {
		return 0, err
	}
	return page.count, nil
}

// ArticleIDs returns the identifiers of every record matching query, up
// to maxResults (Unbounded retrieves all). When the match count exceeds
// the service's result cap the query's date axis, starting at January 1
// of startYear (zero means the configured default) and ending today, is
// recursively partitioned until each partition fits under the cap.
//
// Identifiers arrive in bin-visitation order, which is reverse
// chronological; duplicates at bin seams are possible and left to the
// caller. Any transport or parse failure aborts the whole call with no
// partial result.
func (c *Client) ArticleIDs(ctx context.Context, query string, maxResults, startYear int) ([]string, error) {
	total, err := c.TotalResults(ctx, query)
	if err != nil {
		return nil, err
	}
	if maxResults == Unbounded {
		maxResults = total
	}

	retmax := ResultCap
	if maxResults < retmax {
		retmax = maxResults
	}

	params := c.baseParams()
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(retmax))

	if total <= ResultCap {
		page, err := c.search(ctx, params)
		if err != nil {
			return nil, err
		}
		return page.ids, nil
	}

	if startYear <= 0 {
		startYear = c.cfg.StartYear
	}
	start := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	return c.resolveRange(ctx, params, start, c.today())
}

// resolveRange partitions [start, end] into date bins and resolves each
// bin in order, recursing into any bin whose own match count still
// exceeds the cap. One-day bins are leaves: the date axis cannot be
// subdivided further, so an over-cap day yields at most one page.
func (c *Client) resolveRange(ctx context.Context, params url.Values, start, end time.Time) ([]string, error) {
	bins, err := MakeDateBins(start, end)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, bin := range bins {
		p := cloneValues(params)
		p.Set("mindate", bin.Min.Format(binDateLayout))
		p.Set("maxdate", bin.Max.Format(binDateLayout))

		page, err := c.search(ctx, p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, page.ids...)

		if page.count > ResultCap && bin.Span() > 1 {
			sub, err := c.resolveRange(ctx, params, bin.Min, bin.Max)
			if err != nil {
				return nil, err
			}
			ids = append(ids, sub...)
		}
	}
	return ids, nil
}

// search issues one esearch request and extracts the count and
// identifier list from its JSON body.
func (c *Client) search(ctx context.Context, params url.Values) (esearchPage, error) {
	body, err := c.Get(ctx, esearchPath, params, "json")
	if err != nil {
		return esearchPage{}, err
	}

	var payload struct {
		ESearchResult struct {
			Count  string   `json:"count"`
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return esearchPage{}, &ParseError{Field: "esearchresult", Err: err}
	}
	if payload.ESearchResult.Count == "" {
		return esearchPage{}, &ParseError{Field: "count", Err: fmt.Errorf("missing")}
	}
	count, err := strconv.Atoi(payload.ESearchResult.Count)
	if err != nil {
		return esearchPage{}, &ParseError{Field: "count", Err: err}
	}

	return esearchPage{count: count, ids: payload.ESearchResult.IDList}, nil
}
