// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk representation of a harvest run. The
// researcher can save a run to a file and revisit its results without
// re-querying the service.
type QueryFile struct {
	Query    string           `yaml:"query"`
	Options  FileOptions      `yaml:"options"`
	Articles []ArticleSummary `yaml:"articles"`
	Summary  Summary          `yaml:"summary"`
}

// FileOptions stores the run options in a serializable form.
type FileOptions struct {
	MaxResults int    `yaml:"max_results"`
	StartYear  int    `yaml:"start_year,omitempty"`
	Skip       string `yaml:"skip,omitempty"`
}

// ArticleSummary is the subset of article fields kept in a query file.
type ArticleSummary struct {
	PubmedID        string `yaml:"pubmed_id"`
	Kind            string `yaml:"kind"`
	Title           string `yaml:"title"`
	DOI             string `yaml:"doi,omitempty"`
	PublicationDate string `yaml:"publication_date,omitempty"`
}

// Summary stores result statistics and a timestamp.
type Summary struct {
	Identifiers int       `yaml:"identifiers"`
	Articles    int       `yaml:"articles"`
	Timestamp   time.Time `yaml:"timestamp"`
}

const summaryDateFmt = "2006-01-02"

// WriteQueryFile saves a harvest run to a YAML file.
func WriteQueryFile(path, query string, opts Options, out Output) error {
	qf := QueryFile{
		Query: query,
		Options: FileOptions{
			MaxResults: opts.MaxResults,
			StartYear:  opts.StartYear,
			Skip:       string(opts.Skip),
		},
		Summary: Summary{
			Identifiers: len(out.IDs),
			Articles:    len(out.Articles),
			Timestamp:   time.Now(),
		},
	}

	for _, a := range out.Articles {
		base := a.Base()
		summary := ArticleSummary{
			PubmedID: base.PubmedID,
			Kind:     string(a.Kind()),
			Title:    base.Title,
			DOI:      base.DOI,
		}
		if !base.PublicationDate.IsZero() {
			summary.PublicationDate = base.PublicationDate.Format(summaryDateFmt)
		}
		qf.Articles = append(qf.Articles, summary)
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToOptions converts stored FileOptions back into run Options.
func (o FileOptions) ToOptions() Options {
	return Options{
		MaxResults: o.MaxResults,
		StartYear:  o.StartYear,
		Skip:       Skip(o.Skip),
	}
}
