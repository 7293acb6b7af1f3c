// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package article parses efetch XML payloads into record entities. The
// service returns two polymorphic variants, journal papers and books,
// distinguished by their element name; both map onto a shared base
// field set.
package article

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pubmed-harvester/pkg/types"
)

// ParseSet decodes one efetch response body into record entities,
// papers first, then books, each group in document order.
func ParseSet(data []byte) ([]types.Article, error) {
	var set articleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("decoding record set: %w", err)
	}

	var articles []types.Article
	for _, raw := range set.Papers {
		articles = append(articles, raw.toPaper())
	}
	for _, raw := range set.Books {
		articles = append(articles, raw.toBook())
	}
	return articles, nil
}

// Wire structures for the efetch XML payload.

type articleSet struct {
	XMLName xml.Name   `xml:"PubmedArticleSet"`
	Papers  []paperXML `xml:"PubmedArticle"`
	Books   []bookXML  `xml:"PubmedBookArticle"`
}

type paperXML struct {
	MedlineCitation struct {
		PMID    string `xml:"PMID"`
		Article struct {
			Title   string `xml:"ArticleTitle"`
			Journal struct {
				Title string `xml:"Title"`
			} `xml:"Journal"`
			Abstract abstractXML `xml:"Abstract"`
			Authors  []authorXML `xml:"AuthorList>Author"`
		} `xml:"Article"`
		Keywords []string `xml:"KeywordList>Keyword"`
	} `xml:"MedlineCitation"`
	PubmedData struct {
		History    []pubDateXML   `xml:"History>PubMedPubDate"`
		ArticleIDs []articleIDXML `xml:"ArticleIdList>ArticleId"`
	} `xml:"PubmedData"`
}

type bookXML struct {
	BookDocument struct {
		PMID       string         `xml:"PMID"`
		ArticleIDs []articleIDXML `xml:"ArticleIdList>ArticleId"`
		Book       struct {
			Title     string `xml:"BookTitle"`
			Publisher struct {
				Name     string `xml:"PublisherName"`
				Location string `xml:"PublisherLocation"`
			} `xml:"Publisher"`
			PubDate struct {
				Year string `xml:"Year"`
			} `xml:"PubDate"`
			ISBN    []string    `xml:"Isbn"`
			Authors []authorXML `xml:"AuthorList>Author"`
		} `xml:"Book"`
		Language        []string    `xml:"Language"`
		PublicationType []string    `xml:"PublicationType"`
		Abstract        abstractXML `xml:"Abstract"`
		Sections        []struct {
			Title   string `xml:"SectionTitle"`
			Chapter string `xml:"LocationLabel"`
		} `xml:"Sections>Section"`
	} `xml:"BookDocument"`
}

type abstractXML struct {
	Sections  []abstractTextXML `xml:"AbstractText"`
	Copyright string            `xml:"CopyrightInformation"`
}

type abstractTextXML struct {
	Label string `xml:"Label,attr"`
	Text  string `xml:",chardata"`
}

type authorXML struct {
	LastName    string `xml:"LastName"`
	ForeName    string `xml:"ForeName"`
	Initials    string `xml:"Initials"`
	Collective  string `xml:"CollectiveName"`
	Affiliation string `xml:"AffiliationInfo>Affiliation"`
}

type pubDateXML struct {
	Status string `xml:"PubStatus,attr"`
	Year   int    `xml:"Year"`
	Month  int    `xml:"Month"`
	Day    int    `xml:"Day"`
}

type articleIDXML struct {
	Type  string `xml:"IdType,attr"`
	Value string `xml:",chardata"`
}

// Conversions.

func (p paperXML) toPaper() *types.Paper {
	art := p.MedlineCitation.Article
	return &types.Paper{
		ArticleBase: types.ArticleBase{
			PubmedID:        strings.TrimSpace(p.MedlineCitation.PMID),
			Title:           strings.TrimSpace(art.Title),
			Abstract:        art.Abstract.text(""),
			PublicationDate: p.publicationDate(),
			Authors:         convertAuthors(art.Authors),
			DOI:             articleID(p.PubmedData.ArticleIDs, "doi"),
		},
		Keywords:    trimAll(p.MedlineCitation.Keywords),
		Journal:     strings.TrimSpace(art.Journal.Title),
		Methods:     art.Abstract.text("METHOD"),
		Conclusions: art.Abstract.text("CONCLUSION"),
		Results:     art.Abstract.text("RESULTS"),
		Copyrights:  strings.TrimSpace(art.Abstract.Copyright),
	}
}

// publicationDate reads the history entry with PubStatus "pubmed". A
// missing or unbuildable date yields the zero time.
func (p paperXML) publicationDate() time.Time {
	for _, d := range p.PubmedData.History {
		if d.Status != "pubmed" {
			continue
		}
		if d.Year == 0 || d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
			return time.Time{}
		}
		return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	}
	return time.Time{}
}

func (b bookXML) toBook() *types.Book {
	doc := b.BookDocument

	pmid := strings.TrimSpace(doc.PMID)
	if pmid == "" {
		pmid = articleID(doc.ArticleIDs, "pubmed")
	}

	var date time.Time
	if year, err := strconv.Atoi(strings.TrimSpace(doc.Book.PubDate.Year)); err == nil {
		date = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	book := &types.Book{
		ArticleBase: types.ArticleBase{
			PubmedID:        pmid,
			Title:           strings.TrimSpace(doc.Book.Title),
			Abstract:        doc.Abstract.text(""),
			PublicationDate: date,
			Authors:         convertAuthors(doc.Book.Authors),
			DOI:             articleID(doc.ArticleIDs, "doi"),
		},
		Copyrights:        strings.TrimSpace(doc.Abstract.Copyright),
		ISBN:              strings.Join(trimAll(doc.Book.ISBN), "\n"),
		Language:          strings.Join(trimAll(doc.Language), "\n"),
		PublicationType:   strings.Join(trimAll(doc.PublicationType), "\n"),
		Publisher:         strings.TrimSpace(doc.Book.Publisher.Name),
		PublisherLocation: strings.TrimSpace(doc.Book.Publisher.Location),
	}

	for _, s := range doc.Sections {
		book.Sections = append(book.Sections, types.BookSection{
			Title:   strings.TrimSpace(s.Title),
			Chapter: strings.TrimSpace(s.Chapter),
		})
	}
	return book
}

// text joins the abstract sections matching label (every section when
// label is empty), newline-separated, in document order.
func (a abstractXML) text(label string) string {
	var parts []string
	for _, s := range a.Sections {
		if label != "" && s.Label != label {
			continue
		}
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

func convertAuthors(raw []authorXML) []types.Author {
	var authors []types.Author
	for _, a := range raw {
		authors = append(authors, types.Author{
			LastName:    strings.TrimSpace(a.LastName),
			FirstName:   strings.TrimSpace(a.ForeName),
			Initials:    strings.TrimSpace(a.Initials),
			Affiliation: strings.TrimSpace(a.Affiliation),
			Collective:  strings.TrimSpace(a.Collective),
		})
	}
	return authors
}

// articleID returns the value of the first identifier of the given
// IdType, or "" when absent.
func articleID(ids []articleIDXML, idType string) string {
	for _, id := range ids {
		if id.Type == idType {
			return strings.TrimSpace(id.Value)
		}
	}
	return ""
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
