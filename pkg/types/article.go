// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ArticleKind discriminates the two record variants the service returns.
type ArticleKind string

const (
	KindPaper ArticleKind = "paper"
	KindBook  ArticleKind = "book"
)

// Author holds one author entry of an article or book.
type Author struct {
	LastName    string `json:"lastname" yaml:"lastname"`
	FirstName   string `json:"firstname" yaml:"firstname"`
	Initials    string `json:"initials" yaml:"initials"`
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Collective is set instead of the name fields when the author is
	// a group (book records only).
	Collective string `json:"collective,omitempty" yaml:"collective,omitempty"`
}

// BookSection is one section entry of a book record.
type BookSection struct {
	Title   string `json:"title" yaml:"title"`
	Chapter string `json:"chapter" yaml:"chapter"`
}

// ArticleBase holds the fields shared by both record variants.
type ArticleBase struct {
	// PubmedID is the record identifier assigned by the service.
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	Title    string `json:"title" yaml:"title"`
	Abstract string `json:"abstract" yaml:"abstract"`

	// PublicationDate is zero when the source record carries no
	// parseable date.
	PublicationDate time.Time `json:"publication_date" yaml:"publication_date"`

	Authors []Author `json:"authors" yaml:"authors"`
	DOI     string   `json:"doi" yaml:"doi"`
}

// Article is the tagged union over the two record variants. Concrete
// types are Paper and Book.
type Article interface {
	Kind() ArticleKind
	Base() ArticleBase

	// Fields returns the extracted fields as a flat mapping, suitable
	// for JSON or YAML rendering.
	Fields() map[string]any
}

// Paper is a journal article record.
type Paper struct {
	ArticleBase `yaml:",inline"`

	Keywords    []string `json:"keywords" yaml:"keywords"`
	Journal     string   `json:"journal" yaml:"journal"`
	Methods     string   `json:"methods" yaml:"methods"`
	Conclusions string   `json:"conclusions" yaml:"conclusions"`
	Results     string   `json:"results" yaml:"results"`
	Copyrights  string   `json:"copyrights" yaml:"copyrights"`
}

// Kind returns KindPaper.
func (p *Paper) Kind() ArticleKind { return KindPaper }

// Base returns the shared field set.
func (p *Paper) Base() ArticleBase { return p.ArticleBase }

// Fields returns the extracted fields as a flat mapping.
func (p *Paper) Fields() map[string]any {
	m := p.ArticleBase.fields()
	m["keywords"] = p.Keywords
	m["journal"] = p.Journal
	m["methods"] = p.Methods
	m["conclusions"] = p.Conclusions
	m["results"] = p.Results
	m["copyrights"] = p.Copyrights
	return m
}

// Book is a book or book-chapter record.
type Book struct {
	ArticleBase `yaml:",inline"`

	Copyrights        string        `json:"copyrights" yaml:"copyrights"`
	ISBN              string        `json:"isbn" yaml:"isbn"`
	Language          string        `json:"language" yaml:"language"`
	PublicationType   string        `json:"publication_type" yaml:"publication_type"`
	Sections          []BookSection `json:"sections" yaml:"sections"`
	Publisher         string        `json:"publisher" yaml:"publisher"`
	PublisherLocation string        `json:"publisher_location" yaml:"publisher_location"`
}

// Kind returns KindBook.
func (b *Book) Kind() ArticleKind { return KindBook }

// Base returns the shared field set.
func (b *Book) Base() ArticleBase { return b.ArticleBase }

// Fields returns the extracted fields as a flat mapping.
func (b *Book) Fields() map[string]any {
	m := b.ArticleBase.fields()
	m["copyrights"] = b.Copyrights
	m["isbn"] = b.ISBN
	m["language"] = b.Language
	m["publication_type"] = b.PublicationType
	m["sections"] = b.Sections
	m["publisher"] = b.Publisher
	m["publisher_location"] = b.PublisherLocation
	return m
}

func (a ArticleBase) fields() map[string]any {
	return map[string]any{
		"pubmed_id":        a.PubmedID,
		"title":            a.Title,
		"abstract":         a.Abstract,
		"publication_date": a.PublicationDate,
		"authors":          a.Authors,
		"doi":              a.DOI,
	}
}
