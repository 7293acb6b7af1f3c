// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package article

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pdiddy/pubmed-harvester/pkg/types"
)

const samplePaperXML = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">31452104</PMID>
      <Article PubModel="Print">
        <Journal>
          <Title>Journal of Example Medicine</Title>
        </Journal>
        <ArticleTitle>Aspirin and something important.</ArticleTitle>
        <Abstract>
          <AbstractText Label="BACKGROUND">Background text.</AbstractText>
          <AbstractText Label="METHOD">We did things.</AbstractText>
          <AbstractText Label="RESULTS">Things happened.</AbstractText>
          <AbstractText Label="CONCLUSION">It matters.</AbstractText>
          <CopyrightInformation>Copyright 2019 Example.</CopyrightInformation>
        </Abstract>
        <AuthorList CompleteYN="Y">
          <Author ValidYN="Y">
            <LastName>Doe</LastName>
            <ForeName>Jane</ForeName>
            <Initials>J</Initials>
            <AffiliationInfo>
              <Affiliation>Example University</Affiliation>
            </AffiliationInfo>
          </Author>
          <Author ValidYN="Y">
            <LastName>Roe</LastName>
            <ForeName>Richard</ForeName>
            <Initials>R</Initials>
          </Author>
        </AuthorList>
      </Article>
      <KeywordList Owner="NOTNLM">
        <Keyword MajorTopicYN="N">aspirin</Keyword>
        <Keyword MajorTopicYN="N">trials</Keyword>
      </KeywordList>
    </MedlineCitation>
    <PubmedData>
      <History>
        <PubMedPubDate PubStatus="received">
          <Year>2019</Year><Month>1</Month><Day>2</Day>
        </PubMedPubDate>
        <PubMedPubDate PubStatus="pubmed">
          <Year>2019</Year><Month>8</Month><Day>28</Day>
        </PubMedPubDate>
      </History>
      <ArticleIdList>
        <ArticleId IdType="pubmed">31452104</ArticleId>
        <ArticleId IdType="doi">10.1000/jem.2019.001</ArticleId>
      </ArticleIdList>
    </PubmedData>
  </PubmedArticle>
</PubmedArticleSet>`

const sampleBookXML = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedBookArticle>
    <BookDocument>
      <PMID Version="1">29763210</PMID>
      <ArticleIdList>
        <ArticleId IdType="pubmed">29763210</ArticleId>
        <ArticleId IdType="doi">10.1000/book.5</ArticleId>
      </ArticleIdList>
      <Book>
        <Publisher>
          <PublisherName>Example Press</PublisherName>
          <PublisherLocation>Bethesda (MD)</PublisherLocation>
        </Publisher>
        <BookTitle book="example">Handbook of Examples</BookTitle>
        <PubDate>
          <Year>2018</Year>
        </PubDate>
        <AuthorList Type="editors">
          <Author>
            <LastName>Smith</LastName>
            <ForeName>Ann</ForeName>
            <Initials>A</Initials>
          </Author>
          <Author>
            <CollectiveName>Example Working Group</CollectiveName>
          </Author>
        </AuthorList>
        <Isbn>9780000000000</Isbn>
      </Book>
      <Language>eng</Language>
      <PublicationType UI="D016454">Review</PublicationType>
      <Abstract>
        <AbstractText>Book abstract.</AbstractText>
        <CopyrightInformation>Copyright 2018 Example Press.</CopyrightInformation>
      </Abstract>
      <Sections>
        <Section>
          <LocationLabel Type="chapter">1</LocationLabel>
          <SectionTitle book="example" part="ch1">Introduction</SectionTitle>
        </Section>
        <Section>
          <LocationLabel Type="chapter">2</LocationLabel>
          <SectionTitle book="example" part="ch2">Methods</SectionTitle>
        </Section>
      </Sections>
    </BookDocument>
  </PubmedBookArticle>
</PubmedArticleSet>`

func TestParseSetPaper(t *testing.T) {
	articles, err := ParseSet([]byte(samplePaperXML))
	if err != nil {
		t.Fatalf("ParseSet() error = %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("len(articles) = %d, want 1", len(articles))
	}

	paper, ok := articles[0].(*types.Paper)
	if !ok {
		t.Fatalf("articles[0] = %T, want *types.Paper", articles[0])
	}
	if paper.Kind() != types.KindPaper {
		t.Errorf("Kind() = %q, want %q", paper.Kind(), types.KindPaper)
	}
	if paper.PubmedID != "31452104" {
		t.Errorf("PubmedID = %q, want %q", paper.PubmedID, "31452104")
	}
	if paper.Title != "Aspirin and something important." {
		t.Errorf("Title = %q", paper.Title)
	}
	if paper.Journal != "Journal of Example Medicine" {
		t.Errorf("Journal = %q", paper.Journal)
	}
	if paper.DOI != "10.1000/jem.2019.001" {
		t.Errorf("DOI = %q", paper.DOI)
	}

	// The plain abstract joins every labeled section.
	wantAbstract := "Background text.\nWe did things.\nThings happened.\nIt matters."
	if paper.Abstract != wantAbstract {
		t.Errorf("Abstract = %q, want %q", paper.Abstract, wantAbstract)
	}
	if paper.Methods != "We did things." {
		t.Errorf("Methods = %q", paper.Methods)
	}
	if paper.Results != "Things happened." {
		t.Errorf("Results = %q", paper.Results)
	}
	if paper.Conclusions != "It matters." {
		t.Errorf("Conclusions = %q", paper.Conclusions)
	}
	if paper.Copyrights != "Copyright 2019 Example." {
		t.Errorf("Copyrights = %q", paper.Copyrights)
	}

	wantDate := time.Date(2019, 8, 28, 0, 0, 0, 0, time.UTC)
	if !paper.PublicationDate.Equal(wantDate) {
		t.Errorf("PublicationDate = %v, want %v (the pubmed-status entry)", paper.PublicationDate, wantDate)
	}

	if len(paper.Authors) != 2 {
		t.Fatalf("len(Authors) = %d, want 2", len(paper.Authors))
	}
	if paper.Authors[0].LastName != "Doe" || paper.Authors[0].Affiliation != "Example University" {
		t.Errorf("Authors[0] = %+v", paper.Authors[0])
	}
	if len(paper.Keywords) != 2 || paper.Keywords[0] != "aspirin" {
		t.Errorf("Keywords = %v", paper.Keywords)
	}
}

func TestParseSetBook(t *testing.T) {
	articles, err := ParseSet([]byte(sampleBookXML))
	if err != nil {
		t.Fatalf("ParseSet() error = %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("len(articles) = %d, want 1", len(articles))
	}

	book, ok := articles[0].(*types.Book)
	if !ok {
		t.Fatalf("articles[0] = %T, want *types.Book", articles[0])
	}
	if book.Kind() != types.KindBook {
		t.Errorf("Kind() = %q, want %q", book.Kind(), types.KindBook)
	}
	if book.PubmedID != "29763210" {
		t.Errorf("PubmedID = %q", book.PubmedID)
	}
	if book.Title != "Handbook of Examples" {
		t.Errorf("Title = %q", book.Title)
	}
	if book.ISBN != "9780000000000" {
		t.Errorf("ISBN = %q", book.ISBN)
	}
	if book.Language != "eng" {
		t.Errorf("Language = %q", book.Language)
	}
	if book.PublicationType != "Review" {
		t.Errorf("PublicationType = %q", book.PublicationType)
	}
	if book.Publisher != "Example Press" || book.PublisherLocation != "Bethesda (MD)" {
		t.Errorf("Publisher = %q at %q", book.Publisher, book.PublisherLocation)
	}
	if book.DOI != "10.1000/book.5" {
		t.Errorf("DOI = %q", book.DOI)
	}
	if y := book.PublicationDate.Year(); y != 2018 {
		t.Errorf("PublicationDate year = %d, want 2018", y)
	}

	if len(book.Authors) != 2 {
		t.Fatalf("len(Authors) = %d, want 2", len(book.Authors))
	}
	if book.Authors[1].Collective != "Example Working Group" {
		t.Errorf("Authors[1].Collective = %q", book.Authors[1].Collective)
	}

	if len(book.Sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2", len(book.Sections))
	}
	if book.Sections[0].Title != "Introduction" || book.Sections[0].Chapter != "1" {
		t.Errorf("Sections[0] = %+v", book.Sections[0])
	}
}

func TestParseSetMixedOrder(t *testing.T) {
	mixed := `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedBookArticle>
    <BookDocument><PMID>2</PMID><Book><BookTitle>B</BookTitle></Book></BookDocument>
  </PubmedBookArticle>
  <PubmedArticle>
    <MedlineCitation><PMID>1</PMID><Article><ArticleTitle>P</ArticleTitle></Article></MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

	articles, err := ParseSet([]byte(mixed))
	if err != nil {
		t.Fatalf("ParseSet() error = %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}
	// Papers are yielded before books regardless of document order.
	if articles[0].Kind() != types.KindPaper || articles[1].Kind() != types.KindBook {
		t.Errorf("kinds = %q, %q; want paper then book", articles[0].Kind(), articles[1].Kind())
	}
}

func TestParseSetMalformed(t *testing.T) {
	if _, err := ParseSet([]byte("<PubmedArticleSet><unclosed>")); err == nil {
		t.Fatal("ParseSet() with malformed XML succeeded, want error")
	}
}

func TestPaperFieldsAndJSON(t *testing.T) {
	articles, err := ParseSet([]byte(samplePaperXML))
	if err != nil {
		t.Fatalf("ParseSet() error = %v", err)
	}
	paper := articles[0].(*types.Paper)

	fields := paper.Fields()
	if fields["pubmed_id"] != "31452104" {
		t.Errorf(`fields["pubmed_id"] = %v`, fields["pubmed_id"])
	}
	if fields["journal"] != "Journal of Example Medicine" {
		t.Errorf(`fields["journal"] = %v`, fields["journal"])
	}
	if _, ok := fields["isbn"]; ok {
		t.Error("paper fields contain isbn, want book-only field absent")
	}

	data, err := json.Marshal(paper)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded["doi"] != "10.1000/jem.2019.001" {
		t.Errorf(`JSON doi = %v`, decoded["doi"])
	}
}
