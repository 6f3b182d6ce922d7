// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"strings"

	"github.com/beevik/etree"
)

var (
	pathPMID          = etree.MustCompilePath(".//PMID")
	pathTitle         = etree.MustCompilePath(".//ArticleTitle")
	pathPubDate       = etree.MustCompilePath(".//PubDate")
	pathAuthors       = etree.MustCompilePath(".//Author")
	pathCorresponding = etree.MustCompilePath(".//AuthorList/Author/CorrespondingAuthor")
	pathAffiliation   = etree.MustCompilePath("AffiliationInfo/Affiliation")
	pathCitation      = etree.MustCompilePath("MedlineCitation")
)

// Record is one <PubmedArticle> element of an efetch response. Accessors
// return ok=false when the element is missing or its text is empty.
type Record struct {
	el *etree.Element
}

// NewRecord wraps a <PubmedArticle> element. A nil element yields a record
// whose accessors all report absence.
func NewRecord(el *etree.Element) *Record {
	return &Record{el: el}
}

// Element returns the underlying XML element.
func (r *Record) Element() *etree.Element {
	if r == nil {
		return nil
	}
	return r.el
}

// HasCitation reports whether the record carries a <MedlineCitation>.
func (r *Record) HasCitation() bool {
	return r.Element() != nil && r.el.FindElementPath(pathCitation) != nil
}

// PMID returns the first PMID in document order.
func (r *Record) PMID() (string, bool) {
	return r.findText(pathPMID)
}

// Title returns the full text of <ArticleTitle>, inline markup included.
func (r *Record) Title() (string, bool) {
	if r.Element() == nil {
		return "", false
	}
	el := r.el.FindElementPath(pathTitle)
	if el == nil {
		return "", false
	}
	s := strings.TrimSpace(innerText(el))
	return s, s != ""
}

// Year returns the <Year> child of the first <PubDate>.
func (r *Record) Year() (string, bool) {
	if r.Element() == nil {
		return "", false
	}
	pd := r.el.FindElementPath(pathPubDate)
	if pd == nil {
		return "", false
	}
	y := pd.SelectElement("Year")
	if y == nil {
		return "", false
	}
	s := strings.TrimSpace(y.Text())
	return s, s != ""
}

// Author is one <Author> entry. Empty strings mean the element was absent.
type Author struct {
	ForeName    string
	LastName    string
	Affiliation string
}

// DisplayName is "ForeName LastName" trimmed; empty when both are missing.
func (a Author) DisplayName() string {
	return strings.TrimSpace(a.ForeName + " " + a.LastName)
}

// Authors returns every <Author> below the record in document order. Only
// the first AffiliationInfo of each author is read.
func (r *Record) Authors() []Author {
	if r.Element() == nil {
		return nil
	}
	els := r.el.FindElementsPath(pathAuthors)
	authors := make([]Author, 0, len(els))
	for _, el := range els {
		a := Author{
			ForeName: childText(el, "ForeName"),
			LastName: childText(el, "LastName"),
		}
		if info := el.SelectElement("AffiliationInfo"); info != nil {
			a.Affiliation = childText(info, "Affiliation")
		}
		authors = append(authors, a)
	}
	return authors
}

// CorrespondingAffiliation returns the affiliation text under
// AuthorList/Author/CorrespondingAuthor, when present.
func (r *Record) CorrespondingAffiliation() (string, bool) {
	if r.Element() == nil {
		return "", false
	}
	ca := r.el.FindElementPath(pathCorresponding)
	if ca == nil {
		return "", false
	}
	el := ca.FindElementPath(pathAffiliation)
	if el == nil {
		return "", false
	}
	return el.Text(), el.Text() != ""
}

func (r *Record) findText(p etree.Path) (string, bool) {
	if r.Element() == nil {
		return "", false
	}
	el := r.el.FindElementPath(p)
	if el == nil {
		return "", false
	}
	s := strings.TrimSpace(el.Text())
	return s, s != ""
}

func childText(el *etree.Element, tag string) string {
	c := el.SelectElement(tag)
	if c == nil {
		return ""
	}
	return c.Text()
}

// innerText concatenates all character data below el.
func innerText(el *etree.Element) string {
	var b strings.Builder
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				b.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(el)
	return b.String()
}
