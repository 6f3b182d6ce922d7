// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for pharma-papers.
package types

// NotAvailable is the placeholder for fields absent from a PubMed record.
const NotAvailable = "N/A"

// Column names of a Paper, in output order. CSV headers, console blocks and
// JSON keys all use these.
const (
	KeyPMID               = "PubmedID"
	KeyTitle              = "Title"
	KeyPublicationDate    = "Publication Date"
	KeyNonAcademicAuthors = "Non-academic Author(s)"
	KeyCompanies          = "Company Affiliation(s)"
	KeyEmail              = "Corresponding Author Email"
)

// Keys lists the six Paper columns in output order.
func Keys() []string {
	return []string{
		KeyPMID,
		KeyTitle,
		KeyPublicationDate,
		KeyNonAcademicAuthors,
		KeyCompanies,
		KeyEmail,
	}
}

// Paper is one qualifying PubMed article: at least one author carries an
// affiliation classified as commercial.
type Paper struct {
	// PMID is the PubMed identifier.
	PMID string `json:"PubmedID" yaml:"pmid"`

	// Title is the article title.
	Title string `json:"Title" yaml:"title"`

	// PublicationDate is the publication year as printed in PubDate/Year.
	PublicationDate string `json:"Publication Date" yaml:"publication_date"`

	// NonAcademicAuthors holds author display names joined by "; " in
	// source order. Duplicates are kept.
	NonAcademicAuthors string `json:"Non-academic Author(s)" yaml:"non_academic_authors"`

	// CompanyAffiliations holds the distinct matching affiliation strings,
	// sorted and joined by "; ".
	CompanyAffiliations string `json:"Company Affiliation(s)" yaml:"company_affiliations"`

	// CorrespondingEmail is the extracted email address or NotAvailable.
	CorrespondingEmail string `json:"Corresponding Author Email" yaml:"corresponding_email"`
}

// Values returns the paper's fields in the order of Keys.
func (p Paper) Values() []string {
	return []string{
		p.PMID,
		p.Title,
		p.PublicationDate,
		p.NonAcademicAuthors,
		p.CompanyAffiliations,
		p.CorrespondingEmail,
	}
}
