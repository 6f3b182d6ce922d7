// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package affiliation decides whether an author affiliation names a
// commercial organization and pulls email addresses out of affiliation text.
//
// Classification is a case-insensitive substring match against a fixed
// keyword table. Short tokens such as "inc" or "ltd" also match inside
// unrelated words ("Princeton", "Lincoln"); that is accepted behaviour.
package affiliation

import "strings"

// commercialKeywords must stay lowercase.
var commercialKeywords = [...]string{
	"pharma",
	"biotech",
	"therapeutics",
	"genomics",
	"diagnostics",
	"inc",
	"corp",
	"ltd",
	"gmbh",
	"s.a.",
	"s.r.l",
	"pharmaceutical",
	"biotechnology",
}

// Keywords returns a copy of the default commercial keyword table.
func Keywords() []string {
	out := make([]string, len(commercialKeywords))
	copy(out, commercialKeywords[:])
	return out
}

// Classifier matches affiliation strings against a keyword table captured
// at construction. The zero value matches nothing.
type Classifier struct {
	keywords []string
}

// NewClassifier returns a Classifier for keywords. Keywords are lowercased
// and empty entries dropped; the caller's slice is not retained.
func NewClassifier(keywords []string) Classifier {
	c := Classifier{keywords: make([]string, 0, len(keywords))}
	for _, k := range keywords {
		k = strings.ToLower(k)
		if k != "" {
			c.keywords = append(c.keywords, k)
		}
	}
	return c
}

// Default is the classifier over the built-in keyword table.
var Default = NewClassifier(Keywords())

// IsCommercial reports whether affiliation contains any keyword. An empty
// affiliation is treated as absent and never matches.
func (c Classifier) IsCommercial(affiliation string) bool {
	if affiliation == "" {
		return false
	}
	lower := strings.ToLower(affiliation)
	for _, k := range c.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// MatchedKeywords returns the keywords found in affiliation, in table order.
func (c Classifier) MatchedKeywords(affiliation string) []string {
	if affiliation == "" {
		return nil
	}
	lower := strings.ToLower(affiliation)
	var out []string
	for _, k := range c.keywords {
		if strings.Contains(lower, k) {
			out = append(out, k)
		}
	}
	return out
}

// IsCommercial classifies affiliation with the Default classifier.
func IsCommercial(affiliation string) bool {
	return Default.IsCommercial(affiliation)
}
