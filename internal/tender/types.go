// Package tender holds the procurement domain: conversation analysis, draft
// generation and review services, the template/clause catalog, and the
// per-session draft lifecycle.
package tender

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Domain is the procurement industry category driving template and clause
// selection.
type Domain string

const (
	DomainIT           Domain = "IT"
	DomainMedical      Domain = "Medical"
	DomainConstruction Domain = "Construction"
	DomainLogistics    Domain = "Logistics"
	DomainGeneral      Domain = "General"
	DomainUnspecified  Domain = "Unspecified"
)

// ParseDomain maps free-form domain text to a known Domain, case-insensitive.
func ParseDomain(s string) (Domain, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "it":
		return DomainIT, true
	case "medical":
		return DomainMedical, true
	case "construction":
		return DomainConstruction, true
	case "logistics":
		return DomainLogistics, true
	case "general":
		return DomainGeneral, true
	case "unspecified":
		return DomainUnspecified, true
	}
	return DomainUnspecified, false
}

// Analysis is the typed record produced from a chat conversation.
type Analysis struct {
	KeyPoints           []string `json:"keyPoints"`
	Domain              Domain   `json:"domain"`
	RecommendedTemplate string   `json:"recommendedTemplate"`
	Reasoning           string   `json:"reasoning"`
	Structure           []string `json:"structure"`
}

// Clause is a pre-authored compliance text block associated with a Domain.
type Clause struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Message is one turn of the assistant conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// FallbackAnalysis is the fixed record returned whenever the analysis service
// fails or returns something undecodable.
func FallbackAnalysis() Analysis {
	return Analysis{
		KeyPoints:           []string{"Unable to analyze text at this moment."},
		Domain:              DomainUnspecified,
		RecommendedTemplate: "General Request for Proposal",
		Reasoning:           "Analysis service unavailable.",
		Structure:           []string{"1. Project Overview", "2. Scope of Work", "3. Pricing"},
	}
}

// decodeAnalysis performs the validated parse of the model's JSON: either a
// structured value or an explicit decode error, never a blind cast. Unknown
// domains and empty key points count as schema mismatches.
func decodeAnalysis(raw json.RawMessage) (Analysis, error) {
	var a Analysis
	if err := json.Unmarshal(raw, &a); err != nil {
		return Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	if len(a.KeyPoints) == 0 {
		return Analysis{}, fmt.Errorf("decode analysis: no key points")
	}
	if d, ok := ParseDomain(string(a.Domain)); ok {
		a.Domain = d
	} else {
		return Analysis{}, fmt.Errorf("decode analysis: unknown domain %q", a.Domain)
	}
	if a.RecommendedTemplate == "" {
		a.RecommendedTemplate = "General Request for Proposal"
	}
	return a, nil
}
