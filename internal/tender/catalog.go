package tender

// Catalog is the template/clause configuration store: synchronous lookups of
// section templates and standard clauses keyed by domain.
type Catalog struct {
	sections map[Domain][]string
	clauses  map[Domain][]Clause
}

func NewCatalog() *Catalog {
	return &Catalog{
		sections: map[Domain][]string{
			DomainIT: {
				"1. Project Overview",
				"2. Scope of Work",
				"3. Technical Requirements",
				"4. Service Levels",
				"5. Data Protection",
				"6. Pricing",
			},
			DomainMedical: {
				"1. Project Overview",
				"2. Scope of Supply",
				"3. Regulatory Compliance",
				"4. Quality Assurance",
				"5. Delivery and Storage",
				"6. Pricing",
			},
			DomainConstruction: {
				"1. Project Overview",
				"2. Scope of Work",
				"3. Site Conditions",
				"4. Health and Safety",
				"5. Schedule and Milestones",
				"6. Pricing",
			},
			DomainLogistics: {
				"1. Project Overview",
				"2. Scope of Services",
				"3. Routes and Volumes",
				"4. Tracking and Reporting",
				"5. Insurance and Liability",
				"6. Pricing",
			},
		},
		clauses: map[Domain][]Clause{
			DomainIT: {
				{ID: "it-dp-01", Title: "Data Protection", Content: "The supplier shall process personal data only on documented instructions from the buyer and in accordance with applicable data protection law."},
				{ID: "it-sla-01", Title: "Service Availability", Content: "The supplier shall maintain a monthly service availability of at least 99.5%, measured excluding scheduled maintenance windows agreed in advance."},
			},
			DomainMedical: {
				{ID: "med-reg-01", Title: "Regulatory Conformity", Content: "All supplied goods shall carry valid CE marking or equivalent regulatory approval for the buyer's jurisdiction and be accompanied by declarations of conformity."},
				{ID: "med-cold-01", Title: "Cold Chain", Content: "Temperature-sensitive goods shall be transported and stored within the manufacturer's specified range, with an unbroken, auditable temperature record."},
			},
			DomainConstruction: {
				{ID: "con-hs-01", Title: "Health and Safety", Content: "The contractor shall comply with all site health and safety regulations and appoint a qualified safety officer for the duration of the works."},
				{ID: "con-war-01", Title: "Defects Liability", Content: "The contractor shall remedy at its own cost any defect notified within twelve months of practical completion."},
			},
			DomainLogistics: {
				{ID: "log-ins-01", Title: "Cargo Insurance", Content: "The carrier shall maintain cargo insurance covering the full replacement value of goods in transit and provide certificates on request."},
			},
		},
	}
}

// Sections returns the section template for a domain. Domains without a
// dedicated template fall back to the general outline.
func (c *Catalog) Sections(d Domain) []string {
	if s, ok := c.sections[d]; ok {
		out := make([]string, len(s))
		copy(out, s)
		return out
	}
	return []string{"1. Project Overview", "2. Scope of Work", "3. Pricing"}
}

// Clauses returns the standard clauses for a domain, possibly empty.
func (c *Catalog) Clauses(d Domain) []Clause {
	s := c.clauses[d]
	out := make([]Clause, len(s))
	copy(out, s)
	return out
}
