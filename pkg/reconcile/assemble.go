package reconcile

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/agentstation/partnermap/pkg/errors"
	"github.com/agentstation/partnermap/pkg/keys"
)

// Document is the joined output.
type Document struct {
	Partners  []PartnerEntry   `json:"partners" yaml:"partners"`
	Unmatched []UnmatchedEntry `json:"unmatched" yaml:"unmatched"`
}

// PartnerEntry is a partner and its solutions. ID is set only in id mode,
// where it may hold an absent identifier and renders as null.
type PartnerEntry struct {
	ID        *keys.ID        `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string          `json:"partnerName" yaml:"partnerName"`
	Solutions []SolutionEntry `json:"solutions" yaml:"solutions"`
}

// UnmatchedEntry is a group of solutions whose owner matched no partner.
type UnmatchedEntry struct {
	GroupKey  string          `json:"groupKey" yaml:"groupKey"`
	Name      string          `json:"partnerName,omitempty" yaml:"partnerName,omitempty"`
	Solutions []SolutionEntry `json:"solutions" yaml:"solutions"`
}

// SolutionEntry is a solution in the output.
type SolutionEntry struct {
	Name string   `json:"solutionName" yaml:"solutionName"`
	ID   *keys.ID `json:"solutionId,omitempty" yaml:"solutionId,omitempty"`
}

// SolutionCount returns the number of solutions across partners and groups.
func (d *Document) SolutionCount() (matched, unmatched int) {
	for _, p := range d.Partners {
		matched += len(p.Solutions)
	}
	for _, g := range d.Unmatched {
		unmatched += len(g.Solutions)
	}
	return matched, unmatched
}

// FindPartner returns the partner whose identifier key equals query, or
// failing that the first whose display name matches it ignoring case.
func (d *Document) FindPartner(query string) (*PartnerEntry, error) {
	for i := range d.Partners {
		if id := d.Partners[i].ID; id != nil && !id.Absent() && id.Key() == query {
			return &d.Partners[i], nil
		}
	}
	for i := range d.Partners {
		if keys.SameName(d.Partners[i].Name, query) {
			return &d.Partners[i], nil
		}
	}
	return nil, errors.NewNotFoundError("partner", query)
}

// Assemble orders a reconciliation result for output. Partners, keyed
// first and then unkeyed, are stable-sorted by display name. Groups are
// stable-sorted by group key. Both use root-locale collation.
func Assemble(result *Result) *Document {
	withIDs := result.Mode() == ModeID
	// A Collator keeps internal buffers and must not be shared.
	col := collate.New(language.Und)

	doc := &Document{
		Partners:  make([]PartnerEntry, 0, len(result.partners)+len(result.unkeyed)),
		Unmatched: make([]UnmatchedEntry, 0, len(result.groups)),
	}

	for _, list := range [][]*PartnerRecord{result.partners, result.unkeyed} {
		for _, p := range list {
			entry := PartnerEntry{
				Name:      p.Name,
				Solutions: solutionEntries(p.Solutions, withIDs),
			}
			if withIDs {
				id := p.ID
				entry.ID = &id
			}
			doc.Partners = append(doc.Partners, entry)
		}
	}

	for _, g := range result.groups {
		doc.Unmatched = append(doc.Unmatched, UnmatchedEntry{
			GroupKey:  g.GroupKey,
			Name:      g.Name,
			Solutions: solutionEntries(g.Solutions, withIDs),
		})
	}

	slices.SortStableFunc(doc.Partners, func(a, b PartnerEntry) int {
		return col.CompareString(a.Name, b.Name)
	})
	slices.SortStableFunc(doc.Unmatched, func(a, b UnmatchedEntry) int {
		return col.CompareString(a.GroupKey, b.GroupKey)
	})

	return doc
}

func solutionEntries(refs []SolutionRef, withIDs bool) []SolutionEntry {
	out := make([]SolutionEntry, 0, len(refs))
	for _, s := range refs {
		entry := SolutionEntry{Name: s.Name}
		if withIDs {
			id := s.ID
			entry.ID = &id
		}
		out = append(out, entry)
	}
	return out
}
