// Package reconcile joins partners and solutions into a single document.
//
// Reconcile indexes partners by key and routes every solution either to
// its owning partner or to an unmatched group named after the owner value
// the solution carried. Assemble then orders the outcome for output.
package reconcile

import (
	"github.com/agentstation/partnermap/pkg/assets"
	"github.com/agentstation/partnermap/pkg/keys"
)

// SolutionRef is a solution attached to a partner or unmatched group.
type SolutionRef struct {
	Name string
	ID   keys.ID
}

// PartnerRecord is a partner with the solutions matched to it, in the
// order the solutions were encountered.
type PartnerRecord struct {
	Key       string // lookup key; empty for unkeyed partners
	ID        keys.ID
	Name      string
	Solutions []SolutionRef
}

// UnmatchedGroup collects solutions whose owner matched no partner.
type UnmatchedGroup struct {
	GroupKey  string // raw owner value the solutions carried
	Name      string // first non-empty owner name seen, id mode only
	Solutions []SolutionRef
}

// Stats counts what a reconciliation saw.
type Stats struct {
	Partners          int `json:"partners" yaml:"partners"`
	DuplicatePartners int `json:"duplicatePartners" yaml:"duplicatePartners"`
	UnkeyedPartners   int `json:"unkeyedPartners" yaml:"unkeyedPartners"`
	Solutions         int `json:"solutions" yaml:"solutions"`
	Matched           int `json:"matched" yaml:"matched"`
	Unmatched         int `json:"unmatched" yaml:"unmatched"`
	Groups            int `json:"groups" yaml:"groups"`
}

// Result is the unsorted outcome of a reconciliation. Records are stored
// in arenas in insertion order with a key index beside each.
type Result struct {
	mode KeyMode

	partners []*PartnerRecord
	index    map[string]int

	unkeyed []*PartnerRecord

	groups     []*UnmatchedGroup
	groupIndex map[string]int

	stats Stats
}

// Reconcile builds the partner index, then attaches every solution to
// exactly one partner or unmatched group. Modes other than ModeName and
// ModeID fall back to DefaultMode.
func Reconcile(partners []assets.Partner, solutions []assets.Solution, mode KeyMode) *Result {
	if !mode.Valid() {
		mode = DefaultMode
	}

	r := &Result{
		mode:       mode,
		partners:   make([]*PartnerRecord, 0, len(partners)),
		index:      make(map[string]int, len(partners)),
		groups:     make([]*UnmatchedGroup, 0),
		groupIndex: make(map[string]int),
	}

	for _, p := range partners {
		r.addPartner(p)
	}
	for _, s := range solutions {
		r.addSolution(s)
	}

	r.stats.Partners = len(r.partners) + len(r.unkeyed)
	r.stats.UnkeyedPartners = len(r.unkeyed)
	r.stats.Groups = len(r.groups)
	return r
}

func (r *Result) addPartner(p assets.Partner) {
	if r.mode == ModeID && p.ID.Absent() {
		r.unkeyed = append(r.unkeyed, &PartnerRecord{
			ID:        p.ID,
			Name:      p.Name,
			Solutions: []SolutionRef{},
		})
		return
	}

	key := r.partnerKey(p)
	if _, exists := r.index[key]; exists {
		r.stats.DuplicatePartners++
		return
	}

	r.index[key] = len(r.partners)
	r.partners = append(r.partners, &PartnerRecord{
		Key:       key,
		ID:        p.ID,
		Name:      p.Name,
		Solutions: []SolutionRef{},
	})
}

func (r *Result) addSolution(s assets.Solution) {
	r.stats.Solutions++
	ref := SolutionRef{Name: s.Name, ID: s.ID}

	if key, ok := r.solutionKey(s); ok {
		if i, found := r.index[key]; found {
			r.partners[i].Solutions = append(r.partners[i].Solutions, ref)
			r.stats.Matched++
			return
		}
	}

	r.stats.Unmatched++
	groupKey := r.groupKey(s)
	i, found := r.groupIndex[groupKey]
	if !found {
		i = len(r.groups)
		r.groupIndex[groupKey] = i
		r.groups = append(r.groups, &UnmatchedGroup{
			GroupKey:  groupKey,
			Solutions: []SolutionRef{},
		})
	}

	// In name mode the group key already is the owner name.
	g := r.groups[i]
	if r.mode == ModeID && g.Name == "" && s.OwnerName != "" {
		g.Name = s.OwnerName
	}
	g.Solutions = append(g.Solutions, ref)
}

func (r *Result) partnerKey(p assets.Partner) string {
	if r.mode == ModeID {
		return p.ID.Key()
	}
	return keys.Name(p.Name)
}

// solutionKey returns the key used to look up the owning partner. An
// absent owner identifier never matches.
func (r *Result) solutionKey(s assets.Solution) (string, bool) {
	if r.mode == ModeID {
		if s.OwnerID.Absent() {
			return "", false
		}
		return s.OwnerID.Key(), true
	}
	return keys.Name(s.OwnerName), true
}

// groupKey is the raw owner value, not normalized.
func (r *Result) groupKey(s assets.Solution) string {
	if r.mode == ModeID {
		return s.OwnerID.Key()
	}
	return s.OwnerName
}

// Mode returns the key mode the result was built with.
func (r *Result) Mode() KeyMode {
	return r.mode
}

// Partner returns the keyed partner for key.
func (r *Result) Partner(key string) (*PartnerRecord, bool) {
	i, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return r.partners[i], true
}

// Group returns the unmatched group for a raw owner value.
func (r *Result) Group(groupKey string) (*UnmatchedGroup, bool) {
	i, ok := r.groupIndex[groupKey]
	if !ok {
		return nil, false
	}
	return r.groups[i], true
}

// Partners returns keyed partners in insertion order.
func (r *Result) Partners() []*PartnerRecord {
	return r.partners
}

// Unkeyed returns partners that had no identifier in id mode.
func (r *Result) Unkeyed() []*PartnerRecord {
	return r.unkeyed
}

// Groups returns unmatched groups in insertion order.
func (r *Result) Groups() []*UnmatchedGroup {
	return r.groups
}

// Stats returns reconciliation counters.
func (r *Result) Stats() Stats {
	return r.stats
}
