package output

import (
	"strconv"
	"strings"

	"github.com/agentstation/partnermap/pkg/assets"
	"github.com/agentstation/partnermap/pkg/collector"
	"github.com/agentstation/partnermap/pkg/keys"
	"github.com/agentstation/partnermap/pkg/reconcile"
)

// PartnerList renders collected partners.
type PartnerList []assets.Partner

// TableData implements Tabular.
func (l PartnerList) TableData(wide bool) Data {
	data := Data{Headers: []string{"name"}}
	if wide {
		data.Headers = []string{"#", "id", "name", "key"}
		data.ColumnAlignment = []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft}
	}
	for i, p := range l {
		if wide {
			data.Rows = append(data.Rows, []string{strconv.Itoa(i + 1), idCell(p.ID), p.Name, keys.Name(p.Name)})
			continue
		}
		data.Rows = append(data.Rows, []string{p.Name})
	}
	return data
}

// SolutionList renders collected solutions.
type SolutionList []assets.Solution

// TableData implements Tabular.
func (l SolutionList) TableData(wide bool) Data {
	data := Data{Headers: []string{"solution", "partner"}}
	if wide {
		data.Headers = []string{"#", "solution_id", "solution", "partner_id", "partner"}
		data.ColumnAlignment = []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft}
	}
	for i, s := range l {
		if wide {
			data.Rows = append(data.Rows, []string{strconv.Itoa(i + 1), idCell(s.ID), s.Name, idCell(s.OwnerID), s.OwnerName})
			continue
		}
		data.Rows = append(data.Rows, []string{s.Name, s.OwnerName})
	}
	return data
}

// DocumentView renders a reconciled document, one row per partner or
// unmatched group.
type DocumentView struct {
	*reconcile.Document
}

// TableData implements Tabular.
func (v DocumentView) TableData(wide bool) Data {
	data := Data{
		Headers:         []string{"partner", "solutions", "matched"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignCenter},
	}
	if wide {
		data.Headers = []string{"id", "partner", "solutions", "matched", "solution_names"}
		data.ColumnAlignment = []Align{AlignLeft, AlignLeft, AlignRight, AlignCenter, AlignLeft}
	}

	for _, p := range v.Partners {
		row := []string{p.Name, strconv.Itoa(len(p.Solutions)), "yes"}
		if wide {
			id := ""
			if p.ID != nil {
				id = idCell(*p.ID)
			}
			row = []string{id, p.Name, strconv.Itoa(len(p.Solutions)), "yes", solutionNames(p.Solutions)}
		}
		data.Rows = append(data.Rows, row)
	}
	for _, g := range v.Unmatched {
		name := g.GroupKey
		if g.Name != "" && g.Name != g.GroupKey {
			name = g.Name + " (" + g.GroupKey + ")"
		}
		row := []string{name, strconv.Itoa(len(g.Solutions)), "no"}
		if wide {
			row = []string{g.GroupKey, g.Name, strconv.Itoa(len(g.Solutions)), "no", solutionNames(g.Solutions)}
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// Summary renders the counters of a run.
type Summary struct {
	Location  string
	Datasets  []collector.Stats
	Reconcile reconcile.Stats
}

// TableData implements Tabular.
func (s Summary) TableData(wide bool) Data {
	data := Data{
		Headers:         []string{"metric", "value"},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
	add := func(metric string, value int) {
		data.Rows = append(data.Rows, []string{metric, strconv.Itoa(value)})
	}

	for _, d := range s.Datasets {
		add(d.Dataset+" fetched", d.Items)
		if wide {
			add(d.Dataset+" pages", d.Pages)
			add(d.Dataset+" advertised", d.Total)
			add(d.Dataset+" skipped", d.Dropped)
		}
		if d.Stopped != "" {
			data.Rows = append(data.Rows, []string{d.Dataset + " stopped early", d.Stopped})
		}
	}

	add("partners in output", s.Reconcile.Partners)
	if wide {
		add("duplicate partners", s.Reconcile.DuplicatePartners)
		add("partners without id", s.Reconcile.UnkeyedPartners)
	}
	add("solutions matched", s.Reconcile.Matched)
	add("solutions unmatched", s.Reconcile.Unmatched)
	add("unmatched groups", s.Reconcile.Groups)

	if s.Location != "" {
		data.Rows = append(data.Rows, []string{"saved to", s.Location})
	}
	return data
}

func idCell(id keys.ID) string {
	if id.Absent() {
		return "-"
	}
	return id.Key()
}

func solutionNames(entries []reconcile.SolutionEntry) string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return strings.Join(names, ", ")
}
