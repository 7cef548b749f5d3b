package reconcile

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/partnermap/pkg/assets"
	"github.com/agentstation/partnermap/pkg/keys"
)

func names(refs []SolutionRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Name)
	}
	return out
}

func TestReconcileByName(t *testing.T) {
	partners := []assets.Partner{{Name: "Acme"}}
	solutions := []assets.Solution{
		{Name: "Sol1", OwnerName: "acme"},
		{Name: "Sol2", OwnerName: "Other Co"},
	}

	r := Reconcile(partners, solutions, ModeName)

	acme, ok := r.Partner("acme")
	require.True(t, ok)
	assert.Equal(t, "Acme", acme.Name)
	assert.Equal(t, []string{"Sol1"}, names(acme.Solutions))

	other, ok := r.Group("Other Co")
	require.True(t, ok)
	assert.Equal(t, []string{"Sol2"}, names(other.Solutions))
	assert.Empty(t, other.Name)

	assert.Equal(t, Stats{Partners: 1, Solutions: 2, Matched: 1, Unmatched: 1, Groups: 1}, r.Stats())
}

func TestReconcileNameNormalization(t *testing.T) {
	partners := []assets.Partner{{Name: " ACME Corp "}}
	solutions := []assets.Solution{
		{Name: "a", OwnerName: "acme corp"},
		{Name: "b", OwnerName: "Acme Corp\t"},
		{Name: "c", OwnerName: "ACME CORP"},
	}

	r := Reconcile(partners, solutions, ModeName)
	p, ok := r.Partner("acme corp")
	require.True(t, ok)
	assert.Equal(t, " ACME Corp ", p.Name)
	assert.Equal(t, []string{"a", "b", "c"}, names(p.Solutions))
	assert.Empty(t, r.Groups())
}

func TestReconcileUnmatchedGroupsUseRawKey(t *testing.T) {
	solutions := []assets.Solution{
		{Name: "a", OwnerName: "Ghost"},
		{Name: "b", OwnerName: "ghost"},
		{Name: "c", OwnerName: "Ghost"},
	}

	r := Reconcile(nil, solutions, ModeName)
	require.Len(t, r.Groups(), 2)

	g, ok := r.Group("Ghost")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "c"}, names(g.Solutions))

	g, ok = r.Group("ghost")
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, names(g.Solutions))
}

func TestReconcileFirstPartnerWins(t *testing.T) {
	partners := []assets.Partner{
		{ID: keys.NumberID("1"), Name: "First"},
		{ID: keys.StringID("1"), Name: "Second"},
	}

	r := Reconcile(partners, nil, ModeID)
	require.Len(t, r.Partners(), 1)
	p, _ := r.Partner("1")
	assert.Equal(t, "First", p.Name)
	assert.Equal(t, 1, r.Stats().DuplicatePartners)

	r = Reconcile([]assets.Partner{{Name: "Acme"}, {Name: "ACME"}}, nil, ModeName)
	require.Len(t, r.Partners(), 1)
	assert.Equal(t, "Acme", r.Partners()[0].Name)
}

func TestReconcileByID(t *testing.T) {
	partners := []assets.Partner{
		{ID: keys.NumberID("10"), Name: "Acme"},
		{ID: keys.StringID("20"), Name: "Beta"},
		{Name: "No Id"},
	}
	solutions := []assets.Solution{
		{ID: keys.StringID("s1"), Name: "One", OwnerID: keys.StringID("10")},
		{ID: keys.StringID("s2"), Name: "Two", OwnerID: keys.NumberID("20")},
		{ID: keys.StringID("s3"), Name: "Three", OwnerID: keys.NumberID("30")},
		{ID: keys.StringID("s4"), Name: "Four", OwnerID: keys.NumberID("30"), OwnerName: "Gamma"},
		{ID: keys.StringID("s5"), Name: "Five", OwnerName: "Delta"},
		{ID: keys.StringID("s6"), Name: "Six", OwnerID: keys.NumberID("30"), OwnerName: "Gamma Ltd"},
	}

	r := Reconcile(partners, solutions, ModeID)

	acme, ok := r.Partner("10")
	require.True(t, ok)
	assert.Equal(t, []string{"One"}, names(acme.Solutions))

	beta, ok := r.Partner("20")
	require.True(t, ok)
	assert.Equal(t, []string{"Two"}, names(beta.Solutions))

	require.Len(t, r.Unkeyed(), 1)
	assert.Equal(t, "No Id", r.Unkeyed()[0].Name)
	assert.Empty(t, r.Unkeyed()[0].Solutions)

	gamma, ok := r.Group("30")
	require.True(t, ok)
	assert.Equal(t, []string{"Three", "Four", "Six"}, names(gamma.Solutions))
	assert.Equal(t, "Gamma", gamma.Name, "first non-empty owner name is kept")

	missing, ok := r.Group("")
	require.True(t, ok)
	assert.Equal(t, []string{"Five"}, names(missing.Solutions))
	assert.Equal(t, "Delta", missing.Name)

	assert.Equal(t, Stats{
		Partners:        3,
		UnkeyedPartners: 1,
		Solutions:       6,
		Matched:         2,
		Unmatched:       4,
		Groups:          2,
	}, r.Stats())
}

func TestReconcileAbsentOwnerNeverMatchesEmptyID(t *testing.T) {
	partners := []assets.Partner{{ID: keys.StringID(""), Name: "Blank"}}
	solutions := []assets.Solution{{Name: "Orphan"}}

	r := Reconcile(partners, solutions, ModeID)
	blank, ok := r.Partner("")
	require.True(t, ok)
	assert.Empty(t, blank.Solutions)
	assert.Equal(t, 1, r.Stats().Unmatched)
}

func TestReconcileNoDeduplication(t *testing.T) {
	solutions := []assets.Solution{
		{Name: "Same", OwnerName: "Acme"},
		{Name: "Same", OwnerName: "Acme"},
	}
	r := Reconcile([]assets.Partner{{Name: "Acme"}}, solutions, ModeName)
	p, _ := r.Partner("acme")
	assert.Len(t, p.Solutions, 2)
}

func TestReconcileInvalidModeFallsBack(t *testing.T) {
	r := Reconcile(nil, nil, KeyMode("bogus"))
	assert.Equal(t, DefaultMode, r.Mode())
}

// randomInput builds overlapping partner and solution sets.
func randomInput(rng *rand.Rand, mode KeyMode) ([]assets.Partner, []assets.Solution) {
	owners := []string{"Acme", "acme ", "Beta", "Gamma", "Ghost", "", "ÉCOLE", "école"}

	partners := make([]assets.Partner, 0, 20)
	for i := 0; i < 20; i++ {
		p := assets.Partner{Name: owners[rng.Intn(len(owners))]}
		if mode == ModeID && rng.Intn(5) > 0 {
			p.ID = keys.NumberID(fmt.Sprint(rng.Intn(8)))
		}
		partners = append(partners, p)
	}

	solutions := make([]assets.Solution, 0, 60)
	for i := 0; i < 60; i++ {
		s := assets.Solution{
			Name:      fmt.Sprintf("sol-%d", i),
			OwnerName: owners[rng.Intn(len(owners))],
		}
		if mode == ModeID && rng.Intn(6) > 0 {
			s.OwnerID = keys.StringID(fmt.Sprint(rng.Intn(12)))
		}
		solutions = append(solutions, s)
	}
	return partners, solutions
}

func TestReconcilePartitionProperty(t *testing.T) {
	for _, mode := range Modes() {
		for seed := int64(1); seed <= 25; seed++ {
			rng := rand.New(rand.NewSource(seed))
			partners, solutions := randomInput(rng, mode)
			r := Reconcile(partners, solutions, mode)

			seen := make(map[string]int)
			for _, p := range append(append([]*PartnerRecord{}, r.Partners()...), r.Unkeyed()...) {
				for _, s := range p.Solutions {
					seen[s.Name]++
				}
			}
			for _, g := range r.Groups() {
				for _, s := range g.Solutions {
					seen[s.Name]++
				}
			}

			require.Len(t, seen, len(solutions), "mode %s seed %d", mode, seed)
			for name, n := range seen {
				assert.Equal(t, 1, n, "solution %s placed %d times", name, n)
			}

			st := r.Stats()
			assert.Equal(t, len(solutions), st.Matched+st.Unmatched)
			assert.Equal(t, len(partners), st.Partners+st.DuplicatePartners)
		}
	}
}
