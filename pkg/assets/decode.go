package assets

import "github.com/agentstation/partnermap/pkg/keys"

// Each decoder returns false when the asset does not describe a record of
// its kind. A false result is not an error; the collector drops it.

type partnerContent struct {
	ContentJSON *struct {
		Partners *struct {
			PartnerDisplay *struct {
				Name text `json:"Name"`
			} `json:"PartnerDisplay"`
			Partner *struct {
				ID   keys.ID `json:"Id"`
				Name text    `json:"Name"`
			} `json:"Partner"`
		} `json:"Partners"`
	} `json:"contentJson"`
}

type solutionContent struct {
	ContentJSON *struct {
		Solutions *struct {
			Solution *struct {
				ID        keys.ID `json:"solutionid"`
				Name      text    `json:"solutionname"`
				OwnerID   keys.ID `json:"solutionpartner"`
				OwnerName text    `json:"solutionpartnername"`
			} `json:"Solution"`
		} `json:"Solutions"`
	} `json:"contentJson"`
}

// PartnerByName extracts contentJson.Partners.PartnerDisplay.Name.
// Assets without a non-empty display name are skipped.
func PartnerByName(a Asset) (Partner, bool) {
	var c partnerContent
	if err := a.Decode(&c); err != nil {
		return Partner{}, false
	}
	if c.ContentJSON == nil || c.ContentJSON.Partners == nil || c.ContentJSON.Partners.PartnerDisplay == nil {
		return Partner{}, false
	}
	name := string(c.ContentJSON.Partners.PartnerDisplay.Name)
	if name == "" {
		return Partner{}, false
	}
	return Partner{Name: name}, true
}

// PartnerByID extracts contentJson.Partners.Partner.{Id,Name}. Any asset
// carrying a Partner object is kept, even without an Id or a Name.
func PartnerByID(a Asset) (Partner, bool) {
	var c partnerContent
	if err := a.Decode(&c); err != nil {
		return Partner{}, false
	}
	if c.ContentJSON == nil || c.ContentJSON.Partners == nil || c.ContentJSON.Partners.Partner == nil {
		return Partner{}, false
	}
	p := c.ContentJSON.Partners.Partner
	return Partner{ID: p.ID, Name: string(p.Name)}, true
}

// SolutionByName extracts the solution name and owning partner name.
// Both must be non-empty.
func SolutionByName(a Asset) (Solution, bool) {
	var c solutionContent
	if err := a.Decode(&c); err != nil {
		return Solution{}, false
	}
	if c.ContentJSON == nil || c.ContentJSON.Solutions == nil || c.ContentJSON.Solutions.Solution == nil {
		return Solution{}, false
	}
	s := c.ContentJSON.Solutions.Solution
	if s.Name == "" || s.OwnerName == "" {
		return Solution{}, false
	}
	return Solution{Name: string(s.Name), OwnerName: string(s.OwnerName)}, true
}

// SolutionByID extracts the solution and its owner's identifier. Any
// asset carrying a Solution object is kept.
func SolutionByID(a Asset) (Solution, bool) {
	var c solutionContent
	if err := a.Decode(&c); err != nil {
		return Solution{}, false
	}
	if c.ContentJSON == nil || c.ContentJSON.Solutions == nil || c.ContentJSON.Solutions.Solution == nil {
		return Solution{}, false
	}
	s := c.ContentJSON.Solutions.Solution
	return Solution{
		ID:        s.ID,
		Name:      string(s.Name),
		OwnerID:   s.OwnerID,
		OwnerName: string(s.OwnerName),
	}, true
}
