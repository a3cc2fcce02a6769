package risk

import (
	"fmt"
	"sort"
)

// Categories buckets PDs into reporting labels. Edges are right-inclusive
// interval limits, so Labels[i] covers (Edges[i], Edges[i+1]]. The lowest
// edge itself belongs to the first label so that a PD of exactly zero is
// still reported.
//
// These are reporting buckets only. Risk weights come from Tiers, which is
// configured separately even though the default boundaries coincide.
type Categories struct {
	Edges  []float64 `json:"edges" yaml:"edges"`
	Labels []string  `json:"labels" yaml:"labels"`
}

func DefaultCategories() Categories {
	return Categories{
		Edges:  []float64{0, 0.05, 0.10, 0.30, 1.0},
		Labels: []string{"Low", "Medium", "High", "Very High"},
	}
}

// Category returns the label for pd, or false if pd lies outside the edges.
func (c Categories) Category(pd float64) (string, bool) {
	n := len(c.Edges)
	if n < 2 || pd < c.Edges[0] || pd > c.Edges[n-1] {
		return "", false
	}
	for i := 1; i < n; i++ {
		if pd <= c.Edges[i] {
			return c.Labels[i-1], true
		}
	}
	return "", false
}

func (c Categories) Validate() error {
	if len(c.Edges) < 2 {
		return fmt.Errorf("categories: need at least two edges")
	}
	if len(c.Labels) != len(c.Edges)-1 {
		return fmt.Errorf("categories: need %d labels for %d edges, got %d",
			len(c.Edges)-1, len(c.Edges), len(c.Labels))
	}
	for i := 1; i < len(c.Edges); i++ {
		if !finite(c.Edges[i]) || c.Edges[i] <= c.Edges[i-1] {
			return fmt.Errorf("categories: edges must be strictly increasing")
		}
	}
	return nil
}

// Totals are portfolio-level aggregates.
type Totals struct {
	Loans    int     `json:"loans"`
	Exposure float64 `json:"exposure"`
	RWA      float64 `json:"rwa"`
	EL       float64 `json:"el"`

	// WeightedPD is sum(PD*EAD) / sum(EAD).
	WeightedPD Ratio `json:"weighted_pd"`
	ELPct      Ratio `json:"el_pct"`
}

type CategoryBreakdown struct {
	Category    string  `json:"category"`
	Loans       int     `json:"loans"`
	EAD         float64 `json:"ead"`
	EL          float64 `json:"el"`
	ExposurePct Ratio   `json:"exposure_pct"`
	ELPctOfEAD  Ratio   `json:"el_pct_of_ead"`
}

type Summary struct {
	Totals        Totals              `json:"totals"`
	Categories    []CategoryBreakdown `json:"categories"`
	Uncategorized int                 `json:"uncategorized"`
}

// Categorized is an assessed loan with its reporting label attached.
type Categorized struct {
	Assessment
	Category string `json:"category"`
}

// Summarize aggregates assessed loans. Every label appears in the
// breakdown, including empty ones. The input slice is not modified; the
// labelled rows are returned as copies.
func (c Categories) Summarize(rows []Assessment) (Summary, []Categorized) {
	var (
		s         Summary
		weighted  float64
		labelled  = make([]Categorized, len(rows))
		breakdown = make([]CategoryBreakdown, len(c.Labels))
		index     = make(map[string]int, len(c.Labels))
	)
	for i, l := range c.Labels {
		breakdown[i].Category = l
		index[l] = i
	}

	for i, r := range rows {
		s.Totals.Loans++
		s.Totals.Exposure += r.EAD
		s.Totals.RWA += r.RWA
		s.Totals.EL += r.EL
		weighted += r.PD * r.EAD

		labelled[i] = Categorized{Assessment: r}
		cat, ok := c.Category(r.PD)
		if !ok {
			s.Uncategorized++
			continue
		}
		labelled[i].Category = cat
		b := &breakdown[index[cat]]
		b.Loans++
		b.EAD += r.EAD
		b.EL += r.EL
	}

	s.Totals.WeightedPD = ratio(weighted, s.Totals.Exposure)
	s.Totals.ELPct = percent(s.Totals.EL, s.Totals.Exposure)
	for i := range breakdown {
		breakdown[i].ExposurePct = percent(breakdown[i].EAD, s.Totals.Exposure)
		breakdown[i].ELPctOfEAD = percent(breakdown[i].EL, breakdown[i].EAD)
	}
	s.Categories = breakdown
	return s, labelled
}

// WeightBucket is the exposure carried at one risk weight.
type WeightBucket struct {
	Weight float64 `json:"weight"`
	Loans  int     `json:"loans"`
	EAD    float64 `json:"ead"`
	RWA    float64 `json:"rwa"`
}

// ExposureByWeight groups exposure by assigned risk weight, lowest first.
func ExposureByWeight(rows []Assessment) []WeightBucket {
	byWeight := map[float64]*WeightBucket{}
	for _, r := range rows {
		b, ok := byWeight[r.RiskWeight]
		if !ok {
			b = &WeightBucket{Weight: r.RiskWeight}
			byWeight[r.RiskWeight] = b
		}
		b.Loans++
		b.EAD += r.EAD
		b.RWA += r.RWA
	}

	out := make([]WeightBucket, 0, len(byWeight))
	for _, b := range byWeight {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weight < out[j].Weight })
	return out
}
