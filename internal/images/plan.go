// Package images decides how many illustrations an article gets, sources
// them, and computes where in the flowing text they land.
package images

import (
	"github.com/pressroom-io/pressroom/internal/domain"
)

// MaxImages bounds how many illustrations a single article may carry.
const MaxImages = 3

// positionFractions maps requested image count to fractional insertion
// offsets within the paragraph sequence.
var positionFractions = map[int][]float64{
	1: {0.40},
	2: {0.33, 0.66},
	3: {0.25, 0.50, 0.75},
}

// Plan is the per-article image decision: one source per requested slot.
// Derived purely from count and preference, no side effects.
type Plan struct {
	Slots []domain.ImageSource
}

func (p Plan) Count() int {
	return len(p.Slots)
}

// NewPlan assigns a source to each requested slot. Exactly two images force a
// stock/generated mix regardless of stated preference; every other count uses
// the preference for all slots. Out-of-range counts clamp to [0, MaxImages].
func NewPlan(count int, pref domain.ImageSource) Plan {
	if pref == domain.SourceNone || count <= 0 {
		return Plan{}
	}
	if count > MaxImages {
		count = MaxImages
	}

	if count == 2 {
		return Plan{Slots: []domain.ImageSource{domain.SourceStock, domain.SourceGenerated}}
	}

	slots := make([]domain.ImageSource, count)
	for i := range slots {
		slots[i] = pref
	}
	return Plan{Slots: slots}
}

// Positions computes paragraph indices for n images over paragraphCount
// paragraphs. Indices are strictly increasing and within [0, paragraphCount).
// Bodies with fewer than 3 paragraphs get no interleaved positions; callers
// append instead.
func Positions(n, paragraphCount int) []int {
	if n <= 0 || paragraphCount < 3 {
		return nil
	}
	if n > MaxImages {
		n = MaxImages
	}

	fractions := positionFractions[n]
	positions := make([]int, 0, len(fractions))
	for _, f := range fractions {
		pos := int(float64(paragraphCount) * f)
		if pos >= paragraphCount {
			pos = paragraphCount - 1
		}
		// Fractions collide on small paragraph counts; nudge forward to keep
		// the sequence strictly increasing.
		if len(positions) > 0 && pos <= positions[len(positions)-1] {
			pos = positions[len(positions)-1] + 1
			if pos >= paragraphCount {
				break
			}
		}
		positions = append(positions, pos)
	}
	return positions
}
