// Package shorts maps selected highlights onto the slots of a narrative
// template and renders the result as a plain-text script.
package shorts

import (
	"errors"
	"time"

	"github.com/forPelevin/repurpose/internal/domain/keywords"
	"github.com/forPelevin/repurpose/internal/types"
)

var ErrNoSlots = errors.New("template has no slots")

// Keywords are the keyword sets the content resolvers search with.
type Keywords struct {
	Hook     keywords.Set
	Problem  keywords.Set
	Solution keywords.Set
	Conflict keywords.Set
}

type Request struct {
	// Highlights are the selected highlights, best ranked first.
	Highlights []types.RankedHighlight
	Slots      []types.SlotRole
	CustomHook string
	Target     time.Duration
	Keywords   Keywords
}

// Assemble fills every slot in order. Each slot gets an equal share of the
// target length; the last slot absorbs the rounding remainder so the
// durations always add up to Target.
func Assemble(req Request) ([]types.ShortSegment, error) {
	n := len(req.Slots)
	if n == 0 {
		return nil, ErrNoSlots
	}
	share := req.Target / time.Duration(n)
	rc := newResolveContext(req)

	out := make([]types.ShortSegment, 0, n)
	for i, role := range req.Slots {
		d := share
		if i == n-1 {
			d = req.Target - share*time.Duration(n-1)
		}
		out = append(out, types.ShortSegment{
			Role:     role,
			Content:  rc.resolve(role),
			Duration: d,
			Order:    i + 1,
		})
	}
	return out, nil
}

// TotalDuration sums segment durations.
func TotalDuration(segments []types.ShortSegment) time.Duration {
	var total time.Duration
	for _, s := range segments {
		total += s.Duration
	}
	return total
}
