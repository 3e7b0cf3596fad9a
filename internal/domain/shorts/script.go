package shorts

import (
	"fmt"
	"strings"
	"time"

	"github.com/forPelevin/repurpose/internal/types"
)

// Script renders segments as a plain-text script: a heading with the slot
// role and its time range, followed by the content, one block per segment.
func Script(segments []types.ShortSegment) string {
	var b strings.Builder
	var at time.Duration
	for i, s := range segments {
		if i > 0 {
			b.WriteString("\n")
		}
		end := at + s.Duration
		fmt.Fprintf(&b, "[%d] %s (%s-%s)\n", s.Order, strings.ToUpper(string(s.Role)), clock(at), clock(end))
		b.WriteString(strings.TrimSpace(s.Content))
		b.WriteString("\n")
		at = end
	}
	return b.String()
}

func clock(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	return fmt.Sprintf("%d:%04.1f", m, d.Seconds())
}
