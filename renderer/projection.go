package renderer

import (
	"io"
	"strings"

	"github.com/etnz/horizon"
)

// ProjectionMarkdown renders a whole projection: the statement, the proposal,
// the scenario lines and, when there are goal tracks, the gauges.
func ProjectionMarkdown(in horizon.Inputs, p horizon.Projection) string {
	var b strings.Builder
	b.WriteString(PLMarkdown(p.PL))
	b.WriteString("\n")
	ConditionalBlock(&b, func(w io.Writer) bool {
		io.WriteString(w, ProposalMarkdown(p.Proposal))
		io.WriteString(w, "\n")
		return len(in.Lines) > 0
	})
	b.WriteString(ScenariosMarkdown(in, p.Results))
	ConditionalBlock(&b, func(w io.Writer) bool {
		io.WriteString(w, "\n")
		io.WriteString(w, GaugesMarkdown(in.Tracks))
		return len(in.Tracks) > 0
	})
	return b.String()
}
