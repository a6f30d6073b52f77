// Package netviz exports the analyzed community structure as a Graphviz
// diagram, for inspecting network clusters beyond the fixed carousel cards.
package netviz

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
)

// communityColors cycle across clusters. Muted tones matching the card
// palette.
var communityColors = []string{
	"#E03C31", "#D4A853", "#2C3E50", "#5C8A64", "#8A5C7E", "#5C5C8A",
}

// Options configures DOT export.
type Options struct {
	// Detailed includes community sizes in cluster labels.
	Detailed bool
}

// ToDOT converts the community structure to Graphviz DOT format. Each
// community becomes a cluster subgraph containing its top agents; the top
// influencer, when known, is connected to every cluster's first agent.
func ToDOT(res *analysis.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph moltbook {\n")
	buf.WriteString("  layout=fdp;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("\n")

	hub := sanitizeID(res.Network.TopInfluencer)
	if hub != "" {
		fmt.Fprintf(&buf, "  %q [fillcolor=\"#E03C31\", fontcolor=white, fontsize=16];\n\n", hub)
	}

	for i, c := range res.Communities {
		color := communityColors[i%len(communityColors)]
		label := c.Name
		if opts.Detailed {
			label = fmt.Sprintf("%s (%d agents)", c.Name, c.Size)
		}

		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", c.ID)
		fmt.Fprintf(&buf, "    label=%q;\n", label)
		fmt.Fprintf(&buf, "    color=%q;\n", color)
		agents := make([]string, len(c.TopAgents))
		for j, agent := range c.TopAgents {
			agents[j] = sanitizeID(agent)
		}

		for _, agent := range agents {
			if agent == hub {
				continue
			}
			fmt.Fprintf(&buf, "    %q;\n", agent)
		}
		buf.WriteString("  }\n")

		if hub != "" && len(agents) > 0 && agents[0] != hub {
			fmt.Fprintf(&buf, "  %q -- %q;\n", hub, agents[0])
		}

		// Chain agents inside the cluster so fdp keeps them together.
		for j := 1; j < len(agents); j++ {
			a, b := agents[j-1], agents[j]
			if a == hub || b == hub {
				continue
			}
			fmt.Fprintf(&buf, "  %q -- %q [style=dotted];\n", a, b)
		}
		buf.WriteString("\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// sanitizeID replaces characters that break quoted DOT identifiers.
func sanitizeID(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '"' || r == '\n' {
			return '_'
		}
		return r
	}, s)
}
