package netviz

import (
	"strings"
	"testing"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
)

func testResult() *analysis.Result {
	return &analysis.Result{
		Network: analysis.NetworkStats{TopInfluencer: "Shelly"},
		Communities: []analysis.CommunityInfo{
			{ID: 0, Name: "Tidepool", Size: 12, TopAgents: []string{"Shelly", "Pinch", "Carapace"}},
			{ID: 1, Name: "Community 2", Size: 8, TopAgents: []string{"Molty", "Claws"}},
		},
	}
}

func TestToDOTStructure(t *testing.T) {
	dot := ToDOT(testResult(), Options{})

	for _, want := range []string{
		"graph moltbook {",
		"layout=fdp;",
		`"Shelly" [fillcolor="#E03C31"`,
		"subgraph cluster_0 {",
		`label="Tidepool";`,
		"subgraph cluster_1 {",
		`"Molty";`,
		`"Shelly" -- "Molty";`,
		`"Molty" -- "Claws" [style=dotted];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}

	// The hub belongs to cluster 0 and must not be re-declared inside it.
	if strings.Contains(dot, "    \"Shelly\";\n") {
		t.Error("hub should not appear as a cluster member")
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	dot := ToDOT(testResult(), Options{Detailed: true})
	if !strings.Contains(dot, `label="Tidepool (12 agents)";`) {
		t.Error("expected size in detailed cluster label")
	}
}

func TestToDOTNoCommunities(t *testing.T) {
	dot := ToDOT(&analysis.Result{}, Options{})
	if !strings.HasPrefix(dot, "graph moltbook {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("malformed empty graph:\n%s", dot)
	}
}

func TestSanitizeID(t *testing.T) {
	if got := sanitizeID("a\"b\nc"); got != "a_b_c" {
		t.Errorf("sanitizeID = %q", got)
	}
}
