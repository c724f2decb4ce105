package bodylint

import (
	"testing"

	"vetch/internal/fixture"
)

func TestDemoWorkspaceFindings(t *testing.T) {
	ws := fixture.NewWorkspace()
	owners := fixture.BuildDemo(ws)

	want := map[string][]DiagnosticKind{
		"make_point":  {DiagRecordMissingFields},
		"classify":    {DiagMissingMatchArms},
		"first_short": {DiagReplaceFilterMapNextWithFindMap},
		"ensure":      {DiagRemoveTrailingReturn, DiagRemoveUnnecessaryElse},
	}
	for _, owner := range owners {
		name := ws.Name(owner)
		kinds := collectKinds(t, ws, owner)
		expected, known := want[name]
		if !known {
			t.Errorf("unexpected demo owner %q", name)
			continue
		}
		if len(kinds) != len(expected) {
			t.Errorf("%s: findings = %v, want %v", name, kinds, expected)
			continue
		}
		for i := range expected {
			if kinds[i] != expected[i] {
				t.Errorf("%s: findings = %v, want %v", name, kinds, expected)
				break
			}
		}
	}
}

func TestCollectIsDeterministic(t *testing.T) {
	ws := fixture.NewWorkspace()
	owners := fixture.BuildDemo(ws)

	for _, owner := range owners {
		first := Collect(ws, owner)
		second := Collect(ws, owner)
		if len(first) != len(second) {
			t.Fatalf("%s: run lengths differ: %d vs %d", ws.Name(owner), len(first), len(second))
		}
		for i := range first {
			if first[i].Kind != second[i].Kind {
				t.Fatalf("%s: finding %d differs: %v vs %v", ws.Name(owner), i, first[i].Kind, second[i].Kind)
			}
		}
	}
}

func TestMissingBodyYieldsNothing(t *testing.T) {
	ws := fixture.NewWorkspace()
	owner := ws.NewOwner("empty")

	if diags := Collect(ws, owner); diags != nil {
		t.Fatalf("diagnostics = %+v, want nil for a bodyless owner", diags)
	}
}
