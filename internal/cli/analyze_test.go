package cli

import (
	"reflect"
	"testing"

	"github.com/yashsidana/code-clarified/pkg/flow"
	"github.com/yashsidana/code-clarified/pkg/pipeline"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"DerivedFromInput", "", "script.py", "script"},
		{"StdinInput", "", "-", "flowchart"},
		{"OutputWithFormatExt", "diagram.png", "script.py", "diagram"},
		{"OutputWithOtherExt", "diagram.out", "script.py", "diagram.out"},
		{"PlainOutput", "diagram", "script.py", "diagram"},
		{"NestedInput", "src/app/main.py", "src/app/main.py", "src/app/main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestTotalSteps(t *testing.T) {
	s := flow.NewStructure()
	s.Add(flow.FunctionFlow{Name: "a", Steps: []flow.Step{flow.Decision("x > 0"), flow.Return("x")}})
	s.Add(flow.FunctionFlow{Name: "b", Steps: []flow.Step{flow.BareReturn()}})

	result := &pipeline.Result{Structure: s}
	if got := totalSteps(result); got != 3 {
		t.Errorf("totalSteps = %d, want 3", got)
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); !reflect.DeepEqual(got, []string{"png"}) {
		t.Errorf("parseFormats(\"\") = %v", got)
	}
	if got := parseFormats("svg,dot"); !reflect.DeepEqual(got, []string{"svg", "dot"}) {
		t.Errorf("parseFormats(svg,dot) = %v", got)
	}
}
