package cli

import (
	"github.com/spf13/cobra"

	"github.com/yashsidana/code-clarified/pkg/flow"
	"github.com/yashsidana/code-clarified/pkg/pipeline"
)

// newFunctionsCmd creates the functions command for inspecting a file's
// extracted flow structure without rendering.
func newFunctionsCmd() *cobra.Command {
	var interactive bool
	var name string

	cmd := &cobra.Command{
		Use:   "functions [file]",
		Short: "List the functions found in a Python file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunctions(cmd, args[0], interactive, name)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a function interactively and show its steps")
	cmd.Flags().StringVarP(&name, "name", "n", "", "show only the named function")

	return cmd
}

func runFunctions(cmd *cobra.Command, input string, interactive bool, name string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	source, err := readSource(input)
	if err != nil {
		return err
	}

	structure, err := pipeline.Analyze(ctx, string(source))
	if err != nil {
		return err
	}
	logger.Debug("extracted structure", "functions", structure.Len())

	if name != "" {
		fn, err := structure.Lookup(name)
		if err != nil {
			return err
		}
		printFunction(fn)
		return nil
	}

	if structure.Len() == 0 {
		printInfo("No functions found")
		return nil
	}

	if interactive {
		selected, err := pickFunction(structure.Functions())
		if err != nil {
			return err
		}
		if selected == nil {
			return nil
		}
		printFunction(*selected)
		return nil
	}

	for _, fn := range structure.Functions() {
		printFunction(fn)
	}
	return nil
}

// printFunction prints one function signature and its recorded steps.
func printFunction(fn flow.FunctionFlow) {
	printInfo("%s", signature(fn))
	if len(fn.Steps) == 0 {
		printDetail("no operations")
		return
	}
	for _, step := range fn.Steps {
		printDetail("%s %s", stepMarker(step.Kind), step.Label())
	}
}

// stepMarker returns a short tag identifying the step kind.
func stepMarker(kind flow.StepKind) string {
	switch kind {
	case flow.KindDecision:
		return "if  "
	case flow.KindLoop:
		return "loop"
	default:
		return "ret "
	}
}
