package commands

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/leapcheck/internal/dataset"
	"github.com/leapstack-labs/leapcheck/internal/expect"
	"github.com/spf13/cobra"
)

// ChecksOptions holds options for the checks command.
type ChecksOptions struct {
	Format string // Output format: text, json
}

var (
	checkNameStyle  = lipgloss.NewStyle().Bold(true)
	checkDescStyle  = lipgloss.NewStyle().Faint(true)
	checkParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// NewChecksCommand creates the checks command.
func NewChecksCommand() *cobra.Command {
	opts := &ChecksOptions{}
	cmd := &cobra.Command{
		Use:   "checks [check-name]",
		Short: "List available data-quality checks",
		Long: `List every registered check with its tunable parameter schema.

The parameter schemas are the same ones the web and terminal UIs use to
build input widgets, so what you see here is exactly what can be tuned.`,
		Example: `  # List all checks
  leapcheck checks

  # Show one check's full signature
  leapcheck checks expect_column_sum_to_be_between

  # Output as JSON
  leapcheck checks --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showCheck(cmd, args[0])
			}
			return listChecks(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func listChecks(cmd *cobra.Command, opts *ChecksOptions) error {
	defs := expect.All()
	out := cmd.OutOrStdout()

	if opts.Format == "json" {
		return json.NewEncoder(out).Encode(checkInfos(defs))
	}

	for _, def := range defs {
		fmt.Fprintln(out, checkNameStyle.Render(def.Name))
		fmt.Fprintf(out, "  %s\n", checkDescStyle.Render(def.Description))
		for _, p := range def.Params {
			fmt.Fprintf(out, "    %s\n", checkParamStyle.Render(paramLine(p)))
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d checks registered\n", len(defs))
	return nil
}

func showCheck(cmd *cobra.Command, name string) error {
	def, ok := expect.Get(name)
	if !ok {
		return fmt.Errorf("check %q not found", name)
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, checkNameStyle.Render(def.Name))
	fmt.Fprintln(out, def.Description)
	fmt.Fprintln(out)

	params, err := expect.Params(name)
	if err != nil {
		return err
	}
	if len(params) == 0 {
		fmt.Fprintln(out, "No tunable parameters.")
		return nil
	}

	fmt.Fprintln(out, "Parameters:")
	for _, p := range params {
		fmt.Fprintf(out, "  %s\n", paramLine(p))
	}
	return nil
}

func paramLine(p expect.ParamSpec) string {
	line := fmt.Sprintf("%s (%s)", p.Name, p.Kind)
	if p.HasDefault {
		if p.Default == nil {
			line += " default: none"
		} else {
			line += fmt.Sprintf(" default: %s", dataset.FormatCell(p.Default))
		}
	} else {
		line += " required"
	}
	return line
}

// checkInfo is the JSON shape of a check definition.
type checkInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []paramInfo `json:"params,omitempty"`
}

type paramInfo struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Default  any    `json:"default,omitempty"`
	Required bool   `json:"required"`
}

func checkInfos(defs []expect.Def) []checkInfo {
	infos := make([]checkInfo, len(defs))
	for i, def := range defs {
		info := checkInfo{Name: def.Name, Description: def.Description}
		for _, p := range def.Params {
			info.Params = append(info.Params, paramInfo{
				Name:     p.Name,
				Kind:     p.Kind.String(),
				Default:  p.Default,
				Required: !p.HasDefault,
			})
		}
		infos[i] = info
	}
	return infos
}
