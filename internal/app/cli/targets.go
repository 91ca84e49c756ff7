package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ozacod/nbuild/internal/pkg/target"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
)

// targetInfo is one row of the targets listing. Paths are relative to the
// build directory.
type targetInfo struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Tool      string   `json:"tool"`
	Output    string   `json:"output"`
	ImportLib string   `json:"import_library,omitempty"`
	Sources   int      `json:"sources"`
	Libs      []string `json:"libs,omitempty"`
}

type targetsOptions struct {
	envFlags
	asJSON bool
}

func TargetsCmd() *cobra.Command {
	opts := &targetsOptions{}
	cmd := &cobra.Command{
		Use:   "targets [targets-file]",
		Short: "List declared targets and their outputs",
		Long: `List the targets declared in a targets file, in declaration order,
together with the files they produce for the selected platform.`,
		Example: `  nbuild targets                    # Table for the host platform
  nbuild targets --platform msvc    # Output names on MSVC
  nbuild targets --json             # Machine-readable listing`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTargets(cmd, opts, args)
		},
	}

	opts.envFlags.register(cmd)
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the listing as JSON")

	return cmd
}

func runTargets(cmd *cobra.Command, opts *targetsOptions, args []string) error {
	proj, err := loadProject(opts.envFlags, args)
	if err != nil {
		return err
	}

	infos := make([]targetInfo, 0, len(proj.env.Targets()))
	for _, t := range proj.env.Targets() {
		info := targetInfo{
			Name:    t.Name(),
			Kind:    string(t.Kind()),
			Tool:    t.Tool(),
			Output:  proj.env.OutputPath(t),
			Sources: len(t.Sources()),
			Libs:    t.Libs(),
		}
		if imp := proj.env.ImportPath(t); imp != "" {
			info.ImportLib = imp
		}
		infos = append(infos, info)
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	if len(infos) == 0 {
		PrintWarning("No targets declared in %s", proj.targetsFile)
		return nil
	}
	fmt.Fprintln(out, renderTargets(infos))
	return nil
}

func renderTargets(infos []targetInfo) string {
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		output := info.Output
		if info.ImportLib != "" {
			output += " (" + info.ImportLib + ")"
		}
		rows = append(rows, []string{info.Name, kindLabel(info.Kind), info.Tool, output})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("NAME", "KIND", "TOOL", "OUTPUT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2:
				return dimStyle
			default:
				return cellStyle
			}
		}).
		String()
}

func kindLabel(kind string) string {
	for _, k := range target.Kinds() {
		if string(k) == kind {
			return k.Label()
		}
	}
	return kind
}
