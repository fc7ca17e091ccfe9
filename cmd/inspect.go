package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"panothumb/internal/batch"
	"panothumb/internal/metadata"
	"panothumb/internal/thumbnail"
	"panothumb/internal/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>...",
	Short: "Report format, size and 2:1 eligibility without modifying files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		paths := batch.CollectPaths(args)
		if len(paths) == 0 {
			fmt.Fprintln(out, "No files were provided")
			return nil
		}

		for i, path := range paths {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, inspectFileStyle.Render(path))

			cfg, kind, err := thumbnail.Probe(path)
			if err != nil {
				fmt.Fprintf(out, "  %s %s\n", inspectBulletStyle.Render("-"), inspectBadStyle.Render(thumbnail.NotAnImage.Reason()))
				continue
			}

			verdict := inspectGoodStyle.Render("eligible")
			if !thumbnail.Eligible(cfg.Width, cfg.Height) {
				verdict = inspectBadStyle.Render("not 2:1")
			}
			fmt.Fprintf(out, "  %s %s %dx%d %s\n",
				inspectBulletStyle.Render("-"),
				inspectValueStyle.Render(kind.String()),
				cfg.Width, cfg.Height,
				verdict,
			)
			if thumbnail.Eligible(cfg.Width, cfg.Height) {
				for _, dest := range thumbnail.DerivedPaths(path) {
					if _, err := os.Lstat(dest); err == nil && dest != filepath.Clean(path) {
						fmt.Fprintf(out, "  %s %s\n", inspectBulletStyle.Render("-"), inspectBadStyle.Render("would overwrite "+dest))
					}
				}
			}

			for _, insight := range readInsights(path) {
				fmt.Fprintf(out, "  %s %s\n", inspectCategoryStyle.Render(insight.Kind+":"), inspectValueStyle.Render(insight.Message))
			}
		}
		return nil
	},
}

func readInsights(path string) []metadata.Insight {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	analysis, err := metadata.Read(f)
	if err != nil {
		return nil
	}
	return metadata.Insights(analysis)
}

var (
	inspectFileStyle     = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	inspectCategoryStyle = lipgloss.NewStyle().Foreground(tui.ColorAccentAlt)
	inspectValueStyle    = lipgloss.NewStyle().Foreground(tui.ColorInk)
	inspectGoodStyle     = lipgloss.NewStyle().Foreground(tui.ColorSuccess)
	inspectBadStyle      = lipgloss.NewStyle().Foreground(tui.ColorWarn)
	inspectBulletStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}
