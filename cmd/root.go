package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"panothumb/internal/batch"
	"panothumb/internal/thumbnail"
	"panothumb/internal/tui"
)

var (
	rootWorkers   int
	rootPlain     bool
	rootStrict    bool
	rootNoClobber bool
	rootPause     bool
	rootVerbose   bool
	rootLogFile   string
)

var rootCmd = &cobra.Command{
	Use:   "panothumb [flags] <file>...",
	Short: "panothumb - turn 2:1 panoramas into thumbnail sets",
	Long: `panothumb replaces each 2:1 panorama with a 2048x1024 PNG and writes
"<name> - Left.png", "<name> - Right.png" (1024x1024 halves) and
"<name> - Small.png" (1024x512) next to it. Files that are not 2:1
images are left untouched.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runThumbnails,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	flags := rootCmd.Flags()
	flags.IntVarP(&rootWorkers, "workers", "j", 0, "number of files processed in parallel (default: number of CPUs)")
	flags.BoolVar(&rootPlain, "plain", false, "print progress lines instead of the live view")
	flags.BoolVar(&rootStrict, "strict", false, "count a file as failed if any thumbnail could not be saved")
	flags.BoolVar(&rootNoClobber, "no-clobber", false, "skip files whose thumbnails would overwrite existing files")
	flags.BoolVar(&rootPause, "pause", false, "wait for Enter before exiting")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "log debug details")
	flags.StringVar(&rootLogFile, "log-file", "", "append logs to this file")
}

func runThumbnails(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if rootWorkers < 0 {
		return fmt.Errorf("--workers must not be negative")
	}
	if rootPause {
		defer waitForEnter(cmd.InOrStdin(), out)
	}

	paths := batch.CollectPaths(args)
	if len(paths) == 0 {
		fmt.Fprintln(out, "No files were provided")
		return nil
	}

	live := !rootPlain && isTerminal(out)
	logger, closeLog, err := newLogger(cmd.ErrOrStderr(), rootLogFile, rootVerbose, live)
	if err != nil {
		return err
	}
	defer closeLog()

	gen := &thumbnail.Generator{Logger: logger, NoClobber: rootNoClobber}
	if rootStrict {
		gen.SavePolicy = thumbnail.SavePolicyStrict
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(out, "Creating thumbnails from %d files\n", len(paths))

	updates := make(chan batch.ProgressUpdate, 64)
	uiDone := make(chan struct{})
	if live {
		program := tea.NewProgram(tui.NewModel(updates, len(paths), stop), tea.WithOutput(out))
		go func() {
			defer close(uiDone)
			if _, err := program.Run(); err != nil {
				logger.Debug("live view stopped early")
			}
			// keep workers from blocking if the view exits first
			for range updates {
			}
		}()
	} else {
		go func() {
			defer close(uiDone)
			tui.Printer{W: out}.Drain(updates)
		}()
	}

	summary, err := batch.Run(ctx, paths, gen, batch.Options{Workers: rootWorkers}, logger, updates)
	close(updates)
	<-uiDone
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created thumbnails for %d files\n", summary.Processed)
	fmt.Fprintln(out, tui.RenderSummary(summaryRows(summary, len(paths))))
	return nil
}

func summaryRows(summary batch.Summary, queued int) []tui.SummaryRow {
	rows := []tui.SummaryRow{
		{Label: "Files queued", Value: fmt.Sprintf("%d", queued)},
		{Label: "Thumbnailed", Value: fmt.Sprintf("%d", summary.Processed)},
	}
	for _, outcome := range []thumbnail.Outcome{
		thumbnail.RejectedAspectRatio,
		thumbnail.NotAnImage,
		thumbnail.ReadFailed,
		thumbnail.OutputExists,
		thumbnail.DeleteFailed,
		thumbnail.SaveFailed,
	} {
		if n := summary.Outcomes[outcome]; n > 0 {
			rows = append(rows, tui.SummaryRow{Label: "Skipped: " + outcome.String(), Value: fmt.Sprintf("%d", n)})
		}
	}
	if summary.SaveErrors > 0 {
		rows = append(rows, tui.SummaryRow{Label: "Thumbnails not saved", Value: fmt.Sprintf("%d", summary.SaveErrors)})
	}
	if skipped := queued - summary.Total; skipped > 0 {
		rows = append(rows, tui.SummaryRow{Label: "Not started (interrupted)", Value: fmt.Sprintf("%d", skipped)})
	}
	return rows
}

func waitForEnter(in io.Reader, out io.Writer) {
	fmt.Fprintln(out, "Press Enter to exit")
	_, _ = bufio.NewReader(in).ReadString('\n')
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
