package poissongauss

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/mwiater/poissongauss/internal/clt"
	"github.com/mwiater/poissongauss/internal/viewer"
	"github.com/spf13/cobra"
)

// execute runs a freshly built command tree with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	b := new(bytes.Buffer)
	rootCmd := newRootCmd()
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(args)
	_, err := rootCmd.ExecuteC()
	return b.String(), err
}

func useTestingLog(t *testing.T) {
	t.Helper()
	orig := newLogger
	newLogger = func() (logs.Log, error) { return logs.NewTestingLog(t), nil }
	t.Cleanup(func() { newLogger = orig })
}

// captureViewer replaces startViewer with a stub that renders once and
// records the series it was given.
func captureViewer(t *testing.T) *[]clt.Series {
	t.Helper()
	orig := startViewer
	t.Cleanup(func() { startViewer = orig })

	got := new([]clt.Series)
	startViewer = func(series []clt.Series, render viewer.RenderFunc, debugLog string) error {
		*got = series
		_, err := render()
		return err
	}
	return got
}

func TestRootCmd(t *testing.T) {
	out, err := execute(t, "nonexistent")
	if err == nil {
		t.Fatal("Expected an error for a nonexistent command, but got none")
	}
	expected := "unknown command \"nonexistent\" for \"poissongauss\""
	if !strings.Contains(err.Error(), expected) {
		t.Errorf("Expected error to contain '%s', but got '%s'", expected, err)
	}
	// Execute prints the error once; cobra must stay quiet.
	if strings.Contains(out, "Error:") {
		t.Errorf("cobra printed the error itself: %q", out)
	}
}

func TestRoot_SubcommandsPresent(t *testing.T) {
	have := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		have[c.Name()] = true
		if c.Name() == "list" {
			sub := map[string]bool{}
			for _, sc := range c.Commands() {
				sub[sc.Name()] = true
			}
			if !sub["series"] || !sub["commands"] {
				t.Fatalf("list subcommands missing: %v", sub)
			}
		}
	}
	for _, want := range []string{"plot", "list"} {
		if !have[want] {
			t.Fatalf("missing subcommand %s", want)
		}
	}
}

func TestCommands_HaveDescriptions(t *testing.T) {
	var check func(*cobra.Command)
	check = func(cmd *cobra.Command) {
		if cmd.Short == "" || cmd.Long == "" {
			t.Fatalf("command %s missing Short/Long", cmd.Name())
		}
		for _, sc := range cmd.Commands() {
			if sc.IsAvailableCommand() {
				check(sc)
			}
		}
	}
	check(newRootCmd())
}

func TestListCommands_PrintsTree(t *testing.T) {
	var buf bytes.Buffer
	printCommandTree(&buf, newRootCmd())
	out := buf.String()
	for _, want := range []string{"poissongauss plot", "poissongauss list series", "poissongauss list commands", "Render the Poisson vs Gaussian figure"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got: %s", want, out)
		}
	}

	rows := commandRows(newRootCmd(), 0)
	if rows[0][0] != "poissongauss" {
		t.Fatalf("expected root first, got %v", rows[0])
	}
	for _, r := range rows {
		if strings.HasSuffix(r[0], " help") {
			t.Fatalf("help command should be skipped: %v", rows)
		}
	}

	out, err := execute(t, "list", "commands")
	if err != nil || !strings.Contains(out, "poissongauss list series") {
		t.Fatalf("list commands failed: %v\n%s", err, out)
	}
}

func TestPlotCmd_WritesFigure(t *testing.T) {
	useTestingLog(t)
	path := filepath.Join(t.TempDir(), "fig.png")

	out, err := execute(t, "plot", "--out", path)
	if err != nil {
		t.Fatalf("plot failed: %v\n%s", err, out)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("figure not written: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatalf("expected a PNG file")
	}
	for _, want := range []string{"count for 0.75 hr", "count for 4.5 hr", "count for 27.0 hr", "count for 162.0 hr"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q: %s", want, out)
		}
	}
}

func TestPlotCmd_ShowStartsViewer(t *testing.T) {
	useTestingLog(t)
	got := captureViewer(t)

	path := filepath.Join(t.TempDir(), "fig.svg")
	out, err := execute(t, "plot", "--show", "--out", path, "--counts", "6,36")
	if err != nil {
		t.Fatalf("plot failed: %v\n%s", err, out)
	}
	if len(*got) != 2 || (*got)[1].Label != "count for 4.5 hr" {
		t.Fatalf("viewer received unexpected series: %d", len(*got))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("figure not written: %v", err)
	}
}

func TestPlotCmd_FlagsDoNotCarryOver(t *testing.T) {
	useTestingLog(t)
	got := captureViewer(t)
	dir := t.TempDir()

	if _, err := execute(t, "plot", "--show", "--out", filepath.Join(dir, "a.svg"), "--counts", "6,36,216,1296", "--rate", "4"); err != nil {
		t.Fatalf("first plot failed: %v", err)
	}
	if len(*got) != 4 || (*got)[0].Hours != 1.5 {
		t.Fatalf("first run: unexpected series (%d)", len(*got))
	}

	if _, err := execute(t, "plot", "--show", "--out", filepath.Join(dir, "b.svg"), "--counts", "6,36"); err != nil {
		t.Fatalf("second plot failed: %v", err)
	}
	if len(*got) != 2 {
		t.Fatalf("second run: expected counts [6 36], got %d series", len(*got))
	}
	if (*got)[0].Hours != 0.75 {
		t.Fatalf("second run: rate from the first run leaked, hours=%v", (*got)[0].Hours)
	}
}

func TestPlotCmd_ViewerErrorFails(t *testing.T) {
	useTestingLog(t)
	captureViewer(t)

	missing := filepath.Join(t.TempDir(), "no-such-dir", "fig.png")
	if _, err := execute(t, "plot", "--show", "--out", missing); err == nil {
		t.Fatalf("expected an error when the figure cannot be written")
	}
}

func TestPlotCmd_InvalidRate(t *testing.T) {
	useTestingLog(t)
	path := filepath.Join(t.TempDir(), "fig.png")
	_, err := execute(t, "plot", "--out", path, "--rate", "-8")
	if err == nil {
		t.Fatalf("expected an error for a negative rate")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Fatalf("no figure should be written on error")
	}
}

func TestListSeriesCmd(t *testing.T) {
	out, err := execute(t, "list", "series")
	if err != nil {
		t.Fatalf("list series failed: %v\n%s", err, out)
	}
	for _, want := range []string{"count for 0.75 hr", "count for 4.5 hr", "count for 27.0 hr", "count for 162.0 hr", "35.5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q: %s", want, out)
		}
	}
}
