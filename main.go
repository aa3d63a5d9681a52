package main

import (
	"fmt"
	"os"
	"strings"

	"editpath/internal/backup"
	"editpath/internal/config"
	"editpath/internal/editor"
	"editpath/internal/envstore"
	"editpath/internal/errors"
	"editpath/internal/fsutil"
	"editpath/internal/logging"
	"editpath/internal/model"
	"editpath/internal/report"
	"editpath/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "editpath",
		Repository: "editpath",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		log.Debug().Err(err).Msg("Update check failed")
		return
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/editpath/editpath/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: editpath [options]\n\n")
		fmt.Fprintf(os.Stderr, "editpath edits the machine-wide PATH: reorder, add and remove entries,\n")
		fmt.Fprintf(os.Stderr, "and clean up folders that are missing or listed twice.\n")
		fmt.Fprintf(os.Stderr, "Changes are written back when you quit.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  editpath                  # Start the editor\n")
		fmt.Fprintf(os.Stderr, "  editpath --list           # Print the annotated PATH\n")
		fmt.Fprintf(os.Stderr, "  editpath --clean -n       # Show what clean up would write\n")
		fmt.Fprintf(os.Stderr, "  editpath --backups        # List saved values\n")
		fmt.Fprintf(os.Stderr, "  editpath --restore NAME   # Put a saved value back\n")
	}

	listFlag := pflag.BoolP("list", "l", false, "Print the PATH entries with their status")
	jsonFlag := pflag.BoolP("json", "j", false, "Print the PATH entries as JSON")
	outputFlag := pflag.StringP("output", "o", "", "Save the --list or --json output to the specified file")
	cleanFlag := pflag.Bool("clean", false, "Remove missing and duplicate entries and save, without the editor")
	dryRunFlag := pflag.BoolP("dry-run", "n", false, "Print the resulting value instead of saving it")
	backupsFlag := pflag.Bool("backups", false, "List saved backups of previous values")
	restoreFlag := pflag.String("restore", "", "Restore the named backup")
	configFlag := pflag.String("config", "", "Config file (default "+config.DefaultPath()+")")
	verboseFlag := pflag.CountP("verbose", "v", "Increase log verbosity (repeatable)")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("editpath version %s\n", model.Version)
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fail(err)
	}

	interactive := !*listFlag && !*jsonFlag && !*cleanFlag && !*backupsFlag && *restoreFlag == "" && !*updateFlag
	logging.SetupLogger(max(*verboseFlag, cfg.Log.Verbosity), !interactive)
	log.Debug().Str("log", logging.LogFilePath()).Msg("Logger ready")

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	var backups *backup.Store
	if cfg.Backup.Enabled || *backupsFlag || *restoreFlag != "" {
		backups = backup.New(afero.NewOsFs(), cfg.Backup.Dir, cfg.Backup.Keep)
	}

	if *backupsFlag {
		runBackupsMode(backups)
		return
	}

	opts := []editor.Option{
		editor.WithSeparator(os.PathListSeparator),
		editor.WithVariable(cfg.Variable),
	}
	if cfg.Backup.Enabled {
		opts = append(opts, editor.WithBackups(backups))
	}

	session, err := editor.Open(envstore.NewMachineStore(cfg.Variable, cfg.Store.File), opts...)
	if err != nil {
		fail(err)
	}
	checker := fsutil.NewOSChecker()

	switch {
	case *listFlag || *jsonFlag:
		runReportMode(session, checker, *jsonFlag, *outputFlag, max(*verboseFlag, cfg.Log.Verbosity) > 0)
	case *restoreFlag != "":
		runRestoreMode(session, backups, *restoreFlag, *dryRunFlag)
	case *cleanFlag:
		runCleanMode(session, checker, *dryRunFlag)
	default:
		runTuiMode(session, checker, cfg, *dryRunFlag)
	}
}

func runReportMode(session *editor.Session, checker editor.DirChecker, asJSON bool, outputFile string, verbose bool) {
	doc := report.Build(session.StoreName(), session.Separator(), session.List, checker)

	var out strings.Builder
	if asJSON {
		if err := report.WriteJSON(&out, doc); err != nil {
			fail(errors.Wrap(err, errors.ErrInternal, "cannot encode report"))
		}
	} else {
		out.WriteString(report.GenerateReport(doc, verbose))
		out.WriteString("\n")
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(out.String()), 0644); err != nil {
			fail(errors.Wrapf(err, errors.ErrInternal, "cannot write report to %s", outputFile))
		}
		fmt.Printf("Report saved to %s\n", outputFile)
		return
	}
	fmt.Print(out.String())
}

func runCleanMode(session *editor.Session, checker editor.DirChecker, dryRun bool) {
	removed := session.List.CleanUp(checker)
	for _, r := range removed {
		fmt.Printf("%s %3d. %s (%s)\n", model.IconRemove, r.Index+1, r.Value, r.Reason)
	}
	if len(removed) == 0 {
		fmt.Println("Nothing to clean up.")
	}
	finish(session, dryRun)
}

func runBackupsMode(backups *backup.Store) {
	infos, err := backups.List()
	if err != nil {
		fail(err)
	}
	if len(infos) == 0 {
		fmt.Printf("No backups in %s\n", backups.Dir())
		return
	}
	for _, info := range infos {
		entries := len(editor.Load(info.Value, os.PathListSeparator))
		fmt.Printf("%s  %s  %d entries  %s\n", info.Name, info.Created.Local().Format("2006-01-02 15:04:05"), entries, info.Reason)
	}
}

func runRestoreMode(session *editor.Session, backups *backup.Store, name string, dryRun bool) {
	snap, err := backups.Load(name)
	if err != nil {
		fail(err)
	}
	if snap.Variable != "" && !strings.EqualFold(snap.Variable, session.Variable()) {
		fail(errors.Newf(errors.ErrInvalidInput, "backup %s holds %s, not %s", name, snap.Variable, session.Variable()))
	}
	session.Replace(snap.Value)
	finish(session, dryRun)
	if !dryRun {
		fmt.Printf("Restored %s from %s\n", session.Variable(), name)
	}
}

func runTuiMode(session *editor.Session, checker editor.DirChecker, cfg *config.Config, dryRun bool) {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fail(errors.New(errors.ErrNotATerminal, "the editor needs a terminal; use --list or --clean instead"))
	}

	m := tui.InitialModel(session, checker, tui.Options{
		ConfirmCleanUp: cfg.UI.Confirm,
		ShowHidden:     cfg.UI.ShowHidden,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail(errors.Wrap(err, errors.ErrInternal, "terminal UI failed"))
	}

	// Closing the editor always saves, as long as it closed normally.
	finish(session, dryRun)
}

// finish commits the session, or prints the value it would commit.
func finish(session *editor.Session, dryRun bool) {
	if dryRun {
		fmt.Println(session.Value())
		return
	}
	if err := session.Commit(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	log.Error().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("editpath failed")
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.IsErrorCode(err, errors.ErrPermission) {
		fmt.Fprintln(os.Stderr, "Saving the machine-wide PATH needs administrator rights.")
	}
	os.Exit(1)
}
