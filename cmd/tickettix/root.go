package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ticket-tix/internal/catalog"
	"ticket-tix/internal/config"
	"ticket-tix/internal/infra/logx"
	"ticket-tix/internal/ui"
)

// app holds what every command needs once flags are parsed.
type app struct {
	cfg     config.Config
	client  *catalog.Client
	logFile io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tickettix",
		Short: "Browse and manage events of the ticket-tix catalog",
		Long: `tickettix is a terminal storefront for the ticket-tix event service.

Run it without arguments to open the interactive browser. The list and show
commands print the catalog without the UI.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		RunE:               a.runTUI,
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads the configuration and builds the API client.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load("", cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	logx.SetMinLevel(logx.ParseLevel(cfg.LogLevel))
	logx.SetVerbose(cfg.Verbose)
	logx.RegisterSecrets(urlSecrets(cfg.APIBase))
	if cfg.Debug {
		f, err := tea.LogToFile(cfg.LogFile, "debug")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		logx.SetOutput(f)
		logx.SetMinLevel(logx.LevelDebug)
		// stray log.Printf calls become JSON lines in the same file
		log.SetOutput(logx.StdlogWriter(logx.LevelDebug, f))
		log.SetPrefix("")
		log.SetFlags(0)
	}

	topts := catalog.DefaultTransportOptions()
	topts.RetryMax = cfg.RetryMax
	topts.Limit = catalog.Limit{RPS: cfg.RPS, Burst: cfg.Burst}
	a.client = catalog.NewWithOptions(catalog.Options{
		BaseURL:   cfg.APIBase,
		Timeout:   cfg.Timeout,
		Transport: topts,
	})
	logx.Infof("config: api=%s page_size=%d timeout=%s", a.client.BaseURL(), cfg.PageSize, cfg.Timeout)
	return nil
}

// urlSecrets returns the credentials embedded in a base URL, if any.
func urlSecrets(raw string) []string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return nil
	}
	var out []string
	if p, ok := u.User.Password(); ok && p != "" {
		out = append(out, p)
	}
	return out
}

// errorHint suggests what to change for errors the user can act on.
func errorHint(err error) string {
	switch {
	case catalog.IsTimeout(err):
		return "the catalog is slow to answer; try a larger --" + config.FlagTimeout
	case errors.Is(err, catalog.ErrUnavailable):
		return "the catalog reported a server error; try again shortly"
	}
	return ""
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.client != nil {
		s := a.client.MetricsSnapshot()
		logx.Debugf("http: requests=%d retries=%d failures=%d", s.TotalRequests, s.TotalRetries, s.Failures())
	}
	if a.logFile != nil {
		logx.SetOutput(nil)
		log.SetOutput(os.Stderr)
		return a.logFile.Close()
	}
	return nil
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	if a.cfg.Debug {
		fmt.Fprintf(os.Stderr, "Debug logging enabled. Run 'tail -f %s' to view logs.\n", a.cfg.LogFile)
	}
	p := tea.NewProgram(ui.New(a.client, a.cfg), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err := p.Run()
	return err
}
