package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-fileform"
	"github.com/goliatone/go-fileform/internal/config"
	"github.com/goliatone/go-fileform/pkg/answers"
	"github.com/goliatone/go-fileform/pkg/artifact"
	"github.com/goliatone/go-fileform/pkg/bookkeeping"
	"github.com/goliatone/go-fileform/pkg/form"
	"github.com/goliatone/go-fileform/pkg/installer"
	"github.com/goliatone/go-fileform/pkg/renderers/html"
	"github.com/goliatone/go-fileform/pkg/renderers/tui"
)

const usage = `Usage: %s <command> [flags]

Commands:
  install        generate the artifact for a package
  update         regenerate the artifact, pre-filled from the current one
  uninstall      remove every artifact registered for a package
  has-uninstall  report whether a package owns artifacts (exit 1 when not)
  render         print the form as HTML, or the artifact for an answers file

Run '%s <command> -h' for command flags.
`

func main() {
	flag.Usage = func() {
		name := filepath.Base(os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), usage, name, name)
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	code, err := run(ctx, flag.Arg(0), flag.Args()[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", flag.Arg(0), err)
	}
	os.Exit(code)
}

type options struct {
	configPath  string
	pkg         string
	instruction string
	packageID   int64
	answers     string
	language    string
	root        string
	database    string
	output      string
	yes         bool
}

func (o *options) register(fs *flag.FlagSet, cmd string) {
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&o.root, "root", "", "installation root (overrides config)")
	switch cmd {
	case "install", "update", "render":
		fs.StringVar(&o.pkg, "package", "", "package directory or tar archive")
		fs.StringVar(&o.instruction, "instruction", "", "schema file inside the package (default fileForm.xml)")
		fs.StringVar(&o.answers, "answers", "", "YAML answers file; prompts in the terminal when empty")
		fs.StringVar(&o.language, "lang", "", "form language (default from config)")
	}
	switch cmd {
	case "install", "update", "uninstall", "has-uninstall":
		fs.Int64Var(&o.packageID, "package-id", 0, "package identifier owning the artifacts")
		fs.StringVar(&o.database, "db", "", "bookkeeping database (overrides config)")
	}
	if cmd == "render" {
		fs.StringVar(&o.output, "output", "", "output file (stdout if empty)")
	}
	if cmd == "uninstall" {
		fs.BoolVar(&o.yes, "yes", false, "do not ask for confirmation")
	}
}

func run(ctx context.Context, cmd string, args []string, stdout io.Writer) (int, error) {
	switch cmd {
	case "install", "update", "uninstall", "has-uninstall", "render":
	default:
		return 2, fmt.Errorf("unknown command")
	}

	var opts options
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	opts.register(fs, cmd)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, nil
		}
		return 2, err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return 1, err
	}
	if opts.root != "" {
		cfg.Root = opts.root
	}
	if opts.database != "" {
		cfg.Database = opts.database
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if cmd == "render" {
		return render(ctx, opts, cfg, stdout)
	}

	reg := prometheus.NewRegistry()
	defer writeMetrics(cfg, reg, logger)

	store, err := bookkeeping.Open(ctx, cfg.Database, bookkeeping.WithLogger(logger))
	if err != nil {
		return 1, err
	}
	defer store.Close()

	catalog, err := cfg.Catalog()
	if err != nil {
		return 1, err
	}
	mode, err := cfg.Mode()
	if err != nil {
		return 1, err
	}

	session := form.NewSession(form.WithSessionLogger(logger))
	ctrlOpts := []installer.Option{
		installer.WithPackageID(opts.packageID),
		installer.WithRoot(cfg.Root),
		installer.WithStore(store),
		installer.WithEngine(session),
		installer.WithCatalog(catalog),
		installer.WithLanguage(opts.language),
		installer.WithFileHooks(installer.OSHooks{Mode: mode}),
		installer.WithLogger(logger),
		installer.WithMetrics(installer.NewMetrics(reg)),
	}
	if opts.pkg != "" {
		src, err := fileform.OpenSource(opts.pkg)
		if err != nil {
			return 1, err
		}
		ctrlOpts = append(ctrlOpts, installer.WithSource(src), installer.WithInstruction(opts.instruction))
	}
	ctrl, err := installer.New(ctx, ctrlOpts...)
	if err != nil {
		return 1, err
	}

	switch cmd {
	case "install", "update":
		if opts.pkg == "" {
			return 2, errors.New("-package is required")
		}
		if !ctrl.IsValidInstruction(ctx, opts.instruction) {
			return 1, fmt.Errorf("package %s has no form schema", opts.pkg)
		}
		collector, err := newCollector(opts)
		if err != nil {
			return 1, err
		}
		action := installer.ActionInstall
		if cmd == "update" {
			action = installer.ActionUpdate
		}
		res, err := ctrl.Run(ctx, action, collector)
		if err != nil {
			return 1, err
		}
		fmt.Fprintf(stdout, "Artifact written to %s\n", res.Path)
		return 0, nil

	case "uninstall":
		if !opts.yes {
			ok, err := tui.New().Confirm(ctx, fmt.Sprintf("Remove the artifacts of package %d?", opts.packageID), false)
			if err != nil {
				return 1, err
			}
			if !ok {
				return 0, nil
			}
		}
		res, err := ctrl.Uninstall(ctx)
		if err != nil {
			return 1, err
		}
		for _, path := range res.Removed {
			fmt.Fprintf(stdout, "Removed %s\n", path)
		}
		return 0, nil

	default: // has-uninstall
		has, err := ctrl.HasUninstall(ctx)
		if err != nil {
			return 1, err
		}
		fmt.Fprintln(stdout, has)
		if !has {
			return 1, nil
		}
		return 0, nil
	}
}

func newCollector(opts options) (form.Collector, error) {
	if opts.answers == "" {
		return tui.New(tui.WithTheme(tui.Theme{TitlePrefix: "Configure "})), nil
	}
	return answers.Load(opts.answers, answers.WithStrict(true))
}

func render(ctx context.Context, opts options, cfg config.Config, stdout io.Writer) (int, error) {
	if opts.pkg == "" {
		return 2, errors.New("-package is required")
	}
	src, err := fileform.OpenSource(opts.pkg)
	if err != nil {
		return 1, err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return 1, err
	}
	s, desc, err := fileform.LoadForm(ctx, src, opts.instruction, catalog, opts.language)
	if err != nil {
		return 1, err
	}

	var out []byte
	if opts.answers != "" {
		file, err := answers.Load(opts.answers)
		if err != nil {
			return 1, err
		}
		values, err := file.Collect(ctx, desc)
		if err != nil {
			return 1, err
		}
		out, err = fileform.PreviewArtifact(s, values, time.Now())
		if err != nil {
			return 1, err
		}
	} else {
		r, err := html.New()
		if err != nil {
			return 1, err
		}
		out, err = r.Render(ctx, desc)
		if err != nil {
			return 1, err
		}
	}

	if opts.output == "" {
		_, err := stdout.Write(out)
		return 0, err
	}
	if err := os.WriteFile(opts.output, out, artifact.DefaultPerm); err != nil {
		return 1, err
	}
	fmt.Fprintf(stdout, "Output written to %s\n", opts.output)
	return 0, nil
}

func writeMetrics(cfg config.Config, reg *prometheus.Registry, logger *slog.Logger) {
	if cfg.MetricsTextfile == "" {
		return
	}
	if err := prometheus.WriteToTextfile(cfg.MetricsTextfile, reg); err != nil {
		logger.Warn("writing metrics textfile failed", "path", cfg.MetricsTextfile, "err", err)
	}
}
