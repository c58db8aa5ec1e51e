package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/shopkeep/internal/catalog"
	"github.com/five82/shopkeep/internal/config"
	"github.com/five82/shopkeep/internal/controller"
	"github.com/five82/shopkeep/internal/logging"
	"github.com/five82/shopkeep/internal/prefs"
	"github.com/five82/shopkeep/internal/state"
	"github.com/five82/shopkeep/internal/ui"
)

// Version is reported in the User-Agent header and by --version.
var Version = "dev"

// Options configure the application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/shopkeep/prefs.toml
	APIURL     string // overrides api_url from the config file
	ExportDir  string // overrides export_dir from the config file
}

// ExportOptions configure a headless export.
type ExportOptions struct {
	Options
	Page   int
	Search string
	Sort   string
}

type env struct {
	cfg    config.Config
	log    *logrus.Logger
	closer io.Closer
	ctrl   *controller.Controller
}

func setup(opts Options) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(opts.ExportDir); v != "" {
		cfg.ExportDir = v
	}

	log, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := catalog.NewClient(cfg.APIURL,
		catalog.WithLogger(log),
		catalog.WithUserAgent("shopkeep/"+Version),
	)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init catalog client: %w", err)
	}

	ctrl := controller.New(controller.Options{
		Store:     state.NewStore(),
		Catalog:   client,
		Logger:    log,
		ExportDir: cfg.ExportDir,
	})
	log.WithFields(logrus.Fields{"api_url": client.BaseURL(), "export_dir": cfg.ExportDir}).Info("starting")
	return &env{cfg: cfg, log: log, closer: closer, ctrl: ctrl}, nil
}

// Run boots the dashboard and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = e.closer.Close() }()

	userPrefs := prefs.Load(opts.PrefsPath)
	err = ui.Run(ui.Options{
		Context:    ctx,
		Controller: e.ctrl,
		Logger:     e.log,
		ThemeName:  userPrefs.Theme,
		Mouse:      userPrefs.Mouse,
		PrefsPath:  opts.PrefsPath,
	})
	if err != nil {
		e.log.WithError(err).Error("ui exited")
	}
	return err
}

// Export loads the catalog, applies search, sort and page the same way the
// dashboard would, and writes that single page to the export directory.
func Export(ctx context.Context, opts ExportOptions) (string, int, error) {
	e, err := setup(opts.Options)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = e.closer.Close() }()

	return export(ctx, e.ctrl, opts)
}

func export(ctx context.Context, ctrl *controller.Controller, opts ExportOptions) (string, int, error) {
	if _, err := state.ParseSort(opts.Sort); err != nil {
		return "", 0, err
	}
	if err := ctrl.Load(ctx); err != nil {
		return "", 0, err
	}
	if opts.Search != "" {
		ctrl.ApplySearch(opts.Search)
	}
	if opts.Sort != "" {
		if err := ctrl.ApplySort(opts.Sort); err != nil {
			return "", 0, err
		}
	}
	page := max(opts.Page, 1)
	if got := ctrl.SelectPage(page); got != page {
		return "", 0, fmt.Errorf("page %d out of range (last page is %d)", page, got)
	}
	return ctrl.ExportCurrentPage()
}
