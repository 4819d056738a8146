package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/tally/internal/catalog"
	"github.com/five82/tally/internal/config"
	"github.com/five82/tally/internal/inventory"
	"github.com/five82/tally/internal/logging"
	"github.com/five82/tally/internal/logtail"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/state"
	"github.com/five82/tally/internal/ui"
)

// Options configure the tally application.
type Options struct {
	ConfigPath     string
	PrefsPath      string // empty uses default ~/.config/tally/prefs.toml
	APIURL         string // overrides api_url from the config when set
	RefreshSeconds int    // zero uses the config; negative disables periodic refresh
}

// ListOptions select the page printed by List.
type ListOptions struct {
	Search string
	Sort   string // name, quantity or price; empty sorts by name
	Desc   bool
	Page   int // 1-based; zero means the first page
}

type env struct {
	cfg    config.Config
	log    *zap.Logger
	client *inventory.Client
	store  *state.Store
}

func setup(opts Options) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	switch {
	case opts.RefreshSeconds > 0:
		cfg.RefreshEvery = time.Duration(opts.RefreshSeconds) * time.Second
	case opts.RefreshSeconds < 0:
		cfg.RefreshEvery = 0
	}

	log, err := logging.New(logging.Options{Dir: cfg.LogDir, Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := inventory.NewClient(cfg.APIURL,
		inventory.WithTimeout(cfg.RequestTimeout),
		inventory.WithLogger(log.Named("client")),
	)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("init inventory client: %w", err)
	}

	return &env{
		cfg:    cfg,
		log:    log,
		client: client,
		store:  state.NewStore(log.Named("store")),
	}, nil
}

func (e *env) close() {
	_ = e.log.Sync()
}

// Run boots the tally TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		e.log.Warn("ignoring prefs file", zap.Error(err))
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	e.log.Info("starting tally",
		zap.String("api_url", e.cfg.APIURL),
		zap.Int("items_per_page", e.cfg.ItemsPerPage),
		zap.Duration("refresh_every", e.cfg.RefreshEvery),
		zap.String("theme", userPrefs.Theme),
	)

	return ui.Run(ui.Options{
		Context:      ctx,
		Service:      e.client,
		Store:        e.store,
		Logger:       e.log.Named("ui"),
		PerPage:      e.cfg.ItemsPerPage,
		RefreshEvery: e.cfg.RefreshEvery,
		ThemeName:    userPrefs.Theme,
		PrefsPath:    prefsPath,
		APIURL:       e.cfg.APIURL,
		LogPath:      e.cfg.LogPath(),
	})
}

// List fetches the inventory once and writes one page of it to w, filtered
// and sorted the same way the dashboard does.
func List(ctx context.Context, opts Options, w io.Writer, lo ListOptions) error {
	sortCfg := catalog.DefaultSort()
	if strings.TrimSpace(lo.Sort) != "" {
		key, ok := catalog.ParseSortKey(lo.Sort)
		if !ok {
			return fmt.Errorf("unknown sort key %q (want name, quantity or price)", lo.Sort)
		}
		sortCfg.Key = key
	}
	if lo.Desc {
		sortCfg.Direction = catalog.Descending
	}
	page := lo.Page
	if page == 0 {
		page = 1
	}
	if page < 0 {
		return fmt.Errorf("page must be positive, got %d", page)
	}

	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.store.Refresh(ctx, e.client); err != nil {
		return err
	}
	snap := e.store.Snapshot()

	res := catalog.Derive(snap.Products, catalog.Query{
		Search: lo.Search,
		Sort:   sortCfg,
		Page:   catalog.Page{Current: page, PerPage: e.cfg.ItemsPerPage},
	})
	if res.TotalPages > 0 && page > res.TotalPages {
		return fmt.Errorf("page %d out of range (1-%d)", page, res.TotalPages)
	}

	_, err = io.WriteString(w, ui.RenderList(res, sortCfg))
	return err
}

// Stats fetches the summary numbers once and writes them to w.
func Stats(ctx context.Context, opts Options, w io.Writer) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.store.Refresh(ctx, e.client); err != nil {
		return err
	}
	stats := e.store.Snapshot().Stats

	_, err = fmt.Fprintf(w, "Total Products:  %d\nTotal Value:     %s\nLow Stock Items: %d\n",
		stats.TotalProducts, ui.FormatMoney(stats.TotalValue), stats.LowStockCount)
	return err
}

// Logs writes the last n entries of tally's log file to w in readable form.
func Logs(opts Options, w io.Writer, n int) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	lines, err := logtail.Read(cfg.LogPath(), n)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		_, err = fmt.Fprintf(w, "No log entries in %s\n", cfg.LogPath())
		return err
	}
	for _, line := range logtail.FormatLines(lines) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
