package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/weekly/internal/config"
	"github.com/zjrosen/weekly/internal/flags"
	"github.com/zjrosen/weekly/internal/infrastructure/sqlite"
	"github.com/zjrosen/weekly/internal/kv"
	"github.com/zjrosen/weekly/internal/layout"
	"github.com/zjrosen/weekly/internal/log"
	"github.com/zjrosen/weekly/internal/report"
	"github.com/zjrosen/weekly/internal/settings"
	"github.com/zjrosen/weekly/internal/tracing"
)

// runtime is the storage stack for one command:
// backend -> tracing -> read-through cache (flag) -> change notifications.
type runtime struct {
	cfg       config.Config
	flags     *flags.Registry
	db        *sqlite.DB
	cached    *kv.Cached
	notifying *kv.Notifying
	tracer    *tracing.Provider
}

func (c *cli) openRuntime(ctx context.Context) (*runtime, error) {
	rt := &runtime{cfg: c.cfg, flags: flags.New(c.cfg.Flags)}

	backend := c.storage
	if backend == nil {
		switch c.cfg.Storage.Backend {
		case config.BackendMemory:
			backend = kv.NewMemory(nil)
		default:
			db, err := sqlite.NewDB(c.cfg.Storage.Path)
			if err != nil {
				return nil, fmt.Errorf("opening storage: %w", err)
			}
			rt.db = db
			backend = db.Storage()
		}
	}

	provider, err := tracing.NewProvider(ctx, tracing.Config{
		Enabled:      c.cfg.Tracing.Enabled,
		Exporter:     c.cfg.Tracing.Exporter,
		FilePath:     c.cfg.Tracing.FilePath,
		OTLPEndpoint: c.cfg.Tracing.OTLPEndpoint,
		SampleRate:   c.cfg.Tracing.SampleRate,
	})
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("starting tracing: %w", err)
	}
	rt.tracer = provider
	if provider.Enabled() {
		backend = tracing.WrapStorage(backend, provider.Tracer())
	}

	if rt.flags.Enabled(flags.FlagStorageCache) {
		rt.cached = kv.NewCached(backend, c.cfg.Storage.CacheTTL)
		backend = rt.cached
	}

	rt.notifying = kv.NewNotifying(backend)
	return rt, nil
}

// withRuntime opens the storage stack around fn and closes it afterwards.
func (c *cli) withRuntime(fn func(cmd *cobra.Command, rt *runtime, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		rt, err := c.openRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := rt.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		return fn(cmd, rt, args)
	}
}

func (rt *runtime) Storage() kv.Storage { return rt.notifying }

func (rt *runtime) Reports() *report.Repository {
	return report.NewRepository(rt.notifying, report.WithAdminPassword(rt.cfg.Admin.Password))
}

func (rt *runtime) Settings() *settings.Repository {
	return settings.NewRepository(rt.notifying)
}

// Layout opens the store for a region, with configured overrides applied.
func (rt *runtime) Layout(ctx context.Context, name string) (*layout.Store, layout.Region, error) {
	region, err := rt.cfg.Region(name)
	if err != nil {
		return nil, layout.Region{}, err
	}
	var opts []layout.Option
	if rt.cfg.Layout.PersistReconciled {
		opts = append(opts, layout.WithPersistReconciled())
	}
	return layout.Open(ctx, rt.notifying, region.Key, region.Defaults, opts...), region, nil
}

// Invalidate drops cached entries so the next read hits the backend.
func (rt *runtime) Invalidate(ctx context.Context, keys ...string) error {
	if rt.cached == nil {
		return nil
	}
	return rt.cached.Invalidate(ctx, keys...)
}

func (rt *runtime) Close() error {
	var errs []error
	if rt.notifying != nil {
		rt.notifying.Close()
	}
	if rt.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, rt.tracer.Shutdown(ctx))
		cancel()
	}
	if rt.db != nil {
		errs = append(errs, rt.db.Close())
	}
	if err := errors.Join(errs...); err != nil {
		log.ErrorErr(log.CatStorage, "Closing storage failed", err)
		return err
	}
	return nil
}
