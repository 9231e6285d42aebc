package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zjrosen/weekly/internal/config"
	"github.com/zjrosen/weekly/internal/flags"
	"github.com/zjrosen/weekly/internal/kv"
	"github.com/zjrosen/weekly/internal/layout"
	"github.com/zjrosen/weekly/internal/log"
	"github.com/zjrosen/weekly/internal/pubsub"
	"github.com/zjrosen/weekly/internal/ui/reorder"
	"github.com/zjrosen/weekly/internal/ui/styles"
	"github.com/zjrosen/weekly/internal/watcher"
)

func newLayoutCmd(c *cli) *cobra.Command {
	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Show and change the order of header items and home cards",
		Long: `Each region (header, home) keeps an ordered list of item identifiers.
Stored orders are repaired on every read: unknown items are dropped and
missing ones are appended in default order.`,
	}

	var showDiff bool
	showCmd := &cobra.Command{
		Use:   "show <region>",
		Short: "Print a region's current order",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			store, region, err := rt.Layout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if showDiff {
				diff := layout.Diff(region.Defaults, store.Read())
				if diff == "" {
					_, _ = fmt.Fprintln(out, "(default order)")
					return nil
				}
				_, _ = fmt.Fprint(out, diff)
				return nil
			}
			printOrder(out, store.Read())
			return nil
		}),
	}
	showCmd.Flags().BoolVar(&showDiff, "diff", false, "show the order as a diff against the defaults")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List regions, their storage keys and defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, r := range layout.Regions() {
				region, err := c.cfg.Region(r.Name)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-22s %s\n", region.Name, region.Key, strings.Join(region.Defaults, ","))
			}
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <region> <id>...",
		Short: "Store an explicit order",
		Long: `Store an explicit order. The order is written as given; identifiers the region
does not know are dropped, and missing ones appended, the next time it is read.`,
		Args: cobra.MinimumNArgs(2),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			store, region, err := rt.Layout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			order := args[1:]
			if !layout.IsPermutation(order, region.Defaults) {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: order is not a permutation of %s; it will be repaired on read\n",
					strings.Join(region.Defaults, ","))
			}
			if err := store.Write(cmd.Context(), order); err != nil {
				return err
			}
			printOrder(cmd.OutOrStdout(), store.Reload(cmd.Context()))
			return nil
		}),
	}

	moveCmd := &cobra.Command{
		Use:   "move <region> <from> <to>",
		Short: "Move the item at position from to position to (1-based)",
		Args:  cobra.ExactArgs(3),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			store, _, err := rt.Layout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			order := store.Read()
			from, err := parsePosition(args[1], len(order))
			if err != nil {
				return err
			}
			to, err := parsePosition(args[2], len(order))
			if err != nil {
				return err
			}
			order = layout.Move(order, from, to)
			if err := store.Write(cmd.Context(), order); err != nil {
				return err
			}
			printOrder(cmd.OutOrStdout(), order)
			return nil
		}),
	}

	resetCmd := &cobra.Command{
		Use:   "reset <region>",
		Short: "Restore the default order",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			store, _, err := rt.Layout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := store.Reset(cmd.Context()); err != nil {
				return err
			}
			printOrder(cmd.OutOrStdout(), store.Read())
			return nil
		}),
	}

	defineCmd := &cobra.Command{
		Use:   "define <region> <id>...",
		Short: "Set a region's item identifiers in the config file",
		Long: `Replace the identifiers a region knows about, saved under layout.regions in
the config file. Stored orders are repaired against the new list on the next read.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := layout.LookupRegion(args[0], nil); err != nil {
				return err
			}
			regions := make(map[string][]string, len(c.cfg.Layout.Regions)+1)
			for name, ids := range c.cfg.Layout.Regions {
				regions[name] = ids
			}
			regions[args[0]] = args[1:]
			if err := config.ValidateLayout(config.LayoutConfig{Regions: regions}); err != nil {
				return err
			}
			if err := config.SaveLayoutRegions(c.configPath, regions); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (saved to %s)\n", args[0], strings.Join(args[1:], ","), c.configPath)
			return nil
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit <region>",
		Short: "Reorder a region interactively",
		Args:  cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			store, region, err := rt.Layout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := styles.ApplyBrand(rt.Settings().Load(cmd.Context()).Colors); err != nil {
				log.ErrorErr(log.CatUI, "Applying brand colours failed", err)
			}

			mouse := rt.flags.Enabled(flags.FlagReorderMouse)
			programOpts := []tea.ProgramOption{tea.WithContext(cmd.Context())}
			if mouse {
				zone.NewGlobal()
				programOpts = append(programOpts, tea.WithMouseCellMotion())
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if rt.db != nil {
				if err := republishFileChanges(ctx, rt, region.Key); err != nil {
					log.ErrorErr(log.CatWatcher, "Watching database failed", err, "path", rt.db.Path())
				}
			}
			listener := pubsub.NewFilteredListener(ctx, rt.notifying.Broker(), func(e pubsub.Event[kv.Change]) bool {
				return e.Payload.Key == region.Key
			})

			model := reorder.New(ctx, region.Name, store, reorder.WithMouse(mouse), reorder.WithChanges(listener))
			final, err := tea.NewProgram(model, programOpts...).Run()
			if err != nil {
				return fmt.Errorf("running editor: %w", err)
			}
			if m, ok := final.(reorder.Model); ok && m.Saved() {
				printOrder(cmd.OutOrStdout(), m.Items())
			}
			return nil
		}),
	}

	watchCmd := &cobra.Command{
		Use:   "watch <region>",
		Short: "Print a region's order whenever it changes",
		Long: `Print the region's order, then print it again each time it changes. With the
sqlite backend, writes from other weekly processes are picked up through the
database file; the last write wins.`,
		Args: cobra.ExactArgs(1),
		RunE: c.withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, region, err := rt.Layout(ctx, args[0])
			if err != nil {
				return err
			}

			changes := make(chan struct{}, 1)
			g, gctx := errgroup.WithContext(ctx)

			if rt.db != nil {
				w, err := watcher.New(watcher.DefaultConfig(rt.db.Path()))
				if err != nil {
					return fmt.Errorf("creating watcher: %w", err)
				}
				fileEvents, err := w.Start(gctx)
				if err != nil {
					return fmt.Errorf("starting watcher: %w", err)
				}
				g.Go(func() error {
					defer func() { _ = w.Stop() }()
					return forward(gctx, fileEvents, changes)
				})
			}

			keyEvents := rt.notifying.WatchKey(gctx, region.Key)
			g.Go(func() error {
				for {
					select {
					case <-gctx.Done():
						return nil
					case _, ok := <-keyEvents:
						if !ok {
							return nil
						}
						notify(changes)
					}
				}
			})

			g.Go(func() error {
				return watchRegion(gctx, cmd.OutOrStdout(), store, changes, func(ctx context.Context) error {
					return rt.Invalidate(ctx, region.Key)
				})
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		}),
	}

	layoutCmd.AddCommand(listCmd, showCmd, setCmd, moveCmd, resetCmd, defineCmd, editCmd, watchCmd)
	return layoutCmd
}

// republishFileChanges turns writes to the sqlite file by other processes into
// change events for key, after dropping key from the cache.
func republishFileChanges(ctx context.Context, rt *runtime, key string) error {
	w, err := watcher.New(watcher.DefaultConfig(rt.db.Path()))
	if err != nil {
		return err
	}
	events, err := w.Start(ctx)
	if err != nil {
		return err
	}
	go func() {
		defer func() { _ = w.Stop() }()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				if err := rt.Invalidate(ctx, key); err != nil {
					log.ErrorErr(log.CatCache, "Invalidating cached layout failed", err, "key", key)
				}
				rt.notifying.Broker().Publish(pubsub.UpdatedEvent, kv.Change{Key: key})
			}
		}
	}()
	return nil
}

// watchRegion prints the current order, then reloads and prints it after each
// change signal whenever it differs from the last one printed.
func watchRegion(ctx context.Context, w io.Writer, store *layout.Store, changes <-chan struct{}, invalidate func(context.Context) error) error {
	last := store.Read()
	printOrder(w, last)

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := invalidate(ctx); err != nil {
				log.ErrorErr(log.CatLayout, "Invalidating cached layout failed", err, "key", store.Key())
			}
			current := store.Reload(ctx)
			if slices.Equal(current, last) {
				continue
			}
			log.Debug(log.CatLayout, "Layout changed", "key", store.Key(), "order", strings.Join(current, ","))
			printOrder(w, current)
			last = current
		}
	}
}

func forward(ctx context.Context, in <-chan struct{}, out chan<- struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-in:
			if !ok {
				return nil
			}
			notify(out)
		}
	}
}

// notify sends without blocking; one pending signal is enough.
func notify(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func printOrder(w io.Writer, order []string) {
	_, _ = fmt.Fprintln(w, strings.Join(order, " "))
}

// parsePosition converts a 1-based position to an index.
func parsePosition(s string, n int) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > n {
		return 0, fmt.Errorf("position %q must be between 1 and %d", s, n)
	}
	return p - 1, nil
}
