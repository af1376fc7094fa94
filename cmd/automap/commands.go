package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"ca-map/internal/automaton"
	"ca-map/internal/config"
	"ca-map/internal/core"
	"ca-map/internal/storage"

	"github.com/dustin/go-humanize"
)

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	return fs
}

// build resolves the grid flags into an automaton.
func build(fs *flag.FlagSet, grid *gridFlags) (config.File, *automaton.Automaton, error) {
	f, err := grid.File(fs)
	if err != nil {
		return config.File{}, nil, err
	}
	cfg, err := f.Automaton()
	if err != nil {
		return config.File{}, nil, err
	}
	a, err := automaton.New(cfg)
	if err != nil {
		return config.File{}, nil, err
	}
	return f, a, nil
}

func (c *cli) enumerate(ctx context.Context, fs *flag.FlagSet, grid *gridFlags, rf *runFlags) (config.File, *automaton.Map, error) {
	f, a, err := build(fs, grid)
	if err != nil {
		return config.File{}, nil, err
	}
	log := newLogger(c.errOut, rf.Verbose)
	defer func() { _ = log.Sync() }()

	m, err := automaton.NewEnumerator(rf.Options(log)...).EnumerateAll(ctx, a)
	if err != nil {
		return config.File{}, nil, fmt.Errorf("enumerate %s with %d states: %w", a.Shape(), a.States(), err)
	}
	return f, m, nil
}

func (c *cli) runMap(ctx context.Context, args []string) error {
	fs := c.flagSet("map")
	var grid gridFlags
	var rf runFlags
	var sf storeFlags
	grid.Bind(fs)
	rf.Bind(fs)
	sf.Bind(fs)
	asJSON := fs.Bool("json", false, "print the map as JSON")
	save := fs.Bool("save", false, "save the map to the store")
	quiet := fs.Bool("quiet", false, "do not print transitions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, m, err := c.enumerate(ctx, fs, &grid, &rf)
	if err != nil {
		return err
	}

	if *save {
		id, err := c.save(ctx, &sf, f, m)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.errOut, "saved map %s (%s configurations)\n", id, humanize.Comma(int64(m.Len())))
	}
	if *quiet {
		return nil
	}
	if *asJSON {
		return writeMapJSON(c.out, "", m)
	}
	return writeMap(c.out, m)
}

func (c *cli) save(ctx context.Context, sf *storeFlags, f config.File, m *automaton.Map) (string, error) {
	store, err := sf.Open()
	if err != nil {
		return "", err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return "", err
	}
	rules, err := f.RuleSet()
	if err != nil {
		return "", err
	}
	record := storage.NewRecord(m, rules, f.Matcher, f.NoMatch)
	if err := store.SaveMap(ctx, record); err != nil {
		return "", err
	}
	return record.ID, nil
}

func (c *cli) runAttractors(ctx context.Context, args []string) error {
	fs := c.flagSet("attractors")
	var grid gridFlags
	var rf runFlags
	grid.Bind(fs)
	rf.Bind(fs)
	limit := fs.Int("limit", 20, "attractors to list; 0 lists all")
	showGrids := fs.Bool("grids", false, "print the first configuration of each listed cycle")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, m, err := c.enumerate(ctx, fs, &grid, &rf)
	if err != nil {
		return err
	}
	var a *automaton.Automaton
	if *showGrids {
		if _, a, err = build(fs, &grid); err != nil {
			return err
		}
	}
	return writeAnalysis(c.out, m, m.Analyze(), *limit, a)
}

func (c *cli) runStep(_ context.Context, args []string) error {
	fs := c.flagSet("step")
	var grid gridFlags
	grid.Bind(fs)
	sig := fs.Uint64("signature", 0, "starting configuration")
	steps := fs.Int("steps", 1, "generations to print after the start")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, a, err := build(fs, &grid)
	if err != nil {
		return err
	}
	g, err := a.Grid(automaton.Signature(*sig))
	if err != nil {
		return err
	}
	writeGeneration(c.out, 0, g)
	for i := 1; i <= *steps; i++ {
		if g, err = g.Next(); err != nil {
			return err
		}
		writeGeneration(c.out, i, g)
	}
	return nil
}

func (c *cli) runOrbit(ctx context.Context, args []string) error {
	fs := c.flagSet("orbit")
	var grid gridFlags
	grid.Bind(fs)
	sig := fs.Uint64("signature", 0, "starting configuration")
	maxSteps := fs.Int("max", 10000, "give up after this many generations")
	tps := fs.Int("tps", 0, "generations printed per second; 0 prints as fast as possible")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, a, err := build(fs, &grid)
	if err != nil {
		return err
	}
	g, err := a.Grid(automaton.Signature(*sig))
	if err != nil {
		return err
	}

	pace := core.NewFixedStep(*tps)
	seen := map[automaton.Signature]int{}
	for gen := 0; ; gen++ {
		s := g.Signature()
		if first, ok := seen[s]; ok {
			fmt.Fprintf(c.out, "transient %d, period %d (signature %d repeats generation %d)\n", first, gen-first, s, first)
			return nil
		}
		if gen > *maxSteps {
			return fmt.Errorf("no repeat within %d generations", *maxSteps)
		}
		seen[s] = gen
		if err := pace.Wait(ctx); err != nil {
			return err
		}
		writeGeneration(c.out, gen, g)
		if g, err = g.Next(); err != nil {
			return err
		}
	}
}

func (c *cli) runList(ctx context.Context, args []string) error {
	fs := c.flagSet("list")
	var sf storeFlags
	sf.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := sf.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}
	summaries, err := store.ListMaps(ctx)
	if err != nil {
		return err
	}
	return writeSummaries(c.out, summaries)
}

func (c *cli) runShow(ctx context.Context, args []string) error {
	fs := c.flagSet("show")
	var sf storeFlags
	sf.Bind(fs)
	id := fs.String("id", "", "saved map id")
	analyze := fs.Bool("analyze", false, "summarise attractors instead of printing transitions")
	asJSON := fs.Bool("json", false, "print the map as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("show requires -id")
	}

	store, err := sf.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}
	record, ok, err := store.GetMap(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("map %s not found", *id)
	}
	m, err := record.Map()
	if err != nil {
		return err
	}

	switch {
	case *analyze:
		return writeAnalysis(c.out, m, m.Analyze(), 0, nil)
	case *asJSON:
		return writeMapJSON(c.out, record.ID, m)
	default:
		return writeMap(c.out, m)
	}
}
