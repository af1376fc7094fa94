package main

import (
	"flag"
	"io"
	"runtime"

	"ca-map/internal/automaton"
	"ca-map/internal/config"
	"ca-map/internal/storage"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// gridFlags selects the automaton. Values given on the command line override
// those read from -config.
type gridFlags struct {
	Config        string
	Width         int
	Height        int
	States        int
	Wrap          bool
	Diagonal      bool
	ClipDiagonals bool
	Matcher       string
	NoMatch       string
}

func (g *gridFlags) Bind(fs *flag.FlagSet) {
	def := config.Default()
	fs.StringVar(&g.Config, "config", "", "YAML file with shape, topology and rules")
	fs.IntVar(&g.Width, "width", def.Width, "grid width")
	fs.IntVar(&g.Height, "height", def.Height, "grid height")
	fs.IntVar(&g.States, "states", def.States, "number of cell states")
	fs.BoolVar(&g.Wrap, "wrap", def.Wrap, "join opposite edges")
	fs.BoolVar(&g.Diagonal, "diagonal", def.Diagonal, "count diagonal neighbours")
	fs.BoolVar(&g.ClipDiagonals, "clip-diagonals", def.ClipDiagonals, "keep non-wrapping diagonals inside their row span")
	fs.StringVar(&g.Matcher, "matcher", "first", "rule matcher: first|specific")
	fs.StringVar(&g.NoMatch, "no-match", "fail", "unmatched cells: fail|keep|zero")
}

// File loads -config (or the defaults) and applies explicitly set flags.
func (g *gridFlags) File(fs *flag.FlagSet) (config.File, error) {
	f := config.Default()
	if g.Config != "" {
		loaded, err := config.Load(g.Config)
		if err != nil {
			return config.File{}, err
		}
		f = loaded
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			f.Width = g.Width
		case "height":
			f.Height = g.Height
		case "states":
			f.States = g.States
		case "wrap":
			f.Wrap = g.Wrap
		case "diagonal":
			f.Diagonal = g.Diagonal
		case "clip-diagonals":
			f.ClipDiagonals = g.ClipDiagonals
		case "matcher":
			f.Matcher = g.Matcher
		case "no-match":
			f.NoMatch = g.NoMatch
		}
	})
	return f, nil
}

// runFlags controls enumeration.
type runFlags struct {
	Workers int
	Ceiling uint64
	Batch   uint64
	Verbose bool
}

func (r *runFlags) Bind(fs *flag.FlagSet) {
	fs.IntVar(&r.Workers, "workers", runtime.NumCPU(), "parallel enumeration batches")
	fs.Uint64Var(&r.Ceiling, "ceiling", automaton.DefaultCeiling, "largest domain to enumerate")
	fs.Uint64Var(&r.Batch, "batch", 4096, "signatures per batch")
	fs.BoolVar(&r.Verbose, "v", false, "log progress")
}

func (r *runFlags) Options(log *zap.Logger) []automaton.Option {
	return []automaton.Option{
		automaton.WithWorkers(r.Workers),
		automaton.WithCeiling(r.Ceiling),
		automaton.WithBatchSize(r.Batch),
		automaton.WithLogger(log),
	}
}

// storeFlags selects the map store.
type storeFlags struct {
	Kind string
	Path string
}

func (s *storeFlags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&s.Kind, "store", "sqlite", "store backend: memory|sqlite")
	fs.StringVar(&s.Path, "db-path", "automap.db", "sqlite database path")
}

func (s *storeFlags) Open() (storage.Store, error) {
	return storage.NewStore(s.Kind, s.Path)
}

// newLogger writes human-readable logs to w. Info and above are shown;
// verbose adds debug output.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}
