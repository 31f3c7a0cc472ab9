package web

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"shuttleboard/importer"
	"shuttleboard/timetable"
)

// Snapshot is the dashboard state at one point in time. Exactly one of
// Loading, Err or Loaded describes it.
type Snapshot struct {
	Loading   bool
	Loaded    bool
	Err       error
	Dataset   timetable.Dataset
	FetchedAt time.Time
}

// Loader owns the single dataset shown by the dashboard. Start triggers the
// initial fetch; Reload discards the current state and fetches again. At most
// one fetch runs at a time.
type Loader struct {
	reader     importer.Reader
	timeColumn string
	log        zerolog.Logger
	now        func() time.Time

	startOnce sync.Once
	mu        sync.RWMutex
	baseCtx   context.Context
	inFlight  bool
	snap      Snapshot
}

func NewLoader(reader importer.Reader, timeColumn string, logger zerolog.Logger) *Loader {
	if timeColumn == "" {
		timeColumn = timetable.DefaultTimeColumn
	}
	return &Loader{
		reader:     reader,
		timeColumn: timeColumn,
		log:        logger,
		now:        time.Now,
		baseCtx:    context.Background(),
		snap:       Snapshot{Loading: true},
	}
}

// Start runs the initial fetch in the background. Later calls are no-ops.
// ctx bounds every fetch this loader performs.
func (l *Loader) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		l.mu.Lock()
		l.baseCtx = ctx
		l.mu.Unlock()
		l.Reload()
	})
}

// Reload resets the state to loading and fetches in the background. It
// reports false when a fetch is already running.
func (l *Loader) Reload() bool {
	ctx, ok := l.begin()
	if !ok {
		return false
	}
	go l.finish(ctx)
	return true
}

// Load fetches synchronously and returns the resulting snapshot. When a fetch
// is already running the current snapshot is returned unchanged.
func (l *Loader) Load(ctx context.Context) Snapshot {
	if _, ok := l.begin(); !ok {
		return l.Snapshot()
	}
	return l.finish(ctx)
}

func (l *Loader) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}

func (l *Loader) begin() (context.Context, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight {
		return nil, false
	}
	l.inFlight = true
	l.snap = Snapshot{Loading: true}
	return l.baseCtx, true
}

func (l *Loader) finish(ctx context.Context) Snapshot {
	started := l.now()
	table, err := l.reader.Read(ctx)

	next := Snapshot{FetchedAt: l.now()}
	if err != nil {
		next.Err = err
		l.log.Error().Err(err).Msg("load timetable")
	} else {
		next.Loaded = true
		next.Dataset = timetable.FromTable(table, l.timeColumn)
		l.log.Info().
			Int("records", len(table.Records)).
			Int("arrivals", len(next.Dataset.Arrivals)).
			Int("departures", len(next.Dataset.Departures)).
			Dur("elapsed", next.FetchedAt.Sub(started)).
			Msg("timetable loaded")
	}

	l.mu.Lock()
	l.snap = next
	l.inFlight = false
	l.mu.Unlock()

	return next
}
