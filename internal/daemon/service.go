// Package daemon provides the long-running local status service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/revtrack/internal/log"
	"github.com/theirongolddev/revtrack/internal/model"
	"github.com/theirongolddev/revtrack/internal/pipeline"
	"github.com/theirongolddev/revtrack/internal/store"
)

// Source loads current state. *store.Store satisfies it.
type Source interface {
	Load(defaults model.GoalParameters) (store.State, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Week         pipeline.WeekOptions
	BarWeeks     int
	GoalDefaults model.GoalParameters
	// Today returns the current day; model.Today when nil.
	Today  func() time.Time
	Logger *log.Logger
}

// Snapshot is the derived revenue state for status and event payloads.
type Snapshot struct {
	At              time.Time `json:"at"`
	Entries         int       `json:"entries"`
	TotalRevenue    float64   `json:"total_revenue"`
	TargetAmount    float64   `json:"target_amount"`
	TargetDate      string    `json:"target_date"`
	ProgressPercent float64   `json:"progress_percent"`
	DaysPassed      int       `json:"days_passed"`
	AvgDailyIncome  float64   `json:"avg_daily_income"`
	RemainingAmount float64   `json:"remaining_amount"`
	DaysRemaining   int       `json:"days_remaining"`
	RequiredDaily   float64   `json:"required_daily"`
	OnTrack         bool      `json:"on_track"`
}

// Delta captures snapshot changes between polls.
type Delta struct {
	Entries      int     `json:"entries"`
	TotalRevenue float64 `json:"total_revenue"`
	TargetAmount float64 `json:"target_amount"`
	TargetDate   bool    `json:"target_date_changed,omitempty"`
	Day          bool    `json:"day_changed,omitempty"`
}

func (d Delta) isZero() bool {
	return d.Entries == 0 &&
		d.TotalRevenue == 0 &&
		d.TargetAmount == 0 &&
		!d.TargetDate &&
		!d.Day
}

// Event is emitted whenever the derived state changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Series is served at /v1/series.
type Series struct {
	Cumulative []model.CumulativePoint `json:"cumulative"`
	Weekly     []model.WeeklyBar       `json:"weekly"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	src     Source
	log     *log.Logger
	metrics *metrics
	events  *broker

	mu         sync.RWMutex
	startedAt  time.Time
	lastPollAt time.Time
	pollCount  int64
	lastError  string
	snapshot   *Snapshot
	series     Series
}

// New returns a daemon service reading from src.
func New(cfg Config, src Source) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 15 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.Week.DisplayDays == 0 {
		cfg.Week = pipeline.DefaultWeekOptions
	}
	if cfg.BarWeeks < 1 {
		cfg.BarWeeks = pipeline.DefaultBarWeeks
	}
	if cfg.Today == nil {
		cfg.Today = model.Today
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}

	return &Service{
		cfg:       cfg,
		src:       src,
		log:       logger.WithComponent(log.ComponentDaemon),
		metrics:   newMetrics(),
		events:    newBroker(cfg.EventsBuffer),
		startedAt: time.Now(),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/series", s.handleSeries)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	mux.Handle("GET /metrics", s.metrics.handler())
	return mux
}

// Run serves the HTTP API and polls the store until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("daemon http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		s.pollLoop(ctx)
		return nil
	})

	s.log.Info("daemon started", log.FieldAddr, s.cfg.Addr, log.FieldPath, s.cfg.DBPath)
	return g.Wait()
}

// pollLoop polls once right away so /v1/status has data before the first
// tick.
func (s *Service) pollLoop(ctx context.Context) {
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pollOnce()
		}
	}
}

func (s *Service) pollOnce() {
	start := time.Now()
	st, err := s.src.Load(s.cfg.GoalDefaults)
	s.metrics.pollLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.polls.WithLabelValues(resultError).Inc()
		s.recordPoll(time.Now(), err.Error())
		s.log.Error("poll failed", log.FieldOperation, log.OpPoll, log.FieldError, err)
		return
	}
	s.metrics.polls.WithLabelValues(resultSuccess).Inc()

	now := time.Now()
	today := model.DayOf(s.cfg.Today())
	snap := snapshotFromState(st, today, now)
	series := Series{
		Cumulative: pipeline.AggregateWith(st.Entries, today, s.cfg.Week),
		Weekly:     pipeline.WeeklyBars(st.Entries, today, s.cfg.BarWeeks),
	}
	s.metrics.observe(snap)

	s.mu.Lock()
	prev := s.snapshot
	s.snapshot = &snap
	s.series = series
	s.mu.Unlock()
	s.recordPoll(now, "")

	ev := Event{Type: "snapshot", Timestamp: now, Snapshot: snap}
	if prev != nil {
		ev.Type = "revenue_delta"
		ev.Delta = diffSnapshots(*prev, snap)
		if ev.Delta.isZero() {
			return
		}
	}
	s.events.publish(ev)
	s.log.Debug("state changed", log.FieldOperation, log.OpPoll, log.FieldCount, snap.Entries)
}

func (s *Service) recordPoll(at time.Time, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPollAt = at
	s.pollCount++
	s.lastError = errMsg
}

func snapshotFromState(st store.State, today, at time.Time) Snapshot {
	stats := pipeline.PacingFor(st.Entries, st.Goal, today)
	progress := pipeline.GoalProgress(stats.TotalRevenue, st.Goal.TargetAmount)
	return Snapshot{
		At:              at,
		Entries:         len(st.Entries),
		TotalRevenue:    stats.TotalRevenue,
		TargetAmount:    st.Goal.TargetAmount,
		TargetDate:      model.FormatDay(st.Goal.TargetDate),
		ProgressPercent: progress.Percent,
		DaysPassed:      stats.DaysPassed,
		AvgDailyIncome:  stats.AvgDailyIncome,
		RemainingAmount: stats.RemainingAmount,
		DaysRemaining:   stats.DaysRemaining,
		RequiredDaily:   stats.RequiredDaily,
		OnTrack:         stats.OnTrack(),
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Entries:      curr.Entries - prev.Entries,
		TotalRevenue: curr.TotalRevenue - prev.TotalRevenue,
		TargetAmount: curr.TargetAmount - prev.TargetAmount,
		TargetDate:   curr.TargetDate != prev.TargetDate,
		Day:          curr.DaysPassed != prev.DaysPassed || curr.DaysRemaining != prev.DaysRemaining,
	}
}

func (s *Service) currentSnapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return Snapshot{}
	}
	return *s.snapshot
}

func (s *Service) snapshotStatus() Status {
	events, subs := s.events.counts()

	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		LastError:       s.lastError,
		EventCount:      events,
		SubscriberCount: subs,
	}
	if s.snapshot != nil {
		st.Summary = *s.snapshot
	}
	return st
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.snapshotStatus())
}

func (s *Service) handleSeries(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	series := s.series
	s.mu.RUnlock()
	writeJSON(w, series)
}

// handleEvents lists retained events; ?since=N returns only newer ones.
func (s *Service) handleEvents(w http.ResponseWriter, r *http.Request) {
	after, _ := strconv.ParseInt(r.URL.Query().Get("since"), 10, 64)
	writeJSON(w, s.events.since(after))
}

// handleStream serves server-sent events. A client reconnecting with
// Last-Event-ID gets the retained events it missed; a fresh client gets the
// current snapshot first.
func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, unsubscribe := s.events.subscribe()
	defer unsubscribe()

	var lastSent int64
	if id, err := strconv.ParseInt(r.Header.Get("Last-Event-ID"), 10, 64); err == nil {
		for _, ev := range s.events.since(id) {
			writeSSE(w, ev)
			lastSent = ev.ID
		}
	} else {
		writeSSE(w, Event{Type: "snapshot", Timestamp: time.Now(), Snapshot: s.currentSnapshot()})
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			if ev.ID <= lastSent {
				continue
			}
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if ev.ID > 0 {
		_, _ = fmt.Fprintf(w, "id: %d\n", ev.ID)
	}
	_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
}
