package guidance

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"guidepost/internal/events"
	"guidepost/internal/model"
	"guidepost/internal/store"
	"guidepost/internal/telemetry"
)

// trackerKey is the persistence key for the durable tracker state.
const trackerKey = "guidance.tracker.v1"

// SnapshotFunc produces the current business-state snapshot. Reads are
// best-effort: a transiently inconsistent snapshot yields a transient task
// state, corrected on the next recomputation.
type SnapshotFunc func() (model.Snapshot, error)

// GuidanceState is the externally visible engine state: the derived tiers
// plus the durable counters behind them.
type GuidanceState struct {
	Daily       []ActionTask `json:"daily"`
	Weekly      []ActionTask `json:"weekly"`
	Monthly     []ActionTask `json:"monthly"`
	TaskHistory []string     `json:"task_history"`
	Streaks     Streaks      `json:"streaks"`
	LastResetAt time.Time    `json:"last_reset_at"`
}

// Options tune the engine; zero values fall back to defaults.
type Options struct {
	TierCapacity int
	Windows      ResetWindows
	Telemetry    telemetry.Repository
}

// Service owns the tracker state and runs the derive → streaks → persist
// pipeline. It is synchronous and single-writer: every entry point takes the
// one mutex, and persistence is fire-and-forget last-writer-wins.
type Service struct {
	mu       sync.Mutex
	kv       store.KV
	clock    Clock
	log      *zap.Logger
	deriver  *Deriver
	windows  ResetWindows
	snapshot SnapshotFunc
	telem    telemetry.Repository

	tracker *TrackerState
	tiers   Tiers
}

func NewService(kv store.KV, clock Clock, log *zap.Logger, opts Options, snapshot SnapshotFunc) *Service {
	if clock == nil {
		clock = RealClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Windows.Daily <= 0 {
		opts.Windows = DefaultResetWindows()
	}
	return &Service{
		kv:       kv,
		clock:    clock,
		log:      log,
		deriver:  NewDeriver(opts.TierCapacity, log),
		windows:  opts.Windows,
		snapshot: snapshot,
		telem:    opts.Telemetry,
	}
}

// Load hydrates the tracker from the persistence adapter, runs a catch-up
// reset check, and derives the initial tiers. Corrupt persisted state is
// discarded and reinitialized rather than failing startup.
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	raw, ok, err := s.kv.Get(trackerKey)
	if err != nil {
		return fmt.Errorf("load guidance state: %w", err)
	}

	tr := NewTrackerState(now)
	if ok {
		var loaded TrackerState
		if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
			s.log.Warn("discarding corrupt guidance state", zap.Error(err))
		} else {
			loaded.normalize()
			tr = &loaded
		}
	}
	s.tracker = tr

	prevDaily := s.tracker.Streaks.Daily
	if CheckAndReset(s.tracker, now, s.windows) {
		s.log.Info("guidance reset on load",
			zap.Time("last_reset_at", s.tracker.LastResetAt))
		s.recordReset(prevDaily)
	}
	return s.refreshLocked(now)
}

// Refresh re-derives the tiers from a fresh business snapshot. Wired to the
// event bus so every business-state mutation funnels through here.
func (s *Service) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(s.clock.Now())
}

// Bind subscribes the service to business-state change notifications.
func (s *Service) Bind(bus *events.Bus) {
	bus.Subscribe(func(e events.Event) {
		if err := s.Refresh(); err != nil {
			s.log.Warn("guidance refresh failed",
				zap.String("event", string(e.Kind)),
				zap.Error(err))
		}
	})
}

// Tick runs the lazy reset check. Called on an hourly poll; cheap no-op when
// no window has elapsed.
func (s *Service) Tick() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	prevDaily := s.tracker.Streaks.Daily
	if !CheckAndReset(s.tracker, now, s.windows) {
		return nil
	}
	s.log.Info("guidance tiers reset", zap.Time("at", now))
	s.recordReset(prevDaily)
	return s.refreshLocked(now)
}

// CompleteTask marks a task completed across whichever tier holds it and
// records the optional one-time action key. Unknown ids are a silent no-op.
func (s *Service) CompleteTask(taskID, actionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if !s.tracker.Complete(&s.tiers, taskID, actionKey, now) {
		s.log.Debug("complete on unknown task", zap.String("task", taskID))
		return nil
	}
	s.log.Info("task completed",
		zap.String("task", taskID),
		zap.String("action_key", actionKey))
	tier, _ := s.tiers.TierOf(taskID)
	s.record(telemetry.EventTaskCompleted, telemetry.EventMetadata{
		"task": taskID,
		"tier": string(tier),
	})
	return s.refreshLocked(now)
}

// State returns a copy of the current guidance state.
func (s *Service) State() GuidanceState {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]string, len(s.tracker.History))
	copy(history, s.tracker.History)

	return GuidanceState{
		Daily:       append([]ActionTask(nil), s.tiers.Daily...),
		Weekly:      append([]ActionTask(nil), s.tiers.Weekly...),
		Monthly:     append([]ActionTask(nil), s.tiers.Monthly...),
		TaskHistory: history,
		Streaks:     s.tracker.Streaks,
		LastResetAt: s.tracker.LastResetAt,
	}
}

// refreshLocked is the single recompute pipeline: derive, update streaks
// (re-deriving once if they moved, so streak-bound tasks promote in the same
// pass), pin derived completions, persist.
func (s *Service) refreshLocked(now time.Time) error {
	snap, err := s.snapshot()
	if err != nil {
		return fmt.Errorf("business snapshot: %w", err)
	}

	tiers := s.deriver.Derive(&snap, s.tracker, now)
	if UpdateStreaks(s.tracker, tiers.Daily, now) {
		tiers = s.deriver.Derive(&snap, s.tracker, now)
		s.record(telemetry.EventStreakAdvanced, telemetry.EventMetadata{
			"daily":  s.tracker.Streaks.Daily,
			"weekly": s.tracker.Streaks.Weekly,
		})
	}
	before := make(map[string]bool, len(s.tracker.Derived))
	for id := range s.tracker.Derived {
		before[id] = true
	}
	s.tracker.SyncDerived(&tiers)
	for id, c := range s.tracker.Derived {
		if !before[id] {
			s.record(telemetry.EventTaskAutoDone, telemetry.EventMetadata{
				"task": id,
				"tier": string(c.Tier),
			})
		}
	}
	s.tiers = tiers

	s.save()
	return nil
}

// save writes the tracker through the persistence adapter. Fire-and-forget:
// a failed write is logged, not surfaced, and the next mutation retries.
func (s *Service) save() {
	b, err := json.Marshal(s.tracker)
	if err != nil {
		s.log.Error("marshal guidance state", zap.Error(err))
		return
	}
	if err := s.kv.Set(trackerKey, string(b)); err != nil {
		s.log.Error("persist guidance state", zap.Error(err))
	}
}

func (s *Service) record(t telemetry.EventType, meta telemetry.EventMetadata) {
	if s.telem == nil {
		return
	}
	if err := s.telem.RecordEvent(t, meta); err != nil {
		s.log.Debug("record telemetry event", zap.Error(err))
	}
}

func (s *Service) recordReset(prevDaily int) {
	s.record(telemetry.EventTierReset, telemetry.EventMetadata{
		"at": s.tracker.LastResetAt.UTC().Format(time.RFC3339),
	})
	if prevDaily > 0 && s.tracker.Streaks.Daily == 0 {
		s.record(telemetry.EventStreakBroken, telemetry.EventMetadata{
			"was": prevDaily,
		})
	}
}
