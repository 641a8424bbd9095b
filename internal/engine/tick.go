package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/talgya/lifesim/internal/agents"
)

// Ticker drives time passage and autonomous behavior for every agent on a
// cron schedule.
type Ticker struct {
	Engine   *Engine
	Locks    *AgentLocks
	Minutes  int  // simulated minutes per tick, [1, 1440]
	Autonomy bool // also perform one autonomous action per agent per tick

	// OnTick, if set, runs after every tick with its summary.
	OnTick func(TickReport)

	ticks atomic.Uint64

	mu   sync.Mutex
	cron *cron.Cron
}

// TickReport summarizes one pass over the population.
type TickReport struct {
	Tick     uint64        `json:"tick"`
	Agents   int           `json:"agents"`
	Decayed  int           `json:"decayed"`
	Actions  int           `json:"actions"`
	Skipped  int           `json:"skipped"` // autonomous picks whose requirements were not met
	Failures int           `json:"failures"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Ticks returns how many ticks have completed.
func (t *Ticker) Ticks() uint64 {
	return t.ticks.Load()
}

// Start schedules ticks using a standard five-field cron spec or a
// descriptor such as "@every 1m". It returns immediately.
func (t *Ticker) Start(spec string) error {
	if t.Minutes < MinPassageMinutes || t.Minutes > MaxPassageMinutes {
		return fmt.Errorf("tick minutes %d outside [%d, %d]", t.Minutes, MinPassageMinutes, MaxPassageMinutes)
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cron != nil {
		return errors.New("ticker already started")
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	c.Schedule(sched, cron.FuncJob(func() {
		t.Run(context.Background())
	}))
	c.Start()
	t.cron = c

	slog.Info("ticker started", "schedule", spec, "minutes", t.Minutes, "autonomy", t.Autonomy)
	return nil
}

// Stop halts scheduling and waits for a running tick to finish.
func (t *Ticker) Stop() {
	t.mu.Lock()
	c := t.cron
	t.cron = nil
	t.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
	slog.Info("ticker stopped", "ticks", t.Ticks())
}

// Run advances every agent by one tick.
func (t *Ticker) Run(ctx context.Context) TickReport {
	start := time.Now()
	report := TickReport{Tick: t.ticks.Add(1)}

	ids, err := t.Engine.AgentIDs(ctx)
	if err != nil {
		slog.Error("tick: list agents failed", "tick", report.Tick, "error", err)
		report.Failures++
		return t.finish(report, start)
	}
	report.Agents = len(ids)

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		t.step(ctx, id, &report)
	}
	return t.finish(report, start)
}

func (t *Ticker) step(ctx context.Context, id agents.AgentID, report *TickReport) {
	unlock := t.Locks.Lock(id)
	defer unlock()

	if _, err := t.Engine.SimulateTimePassage(ctx, id, t.Minutes); err != nil {
		slog.Warn("tick: time passage failed", "agent_id", id, "error", err)
		report.Failures++
		return
	}
	report.Decayed++

	if !t.Autonomy {
		return
	}
	def, ok, err := t.Engine.GenerateAutonomousAction(ctx, id)
	if err != nil {
		slog.Warn("tick: autonomous pick failed", "agent_id", id, "error", err)
		report.Failures++
		return
	}
	if !ok {
		return
	}
	_, err = t.Engine.ExecuteAction(ctx, id, def.ID)
	switch {
	case errors.Is(err, ErrRequirementsNotMet):
		slog.Debug("tick: autonomous action skipped", "agent_id", id, "action", def.ID)
		report.Skipped++
	case err != nil:
		slog.Warn("tick: autonomous action failed", "agent_id", id, "action", def.ID, "error", err)
		report.Failures++
	default:
		report.Actions++
	}
}

func (t *Ticker) finish(report TickReport, start time.Time) TickReport {
	report.Elapsed = time.Since(start)
	slog.Info("tick complete",
		"tick", report.Tick,
		"agents", report.Agents,
		"actions", report.Actions,
		"failures", report.Failures,
		"elapsed", report.Elapsed,
	)
	if t.OnTick != nil {
		t.OnTick(report)
	}
	return report
}
