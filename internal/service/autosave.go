package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// ─────────────────────────────────────────────────────────────
// Autosave: periodic flush of dirty pages
// ─────────────────────────────────────────────────────────────

const autosaveJob = "autosave"

// Autosaver saves every dirty open page on a cron schedule.
type Autosaver struct {
	editor *EditorService
	spec   string

	mu    sync.Mutex
	sched *cron.Cron
	guard runningJobsGuard
}

// NewAutosaver validates spec (a robfig/cron expression such as
// "@every 30s") without starting anything.
func NewAutosaver(editor *EditorService, spec string) (*Autosaver, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("autosave schedule %q: %w", spec, err)
	}
	return &Autosaver{editor: editor, spec: spec}, nil
}

// Start schedules the job. Calling Start twice is a no-op.
func (a *Autosaver) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sched != nil {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(a.spec, func() { a.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("schedule autosave: %w", err)
	}
	c.Start()
	a.sched = c
	log.Printf("[autosave] scheduled %s", a.spec)
	return nil
}

// RunOnce saves dirty pages now. A run already in progress makes this a
// no-op returning false.
func (a *Autosaver) RunOnce(ctx context.Context) bool {
	if !a.guard.TryLock(autosaveJob) {
		return false
	}
	defer a.guard.Unlock(autosaveJob)

	n, err := a.editor.SaveAll(ctx)
	if err != nil {
		log.Printf("[autosave] %v", err)
	}
	if n > 0 {
		log.Printf("[autosave] saved %d page(s)", n)
	}
	return true
}

// Stop halts the schedule, waits for a running save and flushes once more.
func (a *Autosaver) Stop(ctx context.Context) {
	a.mu.Lock()
	if a.sched != nil {
		<-a.sched.Stop().Done()
		a.sched = nil
	}
	a.mu.Unlock()
	a.guard.WaitAll(ctx)
	a.RunOnce(ctx)
}
