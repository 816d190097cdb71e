package grievance

import (
	"context"
	"log"
	"time"

	"gramalert/backend/internal/config"
	"gramalert/backend/internal/storage"
)

// Sweeper periodically scans unresolved grievances and escalates the ones
// whose deadline has passed: overdue flag set, priority raised, escalation
// level bumped, one snapshot published. The sweep is level-triggered, so
// re-running it without intervening mutations changes nothing.
type Sweeper struct {
	Storage  storage.Storage
	Notifier Notifier
	Interval time.Duration

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewSweeper creates a sweeper with the configured default interval.
func NewSweeper(s storage.Storage, n Notifier) *Sweeper {
	return &Sweeper{
		Storage:  s,
		Notifier: n,
		Interval: config.SweepInterval,
		Now:      time.Now,
	}
}

// Run drives RunOnce on a fixed ticker until ctx is cancelled.
func (sw *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sw.Interval)
	defer ticker.Stop()

	log.Println("Escalation sweeper started.")
	for {
		select {
		case <-ctx.Done():
			log.Println("Escalation sweeper stopped.")
			return
		case <-ticker.C:
			sw.RunOnce()
		}
	}
}

// RunOnce performs a single escalation pass over all grievances. A storage
// failure on one record is logged and the pass moves on; the record is
// retried on the next tick since nothing about it changed.
func (sw *Sweeper) RunOnce() {
	log.Println("Running scheduled check for overdue grievances...")

	grievances, err := sw.Storage.GetAllGrievances()
	if err != nil {
		log.Printf("ERROR: Sweep aborted, cannot load grievances: %v", err)
		return
	}

	now := sw.Now()
	escalated := 0
	for _, g := range grievances {
		if g.Status == config.ResolvedStatus {
			continue
		}
		if g.Deadline == nil || !now.After(*g.Deadline) {
			continue
		}
		if g.IsOverdue {
			// Already escalated on an earlier pass.
			continue
		}

		swapped, err := sw.Storage.MarkGrievanceOverdue(g.ID)
		if err != nil {
			log.Printf("ERROR: Failed to escalate grievance %s, will retry next pass: %v", g.ID, err)
			continue
		}
		if !swapped {
			// A concurrent pass won the compare-and-swap.
			continue
		}

		log.Printf("WARN: Grievance %s is now overdue. Escalating.", g.ID)
		g.IsOverdue = true
		g.Priority = config.EscalatedPriority
		g.EscalationLevel = config.EscalatedLevel
		publish(sw.Notifier, buildSnapshot(sw.Storage, g))
		escalated++
	}

	log.Printf("Finished overdue check, escalated %d grievance(s).", escalated)
}
