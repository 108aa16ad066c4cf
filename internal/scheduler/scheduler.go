// Package scheduler runs background tasks on a cron schedule.
package scheduler

import (
	"github.com/robfig/cron/v3"
)

// ScheduledTask wraps a single cron entry so it can be cancelled cleanly.
type ScheduledTask struct {
	cronID cron.EntryID
	cron   *cron.Cron
	cancel chan struct{}
}

// NewScheduledTask registers taskFunc under the given cron expression and
// starts the scheduler. Standard cron expressions and the @every form are
// both accepted.
func NewScheduledTask(cronSpec string, taskFunc func()) (*ScheduledTask, error) {
	c := cron.New()
	cancel := make(chan struct{})
	task := &ScheduledTask{
		cron:   c,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		select {
		case <-cancel:
			return
		default:
			taskFunc()
		}
	})
	if err != nil {
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

// Cancel removes the entry and stops the scheduler. A run already in
// progress finishes; no new runs start.
func (s *ScheduledTask) Cancel() {
	s.cron.Remove(s.cronID)
	s.cron.Stop()
	close(s.cancel)
}
