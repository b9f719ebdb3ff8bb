// Package digest sends a scheduled summary of shop state through the
// configured notifier.
package digest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rekins/garage/internal/models"
	"github.com/rekins/garage/internal/notify"
	"gorm.io/gorm"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Runner fires a shop digest on a cron schedule.
type Runner struct {
	db       *gorm.DB
	notifier notify.Notifier
	schedule cron.Schedule
}

// New creates a digest runner. expr is a 5-field cron expression.
func New(db *gorm.DB, notifier notify.Notifier, expr string) (*Runner, error) {
	if db == nil {
		return nil, fmt.Errorf("digest: db is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("digest: notifier is required")
	}
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("digest: parse schedule %q: %w", expr, err)
	}
	return &Runner{db: db, notifier: notifier, schedule: sched}, nil
}

// Run blocks, firing the digest at each scheduled time until ctx is
// cancelled. Delivery failures are logged and do not stop the loop.
func (r *Runner) Run(ctx context.Context) error {
	for {
		next := r.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		ev, err := r.BuildEvent(time.Now())
		if err != nil {
			log.Printf("digest: build: %v", err)
			continue
		}
		if err := r.notifier.Send(ctx, ev); err != nil {
			log.Printf("digest: send: %v", err)
		}
	}
}

// BuildEvent assembles the digest for the day containing now: the number of
// open work orders and the appointments scheduled for that day.
func (r *Runner) BuildEvent(now time.Time) (notify.Event, error) {
	var openOrders int64
	err := r.db.Model(&models.WorkOrder{}).
		Where("status NOT IN ?", []string{models.StatusDone, models.StatusCancelled}).
		Count(&openOrders).Error
	if err != nil {
		return notify.Event{}, fmt.Errorf("digest: count open orders: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var todays int64
	err = r.db.Model(&models.Appointment{}).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Count(&todays).Error
	if err != nil {
		return notify.Event{}, fmt.Errorf("digest: count appointments: %w", err)
	}

	return notify.Event{
		Title:    "Shop digest for " + now.Format("Mon, 02 Jan 2006"),
		Body:     fmt.Sprintf("%d open work orders, %d appointments today.", openOrders, todays),
		Severity: "info",
	}, nil
}
