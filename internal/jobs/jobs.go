// Package jobs runs the nightly housekeeping of the request workflows.
package jobs

import (
	"fmt"
	"log"
	"precinct-backend/internal/model"
	"precinct-backend/internal/usecase"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	CompletionSpec = "5 0 * * *" // 00:05 every day
	ReminderSpec   = "0 7 * * *" // 07:00 every day
)

// Completer is implemented by every RequestUsecase.
type Completer interface {
	CompleteExpired(today string) (int, error)
}

type Scheduler struct {
	cron       *cron.Cron
	loc        *time.Location
	completers map[string]Completer
	court      *usecase.RequestUsecase[*model.CourtRequest]
	notifier   *usecase.NotificationUsecase

	Now func() time.Time
}

func NewScheduler(loc *time.Location, completers map[string]Completer, court *usecase.RequestUsecase[*model.CourtRequest], notifier *usecase.NotificationUsecase) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		loc:        loc,
		completers: completers,
		court:      court,
		notifier:   notifier,
		Now:        time.Now,
	}
}

// Start registers both jobs and starts the cron runner in the background.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(CompletionSpec, func() { s.CompleteExpired() }); err != nil {
		return fmt.Errorf("schedule completion job: %w", err)
	}
	if _, err := s.cron.AddFunc(ReminderSpec, func() { s.RemindCourt() }); err != nil {
		return fmt.Errorf("schedule court reminder job: %w", err)
	}

	s.cron.Start()
	log.Printf("jobs: scheduler started (completion %q, court reminder %q)", CompletionSpec, ReminderSpec)
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("jobs: scheduler stopped")
}

// CompleteExpired marks every accepted request whose last day is over as
// completed and returns how many changed.
func (s *Scheduler) CompleteExpired() int {
	today := s.Now().In(s.loc).Format(model.DateLayout)

	total := 0
	for kind, c := range s.completers {
		n, err := c.CompleteExpired(today)
		total += n
		if err != nil {
			log.Printf("jobs: complete %s requests: %v", kind, err)
			continue
		}
		if n > 0 {
			log.Printf("jobs: completed %d %s request(s)", n, kind)
		}
	}
	return total
}

// RemindCourt notifies officers whose accepted court appearance is tomorrow.
func (s *Scheduler) RemindCourt() int {
	if s.court == nil || s.notifier == nil {
		return 0
	}
	tomorrow := s.Now().In(s.loc).AddDate(0, 0, 1).Format(model.DateLayout)

	list, err := s.court.StartingOn(tomorrow)
	if err != nil {
		log.Printf("jobs: list court appearances: %v", err)
		return 0
	}

	sent := 0
	for _, item := range list {
		at := item.AppearanceTime
		if at == "" {
			at = "time not set"
		}
		err := s.notifier.Notify(item.UserID, usecase.Message{
			Type:    model.NotifyReminder,
			Title:   "Court appearance tomorrow",
			Message: fmt.Sprintf("Case %s at %s, %s (%s).", item.CaseNumber, item.CourtName, item.AppearanceDate, at),
			Link:    fmt.Sprintf("/requests/%s/%d", model.KindCourt, item.ID),
		})
		if err != nil {
			log.Printf("jobs: remind user %d: %v", item.UserID, err)
			continue
		}
		sent++
	}
	return sent
}
