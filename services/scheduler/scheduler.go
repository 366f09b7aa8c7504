package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Enqueuer hands a due job over for execution, in process or through the queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, param structs.JobQueueParam) error
}

// Trigger is one daily job with its cron spec in the bot's time zone.
type Trigger struct {
	Job  string
	Spec string
}

// Triggers builds the daily plan from the configured cron specs.
func Triggers(cfg structs.EnvironmentModel) []Trigger {
	return []Trigger{
		{Job: enums.JobStepsReminder, Spec: cfg.Schedule.StepsReminder},
		{Job: enums.JobMorningMeal, Spec: cfg.Schedule.MorningMeal},
		{Job: enums.JobAfternoonMeal, Spec: cfg.Schedule.AfternoonMeal},
		{Job: enums.JobEveningMeal, Spec: cfg.Schedule.EveningMeal},
		{Job: enums.JobDailySummary, Spec: cfg.Schedule.DailySummary},
	}
}

// SchedulerService keeps one set of cron entries per user; each set can be replaced or removed
// without touching other users.
type SchedulerService struct {
	cron     *cron.Cron
	triggers []Trigger
	enqueuer Enqueuer
	location *time.Location
	logger   *logrus.Entry

	mu      sync.Mutex
	entries map[int64][]cron.EntryID
}

func New(triggers []Trigger, enqueuer Enqueuer, location *time.Location, logger *logrus.Entry) (*SchedulerService, error) {
	if location == nil {
		location = time.UTC
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for _, trigger := range triggers {
		if _, err := parser.Parse(trigger.Spec); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", trigger.Job, err)
		}
	}

	cronLogger := cron.PrintfLogger(logger)
	return &SchedulerService{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithParser(parser),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger)),
		),
		triggers: triggers,
		enqueuer: enqueuer,
		location: location,
		logger:   logger,
		entries:  make(map[int64][]cron.EntryID),
	}, nil
}

// Register (re)creates the user's daily jobs.
func (s *SchedulerService) Register(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(userID)
	ids := make([]cron.EntryID, 0, len(s.triggers))
	for _, trigger := range s.triggers {
		id, err := s.cron.AddFunc(trigger.Spec, s.fire(userID, trigger.Job))
		if err != nil {
			for _, added := range ids {
				s.cron.Remove(added)
			}
			return fmt.Errorf("schedule %s for %d: %w", trigger.Job, userID, err)
		}
		ids = append(ids, id)
	}
	s.entries[userID] = ids
	s.logger.WithFields(logrus.Fields{"user_id": userID, "jobs": len(ids)}).Debug("reminders scheduled")
	return nil
}

// RegisterAll schedules every known user, skipping the ones that fail.
func (s *SchedulerService) RegisterAll(userIDs []int64) error {
	var failed int
	for _, userID := range userIDs {
		if err := s.Register(userID); err != nil {
			failed++
			s.logger.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Error("reminders not scheduled")
		}
	}
	s.logger.WithFields(logrus.Fields{"users": len(userIDs) - failed, "failed": failed}).Info("reminders scheduled for known users")
	if failed > 0 {
		return fmt.Errorf("%d of %d users not scheduled", failed, len(userIDs))
	}
	return nil
}

func (s *SchedulerService) Unregister(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(userID)
}

func (s *SchedulerService) removeLocked(userID int64) {
	for _, id := range s.entries[userID] {
		s.cron.Remove(id)
	}
	delete(s.entries, userID)
}

// Count returns the number of users with scheduled jobs.
func (s *SchedulerService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *SchedulerService) Users() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]int64, 0, len(s.entries))
	for userID := range s.entries {
		users = append(users, userID)
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return users
}

// Next returns the next run of each of the user's jobs, zero when the scheduler is stopped.
func (s *SchedulerService) Next(userID int64) []time.Time {
	s.mu.Lock()
	ids := append([]cron.EntryID(nil), s.entries[userID]...)
	s.mu.Unlock()

	next := make([]time.Time, 0, len(ids))
	for _, id := range ids {
		next = append(next, s.cron.Entry(id).Next)
	}
	return next
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts the triggers and waits for running jobs to finish.
func (s *SchedulerService) Stop() {
	<-s.cron.Stop().Done()
}

func (s *SchedulerService) fire(userID int64, job string) func() {
	return func() {
		param := structs.JobQueueParam{
			Type:     job,
			UserID:   userID,
			Date:     time.Now().In(s.location).Format(enums.DateLayout),
			Operate:  enums.SystemOperate,
			QueuedAt: time.Now().Format(time.RFC3339),
		}
		if err := s.enqueuer.Enqueue(context.Background(), param); err != nil {
			s.logger.WithFields(logrus.Fields{"user_id": userID, "job": job, "error": err.Error()}).Error("job not enqueued")
		}
	}
}
