package job

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/services"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	"github.com/sirupsen/logrus"
)

type Store interface {
	StepsExist(userID int64, date time.Time) (bool, error)
	HasMealBetween(userID int64, date time.Time, fromHour, toHour int) (bool, error)
	InsertActivityLog(logName string, causerID int64, data interface{}) error
}

// Summarizer delivers the daily report to a chat.
type Summarizer interface {
	SendSummary(ctx context.Context, chatID, userID int64, date time.Time) error
}

// JobService runs scheduled jobs: reminders and the automatic end-of-day report.
type JobService struct {
	store     Store
	messenger services.Messenger
	summaries Summarizer
	location  *time.Location
	logger    *logrus.Entry
}

func New(store Store, messenger services.Messenger, summaries Summarizer, location *time.Location, logger *logrus.Entry) *JobService {
	if location == nil {
		location = time.UTC
	}
	return &JobService{
		store:     store,
		messenger: messenger,
		summaries: summaries,
		location:  location,
		logger:    logger,
	}
}

// Enqueue runs the job right away; it is the in-process path used when no queue is configured.
func (j *JobService) Enqueue(ctx context.Context, param structs.JobQueueParam) error {
	return j.Start(ctx, param)
}

// Start executes one job and records the outcome in the activity log.
func (j *JobService) Start(ctx context.Context, param structs.JobQueueParam) error {
	date, err := j.jobDate(param.Date)
	if err != nil {
		return err
	}
	logger := j.logger.WithFields(logrus.Fields{"job": param.Type, "user_id": param.UserID, "date": date.Format(enums.DateLayout)})

	sent, err := j.run(ctx, param.Type, param.UserID, date)

	result := structs.ActivityLogJsonModel{
		Type:    param.Type,
		UserID:  param.UserID,
		Date:    date.Format(enums.DateLayout),
		Result:  err == nil,
		Skipped: err == nil && !sent,
		Message: "sent",
	}
	switch {
	case err != nil:
		result.Message = "failed"
		result.Errors = []structs.ErrorModel{{UserID: param.UserID, ErrorMessage: err.Error()}}
		logger.WithFields(logrus.Fields{"error": err.Error()}).Error("job failed")
	case !sent:
		result.Message = "nothing to remind"
		logger.Debug("job skipped")
	default:
		logger.Info("job done")
	}

	if logErr := j.store.InsertActivityLog("nutrition.job."+param.Type, param.UserID, result); logErr != nil {
		logger.WithFields(logrus.Fields{"error": logErr.Error()}).Warn("activity log not written")
	}
	return err
}

func (j *JobService) jobDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().In(j.location), nil
	}
	date, err := time.ParseInLocation(enums.DateLayout, raw, j.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("job date %q: %w", raw, err)
	}
	return date, nil
}

// run reports whether a message went out.
func (j *JobService) run(ctx context.Context, jobType string, userID int64, date time.Time) (bool, error) {
	switch jobType {
	case enums.JobStepsReminder:
		return j.stepsReminder(ctx, userID, date)
	case enums.JobMorningMeal, enums.JobAfternoonMeal, enums.JobEveningMeal:
		return j.mealReminder(ctx, jobType, userID, date)
	case enums.JobDailySummary:
		if err := j.summaries.SendSummary(ctx, userID, userID, date); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, fmt.Errorf("unknown job type %q", jobType)
}

// stepsReminder asks for yesterday's steps unless they were already recorded.
func (j *JobService) stepsReminder(ctx context.Context, userID int64, date time.Time) (bool, error) {
	exists, err := j.store.StepsExist(userID, date.AddDate(0, 0, -1))
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	return true, j.notify(ctx, userID, stepsReminders)
}

func (j *JobService) mealReminder(ctx context.Context, jobType string, userID int64, date time.Time) (bool, error) {
	window := enums.MealWindows[jobType]
	eaten, err := j.store.HasMealBetween(userID, date, window.FromHour, window.ToHour)
	if err != nil {
		return false, err
	}
	if eaten {
		return false, nil
	}
	return true, j.notify(ctx, userID, mealReminders[jobType])
}

func (j *JobService) notify(ctx context.Context, userID int64, lines []string) error {
	text := lines[rand.Intn(len(lines))]
	if err := j.messenger.Send(ctx, structs.OutgoingMessage{ChatID: userID, Text: text}); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	return nil
}
