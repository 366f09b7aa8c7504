package conversation

import (
	"context"
	"fmt"
	"math/rand"
	"runtime/debug"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/models"
	"github.com/AliaksandrTarashkevich/ppianieal/services"
	"github.com/AliaksandrTarashkevich/ppianieal/services/session"
	"github.com/AliaksandrTarashkevich/ppianieal/services/summary"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	"github.com/sirupsen/logrus"
)

// Store is the part of the persistence gateway the dialog writes through.
type Store interface {
	UserExists(userID int64) (bool, error)
	SaveUser(user models.User) error
	GetUserTargets(userID int64) (structs.Targets, error)
	SetDeficitMode(userID int64, mode string) (int, error)
	SaveWeight(userID int64, weight float64, date time.Time) error
	GetLastWeight(userID int64, excludeDate time.Time) (float64, bool, error)
	SaveSteps(userID int64, steps int, date time.Time) error
	SaveBurnedCalories(userID int64, calories int, date time.Time) error
	SaveMeal(meal *models.Meal) error
}

type Analyzer interface {
	Analyze(ctx context.Context, description string, image []byte) (*structs.FoodAnalysis, error)
}

type Reporter interface {
	Build(userID int64, date time.Time) (*structs.Summary, error)
}

// Images signs reference pictures and archives meal photos.
type Images interface {
	SignedURL(ctx context.Context, key string) (string, error)
	UploadMealPhoto(ctx context.Context, userID int64, date time.Time, photo []byte) (string, error)
}

// Scheduler starts the per-user reminders once onboarding completes.
type Scheduler interface {
	Register(userID int64) error
}

// Deps are the collaborators of the dialog. Images and Scheduler are optional.
type Deps struct {
	Messenger services.Messenger
	Sessions  session.Store
	Store     Store
	Analyzer  Analyzer
	Reporter  Reporter
	Images    Images
	Scheduler Scheduler
}

type Options struct {
	Location           *time.Location
	ActiveHoursStart   int
	ActiveHoursEnd     int
	OperatorID         int64
	MaleBodyFatImage   string
	FemaleBodyFatImage string
	MealExampleImage   string
	// Now is replaced in tests
	Now func() time.Time
}

type Dialog struct {
	Deps
	opts   Options
	logger *logrus.Entry
}

// stateHandler processes one message in a state and returns the next state.
type stateHandler func(d *Dialog, ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error)

var stateHandlers map[State]stateHandler

func init() {
	stateHandlers = map[State]stateHandler{
		StateIdle:                (*Dialog).handleIdle,
		StateAskWeight:           (*Dialog).handleAskWeight,
		StateAskHeight:           (*Dialog).handleAskHeight,
		StateAskGender:           (*Dialog).handleAskGender,
		StateAskBodyFat:          (*Dialog).handleAskBodyFat,
		StateAskDeficitMode:      (*Dialog).handleAskDeficitMode,
		StateConfirmInstructions: (*Dialog).handleConfirmInstructions,
		StateWeightMenu:          (*Dialog).handleWeightMenu,
		StateStepsMenu:           (*Dialog).handleStepsMenu,
		StateInputWeight:         (*Dialog).handleInputWeight,
		StateInputSteps:          (*Dialog).handleInputSteps,
		StateInputBurn:           (*Dialog).handleInputBurn,
		StateChangeDeficitMode:   (*Dialog).handleChangeDeficitMode,
	}
}

func New(deps Deps, opts Options, logger *logrus.Entry) *Dialog {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ActiveHoursEnd == 0 {
		opts.ActiveHoursStart, opts.ActiveHoursEnd = 8, 21
	}
	return &Dialog{
		Deps:   deps,
		opts:   opts,
		logger: logger,
	}
}

func (d *Dialog) now() time.Time {
	return d.opts.Now().In(d.opts.Location)
}

func (d *Dialog) yesterday() time.Time {
	return d.now().AddDate(0, 0, -1)
}

// Handle processes one incoming message. Panics are recovered, answered with a generic
// reply and reported to the operator.
func (d *Dialog) Handle(ctx context.Context, msg structs.IncomingMessage) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithFields(logrus.Fields{"user_id": msg.UserID, "panic": fmt.Sprint(r), "stack": string(debug.Stack())}).Error("panic while handling message")
			d.reply(ctx, msg, msgGenericError, nil)
			d.NotifyOperator(ctx, fmt.Sprintf(msgOperatorPanic, msg.UserID, r))
		}
	}()

	if err := d.handle(ctx, msg); err != nil {
		d.logger.WithFields(logrus.Fields{"user_id": msg.UserID, "error": err.Error()}).Error("message not handled")
		d.reply(ctx, msg, msgGenericError, nil)
		d.NotifyOperator(ctx, fmt.Sprintf(msgOperatorFailure, msg.UserID, err))
	}
}

func (d *Dialog) handle(ctx context.Context, msg structs.IncomingMessage) error {
	sess, err := d.Sessions.Get(ctx, msg.UserID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	current := parseState(sess.State)

	var next State
	switch {
	case msg.IsCommand():
		next, err = d.handleCommand(ctx, msg, sess)
	case msg.HasPhoto():
		next, err = d.handlePhotoMessage(ctx, msg, current)
	default:
		next, err = stateHandlers[current](d, ctx, msg, sess)
		if !CanTransition(current, next) {
			d.logger.WithFields(logrus.Fields{"user_id": msg.UserID, "from": current, "to": next}).Warn("transition not allowed, back to idle")
			next = StateIdle
		}
	}

	if err != nil {
		d.logger.WithFields(logrus.Fields{"user_id": msg.UserID, "state": current, "error": err.Error()}).Error("external service failed")
		keyboard := mainKeyboard()
		if next.IsOnboarding() {
			keyboard = nil
		}
		d.reply(ctx, msg, msgServiceError, keyboard)
	}

	return d.saveState(ctx, msg.UserID, sess, next)
}

func (d *Dialog) saveState(ctx context.Context, userID int64, sess *session.Session, next State) error {
	if next == StateIdle {
		if err := d.Sessions.Delete(ctx, userID); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		return nil
	}
	sess.State = string(next)
	if err := d.Sessions.Save(ctx, userID, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (d *Dialog) reply(ctx context.Context, msg structs.IncomingMessage, text string, keyboard *structs.Keyboard) {
	d.send(ctx, structs.OutgoingMessage{ChatID: msg.ChatID, Text: text, Keyboard: keyboard})
}

func (d *Dialog) replyMarkdown(ctx context.Context, msg structs.IncomingMessage, text string, keyboard *structs.Keyboard) {
	d.send(ctx, structs.OutgoingMessage{ChatID: msg.ChatID, Text: text, Markdown: true, Keyboard: keyboard})
}

func (d *Dialog) send(ctx context.Context, out structs.OutgoingMessage) {
	if err := d.Messenger.Send(ctx, out); err != nil {
		d.logger.WithFields(logrus.Fields{"chat_id": out.ChatID, "error": err.Error()}).Warn("reply not delivered")
	}
}

// sendImage sends a signed storage image, falling back to the text when signing or delivery fails.
func (d *Dialog) sendImage(ctx context.Context, chatID int64, key, caption, fallback string, keyboard *structs.Keyboard) {
	if d.Images != nil && key != "" {
		url, err := d.Images.SignedURL(ctx, key)
		if err == nil {
			err = d.Messenger.Send(ctx, structs.OutgoingMessage{ChatID: chatID, PhotoURL: url, Text: caption, Keyboard: keyboard})
		}
		if err == nil {
			return
		}
		d.logger.WithFields(logrus.Fields{"chat_id": chatID, "image": key, "error": err.Error()}).Warn("image not sent")
	}
	if fallback != "" {
		d.send(ctx, structs.OutgoingMessage{ChatID: chatID, Text: fallback, Keyboard: keyboard})
	}
}

// NotifyOperator messages the configured operator account, if any.
func (d *Dialog) NotifyOperator(ctx context.Context, text string) {
	if d.opts.OperatorID == 0 {
		return
	}
	d.send(ctx, structs.OutgoingMessage{ChatID: d.opts.OperatorID, Text: text})
}

// SendSummary builds and delivers the report of one day; it is shared by the dialog and the jobs.
func (d *Dialog) SendSummary(ctx context.Context, chatID, userID int64, date time.Time) error {
	result, err := d.Reporter.Build(userID, date)
	if err != nil {
		d.send(ctx, structs.OutgoingMessage{ChatID: chatID, Text: msgSummaryError})
		return fmt.Errorf("build summary for %d on %s: %w", userID, date.Format(enums.DateLayout), err)
	}
	return d.Messenger.Send(ctx, structs.OutgoingMessage{ChatID: chatID, Text: summary.Format(result), Markdown: true})
}

func pick(lines []string) string {
	return lines[rand.Intn(len(lines))]
}
