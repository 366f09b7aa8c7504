package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/services/session"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"
)

func (d *Dialog) handleIdle(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	text := strings.TrimSpace(msg.Text)
	switch text {
	case ButtonTrackWeight:
		d.reply(ctx, msg, msgWeightDay, dayKeyboard())
		return StateWeightMenu, nil
	case ButtonTrackSteps:
		d.reply(ctx, msg, msgStepsDay, dayKeyboard())
		return StateStepsMenu, nil
	case ButtonSummary:
		return StateIdle, d.sendSummaryReply(ctx, msg, d.now())
	case ButtonBurn:
		sess.TargetDate = d.now().Format(enums.DateLayout)
		d.send(ctx, structs.OutgoingMessage{ChatID: msg.ChatID, Text: msgBurnPrompt, RemoveKeyboard: true})
		return StateInputBurn, nil
	case ButtonHelp:
		d.replyMarkdown(ctx, msg, msgHelp, mainKeyboard())
		return StateIdle, nil
	case ButtonMode:
		d.reply(ctx, msg, msgDeficitModes, deficitKeyboard())
		return StateChangeDeficitMode, nil
	}

	if strings.EqualFold(text, "итоги") {
		return StateIdle, d.sendSummaryReply(ctx, msg, d.now())
	}
	if cmd, ok := parseTrack(text); ok {
		return StateIdle, d.track(ctx, msg, cmd)
	}

	d.reply(ctx, msg, msgIdleHint, mainKeyboard())
	return StateIdle, nil
}

// dayMenu handles the today / yesterday / back choice shared by the weight and steps menus.
func (d *Dialog) dayMenu(ctx context.Context, msg structs.IncomingMessage, sess *session.Session, current, input State, todayPrompt, yesterdayPrompt string) State {
	switch strings.TrimSpace(msg.Text) {
	case ButtonToday:
		sess.TargetDate = d.now().Format(enums.DateLayout)
		d.send(ctx, structs.OutgoingMessage{ChatID: msg.ChatID, Text: todayPrompt, RemoveKeyboard: true})
		return input
	case ButtonYesterday:
		sess.TargetDate = d.yesterday().Format(enums.DateLayout)
		d.send(ctx, structs.OutgoingMessage{ChatID: msg.ChatID, Text: yesterdayPrompt, RemoveKeyboard: true})
		return input
	case ButtonBack:
		d.reply(ctx, msg, msgChooseAction, mainKeyboard())
		return StateIdle
	}
	d.reply(ctx, msg, msgUseMenu, dayKeyboard())
	return current
}

func (d *Dialog) handleWeightMenu(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	return d.dayMenu(ctx, msg, sess, StateWeightMenu, StateInputWeight, msgWeightToday, msgWeightYest), nil
}

func (d *Dialog) handleStepsMenu(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	return d.dayMenu(ctx, msg, sess, StateStepsMenu, StateInputSteps, msgStepsToday, msgStepsYest), nil
}

// targetDate is the day picked in the menu, today when none was stored.
func (d *Dialog) targetDate(sess *session.Session) time.Time {
	date, err := time.ParseInLocation(enums.DateLayout, sess.TargetDate, d.opts.Location)
	if err != nil {
		return d.now()
	}
	return date
}

func (d *Dialog) handleInputWeight(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	weight, err := parsePositiveFloat(msg.Text)
	if err != nil {
		d.reply(ctx, msg, msgEnterWeight, nil)
		return StateInputWeight, nil
	}
	return StateIdle, d.trackOn(ctx, msg, trackWeight, weight, d.targetDate(sess))
}

func (d *Dialog) handleInputSteps(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	steps, err := parseNonNegativeInt(msg.Text)
	if err != nil {
		d.reply(ctx, msg, msgEnterSteps, nil)
		return StateInputSteps, nil
	}
	return StateIdle, d.trackOn(ctx, msg, trackSteps, float64(steps), d.targetDate(sess))
}

func (d *Dialog) handleInputBurn(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	calories, err := parseNonNegativeInt(msg.Text)
	if err != nil {
		d.reply(ctx, msg, msgEnterBurn, nil)
		return StateInputBurn, nil
	}
	return StateIdle, d.recordBurn(ctx, msg, calories, d.targetDate(sess))
}

func (d *Dialog) handleChangeDeficitMode(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	mode, ok := normalizeButton(msg.Text, deficitButtons)
	if !ok {
		d.reply(ctx, msg, msgPickMode, deficitKeyboard())
		return StateChangeDeficitMode, nil
	}
	return StateIdle, d.changeMode(ctx, msg, mode)
}
