package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/services/session"
	"github.com/AliaksandrTarashkevich/ppianieal/services/store"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	"github.com/sirupsen/logrus"
)

// handleCommand serves slash commands; they work from any state and abandon the current one.
func (d *Dialog) handleCommand(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	switch msg.Command {
	case "start":
		return d.start(ctx, msg, sess)
	case "help":
		d.replyMarkdown(ctx, msg, msgHelp, mainKeyboard())
		return StateIdle, nil
	case "summary":
		return StateIdle, d.sendSummaryReply(ctx, msg, d.now())
	case "keyboard":
		d.reply(ctx, msg, msgKeyboard, mainKeyboard())
		return StateIdle, nil
	case "mode":
		d.reply(ctx, msg, msgDeficitModes, deficitKeyboard())
		return StateChangeDeficitMode, nil
	case "track":
		cmd, ok := parseTrack(msg.CommandArgs)
		if !ok {
			d.reply(ctx, msg, msgTrackUsage, mainKeyboard())
			return StateIdle, nil
		}
		return StateIdle, d.track(ctx, msg, cmd)
	default:
		d.reply(ctx, msg, msgUnknownCmd, mainKeyboard())
		return StateIdle, nil
	}
}

func (d *Dialog) start(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	exists, err := d.Store.UserExists(msg.UserID)
	if err != nil {
		return StateIdle, err
	}
	if exists {
		d.reply(ctx, msg, msgGreeting, mainKeyboard())
		return StateIdle, nil
	}

	*sess = session.Session{}
	d.send(ctx, structs.OutgoingMessage{ChatID: msg.ChatID, Text: msgWelcome, RemoveKeyboard: true})
	return StateAskWeight, nil
}

// track is the single entry for weight and steps records, used by the menus, the free text
// grammar and /track alike.
func (d *Dialog) track(ctx context.Context, msg structs.IncomingMessage, cmd trackCommand) error {
	date := d.now()
	if cmd.yesterday {
		date = d.yesterday()
	}
	return d.trackOn(ctx, msg, cmd.kind, cmd.value, date)
}

// trackOn saves a weight or steps entry for the given day. Any day before today is reported
// as yesterday's entry.
func (d *Dialog) trackOn(ctx context.Context, msg structs.IncomingMessage, kind string, value float64, date time.Time) error {
	past := date.Format(enums.DateLayout) < d.now().Format(enums.DateLayout)
	switch kind {
	case trackWeight:
		return d.recordWeight(ctx, msg, value, date, past)
	case trackSteps:
		return d.recordSteps(ctx, msg, int(value), date, past)
	}
	return fmt.Errorf("unknown track kind %q", kind)
}

func dayLabel(yesterday bool) string {
	if yesterday {
		return "вчера"
	}
	return "сегодня"
}

func (d *Dialog) recordWeight(ctx context.Context, msg structs.IncomingMessage, weight float64, date time.Time, yesterday bool) error {
	previous, hasPrevious, err := d.Store.GetLastWeight(msg.UserID, date)
	if err != nil {
		return err
	}
	if err := d.Store.SaveWeight(msg.UserID, weight, date); err != nil {
		return err
	}

	emoji := "⚖️"
	if hasPrevious {
		emoji = trendEmoji(previous, weight)
	}
	text := fmt.Sprintf("%s Вес %s кг сохранён (%s).", emoji, formatWeight(weight), dayLabel(yesterday))
	if hasPrevious && previous != weight {
		if weight < previous {
			text += "\n\n" + pick(weightLossMessages)
		} else {
			text += "\n\n" + pick(weightGainMessages)
		}
	}
	d.reply(ctx, msg, text, mainKeyboard())
	return nil
}

func trendEmoji(previous, current float64) string {
	switch {
	case current < previous:
		return "📉"
	case current > previous:
		return "📈"
	}
	return "⚖️"
}

// recordSteps saves the count; a late entry for yesterday is rewarded with yesterday's report.
func (d *Dialog) recordSteps(ctx context.Context, msg structs.IncomingMessage, steps int, date time.Time, yesterday bool) error {
	if err := d.Store.SaveSteps(msg.UserID, steps, date); err != nil {
		return err
	}
	d.reply(ctx, msg, fmt.Sprintf("👍 Шаги за %s сохранены: %d.", dayLabel(yesterday), steps), mainKeyboard())
	if yesterday {
		return d.sendSummaryReply(ctx, msg, date)
	}
	return nil
}

func (d *Dialog) recordBurn(ctx context.Context, msg structs.IncomingMessage, calories int, date time.Time) error {
	if err := d.Store.SaveBurnedCalories(msg.UserID, calories, date); err != nil {
		return err
	}
	d.reply(ctx, msg, fmt.Sprintf("🔥 Учтено %d ккал дополнительной активности", calories), mainKeyboard())
	return nil
}

func (d *Dialog) sendSummaryReply(ctx context.Context, msg structs.IncomingMessage, date time.Time) error {
	if err := d.SendSummary(ctx, msg.ChatID, msg.UserID, date); err != nil {
		d.logger.WithFields(logrus.Fields{"user_id": msg.UserID, "date": date.Format(enums.DateLayout), "error": err.Error()}).Error("summary failed")
	}
	return nil
}

// changeMode applies a deficit tier and reports the new calorie norm.
func (d *Dialog) changeMode(ctx context.Context, msg structs.IncomingMessage, mode string) error {
	previous, err := d.Store.SetDeficitMode(msg.UserID, mode)
	if errors.Is(err, store.ErrUserNotFound) {
		d.reply(ctx, msg, msgNeedProfile, nil)
		return nil
	}
	if err != nil {
		return err
	}
	targets, err := d.Store.GetUserTargets(msg.UserID)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("✅ Режим изменён на «%s»\nНовая норма калорий: %d ккал\n(было %d ккал дефицита, стало %d ккал)",
		deficitTitles[mode], targets.Calories, previous, enums.Deficits[mode])
	d.reply(ctx, msg, text, mainKeyboard())
	return nil
}

// normalizeButton lets typed labels without the emoji match the buttons.
func normalizeButton(text string, buttons map[string]string) (string, bool) {
	text = strings.TrimSpace(text)
	if value, ok := buttons[text]; ok {
		return value, true
	}
	for label, value := range buttons {
		if _, plain, found := strings.Cut(label, " "); found && strings.EqualFold(plain, text) {
			return value, true
		}
	}
	return "", false
}
