package conversation

import (
	"context"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/models"
	"github.com/AliaksandrTarashkevich/ppianieal/services/session"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	"github.com/sirupsen/logrus"
)

const (
	minBodyFat = 3
	maxBodyFat = 50
)

func (d *Dialog) handleAskWeight(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	weight, err := parsePositiveFloat(msg.Text)
	if err != nil {
		d.reply(ctx, msg, msgEnterWeight, nil)
		return StateAskWeight, nil
	}
	sess.Weight = weight
	d.reply(ctx, msg, msgAskHeight, nil)
	return StateAskHeight, nil
}

func (d *Dialog) handleAskHeight(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	height, err := parsePositiveInt(msg.Text)
	if err != nil {
		d.reply(ctx, msg, msgEnterHeight, nil)
		return StateAskHeight, nil
	}
	sess.Height = height
	d.reply(ctx, msg, msgAskGender, genderKeyboard())
	return StateAskGender, nil
}

func (d *Dialog) handleAskGender(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	gender, ok := normalizeButton(msg.Text, genderButtons)
	if !ok {
		d.reply(ctx, msg, msgPickGender, genderKeyboard())
		return StateAskGender, nil
	}
	sess.Gender = gender

	image := d.opts.MaleBodyFatImage
	if gender == enums.GenderFemale {
		image = d.opts.FemaleBodyFatImage
	}
	d.sendImage(ctx, msg.ChatID, image, msgBodyFatCaption, msgAskBodyFat, nil)
	return StateAskBodyFat, nil
}

func (d *Dialog) handleAskBodyFat(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	bodyFat, err := parsePositiveFloat(msg.Text)
	if err != nil {
		d.reply(ctx, msg, msgEnterBodyFat, nil)
		return StateAskBodyFat, nil
	}
	if bodyFat < minBodyFat || bodyFat > maxBodyFat {
		d.reply(ctx, msg, msgBodyFatRange, nil)
		return StateAskBodyFat, nil
	}
	sess.BodyFat = bodyFat
	d.reply(ctx, msg, msgDeficitModes, deficitKeyboard())
	return StateAskDeficitMode, nil
}

func (d *Dialog) handleAskDeficitMode(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	mode, ok := normalizeButton(msg.Text, deficitButtons)
	if !ok {
		d.reply(ctx, msg, msgPickMode, deficitKeyboard())
		return StateAskDeficitMode, nil
	}

	user := models.User{
		UserID:      msg.UserID,
		Weight:      sess.Weight,
		Height:      sess.Height,
		BodyFat:     sess.BodyFat,
		Gender:      sess.Gender,
		DeficitMode: mode,
	}
	if err := d.Store.SaveUser(user); err != nil {
		d.logger.WithFields(logrus.Fields{"user_id": msg.UserID, "error": err.Error()}).Error("profile not saved")
		d.reply(ctx, msg, msgSaveProfileError, deficitKeyboard())
		return StateAskDeficitMode, nil
	}

	d.replyMarkdown(ctx, msg, msgHelp+"\n\nПосле нажатия кнопки «✅ Понял!» появятся все кнопки управления ботом.", confirmKeyboard())
	d.reply(ctx, msg, msgReadInstructions, confirmKeyboard())
	return StateConfirmInstructions, nil
}

func (d *Dialog) handleConfirmInstructions(ctx context.Context, msg structs.IncomingMessage, sess *session.Session) (State, error) {
	if msg.Text != ButtonConfirm {
		d.reply(ctx, msg, msgPressConfirm, confirmKeyboard())
		return StateConfirmInstructions, nil
	}

	d.reply(ctx, msg, msgExampleIntro, mainKeyboard())
	d.sendImage(ctx, msg.ChatID, d.opts.MealExampleImage, msgExampleCaption, "", nil)
	d.reply(ctx, msg, msgReady, mainKeyboard())

	if d.Scheduler != nil {
		if err := d.Scheduler.Register(msg.UserID); err != nil {
			d.logger.WithFields(logrus.Fields{"user_id": msg.UserID, "error": err.Error()}).Error("reminders not scheduled")
		}
	}
	return StateIdle, nil
}
