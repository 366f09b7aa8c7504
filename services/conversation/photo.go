package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/models"
	"github.com/AliaksandrTarashkevich/ppianieal/services"
	"github.com/AliaksandrTarashkevich/ppianieal/services/food"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	"github.com/sirupsen/logrus"
)

func (d *Dialog) activeHour(hour int) bool {
	return hour >= d.opts.ActiveHoursStart && hour < d.opts.ActiveHoursEnd
}

// handlePhotoMessage analyzes a meal photo. During onboarding the questionnaire has priority.
func (d *Dialog) handlePhotoMessage(ctx context.Context, msg structs.IncomingMessage, current State) (State, error) {
	if current.IsOnboarding() {
		d.reply(ctx, msg, msgFinishProfile, nil)
		return current, nil
	}
	return StateIdle, d.analyzeMeal(ctx, msg)
}

func (d *Dialog) analyzeMeal(ctx context.Context, msg structs.IncomingMessage) error {
	now := d.now()
	if !d.activeHour(now.Hour()) {
		d.reply(ctx, msg, fmt.Sprintf(msgOutsideHours, d.opts.ActiveHoursStart, d.opts.ActiveHoursEnd), mainKeyboard())
		return nil
	}

	description := strings.TrimSpace(msg.Caption)
	if description == "" {
		description = msgNoDescription
	}
	d.reply(ctx, msg, msgAnalyzing, nil)

	photo, err := d.Messenger.DownloadFile(ctx, msg.PhotoFileID)
	if err != nil {
		d.logger.WithFields(logrus.Fields{"user_id": msg.UserID, "error": err.Error()}).Warn("photo not downloaded, analyzing caption only")
		photo = nil
	}

	analysis, err := d.Analyzer.Analyze(ctx, description, photo)
	if errors.Is(err, food.ErrAnalysisUnavailable) {
		d.reply(ctx, msg, msgAnalysisFailed, mainKeyboard())
		return nil
	}
	if err != nil {
		return err
	}

	meal := &models.Meal{
		UserID:      msg.UserID,
		Date:        now.Format(enums.DateLayout),
		Hour:        now.Hour(),
		Description: description,
		Calories:    analysis.Total.Calories,
		Protein:     analysis.Total.Protein,
		Fat:         analysis.Total.Fat,
		Carbs:       analysis.Total.Carbs,
	}
	for _, item := range analysis.Breakdown {
		meal.Items = append(meal.Items, models.MealItem{
			Item:     item.Item,
			Calories: item.Calories,
			Protein:  item.Protein,
			Fat:      item.Fat,
			Carbs:    item.Carbs,
		})
	}

	if d.Images != nil && len(photo) > 0 {
		key, err := d.Images.UploadMealPhoto(ctx, msg.UserID, now, photo)
		if err != nil {
			d.logger.WithFields(logrus.Fields{"user_id": msg.UserID, "error": err.Error()}).Warn("meal photo not archived")
		} else {
			meal.PhotoKey = key
		}
	}

	if err := d.Store.SaveMeal(meal); err != nil {
		return err
	}
	d.replyMarkdown(ctx, msg, formatAnalysis(analysis), mainKeyboard())
	return nil
}

func formatAnalysis(analysis *structs.FoodAnalysis) string {
	var b strings.Builder
	b.WriteString("🍽️ *Разбор еды:*\n")
	for _, item := range analysis.Breakdown {
		fmt.Fprintf(&b, "- %s: %d ккал, Б:%.1fг, Ж:%.1fг, У:%.1fг\n",
			services.EscapeMarkdown(item.Item), item.Calories, item.Protein, item.Fat, item.Carbs)
	}
	total := analysis.Total
	fmt.Fprintf(&b, "\n*Итого:* %d ккал\nБ:%.1fг | Ж:%.1fг | У:%.1fг", total.Calories, total.Protein, total.Fat, total.Carbs)
	return b.String()
}
