package food

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	"github.com/sirupsen/logrus"
)

// ErrAnalysisUnavailable means the model could not produce a usable breakdown; the user should retry.
var ErrAnalysisUnavailable = errors.New("food analysis unavailable")

// reconcileTolerance is the allowed share of deviation between the reported total and the item sum.
const reconcileTolerance = 0.05

const promptTemplate = `Ты нутрициолог. Проанализируй еду на фото и в описании и рассчитай:
- Калории (целое число, ккал)
- Белки, жиры, углеводы (в граммах, 1 знак после запятой)

Также составь разбор по каждому продукту с теми же полями.

Описание еды:
%s

Ответ верни строго в виде JSON:
{
  "total": {"calories": 1234, "protein": 120.5, "fat": 60.2, "carbs": 150.1},
  "breakdown": [
    {"item": "картофель 200г", "calories": 170, "protein": 4.0, "fat": 0.4, "carbs": 40.0}
  ]
}`

type FoodService struct {
	generator Generator
	logger    *logrus.Entry
}

func New(generator Generator, logger *logrus.Entry) *FoodService {
	return &FoodService{generator: generator, logger: logger}
}

// Analyze estimates the nutrition of a meal from its description and optional photo.
// Every failure is reported as ErrAnalysisUnavailable.
func (f *FoodService) Analyze(ctx context.Context, description string, image []byte) (*structs.FoodAnalysis, error) {
	if f.generator == nil {
		return nil, fmt.Errorf("%w: no model configured", ErrAnalysisUnavailable)
	}
	raw, err := f.generator.Generate(ctx, fmt.Sprintf(promptTemplate, description), image)
	if err != nil {
		f.logger.WithFields(logrus.Fields{"error": err.Error()}).Error("food inference failed")
		return nil, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}
	f.logger.WithFields(logrus.Fields{"raw": raw}).Debug("food inference response")

	analysis, err := Parse(raw)
	if err != nil {
		f.logger.WithFields(logrus.Fields{"error": err.Error(), "raw": raw}).Warn("food response not parsed")
		return nil, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}

	if Reconcile(analysis) {
		f.logger.WithFields(logrus.Fields{"calories": analysis.Total.Calories}).Info("total replaced by breakdown sum")
	}
	return analysis, nil
}

// ExtractJSON strips a surrounding code fence and cuts the text from the first "{" to the last "}".
func ExtractJSON(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// drop the language tag of the fence
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("no json object in response")
	}
	return text[start : end+1], nil
}

// Parse decodes the model response into an analysis.
func Parse(raw string) (*structs.FoodAnalysis, error) {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var analysis structs.FoodAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	if len(analysis.Breakdown) == 0 && analysis.Total.Calories == 0 {
		return nil, fmt.Errorf("empty analysis")
	}
	return &analysis, nil
}

// Reconcile replaces the reported total with the breakdown sum when they differ by more than 5%
// of the sum. It reports whether the total was replaced.
func Reconcile(analysis *structs.FoodAnalysis) bool {
	if len(analysis.Breakdown) == 0 {
		return false
	}

	var sum structs.FoodNutrients
	for _, item := range analysis.Breakdown {
		sum.Calories += item.Calories
		sum.Protein += item.Protein
		sum.Fat += item.Fat
		sum.Carbs += item.Carbs
	}

	deviation := math.Abs(float64(sum.Calories - analysis.Total.Calories))
	if deviation > reconcileTolerance*float64(sum.Calories) {
		analysis.Total = sum
		return true
	}
	return false
}
