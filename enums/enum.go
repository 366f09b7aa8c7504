package enums

const (
	DateLayout = "2006-01-02"

	GenderMale   = "male"
	GenderFemale = "female"

	DeficitLight   = "light"
	DeficitMedium  = "medium"
	DeficitExtreme = "extreme"

	JobStepsReminder     = "steps-reminder"
	JobMorningMeal       = "morning-meal"
	JobAfternoonMeal     = "afternoon-meal"
	JobEveningMeal       = "evening-meal"
	JobDailySummary      = "daily-summary"
	ManualOperate        = "manual"
	SystemOperate        = "system"
	TelegramModePolling  = "polling"
	TelegramModeWebhook  = "webhook"
	DefaultGeminiModel   = "gemini-1.5-flash"
	DefaultQueueName     = "nutrition-jobs"
	DefaultTimezone      = "Europe/Vilnius"
	DefaultStepsCoeff    = 0.00035
	DefaultProfileWeight = 70.0
)

// Deficits maps a deficit tier to the kcal subtracted from maintenance.
var Deficits = map[string]int{
	DeficitLight:   0,
	DeficitMedium:  500,
	DeficitExtreme: 750,
}

// MealWindow is an inclusive range of local hours checked by a meal reminder.
type MealWindow struct {
	FromHour int
	ToHour   int
}

var MealWindows = map[string]MealWindow{
	JobMorningMeal:   {FromHour: 0, ToHour: 10},
	JobAfternoonMeal: {FromHour: 11, ToHour: 15},
	JobEveningMeal:   {FromHour: 16, ToHour: 22},
}
