package structs

import "time"

type EnvironmentModel struct {
	Telegram         telegram
	Gemini           gemini
	Database         database
	Redis            redis
	Storage          storage
	RabbitMQ         rabbitmq
	Log              log
	Router           router
	Bot              bot
	Nutrition        nutrition
	Schedule         schedule
	ConcurrentAmount int
}

type telegram struct {
	Token      string
	OperatorID int64
	Mode       string
	WebhookURL string
	Debug      bool
}

type gemini struct {
	APIKey      string
	Model       string
	Temperature float32
}

type database struct {
	Client      string
	URL         string
	MaxIdle     uint
	MaxLifeTime string
	MaxOpenConn uint
	User        string
	Password    string
	Host        string
	Db          string
	Params      string
	Port        string
	LogEnable   int
	AutoMigrate bool
}

type redis struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

type storage struct {
	Endpoint           string
	Region             string
	Bucket             string
	AccessKey          string
	SecretKey          string
	SignedURLTTL       time.Duration
	MaleBodyFatImage   string
	FemaleBodyFatImage string
	MealExampleImage   string
}

type rabbitmq struct {
	Domain string
	Queue  string
}

type log struct {
	Level          string
	ElkEnable      int
	ElkIndex       string
	ElkURL         string
	LogstashEnable int
	LogstashURL    string
	LogstashIndex  string
}

type router struct {
	Port int
}

type bot struct {
	Timezone         string
	ActiveHoursStart int
	ActiveHoursEnd   int
}

type nutrition struct {
	StepsCoefficient float64
	MinCalories      int
}

type schedule struct {
	StepsReminder string
	MorningMeal   string
	AfternoonMeal string
	EveningMeal   string
	DailySummary  string
}
