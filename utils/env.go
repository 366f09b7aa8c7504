package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var EnvConfig *structs.EnvironmentModel

type EnvService struct{}

func (e *EnvService) InitEnv() {
	e.loadConfig()
	e.setDefaults()
	e.configToModel()
}

func (e *EnvService) loadConfig() {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// no config.yml, fall back to environment variables (telegram.token -> TELEGRAM_TOKEN)
			viper.AutomaticEnv()
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		} else {
			panic(fmt.Errorf("Fatal error config file: %s \n", err))
		}
	}
}

func (e *EnvService) setDefaults() {
	viper.SetDefault("telegram.mode", enums.TelegramModePolling)
	viper.SetDefault("gemini.model", enums.DefaultGeminiModel)
	viper.SetDefault("gemini.temperature", 0.3)
	viper.SetDefault("database.client", "postgres")
	viper.SetDefault("database.max_idle", 2)
	viper.SetDefault("database.max_open_conn", 10)
	viper.SetDefault("database.max_life_time", "5m")
	viper.SetDefault("database.auto_migrate", true)
	viper.SetDefault("redis.session_ttl", "24h")
	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.signed_url_ttl", "24h")
	viper.SetDefault("storage.images.male_bodyfat", "male-bodyfat.jpg")
	viper.SetDefault("storage.images.female_bodyfat", "female-bodyfat.jpg")
	viper.SetDefault("storage.images.meal_example", "buckwheat.jpg")
	viper.SetDefault("rabbitmq.queue", enums.DefaultQueueName)
	viper.SetDefault("log.level", "debug")
	viper.SetDefault("router.port", 8080)
	viper.SetDefault("concurrentAmount", 4)
	viper.SetDefault("bot.timezone", enums.DefaultTimezone)
	viper.SetDefault("bot.active_hours.start", 8)
	viper.SetDefault("bot.active_hours.end", 21)
	viper.SetDefault("nutrition.steps_coefficient", enums.DefaultStepsCoeff)
	viper.SetDefault("nutrition.min_calories", 0)
	viper.SetDefault("schedule.steps_reminder", "0 9 * * *")
	viper.SetDefault("schedule.morning_meal", "0 11 * * *")
	viper.SetDefault("schedule.afternoon_meal", "0 16 * * *")
	viper.SetDefault("schedule.evening_meal", "0 23 * * *")
	viper.SetDefault("schedule.daily_summary", "59 23 * * *")
}

func (e *EnvService) configToModel() {
	var config structs.EnvironmentModel
	config.Telegram.Token = viper.GetString("telegram.token")
	config.Telegram.OperatorID = viper.GetInt64("telegram.operator_id")
	config.Telegram.Mode = viper.GetString("telegram.mode")
	config.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	config.Telegram.Debug = viper.GetBool("telegram.debug")
	config.Gemini.APIKey = viper.GetString("gemini.api_key")
	config.Gemini.Model = viper.GetString("gemini.model")
	config.Gemini.Temperature = float32(viper.GetFloat64("gemini.temperature"))
	config.Database.Client = viper.GetString("database.client")
	config.Database.URL = viper.GetString("database.url")
	config.Database.Host = viper.GetString("database.host")
	config.Database.User = viper.GetString("database.user")
	config.Database.Password = viper.GetString("database.password")
	config.Database.Db = viper.GetString("database.name")
	config.Database.MaxIdle = uint(viper.GetInt("database.max_idle"))
	config.Database.MaxOpenConn = uint(viper.GetInt("database.max_open_conn"))
	config.Database.MaxLifeTime = viper.GetString("database.max_life_time")
	config.Database.Params = viper.GetString("database.params")
	config.Database.Port = viper.GetString("database.port")
	config.Database.LogEnable = viper.GetInt("database.log_enable")
	config.Database.AutoMigrate = viper.GetBool("database.auto_migrate")
	config.Redis.Addr = viper.GetString("redis.addr")
	config.Redis.Password = viper.GetString("redis.password")
	config.Redis.DB = viper.GetInt("redis.db")
	config.Redis.SessionTTL = durationOr(viper.GetString("redis.session_ttl"), 24*time.Hour)
	config.Storage.Endpoint = viper.GetString("storage.endpoint")
	config.Storage.Region = viper.GetString("storage.region")
	config.Storage.Bucket = viper.GetString("storage.bucket")
	config.Storage.AccessKey = viper.GetString("storage.access_key")
	config.Storage.SecretKey = viper.GetString("storage.secret_key")
	config.Storage.SignedURLTTL = durationOr(viper.GetString("storage.signed_url_ttl"), 24*time.Hour)
	config.Storage.MaleBodyFatImage = viper.GetString("storage.images.male_bodyfat")
	config.Storage.FemaleBodyFatImage = viper.GetString("storage.images.female_bodyfat")
	config.Storage.MealExampleImage = viper.GetString("storage.images.meal_example")
	config.RabbitMQ.Domain = viper.GetString("rabbitmq.domain")
	config.RabbitMQ.Queue = viper.GetString("rabbitmq.queue")
	config.Log.Level = viper.GetString("log.level")
	config.Log.ElkEnable = viper.GetInt("log.elk.enable")
	config.Log.ElkIndex = viper.GetString("log.elk.index")
	config.Log.ElkURL = viper.GetString("log.elk.url")
	config.Log.LogstashEnable = viper.GetInt("log.logstash.enable")
	config.Log.LogstashURL = viper.GetString("log.logstash.url")
	config.Log.LogstashIndex = viper.GetString("log.logstash.index")
	config.Router.Port = viper.GetInt("router.port")
	config.ConcurrentAmount = viper.GetInt("concurrentAmount")
	config.Bot.Timezone = viper.GetString("bot.timezone")
	config.Bot.ActiveHoursStart = viper.GetInt("bot.active_hours.start")
	config.Bot.ActiveHoursEnd = viper.GetInt("bot.active_hours.end")
	config.Nutrition.StepsCoefficient = viper.GetFloat64("nutrition.steps_coefficient")
	config.Nutrition.MinCalories = viper.GetInt("nutrition.min_calories")
	config.Schedule.StepsReminder = viper.GetString("schedule.steps_reminder")
	config.Schedule.MorningMeal = viper.GetString("schedule.morning_meal")
	config.Schedule.AfternoonMeal = viper.GetString("schedule.afternoon_meal")
	config.Schedule.EveningMeal = viper.GetString("schedule.evening_meal")
	config.Schedule.DailySummary = viper.GetString("schedule.daily_summary")
	EnvConfig = &config
}

// Validate reports the settings without which the bot cannot start.
func (e *EnvService) Validate() error {
	if EnvConfig == nil {
		return fmt.Errorf("environment is not initialized")
	}
	if EnvConfig.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is not set")
	}
	if EnvConfig.Database.URL == "" && EnvConfig.Database.Host == "" && EnvConfig.Database.Client != "sqlite3" {
		return fmt.Errorf("database.url or database.host is not set")
	}
	return nil
}

// Location returns the bot's local time zone, UTC when the name is unknown.
func Location() *time.Location {
	name := enums.DefaultTimezone
	if EnvConfig != nil && EnvConfig.Bot.Timezone != "" {
		name = EnvConfig.Bot.Timezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func durationOr(raw string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
