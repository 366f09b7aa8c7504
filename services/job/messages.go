package job

import "github.com/AliaksandrTarashkevich/ppianieal/enums"

var stepsReminders = []string{
	"👋 Доброе утро! Не забудь отправить шаги за вчера (подсказка: «шаги 8000 вчера»)",
	"☀️ Новый день! Сколько шагов было вчера? Напиши, например: «шаги 9500 вчера»",
	"👟 Вчерашние шаги ещё не записаны. Отправь их, чтобы итоги были точными: «шаги 7000 вчера»",
}

var mealReminders = map[string][]string{
	enums.JobMorningMeal: {
		"🍳 Доброе утро! Не забудь сфотографировать завтрак 📸",
		"🥣 Завтрак уже был? Пришли фото с описанием порции",
	},
	enums.JobAfternoonMeal: {
		"🍲 Как насчёт обеда? Отправь фото, и я посчитаю калории",
		"🥗 Не вижу обеда. Пришли фото еды с описанием в граммах",
	},
	enums.JobEveningMeal: {
		"🍽️ Не забудь записать ужин, чтобы итоги дня были полными",
		"🌙 Ужин ещё не записан. Пришли фото, пока не забыл",
	},
}
