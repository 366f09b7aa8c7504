package conversation

const (
	msgWelcome          = "👋 Добро пожаловать! Давай настроим твой профиль для точного расчета нормы калорий.\n\nСколько ты сейчас весишь (в кг)?"
	msgGreeting         = "Привет! Скидывай фотки еды, я тебя поддержу 💚"
	msgAskHeight        = "Отлично! А какой у тебя рост (в см)?"
	msgAskGender        = "Теперь выбери свой пол:"
	msgPickGender       = "Пожалуйста, выбери свой пол, используя кнопки ниже:"
	msgBodyFatCaption   = "Посмотри на картинку и определи свой примерный процент жира.\nПросто напиши число, например: 15"
	msgAskBodyFat       = "Напиши свой примерный процент жира (число от 3 до 50).\nНапример: 15"
	msgBodyFatRange     = "⚠️ Процент жира должен быть от 3 до 50. Попробуй еще раз:"
	msgPickMode         = "Пожалуйста, выбери режим, используя кнопки ниже:"
	msgSaveProfileError = "⚠️ Произошла ошибка при сохранении данных. Пожалуйста, попробуйте еще раз:"
	msgReadInstructions = "👆 Это основная инструкция по использованию бота. Прочитай её внимательно и нажми кнопку ниже:"
	msgPressConfirm     = "Пожалуйста, нажми кнопку '✅ Понял!' чтобы продолжить:"
	msgExampleIntro     = "👨‍🍳 Вот пример того, как нужно отправлять фото еды:"
	msgExampleCaption   = "гречка 80г, курица 200g, морковь 50g, зелень"
	msgReady            = "Теперь ты готов к использованию бота! Отправляй фото своей еды с описанием порций в граммах 🚀"

	msgEnterWeight   = "⚠️ Введи число, напр.: 85"
	msgEnterHeight   = "⚠️ Введи число, напр.: 180"
	msgEnterBodyFat  = "⚠️ Введи число, напр.: 18.5"
	msgEnterSteps    = "⚠️ Введи целое число, напр.: 9000"
	msgEnterBurn     = "⚠️ Введи целое число, напр.: 250"
	msgUseMenu       = "Пожалуйста, используй кнопки меню:"
	msgChooseAction  = "Выберите действие:"
	msgWeightDay     = "Выбери, за какой день вводишь вес:"
	msgStepsDay      = "Выбери, за какой день вводишь шаги:"
	msgWeightToday   = "Введи вес (в кг):"
	msgWeightYest    = "Введи вес за вчера:"
	msgStepsToday    = "Введи шаги (сегодня):"
	msgStepsYest     = "Введи шаги за вчера:"
	msgBurnPrompt    = "Введи потраченные калории за активность:"
	msgKeyboard      = "⌨️ Клавиатура обновлена!"
	msgIdleHint      = "Скидывай фото еды с описанием или используй кнопки меню 👇"
	msgUnknownCmd    = "Неизвестная команда. Используй кнопки меню или /help"
	msgTrackUsage    = "⚠️ Не смог распознать запись. Пример: /track вес 80.5 вчера или /track шаги 9000"
	msgNeedProfile   = "Сначала заполни профиль: /start"
	msgFinishProfile = "Сначала закончи настройку профиля 🙏"

	msgAnalyzing       = "🔍 Анализирую еду…"
	msgAnalysisFailed  = "⚠️ Не удалось проанализировать еду. Попробуй отправить фото еще раз."
	msgOutsideHours    = "🌙 Фото еды анализирую с %02d:00 до %02d:00. Пришли его в это время."
	msgNoDescription   = "Еда без описания"
	msgServiceError    = "⚠️ Сервис временно недоступен, запись не сохранена. Попробуй еще раз позже."
	msgGenericError    = "Извините, произошла ошибка. Попробуйте еще раз или обратитесь к администратору."
	msgSummaryError    = "⚠️ Ошибка при формировании отчета. Попробуй еще раз позже."
	msgOperatorPanic   = "⚠️ Паника при обработке сообщения от %d: %v"
	msgOperatorFailure = "⚠️ Ошибка при обработке сообщения от %d: %v"
)

const msgDeficitModes = "Выбери режим похудения:\n\n" +
	"🟢 Лёгкий\n" +
	"Рацион основан на сухой массе тела, без искусственного дефицита.\n" +
	"Ожидаемый результат: –0.2…0.4 кг/нед\n" +
	"📌 Подходит для старта: организм адаптируется без стресса, вес будет снижаться за счёт активности в течение дня.\n\n" +
	"🟠 Средний\n" +
	"Создаём дефицит ~500 ккал от нормы.\n" +
	"Ожидаемый результат: –0.5…0.8 кг/нед\n" +
	"👍 Универсальный режим: сбалансирован между скоростью и устойчивостью.\n\n" +
	"🔴 Экстремальный\n" +
	"Создаём дефицит ~750 ккал от нормы.\n" +
	"Ожидаемый результат: –0.8…1.2 кг/нед\n" +
	"⚠️ Требует дисциплины и контроля самочувствия. Не рекомендуется при высокой нагрузке."

const msgHelp = "📘 *Как пользоваться ботом:*\n\n" +
	"📸 *1. Фото еды:*\n" +
	"Просто отправь фото с кратким описанием еды.\n" +
	"Пример:\n" +
	"куриная грудка 200g, кабачок 100g, масло оливковое 5g\n\n" +
	"⚠️ Чем точнее описание (вес, состав), тем точнее подсчёт калорий!\n\n" +
	"Пример 1 — ✅ Хорошо:\n" +
	"куриная грудка 200g, кабачок 100g, масло оливковое 5g\n\n" +
	"Пример 2 — ❌ Плохо:\n" +
	"курица с овощами (недостаточно данных)\n\n" +
	"⚖️ *2. Вес и шаги:*\n" +
	"Используй кнопки:\n\n" +
	"• Track вес сегодня / вчера — чтобы ввести текущий вес\n" +
	"• Track шаги сегодня / вчера — чтобы ввести шаги\n" +
	"Или напиши: вес 80.5, шаги 9000 вчера\n\n" +
	"📊 *3. Итоги дня:*\n" +
	"Нажми кнопку Summary — бот покажет КБЖУ, шаги, расход и статус (норма или превышение).\n\n" +
	"🔥 *4. Ккал за активность:*\n" +
	"Занимался спортом (велосипед, баскетбол, тренировка)?\n" +
	"Нажми кнопку Burn и просто введи число — например:\n" +
	"250\n" +
	"Бот учтёт эти калории в итогах дня.\n\n" +
	"🆘 *5. Подсказка:*\n" +
	"Нажми Help, чтобы снова открыть эту инструкцию.\n\n" +
	"⚙️ Бот автоматически считает всё за день, сравнивает с твоей нормой и напоминает, если ты что-то забыл.\n\n" +
	"💪 Пользуйся ботом каждый день — и ты будешь контролировать питание и прогресс без лишних усилий!"

var weightLossMessages = []string{
	"📉 Отличная работа! Продолжай в том же духе! 💪",
	"📉 Прогресс налицо! Ты на верном пути 🎯",
	"📉 Вау, это успех! Так держать! 🌟",
	"📉 Результат твоих усилий виден! Молодец! ⭐️",
	"📉 Каждый грамм это победа! Ты справляешься! 🏆",
}

var weightGainMessages = []string{
	"📈 Небольшое отклонение - не проблема! Фокусируйся на своей цели 🎯",
	"📈 Помни о своих целях - у тебя все получится! 💫",
	"📈 Прогресс не всегда линейный, продолжай работать! 💪",
	"📈 Завтра новый день - новые возможности! ✨",
	"📈 Не сдавайся, следующее взвешивание будет лучше! 🌟",
}
