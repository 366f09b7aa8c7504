package conversation

import (
	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"
)

const (
	ButtonTrackWeight = "⚖️ Track вес"
	ButtonTrackSteps  = "👣 Track шаги"
	ButtonSummary     = "📊 Summary"
	ButtonBurn        = "🔥 Burn"
	ButtonHelp        = "❓ Help"
	ButtonMode        = "⚙️ Режим"

	ButtonToday     = "📅 Сегодня"
	ButtonYesterday = "↩️ Вчера"
	ButtonBack      = "🔙 Назад"

	ButtonMale   = "👨 Мужчина"
	ButtonFemale = "👩 Женщина"

	ButtonLight   = "🟢 Лёгкий"
	ButtonMedium  = "🟠 Средний"
	ButtonExtreme = "🔴 Экстремальный"

	ButtonConfirm = "✅ Понял!"
)

var genderButtons = map[string]string{
	ButtonMale:   enums.GenderMale,
	ButtonFemale: enums.GenderFemale,
}

var deficitButtons = map[string]string{
	ButtonLight:   enums.DeficitLight,
	ButtonMedium:  enums.DeficitMedium,
	ButtonExtreme: enums.DeficitExtreme,
}

var deficitTitles = map[string]string{
	enums.DeficitLight:   "Лёгкий",
	enums.DeficitMedium:  "Средний",
	enums.DeficitExtreme: "Экстремальный",
}

func mainKeyboard() *structs.Keyboard {
	return &structs.Keyboard{
		Rows: [][]string{
			{ButtonTrackWeight, ButtonTrackSteps},
			{ButtonSummary, ButtonBurn},
			{ButtonHelp, ButtonMode},
		},
		Placeholder: "Используй кнопки ниже",
	}
}

func dayKeyboard() *structs.Keyboard {
	return &structs.Keyboard{Rows: [][]string{{ButtonToday, ButtonYesterday}, {ButtonBack}}}
}

func genderKeyboard() *structs.Keyboard {
	return &structs.Keyboard{Rows: [][]string{{ButtonMale, ButtonFemale}}, OneTime: true}
}

func deficitKeyboard() *structs.Keyboard {
	return &structs.Keyboard{Rows: [][]string{{ButtonLight, ButtonMedium, ButtonExtreme}}, OneTime: true}
}

func confirmKeyboard() *structs.Keyboard {
	return &structs.Keyboard{Rows: [][]string{{ButtonConfirm}}, OneTime: true}
}
