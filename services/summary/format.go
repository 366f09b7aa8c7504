package summary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AliaksandrTarashkevich/ppianieal/structs"
)

// Format renders the summary as a Markdown chat message.
func Format(summary *structs.Summary) string {
	var b strings.Builder
	calorie := summary.Calorie
	targets := summary.Targets

	fmt.Fprintf(&b, "📊 *Итоги за %s:*\n", summary.Date.Format("02.01"))

	if nutrition := summary.Nutrition; nutrition != nil {
		fmt.Fprintf(&b, "Калории: %d/%d ккал (с учетом дневной активности)\n", nutrition.Calories, calorie.Allowance)
		fmt.Fprintf(&b, "Белки: %.1f/%d г\n", nutrition.Protein, targets.Protein)
		fmt.Fprintf(&b, "Жиры: %.1f/%d г\n", nutrition.Fat, targets.Fat)
		fmt.Fprintf(&b, "Углеводы: %.1f/%d г\n", nutrition.Carbs, targets.Carbs)
	} else {
		fmt.Fprintf(&b, "Нет записей по еде (дневная норма: %d ккал с учетом активности)\n", calorie.Allowance)
	}

	fmt.Fprintf(&b, "👟 Шаги: %s | 🔥 От шагов: %d ккал\n", groupThousands(calorie.Steps), calorie.StepsBurned)
	if calorie.ExtraBurned > 0 {
		fmt.Fprintf(&b, "💪 Доп. активность: %d ккал\n", calorie.ExtraBurned)
	}
	fmt.Fprintf(&b, "🔥 Всего сожжено: %d ккал\n", calorie.TotalBurned)

	if calorie.WithinBudget {
		b.WriteString("Баланс: ✅ В пределах нормы")
	} else {
		fmt.Fprintf(&b, "Баланс: ⚠️ Превышено на %d ккал", calorie.ExceededBy)
	}
	return b.String()
}

// groupThousands formats 12500 as "12,500".
func groupThousands(n int) string {
	digits := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, digits = "-", digits[1:]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
