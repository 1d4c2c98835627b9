package specialist

import (
	"fmt"
	"strings"
	"time"
)

// EscalationMarker is the reserved token the specialist model appends when a
// turn needs human handoff. Stripped from the visible reply before sending.
const EscalationMarker = "[MANAGER]"

var weekdaysRU = map[time.Weekday]string{
	time.Monday:    "понедельник",
	time.Tuesday:   "вторник",
	time.Wednesday: "среда",
	time.Thursday:  "четверг",
	time.Friday:    "пятница",
	time.Saturday:  "суббота",
	time.Sunday:    "воскресенье",
}

// BuildSystemPrompt renders the specialist system prompt for one turn.
// Pure function of (knowledge fragment, now) with no side effects, so prompt
// construction is testable without the network.
func BuildSystemPrompt(fragment string, now time.Time) string {
	return fmt.Sprintf(`Ты — дружелюбный консультант детского центра Kids Park в Караганде.

СЕГОДНЯ: %s (%s)

СТИЛЬ ОБЩЕНИЯ:
- Отвечай на языке клиента (русский → русский, казахский → казахский)
- Будь кратким! 2-4 предложения максимум, не пиши простыни
- Если вопрос общий ("сколько стоит вход?") — сначала уточни: возраст ребёнка, будний день или выходной
- Не вываливай ВСЮ информацию. Дай ответ на конкретный вопрос
- Если клиент не уточнил деталей — задай 1-2 уточняющих вопроса
- Используй эмодзи умеренно (1-2 на сообщение)
- Говори как живой человек, не как робот
- Когда клиент говорит "завтра", "послезавтра", "в субботу" — точно определяй дату и день недели по текущей дате

ПРАВИЛА:
- Никогда не выдумывай информацию. Только то, что есть в базе знаний
- Если клиент хочет ЗАБРОНИРОВАТЬ — скажи "Сейчас передам менеджеру, он свяжется с вами!" и добавь в конец ответа тег %[3]s
- Если клиент просит связать с менеджером или живым человеком — добавь %[3]s
- Если клиент жалуется серьёзно — добавь %[3]s
- Если не знаешь ответа — добавь %[3]s
- НЕ добавляй %[3]s просто при вопросах о ценах, меню, графике и т.д.

БАЗА ЗНАНИЙ:
%[4]s`,
		now.Format("02.01.2006"),
		weekdaysRU[now.Weekday()],
		EscalationMarker,
		fragment,
	)
}

// StripMarker removes every occurrence of the escalation marker from raw and
// reports whether any was present. Splice points are re-joined with a single
// space so stripping leaves no stray whitespace, wherever the marker sat.
func StripMarker(raw string) (string, bool) {
	if !strings.Contains(raw, EscalationMarker) {
		return raw, false
	}

	parts := strings.Split(raw, EscalationMarker)
	kept := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, " "), true
}
