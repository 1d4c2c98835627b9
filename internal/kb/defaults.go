package kb

// Embedded knowledge base for the Kids Park entertainment center.
// Content intentionally mirrors what the venue publishes; the specialist
// prompt forbids answering outside the selected fragment.

const defaultDescription = `general — общие вопросы: адрес, график работы, контакты, парковка
entrance — цены на входные билеты, тарифы, скидки, правила посещения
attractions — аттракционы, игровые зоны, батуты, лабиринт, возрастные ограничения
birthday — дни рождения, праздничные пакеты, аниматоры, украшение зала
booking — бронирование столов, зала, времени посещения
menu — еда, кафе, пицца, детское меню
drinks — напитки, кофе, чай, лимонады
ramadan — график и меню в период Рамадана
vacancy — вакансии, работа, трудоустройство
complaint — жалобы, претензии, возвраты
other — всё остальное, что не попало в категории выше`

func defaultFragments() map[string]string {
	return map[string]string{
		LabelGeneral: `Kids Park — детский развлекательный центр в Караганде.
Адрес: пр. Бухар-Жырау 59, ТРЦ "City Mall", 3 этаж.
График: ежедневно 10:00–22:00, без выходных.
Телефон: 8 778 268 27 79. Парковка ТРЦ бесплатная, 2 часа.`,

		LabelEntrance: `Входные билеты (ребёнок + 1 взрослый бесплатно):
Будни: до 3 лет — 2000 тг, 3–12 лет — 3500 тг.
Выходные и праздники: до 3 лет — 2500 тг, 3–12 лет — 4500 тг.
Безлимит на весь день. Носки обязательны (можно купить на кассе, 500 тг).
Второй взрослый — 1000 тг. Скидка 10% для многодетных семей (удостоверение).`,

		LabelAttractions: `Зоны: батутная арена (от 5 лет), трёхэтажный лабиринт,
сухой бассейн с горками (1–6 лет), скалодром (от 6 лет, с инструктором),
автодром, игровые автоматы (жетоны от 300 тг), малышовая зона до 3 лет.
Дети до 7 лет — только в сопровождении взрослого.`,

		LabelBirthday: `Пакеты дня рождения (от 10 детей, бронь от 3 дней):
"Стандарт" — 5000 тг/ребёнок: 2 часа зала, входные билеты, аниматор 1 час.
"Премиум" — 8000 тг/ребёнок: 3 часа VIP-зала, аниматор 2 часа, украшение,
фотограф 1 час, сладкий стол. Торт можно свой (сервисный сбор 2000 тг).`,

		LabelBooking: `Бронирование столов и залов — через менеджера.
Предоплата 30% при бронировании зала на праздник.
Отмена без штрафа — за 24 часа.`,

		LabelMenu: `Кафе Kids Park: пицца (от 2200 тг), бургеры (от 1800 тг),
картофель фри 900 тг, наггетсы 1400 тг, детские сеты с игрушкой 2500 тг.
Каша и пюре для малышей — 800 тг. Своя еда запрещена (кроме детского питания).`,

		LabelDrinks: `Напитки: лимонады собственного приготовления 900 тг,
соки 700 тг, милкшейки 1200 тг, кофе (американо 800, капучино 1000, латте 1100),
чай чайник 900 тг. Детский бар — какао с маршмеллоу 900 тг.`,

		LabelRamadan: `В период Рамадана центр работает по обычному графику 10:00–22:00.
После ифтара действует скидка 20% на входные билеты (с 20:00).
В кафе — специальное меню для ауызашар, бронь столов через менеджера.`,

		LabelVacancy: `Открытые вакансии: аниматор, оператор игровой зоны, бариста.
Резюме — на kidspark.krg@mail.kz или в сообщении менеджеру.
График 2/2, официальное трудоустройство.`,

		LabelComplaint: `Нам очень жаль, что возникла проблема. Уточни детали ситуации
(что случилось, когда, в какой зоне) и передай обращение менеджеру.
Возвраты билетов — в день посещения через кассу или менеджера.`,

		LabelOther: `Kids Park — детский развлекательный центр в Караганде,
ТРЦ "City Mall", 3 этаж, ежедневно 10:00–22:00, телефон 8 778 268 27 79.
Если вопрос не касается центра — вежливо скажи, что можешь помочь
только с вопросами о Kids Park.`,
	}
}
