package i18n

var russian = map[string]string{
	// General
	"welcome":           "С возвращением! Что запишем сегодня?",
	"choose_language":   "Пожалуйста, выберите язык:",
	"language_selected": "Язык установлен: %s.",
	"help_text": "Я помогу вести дневник питания, воды, веса и здоровья.\n" +
		"/meal — записать приём пищи\n/photo_meal — приём пищи по фото\n/water — записать воду\n" +
		"/weight — записать вес\n/stats — сводка за день\n/recipes — ваши рецепты\n" +
		"/ask — вопрос диетологу\n/document — загрузить медицинский документ\n" +
		"/symptom — записать симптом\n/history — история болезней\n" +
		"/medication — лекарства\n/supplement — добавки\n" +
		"/preferences — пищевые предпочтения\n/biometry — замеры тела\n" +
		"/profile — профиль\n/delete_me — удалить все данные",
	"unknown_command": "Не понимаю. Попробуйте /help.",
	"profile_missing": "Профиль не найден. Сначала выполните /start.",
	"commit_failed":   "Не удалось сохранить. Пожалуйста, отправьте ещё раз.",
	"internal_error":  "Что-то пошло не так. Попробуйте ещё раз.",
	"not_implemented": "Эта функция скоро появится.",

	// Main menu labels
	"menu_log_meal":      "🍽 Приём пищи",
	"menu_photo_meal":    "📷 Фото еды",
	"menu_water":         "💧 Вода",
	"menu_weight":        "⚖️ Вес",
	"menu_stats":         "📊 Статистика",
	"menu_recipes":       "📖 Рецепты",
	"menu_ask_dietitian": "🥦 Спросить диетолога",
	"menu_profile":       "👤 Профиль",
	"menu_document":      "📄 Загрузить документ",

	// Generic buttons
	"btn_yes": "Да",
	"btn_no":  "Нет",
	"skip":    "Пропустить",

	// Onboarding
	"ask_sex":              "Укажите ваш пол:",
	"sex_m":                "Мужской",
	"sex_f":                "Женский",
	"sex_other":            "Другое",
	"ask_date_of_birth":    "Дата рождения? (ГГГГ-ММ-ДД или ДД.ММ.ГГГГ)",
	"invalid_date":         "Не похоже на дату. Используйте ГГГГ-ММ-ДД или ДД.ММ.ГГГГ, либо \"-\" чтобы пропустить.",
	"ask_height":           "Ваш рост в см?",
	"invalid_number":       "Введите число, например 72.5 или 72,5.",
	"invalid_choice":       "Пожалуйста, выберите один из вариантов ниже.",
	"need_text":            "Пожалуйста, отправьте текстовое сообщение.",
	"ask_weight":           "Ваш текущий вес в кг?",
	"ask_goal_weight":      "Желаемый вес в кг? (или Пропустить)",
	"ask_gi_diagnoses":     "Есть ли диагнозы ЖКТ? Опишите кратко или \"-\" если нет.",
	"ask_other_diagnoses":  "Другие диагнозы? Опишите кратко или \"-\" если нет.",
	"ask_medications":      "Какие лекарства принимаете постоянно? Или \"-\" если нет.",
	"ask_allergies":        "Пищевые аллергии или непереносимости? Или \"-\" если нет.",
	"ask_activity_level":   "Ваш уровень активности?",
	"activity_low":         "Низкий",
	"activity_medium":      "Средний",
	"activity_high":        "Высокий",
	"ask_nutrition_goal":   "Ваша цель питания?",
	"goal_weight_loss":     "Снижение веса",
	"goal_maintenance":     "Поддержание",
	"goal_weight_gain":     "Набор веса",
	"goal_symptom_control": "Контроль симптомов",
	"profile_saved":        "Профиль сохранён. Добро пожаловать!",

	// Meals
	"meal_type_breakfast": "Завтрак",
	"meal_type_lunch":     "Обед",
	"meal_type_dinner":    "Ужин",
	"meal_type_snack":     "Перекус",
	"ask_meal_type":       "Какой это приём пищи?",
	"ask_meal_text":       "Опишите, что вы съели.",
	"ask_meal_photo":      "Пришлите фото блюда. Подпись по желанию.",
	"error_no_photo":      "Здесь нужно фото. Пришлите изображение.",
	"meal_saved":          "Приём пищи записан.",
	"meal_summary":        "Оценка: %s ккал, белки %s г, жиры %s г, углеводы %s г",
	"ai_note_unavailable": "Оценка питательности сейчас недоступна; записано без макросов.",

	// Water
	"ask_water_amount":     "Сколько воды вы выпили (мл)?",
	"water_preset_200":     "200 мл",
	"water_preset_250":     "250 мл",
	"water_preset_300":     "300 мл",
	"water_preset_500":     "500 мл",
	"water_other_amount":   "Другое количество",
	"water_invalid_amount": "Введите положительное число в мл, например 250.",
	"water_saved":          "Вода записана.",
	"water_today_total":    "Всего за сегодня: %d мл",

	// Weight
	"weight_invalid":           "Введите положительный вес в кг, например 72.5.",
	"weight_saved":             "Вес записан.",
	"weight_no_previous":       "Это ваша первая запись веса.",
	"weight_change_since_last": "Изменение с прошлой записи: %s кг",
	"weight_change_vs_goal":    "До цели: %s кг",

	// Stats
	"stats_today_title":      "Сводка за сегодня",
	"stats_today_line":       "Еда: %s ккал, белки %s г, жиры %s г, углеводы %s г",
	"stats_today_extra":      "Клетчатка: %s г, Сахар: %s г",
	"stats_today_no_meals":   "Сегодня приёмы пищи не записаны.",
	"stats_today_water_line": "Вода: %d мл",
	"stats_last_weight_line": "Последний вес: %s кг (%s)",
	"stats_error":            "Не удалось получить статистику.",
	"stats_reset_done":       "Записи еды и воды за сегодня удалены.",
	"stats_reset_error":      "Не удалось сбросить статистику за сегодня.",
	"stats_reset_all_done":   "Все ваши записи удалены.",
	"stats_reset_all_error":  "Не удалось удалить записи.",

	// Profile
	"profile_title":                 "Ваш профиль",
	"profile_field_sex":             "Пол",
	"profile_field_dob":             "Дата рождения",
	"profile_field_height":          "Рост (см)",
	"profile_field_weight":          "Вес (кг)",
	"profile_field_goal_weight":     "Целевой вес (кг)",
	"profile_field_gi_diagnoses":    "Диагнозы ЖКТ",
	"profile_field_other_diagnoses": "Другие диагнозы",
	"profile_field_medications":     "Лекарства",
	"profile_field_allergies":       "Аллергии/непереносимости",
	"profile_field_activity_level":  "Уровень активности",
	"profile_field_nutrition_goal":  "Цель питания",
	"profile_edit_prompt":           "Отправьте новое значение.",
	"updated":                       "Обновлено.",
	"profile_section_medications":   "Принимаемые лекарства:",
	"profile_section_supplements":   "Добавки:",
	"profile_section_diet":          "Пищевые предпочтения:",
	"profile_field_diet_type":       "Тип питания",
	"profile_field_disliked":        "Нелюбимые продукты",
	"profile_field_favourite":       "Любимые продукты",
	"profile_field_intolerances":    "Непереносимости",

	// Recipes
	"recipes_header":            "У вас %d рецептов:",
	"recipes_hint":              "Нажмите на рецепт, чтобы открыть или изменить.",
	"recipes_empty":             "У вас пока нет рецептов.",
	"recipes_add_button":        "➕ Добавить рецепт",
	"recipes_prompt_title":      "Отправьте название рецепта.",
	"recipes_prompt_body":       "Отправьте текст рецепта или доверьте черновик мне.",
	"recipes_saved":             "Рецепт сохранён.",
	"recipes_updated":           "Рецепт обновлён.",
	"recipes_deleted":           "Рецепт удалён.",
	"recipes_not_found":         "Рецепт не найден.",
	"recipes_edit_title_button": "✏️ Изменить название",
	"recipes_edit_body_button":  "📝 Изменить текст",
	"recipes_delete_button":     "🗑 Удалить",
	"recipes_back_button":       "⬅️ Назад",
	"recipes_ai_button":         "🤖 Черновик от ИИ",
	"recipes_ai_working":        "Готовлю черновик рецепта...",
	"recipes_ai_failed":         "Сейчас не получается составить рецепт.",
	"recipes_ai_ready":          "Вот черновик:",
	"recipes_ai_use_button":     "✅ Использовать черновик",

	// Ask dietitian
	"ask_dietitian_intro":      "Задайте любой вопрос о вашем питании.",
	"ask_dietitian_disclaimer": "Я ассистент, а не врач; по медицинским вопросам обратитесь к специалисту.",
	"ask_dietitian_prompt":     "Какой у вас вопрос?",
	"ask_dietitian_error":      "Диетолог сейчас недоступен. Попробуйте позже.",

	// Account deletion
	"delete_me_intro":              "Это навсегда удалит ваш профиль и все записи.",
	"delete_me_confirm_text":       "Вы уверены?",
	"delete_me_confirm_button_yes": "Да, удалить всё",
	"delete_me_confirm_button_no":  "Нет, оставить",
	"delete_me_cancelled":          "Ничего не удалено.",
	"delete_me_done":               "Ваши данные удалены. До встречи!",

	// Documents
	"ask_document":          "Пришлите фото документа или вставьте его текст.",
	"document_received":     "Принято, читаю документ...",
	"document_saved_lab":    "Сохранён анализ: %d показателей.",
	"document_saved_exam":   "Сохранено обследование: %s.",
	"document_need_content": "Нужно фото или текст документа, чтобы продолжить.",

	// Symptoms
	"ask_symptom_description": "Опишите симптом.",
	"ask_symptom_severity":    "Насколько это тяжело, от 1 (легко) до 10 (невыносимо)?",
	"ask_symptom_date":        "Когда это случилось? (ГГГГ-ММ-ДД, ДД.ММ.ГГГГ или \"-\" — сейчас)",
	"symptom_saved":           "Симптом записан.",

	// Disease history
	"ask_condition":      "Какое заболевание записать?",
	"ask_diagnosed_date": "Когда поставлен диагноз? (ГГГГ-ММ-ДД, ДД.ММ.ГГГГ или \"-\" если неизвестно)",
	"ask_disease_notes":  "Комментарии? Или \"-\" если нет.",
	"disease_saved":      "Запись в истории болезней сохранена.",

	// Medications / supplements
	"ask_med_name":      "Как называется лекарство?",
	"ask_med_dosage":    "Какая дозировка, например 500 мг?",
	"ask_med_schedule":  "Как часто вы его принимаете?",
	"medication_saved":  "Лекарство сохранено.",
	"ask_supp_name":     "Как называется добавка?",
	"ask_supp_dosage":   "Какая дозировка?",
	"ask_supp_schedule": "Как часто вы её принимаете?",
	"supplement_saved":  "Добавка сохранена.",

	// Diet preferences
	"ask_diet_type":        "Какой стиль питания вам ближе?",
	"diet_type_regular":    "Обычный",
	"diet_type_vegetarian": "Вегетарианский",
	"diet_type_vegan":      "Веганский",
	"diet_type_keto":       "Кето",
	"diet_type_other":      "Другой",
	"ask_disliked":         "Какие продукты вы не любите? Или \"-\" если таких нет.",
	"ask_favourite":        "Какие продукты вы любите? Или \"-\" если затрудняетесь.",
	"ask_intolerances":     "Есть непереносимости? Или \"-\" если нет.",
	"preferences_saved":    "Пищевые предпочтения сохранены.",

	// Biometry
	"ask_biometry_metric": "Какой замер записать?",
	"biometry_waist":      "Талия (см)",
	"biometry_hip":        "Бёдра (см)",
	"biometry_chest":      "Грудь (см)",
	"biometry_body_fat":   "Процент жира (%)",
	"biometry_bp":         "Давление",
	"ask_biometry_value":  "Отправьте значение.",
	"biometry_saved":      "Замер сохранён.",
}
