package constants

const (
	StartCommandMessage = "Привет!\n" +
		"Для работы бота требуется зарегистрироваться:\n" +
		"/register\n" +
		"\n" +
		"/help для справки"

	HelpCommandMessage = "Справка:\n" +
		"\n" +
		"/start - приветственное сообщение\n" +
		"\n" +
		"/help - справка (это сообщение)\n" +
		"\n" +
		"/register - регистрация в системе бота\n" +
		"/unregister - удалить все записи из базы данных\n" +
		"\n" +
		"/changes [день] - замены для вашей группы или фамилии, " +
		"если не указать день - будут сегодняшние\n" +
		"\n" +
		"/bells [день] - расписание звонков, " +
		"если не указать день - будет текущий\n" +
		"`0`|`рабочий` - расписание для рабочего дня\n" +
		"`1`|`выходной` - расписание для выходного дня\n" +
		"`2`|`сокращённый` - расписание для сокращённого дня\n" +
		"\n" +
		"/week - получить текущую неделю, в воскресенье - следующую " +
		"(верхняя/нижняя)\n" +
		"/nextweek - получить следующую неделю (верхняя/нижняя)\n" +
		"/currweek - получить текущую неделю в любом случае (верхняя/нижняя)"

	BellsSundayMessage = "Сегодня воскресенье. \n" +
		"Для того чтобы получить звонки на конкретный день напиши:\n" +
		"/bells [день]\n" +
		"`0`|`рабочий` - расписание для рабочего дня\n" +
		"`1`|`выходной` - расписание для выходного дня\n" +
		"`2`|`сокращённый` - расписание для сокращённого дня"

	BadArgumentsMessage = "Аргументы не верны!"

	NotRegisteredMessage       = "Вы не зарегистрированы. Для регистрации: /register"
	AlreadyRegisteredMessage   = "❌ Вы уже зарегистрированы!"
	RegistrationDeletedMessage = "Все ваши записи удалены"
	RegistrationDoneMessage    = "✅ Регистрация завершена!"
	RegistrationCancelMessage  = "Регистрация отменена"
	NothingToCancelMessage     = "Нечего отменять"

	ChooseRoleMessage = "*Регистрация*\n" +
		"\n" +
		"/cancel для отмены на любом этапе\n" +
		"\n" +
		"Выберите вашу роль:"
	ChooseGroupMessage    = "Выберите группу из списка:"
	ChooseSubgroupMessage = "Выберите подгруппу:"
	EnterFirstNameMessage = "Введите имя:"
	EnterLastNameMessage  = "Введите фамилию:"

	NoReplacementsMessage        = "Замены для %s не найдены."
	NoGroupReplacementsMessage   = "Для группы %s замен нет"
	NoTeacherReplacementsMessage = "Для преподавателя %s замен нет"
	ChangesUnavailableMessage    = "Не удалось проверить замены. Попробуйте позже"
	StaleReplacementsMessage     = "⚠️ Замены могут быть устаревшими (не текущая неделя)"

	InternalErrorMessage = "Internal error"
)
