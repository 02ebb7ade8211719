package formatting

func pluralize(count int, one, few, many string) string {
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeLessons возвращает правильное склонение слова "пара"
func PluralizeLessons(count int) string {
	return pluralize(count, "пара", "пары", "пар")
}

// PluralizeGroups возвращает правильное склонение слова "группа"
func PluralizeGroups(count int) string {
	return pluralize(count, "группа", "группы", "групп")
}

// PluralizeFiles возвращает правильное склонение слова "файл"
func PluralizeFiles(count int) string {
	return pluralize(count, "файл", "файла", "файлов")
}
