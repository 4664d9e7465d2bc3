// Package month реализует календарную арифметику месяцев.
package month

import (
	"time"
)

// AddClamped прибавляет к t n календарных месяцев, сохраняя день месяца.
// Если в целевом месяце такого дня нет, берётся его последний день:
// 31 января + 1 месяц = 28 (29) февраля. Время суток и локация сохраняются.
//
// В отличие от time.AddDate переполнение дня не переносится на следующий месяц.
func AddClamped(t time.Time, n int) time.Time {
	year, mon, day := t.Date()
	hour, minute, sec := t.Clock()

	// Первое число целевого месяца нормализуется корректно при любом n.
	first := time.Date(year, mon+time.Month(n), 1, hour, minute, sec, t.Nanosecond(), t.Location())

	if last := DaysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

// DaysIn возвращает количество дней в месяце.
func DaysIn(year int, m time.Month) int {
	// Нулевой день следующего месяца — последний день текущего.
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
