// Package timeslot содержит арифметику временных интервалов расписания.
// Интервалы полуоткрытые [start, end): событие, заканчивающееся в 10:00,
// не пересекается с событием, начинающимся в 10:00.
package timeslot

import (
	"fmt"
	"time"
)

// Layout — формат времени суток в API и хранилище.
const Layout = "15:04"

// ParseClock разбирает время суток в формате 15:04 и возвращает
// количество минут с начала дня.
func ParseClock(s string) (int, error) {
	const op = "timeslot.ParseClock"
	t, err := time.Parse(Layout, s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов [s1, e1) и [s2, e2),
// заданных в минутах с начала дня.
func Overlaps(s1, e1, s2, e2 int) bool {
	return !(e1 <= s2 || s1 >= e2)
}

// OverlapsClock проверяет пересечение двух интервалов, заданных строками 15:04.
func OverlapsClock(start1, end1, start2, end2 string) (bool, error) {
	s1, err := ParseClock(start1)
	if err != nil {
		return false, err
	}
	e1, err := ParseClock(end1)
	if err != nil {
		return false, err
	}
	s2, err := ParseClock(start2)
	if err != nil {
		return false, err
	}
	e2, err := ParseClock(end2)
	if err != nil {
		return false, err
	}
	return Overlaps(s1, e1, s2, e2), nil
}

// ValidRange проверяет, что start строго раньше end.
func ValidRange(start, end string) (bool, error) {
	s, err := ParseClock(start)
	if err != nil {
		return false, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return false, err
	}
	return s < e, nil
}
