package report

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Period — диапазон дат отчёта, обе границы включительно.
type Period struct {
	From time.Time
	To   time.Time
}

func (p Period) String() string {
	return p.From.Format(DateLayout) + " — " + p.To.Format(DateLayout)
}

// ResolveAlias превращает «сегодня»/«вчера» в конкретные даты на момент
// вызова. Второй результат false — алиас не распознан и нужен явный период.
func ResolveAlias(alias string, now time.Time) (Period, bool) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch strings.ToLower(strings.TrimSpace(alias)) {
	case "сегодня", "today":
		return Period{From: day, To: day}, true
	case "вчера", "yesterday":
		y := day.AddDate(0, 0, -1)
		return Period{From: y, To: y}, true
	}
	return Period{}, false
}

// ParseRange разбирает явный период вида «2024-03-01,2024-03-09».
// Даты можно разделить запятой, точкой с запятой или пробелом.
func ParseRange(input string) (Period, error) {
	parts := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ';' || r == ' '
	})
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("expected two dates, got %d", len(parts))
	}

	from, err := time.Parse(DateLayout, parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("start date %q: %w", parts[0], err)
	}
	to, err := time.Parse(DateLayout, parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("end date %q: %w", parts[1], err)
	}
	if from.After(to) {
		return Period{}, fmt.Errorf("start %s is after end %s", parts[0], parts[1])
	}
	return Period{From: from, To: to}, nil
}
