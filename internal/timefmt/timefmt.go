// Package timefmt renders publication timestamps for the feed UI in
// Brazilian Portuguese: a fixed absolute form ("14 de out às 14:30h")
// and a humanized distance from now ("cerca de 1 hora atrás").
package timefmt

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// Stamp is the pair of display strings for one instant.
type Stamp struct {
	Absolute string
	Relative string
}

// Format is pure in (instant, now). The caller passes the current
// wall-clock time so relative strings can be recomputed at render time
// and pinned in tests.
func Format(instant, now time.Time) Stamp {
	return Stamp{
		Absolute: Absolute(instant),
		Relative: Relative(instant, now),
	}
}

// Abbreviated month names, pt-BR.
var months = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// Absolute renders day-before-month with an "h" suffix on the time,
// e.g. "14 de out às 14:30h".
func Absolute(instant time.Time) string {
	return fmt.Sprintf("%02d de %s às %02d:%02dh",
		instant.Day(), months[instant.Month()-1], instant.Hour(), instant.Minute())
}

var pastMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "agora", DivBy: 1},
	{D: time.Minute, Format: "menos de um minuto %s", DivBy: 1},
	{D: 2 * time.Minute, Format: "1 minuto %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutos %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "cerca de 1 hora %s", DivBy: 1},
	{D: humanize.Day, Format: "cerca de %d horas %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 dia %s", DivBy: 1},
	{D: humanize.Month, Format: "%d dias %s", DivBy: humanize.Day},
	{D: 2 * humanize.Month, Format: "cerca de 1 mês %s", DivBy: 1},
	{D: humanize.Year, Format: "%d meses %s", DivBy: humanize.Month},
	{D: 2 * humanize.Year, Format: "cerca de 1 ano %s", DivBy: 1},
	{D: math.MaxInt64, Format: "%d anos %s", DivBy: humanize.Year},
}

// Future phrasing carries its prefix inside the format so the label
// slot stays empty ("daqui a 5 minutos").
var futureMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "agora", DivBy: 1},
	{D: time.Minute, Format: "daqui a menos de um minuto%s", DivBy: 1},
	{D: 2 * time.Minute, Format: "daqui a 1 minuto%s", DivBy: 1},
	{D: time.Hour, Format: "daqui a %d minutos%s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "daqui a cerca de 1 hora%s", DivBy: 1},
	{D: humanize.Day, Format: "daqui a cerca de %d horas%s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "daqui a 1 dia%s", DivBy: 1},
	{D: humanize.Month, Format: "daqui a %d dias%s", DivBy: humanize.Day},
	{D: 2 * humanize.Month, Format: "daqui a cerca de 1 mês%s", DivBy: 1},
	{D: humanize.Year, Format: "daqui a %d meses%s", DivBy: humanize.Month},
	{D: 2 * humanize.Year, Format: "daqui a cerca de 1 ano%s", DivBy: 1},
	{D: math.MaxInt64, Format: "daqui a %d anos%s", DivBy: humanize.Year},
}

// Relative humanizes the distance between instant and now. Instants in
// the future (clock-skewed stored posts) degrade to a future-facing
// phrase instead of failing.
func Relative(instant, now time.Time) string {
	if instant.After(now) {
		return humanize.CustomRelTime(instant, now, "", "", futureMagnitudes)
	}
	return humanize.CustomRelTime(instant, now, "atrás", "atrás", pastMagnitudes)
}
