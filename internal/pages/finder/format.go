package finder

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders numbers and timestamps for one display locale and zone.
type Formatter struct {
	tag      language.Tag
	printer  *message.Printer
	location *time.Location
}

// NewFormatter builds a Formatter for a BCP 47 locale (e.g. "ko-KR") and an IANA zone name.
func NewFormatter(locale, timezone string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid display locale %q: %w", locale, err)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid display timezone %q: %w", timezone, err)
	}
	return &Formatter{
		tag:      tag,
		printer:  message.NewPrinter(tag),
		location: loc,
	}, nil
}

// Number formats v with the locale's digit grouping, e.g. 12,000 or 1,500.5.
func (f *Formatter) Number(v float64) string {
	return f.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// DateTime formats t with year, long month, day, hour and minute.
// The zero time yields "".
func (f *Formatter) DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(f.location)

	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}

	base, _ := f.tag.Base()
	if base.String() == "ko" {
		period := "오전"
		if t.Hour() >= 12 {
			period = "오후"
		}
		return fmt.Sprintf("%d년 %d월 %d일 %s %02d:%02d", t.Year(), int(t.Month()), t.Day(), period, hour, t.Minute())
	}

	period := "AM"
	if t.Hour() >= 12 {
		period = "PM"
	}
	return fmt.Sprintf("%s %d, %d at %02d:%02d %s", t.Month().String(), t.Day(), t.Year(), hour, t.Minute(), period)
}
