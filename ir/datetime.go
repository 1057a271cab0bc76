package ir

import (
	"fmt"
	"strings"
	"time"
)

type DatetimeKind int

const (
	OffsetDatetime DatetimeKind = iota
	LocalDatetime
	LocalDate
	LocalTime
)

func (k DatetimeKind) String() string {
	switch k {
	case OffsetDatetime:
		return "offset-datetime"
	case LocalDatetime:
		return "local-datetime"
	case LocalDate:
		return "local-date"
	case LocalTime:
		return "local-time"
	default:
		return fmt.Sprintf("<datetime kind %d>", int(k))
	}
}

// Datetime is one of the four temporal literal forms of TOML.  Time holds
// the calendar and clock fields; its zone is meaningful only for
// OffsetDatetime.  Digits is the number of fractional second digits that
// were written.
type Datetime struct {
	Kind   DatetimeKind
	Time   time.Time
	Digits int
}

const (
	layoutDate     = "2006-01-02"
	layoutTime     = "15:04:05"
	layoutDatetime = layoutDate + "T" + layoutTime
)

// ParseDatetime parses s as, in order, an RFC3339 offset datetime, a local
// datetime, a local date and a local time.  The date and time may be
// separated by 'T', 't' or a space.
func ParseDatetime(s string) (Datetime, bool) {
	norm := s
	if len(norm) > 10 && isDate(norm[:10]) {
		switch norm[10] {
		case 't', ' ':
			norm = norm[:10] + "T" + norm[11:]
		}
	}
	if strings.HasSuffix(norm, "z") {
		norm = norm[:len(norm)-1] + "Z"
	}
	digits := fracDigits(norm)
	if t, err := time.Parse(time.RFC3339, norm); err == nil {
		return Datetime{Kind: OffsetDatetime, Time: t, Digits: digits}, true
	}
	if t, err := time.Parse(layoutDatetime, norm); err == nil {
		return Datetime{Kind: LocalDatetime, Time: t, Digits: digits}, true
	}
	if t, err := time.Parse(layoutDate, norm); err == nil {
		return Datetime{Kind: LocalDate, Time: t}, true
	}
	if t, err := time.Parse(layoutTime, norm); err == nil {
		return Datetime{Kind: LocalTime, Time: t, Digits: digits}, true
	}
	return Datetime{}, false
}

func isDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, c := range []byte(s) {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func fracDigits(s string) int {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	n := 0
	for _, c := range []byte(s[i+1:]) {
		if c < '0' || c > '9' {
			break
		}
		n++
	}
	return n
}

func (d Datetime) String() string {
	switch d.Kind {
	case LocalDate:
		return d.Time.Format(layoutDate)
	case LocalTime:
		return d.Time.Format(layoutTime) + d.frac()
	case LocalDatetime:
		return d.Time.Format(layoutDatetime) + d.frac()
	default:
		zone := "Z"
		if _, off := d.Time.Zone(); off != 0 {
			zone = d.Time.Format("-07:00")
		}
		return d.Time.Format(layoutDatetime) + d.frac() + zone
	}
}

func (d Datetime) frac() string {
	if d.Digits == 0 {
		return ""
	}
	ns := fmt.Sprintf("%09d", d.Time.Nanosecond())
	return "." + ns[:min(d.Digits, 9)]
}

func (d Datetime) Equal(o Datetime) bool {
	return d.Kind == o.Kind && d.String() == o.String()
}
