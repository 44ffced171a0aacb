package scrimservice

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var compactClock = regexp.MustCompile(`\b(\d{1,2})(\d{2})\s*(am|pm)\b`)

// StartTimeParser turns free-text start times ("tomorrow 9pm", "today at
// 18:30") into absolute times in the organiser's timezone.
type StartTimeParser struct {
	parser    *when.Parser
	timezones map[string]string
}

func NewStartTimeParser() *StartTimeParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &StartTimeParser{
		parser: w,
		timezones: map[string]string{
			"UTC": "UTC",
			"GMT": "UTC",
			"IST": "Asia/Kolkata",
			"PKT": "Asia/Karachi",
			"PST": "America/Los_Angeles",
			"PDT": "America/Los_Angeles",
			"MST": "America/Denver",
			"MDT": "America/Denver",
			"CST": "America/Chicago",
			"CDT": "America/Chicago",
			"EST": "America/New_York",
			"EDT": "America/New_York",
			"CET": "Europe/Berlin",
		},
	}
}

// Location resolves an abbreviation or IANA name. Empty means UTC.
func (p *StartTimeParser) Location(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return time.UTC, nil
	}
	if name, ok := p.timezones[strings.ToUpper(tz)]; ok {
		tz = name
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTimezone, tz)
	}
	return loc, nil
}

// Parse returns the start time described by input, which must lie after now.
func (p *StartTimeParser) Parse(input, tz string, now time.Time) (time.Time, error) {
	loc, err := p.Location(tz)
	if err != nil {
		return time.Time{}, err
	}

	text := strings.ToLower(strings.TrimSpace(input))
	text = strings.ReplaceAll(text, "today ", "today at ")
	text = compactClock.ReplaceAllString(text, "$1:$2 $3")

	nowInLoc := now.In(loc)
	r, err := p.parser.Parse(text, nowInLoc)
	if err != nil || r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidStartTime, input)
	}

	startsAt := r.Time.In(loc).Truncate(time.Minute)
	if !startsAt.After(nowInLoc.Truncate(time.Minute)) {
		return time.Time{}, ErrStartTimeInPast
	}
	return startsAt.UTC(), nil
}
