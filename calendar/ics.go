/*
Package calendar reads work events from an ICS calendar.

PURPOSE:
  The reconciliation core consumes WorkEvents; this package produces them
  from a dedicated work calendar published as ICS, either over HTTP or as a
  local file. Event titles map onto the closed category set; anything
  unrecognized is logged as a warning and excluded, so unknown entries never
  reach the core.

TITLE MAPPING:
  Office                      -> office
  Home Office                 -> home_office
  Meeting, QBR                -> meeting
  Company Event, Team Event   -> company_event
  Sick, sick                  -> sick
  Vacation                    -> vacation
  Holiday, Public Holiday     -> holiday
  Compensatory, Compensatory time -> compensatory

  Recurrence rules are not expanded; the work calendar is expected to carry
  concrete entries.
*/
package calendar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/sirupsen/logrus"

	"github.com/warp/worktime/engine"
)

// ICS is a calendar source backed by a single ICS document.
type ICS struct {
	location string
	client   *http.Client
}

// NewICS builds a source for the given location: an http(s) URL or a file
// path.
func NewICS(location string) *ICS {
	return &ICS{
		location: location,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Events returns all recognized work events overlapping the half-open
// window [start, end).
func (s *ICS) Events(ctx context.Context, start, end time.Time) ([]engine.WorkEvent, error) {
	body, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing calendar %s: %w", s.location, err)
	}

	var events []engine.WorkEvent
	for _, ve := range cal.Events() {
		ev, ok := mapEvent(ve)
		if !ok {
			continue
		}
		if ev.End.After(start) && ev.Start.Before(end) {
			events = append(events, ev)
		}
	}
	return events, nil
}

func (s *ICS) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(s.location, "http://") || strings.HasPrefix(s.location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
		if err != nil {
			return nil, err
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching calendar: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetching calendar: %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}

	data, err := os.ReadFile(s.location)
	if err != nil {
		return nil, fmt.Errorf("reading calendar file: %w", err)
	}
	return data, nil
}

// mapEvent converts one VEVENT to a WorkEvent. Unrecognized titles are
// warned about and dropped.
func mapEvent(ve *ical.VEvent) (engine.WorkEvent, bool) {
	summary := propValue(ve, ical.ComponentPropertySummary)

	category, ok := categoryForTitle(summary)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"title": summary,
			"start": propValue(ve, ical.ComponentPropertyDtStart),
		}).Warn("unknown calendar event, skipping")
		return engine.WorkEvent{}, false
	}

	start, end, err := eventSpan(ve)
	if err != nil {
		logrus.WithFields(logrus.Fields{"title": summary, "err": err}).
			Warn("calendar event with unusable dates, skipping")
		return engine.WorkEvent{}, false
	}

	return engine.WorkEvent{
		Start:    start,
		End:      end,
		Category: category,
		Note:     propValue(ve, ical.ComponentPropertyDescription),
	}, true
}

// eventSpan extracts the event's instants. All-day entries (VALUE=DATE) pin
// to UTC midnight; DTEND is already exclusive in ICS, and a missing DTEND
// on an all-day entry means a single day.
func eventSpan(ve *ical.VEvent) (time.Time, time.Time, error) {
	if isAllDay(ve) {
		start, err := time.ParseInLocation("20060102", propValue(ve, ical.ComponentPropertyDtStart), time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}

		endRaw := propValue(ve, ical.ComponentPropertyDtEnd)
		if endRaw == "" {
			return start, start.AddDate(0, 0, 1), nil
		}
		end, err := time.ParseInLocation("20060102", endRaw, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, end, nil
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start.UTC(), end.UTC(), nil
}

func isAllDay(ve *ical.VEvent) bool {
	prop := ve.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil {
		return false
	}
	if vs, ok := prop.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(prop.Value, "T")
}

func propValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}

func categoryForTitle(title string) (engine.Category, bool) {
	switch title {
	case "Office":
		return engine.CategoryOffice, true
	case "Home Office":
		return engine.CategoryHomeOffice, true
	case "Meeting", "QBR":
		return engine.CategoryMeeting, true
	case "Company Event", "Team Event":
		return engine.CategoryCompanyEvent, true
	case "Sick", "sick":
		return engine.CategorySick, true
	case "Vacation":
		return engine.CategoryVacation, true
	case "Holiday", "Public Holiday":
		return engine.CategoryHoliday, true
	case "Compensatory", "Compensatory time":
		return engine.CategoryCompensatory, true
	}
	return "", false
}
