package calendar

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/worktime/engine"
)

const testICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//worktime//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:ev-1\r\n" +
	"SUMMARY:Home Office\r\n" +
	"DESCRIPTION:focus day\r\n" +
	"DTSTART:20240319T090000Z\r\n" +
	"DTEND:20240319T170000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:ev-2\r\n" +
	"SUMMARY:Vacation\r\n" +
	"DTSTART;VALUE=DATE:20240320\r\n" +
	"DTEND;VALUE=DATE:20240322\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:ev-3\r\n" +
	"SUMMARY:Dentist\r\n" +
	"DTSTART:20240321T100000Z\r\n" +
	"DTEND:20240321T110000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:ev-4\r\n" +
	"SUMMARY:Office\r\n" +
	"DTSTART:20240326T090000Z\r\n" +
	"DTEND:20240326T170000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

var (
	windowStart = time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2024, time.March, 24, 0, 0, 0, 0, time.UTC)
)

func writeICS(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "work.ics")
	require.NoError(t, os.WriteFile(path, []byte(testICS), 0o600))
	return path
}

func TestICS_EventsFromFile(t *testing.T) {
	// GIVEN: a calendar with a timed event, an all-day span, an unknown
	//        title, and an event outside the window
	// WHEN: reading events for one week
	// THEN: only the recognized, overlapping events come back

	src := NewICS(writeICS(t))

	events, err := src.Events(context.Background(), windowStart, windowEnd)
	require.NoError(t, err)
	require.Len(t, events, 2)

	home := events[0]
	assert.Equal(t, engine.CategoryHomeOffice, home.Category)
	assert.Equal(t, time.Date(2024, time.March, 19, 9, 0, 0, 0, time.UTC), home.Start)
	assert.Equal(t, time.Date(2024, time.March, 19, 17, 0, 0, 0, time.UTC), home.End)
	assert.Equal(t, "focus day", home.Note)

	vacation := events[1]
	assert.Equal(t, engine.CategoryVacation, vacation.Category)
	assert.Equal(t, time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC), vacation.Start)
	assert.Equal(t, time.Date(2024, time.March, 22, 0, 0, 0, 0, time.UTC), vacation.End)
}

func TestICS_EventsOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, testICS)
	}))
	t.Cleanup(srv.Close)

	src := NewICS(srv.URL)

	events, err := src.Events(context.Background(), windowStart, windowEnd)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestICS_HTTPErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	_, err := NewICS(srv.URL).Events(context.Background(), windowStart, windowEnd)

	assert.Error(t, err)
}

func TestICS_MissingFileSurfaces(t *testing.T) {
	_, err := NewICS(filepath.Join(t.TempDir(), "nope.ics")).
		Events(context.Background(), windowStart, windowEnd)

	assert.Error(t, err)
}

func TestCategoryForTitle(t *testing.T) {
	cases := map[string]engine.Category{
		"Office":            engine.CategoryOffice,
		"Home Office":       engine.CategoryHomeOffice,
		"Meeting":           engine.CategoryMeeting,
		"QBR":               engine.CategoryMeeting,
		"Company Event":     engine.CategoryCompanyEvent,
		"Team Event":        engine.CategoryCompanyEvent,
		"Sick":              engine.CategorySick,
		"sick":              engine.CategorySick,
		"Vacation":          engine.CategoryVacation,
		"Holiday":           engine.CategoryHoliday,
		"Public Holiday":    engine.CategoryHoliday,
		"Compensatory":      engine.CategoryCompensatory,
		"Compensatory time": engine.CategoryCompensatory,
	}

	for title, want := range cases {
		got, ok := categoryForTitle(title)
		require.True(t, ok, "title %q should map", title)
		assert.Equal(t, want, got)
	}

	_, ok := categoryForTitle("Standup with externals")
	assert.False(t, ok)
}
