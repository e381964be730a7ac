package replacements

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testManager(handler http.Handler, maxAttempts int) (*Manager, *httptest.Server) {
	ts := httptest.NewServer(handler)
	config := &Config{
		BaseURL:         ts.URL,
		BaseLink:        "/zameny",
		MaxAttempts:     maxAttempts,
		UpdatePeriodMin: 30,
	}
	return NewManager(NewSchedule(config), config, testLogger()), ts
}

const weekIndexHTML = `<html><body>
<table class="category">
<tr><td><a href="/zameny/den">Понедельник</a></td></tr>
<tr><td><a href="/zameny/den">Вторник</a></td></tr>
</table>
</body></html>`

func TestGetReplacementsRetriesUntilCeiling(t *testing.T) {
	var pageHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/zameny", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, weekIndexHTML)
	})
	mux.HandleFunc("/zameny/den", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pageHits, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	manager, ts := testManager(mux, 3)
	defer ts.Close()

	_, err := manager.GetReplacements("Понедельник")
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if isNoBulletin(err) {
		t.Fatalf("transport failure reported as missing bulletin: %v", err)
	}
	if got := atomic.LoadInt32(&pageHits); got != 3 {
		t.Fatalf("attempted %d fetches, want exactly 3", got)
	}
}

func TestGetReplacementsNoBulletinNotRetried(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/zameny", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, weekIndexHTML)
	})

	manager, ts := testManager(mux, 3)
	defer ts.Close()

	_, err := manager.GetReplacements("Среда")
	if !errors.Is(err, ErrNoBulletin) {
		t.Fatalf("err = %v, want ErrNoBulletin", err)
	}
}

func TestRefreshKeepsOldSnapshotOnFailure(t *testing.T) {
	var failing atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/zameny", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, weekIndexHTML)
	})
	mux.HandleFunc("/zameny/den", func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, bulletinHTML)
	})

	manager, ts := testManager(mux, 2)
	defer ts.Close()
	// Monday, so the next working day is Tuesday.
	manager.now = func() time.Time {
		return time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)
	}

	if _, ok := manager.Today(); ok {
		t.Fatal("snapshot visible before first refresh")
	}

	if err := manager.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	today, ok := manager.Today()
	if !ok || today == nil {
		t.Fatal("today slot not published")
	}
	next, ok := manager.NextWorkingDay()
	if !ok || next == nil {
		t.Fatal("next-working-day slot not published")
	}

	failing.Store(true)
	if err := manager.Refresh(); err == nil {
		t.Fatal("expected refresh failure")
	}

	stillToday, ok := manager.Today()
	if !ok || stillToday != today {
		t.Fatal("failed refresh must leave the old snapshot visible")
	}
}

func TestRefreshPublishesNilSlotForMissingDay(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/zameny", func(w http.ResponseWriter, r *http.Request) {
		// Only Tuesday is published.
		fmt.Fprint(w, `<html><body><table class="category">
<tr><td><a href="/zameny/den">Вторник</a></td></tr>
</table></body></html>`)
	})
	mux.HandleFunc("/zameny/den", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, bulletinHTML)
	})

	manager, ts := testManager(mux, 2)
	defer ts.Close()
	manager.now = func() time.Time {
		return time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC) // Monday
	}

	if err := manager.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	today, ok := manager.Today()
	if !ok {
		t.Fatal("snapshot not published")
	}
	if today != nil {
		t.Fatal("Monday has no bulletin, slot must be nil")
	}
	next, ok := manager.NextWorkingDay()
	if !ok || next == nil {
		t.Fatal("Tuesday slot must be populated")
	}
}

func TestNextWorkingDay(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want time.Weekday
	}{
		{name: "saturday skips sunday", day: time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC), want: time.Monday},
		{name: "sunday needs no special case", day: time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC), want: time.Monday},
		{name: "friday lands on saturday", day: time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC), want: time.Saturday},
		{name: "monday lands on tuesday", day: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), want: time.Tuesday},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := nextWorkingDay(tt.day).Weekday(); got != tt.want {
				t.Fatalf("nextWorkingDay(%v) = %v, want %v", tt.day.Weekday(), got, tt.want)
			}
		})
	}
}
