package replacements

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrNoBulletin means the requested weekday has no known bulletin link.
	ErrNoBulletin = errors.New("no bulletin for this day")
	// ErrEmptyBulletin means the page exists but carries no recognizable content.
	ErrEmptyBulletin = errors.New("bulletin page has no content")
)

// Config ...
type Config struct {
	BaseURL         string `toml:"base_url"`
	BaseLink        string `toml:"base_link"`
	MaxAttempts     int    `toml:"max_attempts"`
	UpdatePeriodMin int    `toml:"update_period_min"`
}

// NewConfig return new initialized struct
func NewConfig() *Config {
	return &Config{
		MaxAttempts:     3,
		UpdatePeriodMin: 30,
	}
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("changes: base_url is required")
	}
	if c.BaseLink == "" {
		return errors.New("changes: base_link is required")
	}
	if c.MaxAttempts < 1 {
		return errors.New("changes: max_attempts must be at least 1")
	}
	if c.UpdatePeriodMin < 1 {
		return errors.New("changes: update_period_min must be at least 1")
	}
	return nil
}

// Page is one parsed bulletin page: the classified rows in table order
// plus whatever metadata the headings carried.
type Page struct {
	Date    *time.Time // nil when the h1 heading has no parseable date
	Day     string     // empty when the h2 heading is absent
	Records []Record
}

// Schedule resolves weekday names to bulletin pages and parses them.
// Discovered links live for the whole process: the index page is read
// once and never re-read, stale links persist until restart.
type Schedule struct {
	baseURL  string
	baseLink string
	client   *http.Client

	mu    sync.Mutex // guards links; Resolve may run from several goroutines
	links map[string]string
}

// NewSchedule ...
func NewSchedule(config *Config) *Schedule {
	return &Schedule{
		baseURL:  config.BaseURL,
		baseLink: config.BaseLink,
		client:   &http.Client{Timeout: 30 * time.Second},
		links:    make(map[string]string),
	}
}

// fetchLinks reads the index page and records weekday -> absolute URL
// for every row of the category table. A missing table leaves the
// mapping empty, every later Resolve then misses.
func (s *Schedule) fetchLinks() error {
	resp, err := s.client.Get(s.baseURL + s.baseLink)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("index page: status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return err
	}

	doc.Find("table.category tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		day := capitalize(strings.TrimSpace(link.Text()))
		if day == "" {
			return
		}
		s.links[day] = s.baseURL + href
	})
	return nil
}

// Resolve returns the bulletin URL for a weekday name. The lookup key
// is capitalized before matching.
func (s *Schedule) Resolve(day string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.links) == 0 {
		if err := s.fetchLinks(); err != nil {
			return "", err
		}
	}
	url, ok := s.links[capitalize(day)]
	if !ok {
		return "", ErrNoBulletin
	}
	return url, nil
}

var dateRe = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)

// Fetch retrieves and parses one day's bulletin page.
func (s *Schedule) Fetch(day string) (*Page, error) {
	url, err := s.Resolve(day)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bulletin page %s: status %s", url, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	content := doc.Find("div#MCZ_Content").First()
	if content.Length() == 0 {
		return nil, ErrEmptyBulletin
	}

	page := &Page{}
	if match := dateRe.FindString(content.Find("h1").First().Text()); match != "" {
		if date, err := time.Parse("02.01.2006", match); err == nil {
			page.Date = &date
		}
	}
	if label := strings.TrimSpace(content.Find("h2").First().Text()); label != "" {
		page.Day = capitalize(label)
	}

	content.Find(`table[border="1"]`).Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return // header row
			}
			cells := row.Find("td")
			if cells.Length() != 6 {
				return // malformed row, dropped
			}
			record, ok := Classify(
				cellText(cells, 0),
				cellText(cells, 1),
				cellText(cells, 2),
				cellText(cells, 3),
				cellText(cells, 4),
				cellText(cells, 5),
			)
			if ok {
				page.Records = append(page.Records, record)
			}
		})
	})

	return page, nil
}

// cellText pulls the trimmed text of cell i. Cells absent from the
// markup come back as "-" so the classifier rules keep working.
func cellText(cells *goquery.Selection, i int) string {
	if i >= cells.Length() {
		return "-"
	}
	return strings.TrimSpace(cells.Eq(i).Text())
}
