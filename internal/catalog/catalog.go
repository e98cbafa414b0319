// Package catalog is the service façade over the upstream client: it issues
// paced fetches, normalizes payloads into canonical records, and keeps a
// short-TTL cache of the default queries.
package catalog

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/slimtomatillo/ephemeris/internal/metrics"
	"github.com/slimtomatillo/ephemeris/internal/orbital"
	"github.com/slimtomatillo/ephemeris/internal/uphere"
)

// DefaultTTL is how long a cached slot stays valid.
const DefaultTTL = 5 * time.Minute

// DefaultMaxResults bounds FindByName when the caller does not.
const DefaultMaxResults = 10

// Fetcher is the slice of the upstream client the catalog consumes.
type Fetcher interface {
	SatelliteList(ctx context.Context, page int, text, country string) ([]any, error)
	SatelliteDetails(ctx context.Context, id string) (map[string]any, error)
	Countries(ctx context.Context) ([]any, error)
}

// Country is one entry of the launch-country reference list.
type Country struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Query selects a page of the satellite catalog. The cache applies only when
// both filters are empty and NoCache is unset.
type Query struct {
	Page    int
	Text    string
	Country string
	NoCache bool
}

// listSlot is the single-slot satellite-list cache: the raw unparsed payload
// for one page. A fetch for a different page overwrites it wholesale.
type listSlot struct {
	raw       []any
	page      int
	at        time.Time
	populated bool
}

type countriesSlot struct {
	items     []Country
	at        time.Time
	populated bool
}

// Service fetches, caches, and normalizes satellite data. Safe for
// concurrent use; cache refresh is last-write-wins.
type Service struct {
	client Fetcher
	ttl    time.Duration
	logger *slog.Logger

	mu        sync.Mutex
	list      listSlot
	countries countriesSlot

	// Injected clock, replaceable in tests.
	now func() time.Time
}

// New creates a Service with the given cache TTL; ttl <= 0 selects
// DefaultTTL.
func New(client Fetcher, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		client: client,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Satellites returns one page of canonical records. Unfiltered queries are
// answered from the cache while the slot matches the page and is fresh; the
// cached raw payload is re-parsed on every hit so records are never shared
// between callers. Filtered queries always fetch and are never cached.
func (s *Service) Satellites(ctx context.Context, q Query) ([]*orbital.Object, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	unfiltered := q.Text == "" && q.Country == ""

	if unfiltered && !q.NoCache {
		s.mu.Lock()
		if s.list.populated && s.list.page == page && s.now().Sub(s.list.at) < s.ttl {
			raw := s.list.raw
			s.mu.Unlock()
			metrics.IncCacheHit("satellite_list")
			return s.parseAll(raw), nil
		}
		s.mu.Unlock()
		metrics.IncCacheMiss("satellite_list")
	}

	raw, err := s.client.SatelliteList(ctx, page, q.Text, q.Country)
	if err != nil {
		return nil, err
	}

	if unfiltered {
		s.mu.Lock()
		s.list = listSlot{raw: raw, page: page, at: s.now(), populated: true}
		s.mu.Unlock()
	}

	return s.parseAll(raw), nil
}

// Countries returns the launch-country reference list, cached in its own
// slot with the same TTL policy as the satellite list.
func (s *Service) Countries(ctx context.Context, noCache bool) ([]Country, error) {
	if !noCache {
		s.mu.Lock()
		if s.countries.populated && s.now().Sub(s.countries.at) < s.ttl {
			items := make([]Country, len(s.countries.items))
			copy(items, s.countries.items)
			s.mu.Unlock()
			metrics.IncCacheHit("countries")
			return items, nil
		}
		s.mu.Unlock()
		metrics.IncCacheMiss("countries")
	}

	raw, err := s.client.Countries(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Country, 0, len(raw))
	for _, item := range raw {
		data, ok := item.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, Country{
			ID:           stringValue(data["id"]),
			Name:         stringValue(data["name"]),
			Abbreviation: stringValue(data["abbreviation"]),
		})
	}

	if !noCache {
		s.mu.Lock()
		s.countries = countriesSlot{items: items, at: s.now(), populated: true}
		s.mu.Unlock()
	}

	return items, nil
}

// FindByName searches by name. The server-side text filter is unreliable, so
// a case-insensitive substring re-filter is layered on top of its results.
// Always fetches fresh.
func (s *Service) FindByName(ctx context.Context, name string, maxResults int) ([]*orbital.Object, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	sats, err := s.Satellites(ctx, Query{Text: name, NoCache: true})
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(name)
	matches := make([]*orbital.Object, 0, maxResults)
	for _, sat := range sats {
		if strings.Contains(strings.ToLower(sat.Name), needle) {
			matches = append(matches, sat)
			if len(matches) == maxResults {
				break
			}
		}
	}

	return matches, nil
}

// FindByID looks a satellite up by catalog (NORAD) id: first against the
// cached or fresh default page, then against the detail endpoint. A failure
// on the detail fallback is swallowed and reported as not-found.
func (s *Service) FindByID(ctx context.Context, id string) (*orbital.Object, error) {
	sats, err := s.Satellites(ctx, Query{})
	if err != nil {
		return nil, err
	}
	for _, sat := range sats {
		if sat.CatalogID == id {
			return sat, nil
		}
	}

	details, err := s.client.SatelliteDetails(ctx, id)
	if err != nil {
		s.logger.Debug("detail lookup failed", "id", id, "error", err)
		return nil, nil
	}
	if details == nil {
		return nil, nil
	}
	return uphere.ParseObject(details), nil
}

// SatellitesByCountry lists satellites launched by the given country
// abbreviation. Bypasses the cache.
func (s *Service) SatellitesByCountry(ctx context.Context, abbreviation string) ([]*orbital.Object, error) {
	return s.Satellites(ctx, Query{Country: abbreviation, NoCache: true})
}

// ClearCache empties both cache slots.
func (s *Service) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = listSlot{}
	s.countries = countriesSlot{}
}

// SlotStats describes one cache slot.
type SlotStats struct {
	Populated bool          `json:"populated"`
	Age       time.Duration `json:"age"`
	Valid     bool          `json:"valid"`
	Page      int           `json:"page,omitempty"`
}

// Stats reports both slots' population, age, and validity against the TTL.
type Stats struct {
	SatelliteList SlotStats     `json:"satellite_list"`
	Countries     SlotStats     `json:"countries"`
	TTL           time.Duration `json:"ttl"`
}

// CacheStats returns a snapshot of the cache state.
func (s *Service) CacheStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stats := Stats{TTL: s.ttl}

	if s.list.populated {
		age := now.Sub(s.list.at)
		stats.SatelliteList = SlotStats{
			Populated: true,
			Age:       age,
			Valid:     age < s.ttl,
			Page:      s.list.page,
		}
	}
	if s.countries.populated {
		age := now.Sub(s.countries.at)
		stats.Countries = SlotStats{
			Populated: true,
			Age:       age,
			Valid:     age < s.ttl,
		}
	}

	return stats
}

// parseAll normalizes a raw payload list, skipping items the parser rejects.
func (s *Service) parseAll(raw []any) []*orbital.Object {
	objects := make([]*orbital.Object, 0, len(raw))
	for i, item := range raw {
		obj := uphere.ParseObject(item)
		if obj == nil {
			s.logger.Warn("skipping unparseable satellite record", "index", i)
			continue
		}
		objects = append(objects, obj)
	}
	return objects
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}
