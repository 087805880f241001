// Package alerts surfaces the authority's GTFS-RT service-alerts feed as a
// standalone "what's going on right now" query, independent of any station
// lookup.
package alerts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/jdelgado/metrovoice/internal/cache"
)

// ServiceAlert represents one active service alert from the GTFS-RT feed.
type ServiceAlert struct {
	ID          string   `json:"id"`
	Routes      []string `json:"routes"`
	Header      string   `json:"header"`
	Description string   `json:"description"`
}

// Service fetches and caches service alerts. Unlike the timetable path,
// alert queries tolerate slightly stale data, so responses are cached for
// the configured TTL.
type Service struct {
	feedURL string
	client  *http.Client
	cache   *cache.Cache[[]ServiceAlert]
}

// NewService creates an alert service reading the given GTFS-RT feed URL.
func NewService(feedURL string, timeout, cacheTTL time.Duration) *Service {
	return &Service{
		feedURL: feedURL,
		client:  &http.Client{Timeout: timeout},
		cache:   cache.New[[]ServiceAlert](cacheTTL),
	}
}

// Close stops the cache's background cleanup.
func (s *Service) Close() {
	s.cache.Close()
}

// Alerts returns active service alerts, optionally filtered to those
// touching at least one of the given routes.
func (s *Service) Alerts(ctx context.Context, routes []string) ([]ServiceAlert, error) {
	all, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if len(routes) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(routes))
	for _, r := range routes {
		wanted[r] = true
	}

	var filtered []ServiceAlert
	for _, alert := range all {
		for _, r := range alert.Routes {
			if wanted[r] {
				filtered = append(filtered, alert)
				break
			}
		}
	}
	return filtered, nil
}

func (s *Service) fetch(ctx context.Context) ([]ServiceAlert, error) {
	if cached, ok := s.cache.Get("all"); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building alerts request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching alerts feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alerts feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading alerts response: %w", err)
	}

	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return nil, fmt.Errorf("parsing alerts protobuf: %w", err)
	}

	alerts := parseAlerts(feed, time.Now())
	s.cache.Set("all", alerts)
	return alerts, nil
}

func parseAlerts(feed *gtfs.FeedMessage, now time.Time) []ServiceAlert {
	var alerts []ServiceAlert
	ts := now.Unix()

	for _, entity := range feed.GetEntity() {
		alert := entity.GetAlert()
		if alert == nil {
			continue
		}

		// No active period means always active.
		active := len(alert.GetActivePeriod()) == 0
		for _, period := range alert.GetActivePeriod() {
			start := int64(period.GetStart())
			end := int64(period.GetEnd())
			if ts >= start && (end == 0 || ts < end) {
				active = true
				break
			}
		}
		if !active {
			continue
		}

		var routes []string
		seen := make(map[string]bool)
		for _, ie := range alert.GetInformedEntity() {
			if routeID := ie.GetRouteId(); routeID != "" && !seen[routeID] {
				seen[routeID] = true
				routes = append(routes, routeID)
			}
		}

		header := translatedText(alert.GetHeaderText())
		if header == "" {
			continue
		}

		alerts = append(alerts, ServiceAlert{
			ID:          entity.GetId(),
			Routes:      routes,
			Header:      header,
			Description: translatedText(alert.GetDescriptionText()),
		})
	}

	return alerts
}

func translatedText(ts *gtfs.TranslatedString) string {
	if ts == nil {
		return ""
	}
	for _, t := range ts.GetTranslation() {
		if t.GetLanguage() == "en" || t.GetLanguage() == "" {
			return t.GetText()
		}
	}
	if len(ts.GetTranslation()) > 0 {
		return ts.GetTranslation()[0].GetText()
	}
	return ""
}
