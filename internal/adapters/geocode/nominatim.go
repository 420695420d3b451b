package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

const userAgent = "RouteOptimizerService/1.0 (contact@example.com)"

// NominatimGeocoder implements the Geocoder port using the
// OpenStreetMap Nominatim API.
//
// It coordinates:
//   - Address normalization for stable cache keys
//   - Persistent geocode caching
//   - A ladder of query strategies (full address, city-only,
//     simplified address) with bounded-region validation
//   - Locality-center and city-center fallbacks with jitter, so every
//     address resolves to coordinates inside the service area
//
// The geocoder is safe for concurrent use.
type NominatimGeocoder struct {
	session *http.Client
	baseURL string
	area    config.ServiceArea
	cache   ports.GeocodeCache

	mu  sync.Mutex
	rng *rand.Rand
}

func NewNominatimGeocoder(area config.ServiceArea, cache ports.GeocodeCache) *NominatimGeocoder {
	return &NominatimGeocoder{
		session: &http.Client{Timeout: 5 * time.Second},
		baseURL: "https://nominatim.openstreetmap.org",
		area:    area,
		cache:   cache,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *NominatimGeocoder) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves an address to coordinates inside the service area.
// Cache hits short-circuit the API entirely; misses walk the strategy
// ladder and always produce a result, so geocoding never blocks the
// optimization pipeline on an unresolvable address.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address, locality string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	norm := g.normalize(address)
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("geocode: address must be non-empty")
	}

	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, []string{norm})
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode: read cache: %w", err)
		}
		if coord, ok := hits[norm]; ok {
			return coord, nil
		}
	}

	coord, err := g.resolve(ctx, norm, locality)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if g.cache != nil {
		if err := g.cache.PutMany(ctx, map[string]domain.Coordinates{norm: coord}); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coord, nil
}

func (g *NominatimGeocoder) resolve(ctx context.Context, address, locality string) (domain.Coordinates, error) {
	queries := []string{
		fmt.Sprintf("%s, %s, %s, %s", address, locality, g.area.City, g.area.Country),
		fmt.Sprintf("%s, %s, %s", address, g.area.City, g.area.Country),
		fmt.Sprintf("%s, %s, %s", simplifyAddress(address), g.area.City, g.area.Country),
	}
	if locality == "" {
		queries = queries[1:]
	}

	for _, q := range queries {
		coord, ok, err := g.search(ctx, q)
		if err != nil {
			if ctx.Err() != nil {
				return domain.Coordinates{}, ctx.Err()
			}
			log.Printf("nominatim query failed query=%q err=%v", q, err)
			continue
		}
		if ok && g.area.Bounds.Contains(coord) {
			return coord, nil
		}
	}

	// Locality center with jitter, then city center as the last resort.
	if center, ok := g.area.LocalityCenters[locality]; ok {
		log.Printf("geocode fallback=locality locality=%q address=%q", locality, address)
		return g.jitter(center, 0.02), nil
	}

	log.Printf("geocode fallback=city_center address=%q", address)
	return g.jitter(g.area.CityCenter, 0.05), nil
}

func (g *NominatimGeocoder) jitter(c domain.Coordinates, spread float64) domain.Coordinates {
	g.mu.Lock()
	defer g.mu.Unlock()
	return domain.Coordinates{
		Lat: c.Lat + (g.rng.Float64()*2-1)*spread,
		Lng: c.Lng + (g.rng.Float64()*2-1)*spread,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// search issues one Nominatim query and returns the first result inside
// the service-area bounds, if any.
func (g *NominatimGeocoder) search(ctx context.Context, query string) (domain.Coordinates, bool, error) {
	endpoint := g.baseURL + "/search"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		q := url.Values{}
		q.Set("q", query)
		q.Set("format", "json")
		q.Set("limit", "3")
		q.Set("countrycodes", "co")
		q.Set("bounded", "1")
		q.Set("viewbox", fmt.Sprintf("%g,%g,%g,%g",
			g.area.Bounds.LngMin, g.area.Bounds.LatMax, g.area.Bounds.LngMax, g.area.Bounds.LatMin))
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("decode search response: %w", err)
	}

	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lng, lngErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		coord := domain.Coordinates{Lat: lat, Lng: lng}
		if coord.IsFinite() && g.area.Bounds.Contains(coord) {
			return coord, true, nil
		}
	}

	return domain.Coordinates{}, false, nil
}

// simplifyAddress strips apartment and floor details so a retry query
// matches the base street address.
func simplifyAddress(address string) string {
	simplified := address
	if i := strings.Index(simplified, "#"); i >= 0 {
		simplified = simplified[:i]
	}
	if i := strings.Index(simplified, "("); i >= 0 {
		simplified = simplified[:i]
	}
	return strings.TrimSpace(simplified)
}
