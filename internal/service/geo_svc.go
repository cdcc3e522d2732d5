package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/mikl0s/JAI/internal/model"
	"github.com/mikl0s/JAI/internal/repository"
)

const (
	geoAPIBase    = "https://api.ipgeolocation.io/ipgeo"
	geoAPITimeout = 10 * time.Second

	// warmQueueSize bounds the pending warm requests. Sends beyond the
	// bound are dropped: the cache warm is best-effort by contract.
	warmQueueSize = 256
)

// GeoService resolves IP geolocation through ipgeolocation.io, caching
// results in the ip_geolocation table. Without an API key the service is
// disabled and every warm request is a no-op.
type GeoService struct {
	repo   *repository.GeoRepo
	apiKey string
	client *http.Client
	queue  chan string
}

func NewGeoService(repo *repository.GeoRepo, apiKey string) *GeoService {
	if apiKey == "" {
		log.Println("geo: no API key configured, geolocation disabled")
	}
	return &GeoService{
		repo:   repo,
		apiKey: apiKey,
		client: &http.Client{Timeout: geoAPITimeout},
		queue:  make(chan string, warmQueueSize),
	}
}

// Warm enqueues a best-effort cache warm for the IP. Non-blocking: when
// the queue is full the request is dropped. No delivery guarantee, no
// cancellation, no result visible to the caller.
func (s *GeoService) Warm(ip string) {
	if s.apiKey == "" || ip == "" {
		return
	}
	select {
	case s.queue <- ip:
	default:
		log.Printf("geo: warm queue full, dropping %s", ip)
	}
}

// Start runs the warm worker until the context is cancelled.
func (s *GeoService) Start(ctx context.Context) {
	if s.apiKey == "" {
		return
	}
	log.Printf("geo-worker: starting (queue=%d)", warmQueueSize)

	for {
		select {
		case ip := <-s.queue:
			if err := s.resolve(ctx, ip); err != nil {
				log.Printf("geo-worker: resolve error for %s: %v", ip, err)
			}
		case <-ctx.Done():
			log.Println("geo-worker: stopping (context cancelled)")
			return
		}
	}
}

// Lookup returns the cached entry for an IP, or nil when unknown.
func (s *GeoService) Lookup(ctx context.Context, ip string) (*model.GeoEntry, error) {
	return s.repo.FindByIP(ctx, ip)
}

// geoAPIResponse mirrors the provider fields we keep.
type geoAPIResponse struct {
	IP           string `json:"ip"`
	CountryCode2 string `json:"country_code2"`
	CountryName  string `json:"country_name"`
	StateProv    string `json:"state_prov"`
	City         string `json:"city"`
	ISP          string `json:"isp"`
}

// resolve fetches and caches geolocation for one IP, skipping the provider
// call when a cached row already exists.
func (s *GeoService) resolve(ctx context.Context, ip string) error {
	cached, err := s.repo.Exists(ctx, ip)
	if err != nil {
		return err
	}
	if cached {
		return nil
	}

	reqURL := fmt.Sprintf("%s?apiKey=%s&ip=%s", geoAPIBase, url.QueryEscape(s.apiKey), url.QueryEscape(ip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var body geoAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}

	return s.repo.Upsert(ctx, model.GeoEntry{
		IPAddress:    ip,
		CountryCode2: body.CountryCode2,
		CountryName:  body.CountryName,
		Region:       body.StateProv,
		City:         body.City,
		ISP:          body.ISP,
	})
}
