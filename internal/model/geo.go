package model

import "time"

// GeoEntry is a cached geolocation lookup for an IP address.
// Absence is tolerated everywhere; consumers fall back to "Unknown".
type GeoEntry struct {
	IPAddress    string    `json:"ip_address"`
	CountryCode2 string    `json:"country_code2"`
	CountryName  string    `json:"country_name"`
	Region       string    `json:"region,omitempty"`
	City         string    `json:"city,omitempty"`
	ISP          string    `json:"isp,omitempty"`
	LastUpdated  time.Time `json:"last_updated"`
}

// Location returns a human-readable location string for audit views.
func (g *GeoEntry) Location() string {
	if g == nil || g.CountryName == "" {
		return "Unknown"
	}
	loc := g.CountryName
	if g.Region != "" {
		loc = g.Region + ", " + loc
	}
	if g.City != "" {
		loc = g.City + ", " + loc
	}
	return loc
}
