package connector

import (
	"context"
	"fmt"
	"strings"

	"github.com/octobees/lead-intel/internal/entity"
)

// MapsConnector fetches location and contact details from a mapping service.
// The upstream place-search call is stubbed; normalization is real.
type MapsConnector struct {
	phoneRegion string
}

// NewMapsConnector builds a maps connector. phoneRegion is the default region
// used when a scraped phone number carries no country prefix.
func NewMapsConnector(phoneRegion string) *MapsConnector {
	if phoneRegion == "" {
		phoneRegion = defaultPhoneRegion
	}
	return &MapsConnector{phoneRegion: phoneRegion}
}

// Name identifies the source in cache keys and logs.
func (c *MapsConnector) Name() string {
	return "maps"
}

// FetchCompany returns the place details for the company, with the phone
// normalized to E.164 and the domain derived from the website.
func (c *MapsConnector) FetchCompany(_ context.Context, companyName string) (*entity.CompanyRecord, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return nil, fmt.Errorf("company name is required")
	}

	raw := c.lookupPlace(companyName)

	record := &entity.CompanyRecord{CompanyName: companyName}
	if raw.address != "" {
		address := raw.address
		record.Address = &address
	}
	if phone := normalizePhone(raw.phone, c.phoneRegion); phone != "" {
		record.Phone = &phone
	}
	if raw.website != "" {
		website := raw.website
		record.Website = &website
		if domain := normalizeDomain(raw.website); domain != "" {
			record.Domain = &domain
		}
	}
	if raw.lat != 0 || raw.lng != 0 {
		lat, lng := raw.lat, raw.lng
		record.Latitude = &lat
		record.Longitude = &lng
	}
	if raw.placeURL != "" {
		record.SetExtra("maps_url", raw.placeURL)
	}
	return record, nil
}

type placeResult struct {
	address  string
	phone    string
	website  string
	lat, lng float64
	placeURL string
}

// lookupPlace stands in for the mapping provider's place-search API.
func (c *MapsConnector) lookupPlace(companyName string) placeResult {
	slug := slugify(companyName)
	return placeResult{
		address:  "1600 Amphitheatre Parkway, Mountain View, CA",
		phone:    "+1 650-253-0000",
		website:  fmt.Sprintf("https://%s.com", slug),
		lat:      37.422,
		lng:      -122.084,
		placeURL: fmt.Sprintf("https://maps.google.com/?q=%s", slug),
	}
}
