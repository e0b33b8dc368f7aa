package connector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/octobees/lead-intel/internal/entity"
)

// DirectoryConnector fetches company profiles from a business directory. With
// a base URL configured it fetches and parses the directory's HTML profile
// page; without one it serves a fixture payload, which is what local
// development and the test harness run against.
type DirectoryConnector struct {
	client  HTTPClient
	baseURL string
}

// NewDirectoryConnector builds a directory connector. An empty baseURL
// enables the fixture payload.
func NewDirectoryConnector(client HTTPClient, baseURL string) *DirectoryConnector {
	if client == nil {
		client = http.DefaultClient
	}
	return &DirectoryConnector{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Name identifies the source in cache keys and logs.
func (c *DirectoryConnector) Name() string {
	return "directory"
}

// FetchCompany retrieves and normalizes a directory profile.
func (c *DirectoryConnector) FetchCompany(ctx context.Context, companyName string) (*entity.CompanyRecord, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return nil, fmt.Errorf("company name is required")
	}

	if c.baseURL == "" {
		return c.stubRecord(companyName), nil
	}

	profileURL := c.baseURL + "/organizations/" + url.PathEscape(slugify(companyName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create directory request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse directory profile: %w", err)
	}
	return c.parseProfile(companyName, doc), nil
}

// parseProfile maps the directory's profile markup onto the normalized schema.
func (c *DirectoryConnector) parseProfile(companyName string, doc *goquery.Document) *entity.CompanyRecord {
	record := &entity.CompanyRecord{CompanyName: companyName}

	if name := strings.TrimSpace(doc.Find("h1.profile-name").First().Text()); name != "" {
		record.CompanyName = name
	}
	if description := strings.TrimSpace(doc.Find(".profile-description").First().Text()); description != "" {
		record.Description = &description
	}
	if website, ok := doc.Find("a.profile-website").First().Attr("href"); ok {
		website = strings.TrimSpace(website)
		if website != "" {
			record.Website = &website
		}
	}
	if location := strings.TrimSpace(doc.Find(".profile-location").First().Text()); location != "" {
		record.SetExtra("location", location)
	}
	if founded := strings.TrimSpace(doc.Find(".profile-founded").First().Text()); founded != "" {
		if year, err := strconv.Atoi(founded); err == nil {
			record.FoundedYear = &year
		}
	}
	doc.Find("ul.profile-founders li").Each(func(_ int, s *goquery.Selection) {
		if founder := strings.TrimSpace(s.Text()); founder != "" {
			record.Founders = append(record.Founders, founder)
		}
	})

	return record
}

func (c *DirectoryConnector) stubRecord(companyName string) *entity.CompanyRecord {
	description := fmt.Sprintf("%s is a leading company in AI.", companyName)
	website := fmt.Sprintf("https://%s.com", slugify(companyName))
	year := 2015

	record := &entity.CompanyRecord{
		CompanyName: companyName,
		Description: &description,
		Website:     &website,
		Founders:    []string{"Sam Altman", "Greg Brockman"},
		FoundedYear: &year,
	}
	record.SetExtra("location", "San Francisco, CA")
	return record
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
