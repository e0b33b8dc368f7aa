package entity

import "encoding/json"

// CompanyRecord is the normalized company shape shared by all connectors and
// the enrichment pipeline. Well-known fields are optional pointers (or nilable
// slices) so that an absent field is distinguishable from a present-but-empty
// one. Keys the schema does not recognize survive in Extra and round-trip
// through JSON untouched.
type CompanyRecord struct {
	CompanyName string `json:"company_name"`

	// Connector-sourced fields.
	Description *string  `json:"description,omitempty"`
	Website     *string  `json:"website,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Founders    []string `json:"founders,omitempty"`
	FoundedYear *int     `json:"founded_year,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`

	// Firmographic enrichment fields.
	Funding       *string  `json:"funding,omitempty"`
	TechStack     []string `json:"tech_stack,omitempty"`
	EmployeeCount *int     `json:"employee_count,omitempty"`
	Domain        *string  `json:"domain,omitempty"`

	// Derived fields set by the enrichment pipeline.
	Summary *string `json:"summary,omitempty"`
	Score   *int    `json:"score,omitempty"`

	// Extra holds keys outside the known schema.
	Extra map[string]any `json:"-"`
}

// Clone returns a deep copy so pipeline stages never mutate the caller's record.
func (r CompanyRecord) Clone() CompanyRecord {
	out := r
	out.Description = cloneString(r.Description)
	out.Website = cloneString(r.Website)
	out.Phone = cloneString(r.Phone)
	out.Address = cloneString(r.Address)
	out.Funding = cloneString(r.Funding)
	out.Domain = cloneString(r.Domain)
	out.Summary = cloneString(r.Summary)
	out.FoundedYear = cloneInt(r.FoundedYear)
	out.EmployeeCount = cloneInt(r.EmployeeCount)
	out.Score = cloneInt(r.Score)
	out.Latitude = cloneFloat(r.Latitude)
	out.Longitude = cloneFloat(r.Longitude)
	if r.Founders != nil {
		out.Founders = append([]string(nil), r.Founders...)
	}
	if r.TechStack != nil {
		out.TechStack = append([]string(nil), r.TechStack...)
	}
	if r.Extra != nil {
		out.Extra = make(map[string]any, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Merge overlays present fields from other onto the record. Values already
// set are overwritten when other carries a value; absent fields never erase
// existing data.
func (r *CompanyRecord) Merge(other *CompanyRecord) {
	if other == nil {
		return
	}
	if other.CompanyName != "" {
		r.CompanyName = other.CompanyName
	}
	if other.Description != nil {
		r.Description = cloneString(other.Description)
	}
	if other.Website != nil {
		r.Website = cloneString(other.Website)
	}
	if other.Phone != nil {
		r.Phone = cloneString(other.Phone)
	}
	if other.Address != nil {
		r.Address = cloneString(other.Address)
	}
	if other.Funding != nil {
		r.Funding = cloneString(other.Funding)
	}
	if other.Domain != nil {
		r.Domain = cloneString(other.Domain)
	}
	if other.Summary != nil {
		r.Summary = cloneString(other.Summary)
	}
	if other.FoundedYear != nil {
		r.FoundedYear = cloneInt(other.FoundedYear)
	}
	if other.EmployeeCount != nil {
		r.EmployeeCount = cloneInt(other.EmployeeCount)
	}
	if other.Score != nil {
		r.Score = cloneInt(other.Score)
	}
	if other.Latitude != nil {
		r.Latitude = cloneFloat(other.Latitude)
	}
	if other.Longitude != nil {
		r.Longitude = cloneFloat(other.Longitude)
	}
	if other.Founders != nil {
		r.Founders = append([]string(nil), other.Founders...)
	}
	if other.TechStack != nil {
		r.TechStack = append([]string(nil), other.TechStack...)
	}
	for key, value := range other.Extra {
		r.SetExtra(key, value)
	}
}

// SetExtra stores a value under an unrecognized key.
func (r *CompanyRecord) SetExtra(key string, value any) {
	if r.Extra == nil {
		r.Extra = make(map[string]any)
	}
	r.Extra[key] = value
}

type knownRecord CompanyRecord

var knownRecordKeys = map[string]struct{}{
	"company_name":   {},
	"description":    {},
	"website":        {},
	"phone":          {},
	"address":        {},
	"founders":       {},
	"founded_year":   {},
	"latitude":       {},
	"longitude":      {},
	"funding":        {},
	"tech_stack":     {},
	"employee_count": {},
	"domain":         {},
	"summary":        {},
	"score":          {},
}

// MarshalJSON merges the extension bag back into the flat JSON object.
func (r CompanyRecord) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(knownRecord(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return base, nil
	}

	var merged map[string]any
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range r.Extra {
		if _, reserved := knownRecordKeys[key]; reserved {
			continue
		}
		merged[key] = value
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes known fields and stashes the rest in Extra.
func (r *CompanyRecord) UnmarshalJSON(data []byte) error {
	var known knownRecord
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = CompanyRecord(known)
	for key, value := range raw {
		if _, recognized := knownRecordKeys[key]; recognized {
			continue
		}
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			return err
		}
		r.SetExtra(key, decoded)
	}
	return nil
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
