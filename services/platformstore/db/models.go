package db

import (
	"encoding/json"
	"strings"
)

// StringList decodes from either a JSON array of strings or a single
// string. The messages API is asked for arrays but does not always
// comply, and a malformed list should not sink the whole record.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*l = nil
		return nil
	}
	*l = StringList{single}
	return nil
}

// Platform is one money-making platform entry. Ratings use 0 for
// "absent"; they render as N/A and sort last.
type Platform struct {
	Name                string     `json:"name"`
	NameLower           string     `json:"name_lower,omitempty"`
	Category            string     `json:"category,omitempty"`
	CleanedDomain       string     `json:"cleaned_domain,omitempty"`
	Description         string     `json:"description,omitempty"`
	FreeTierDetails     string     `json:"free_tier_details,omitempty"`
	Url                 string     `json:"url,omitempty"`
	PricingUrl          string     `json:"pricing_url,omitempty"`
	QuickStartUrl       string     `json:"quick_start_url,omitempty"`
	KeyFeatures         StringList `json:"key_features,omitempty"`
	MonetizationOptions string     `json:"monetization_options,omitempty"`
	BeginnerFriendly    int        `json:"beginner_friendly,omitempty"`
	Usefulness          int        `json:"usefulness,omitempty"`
	Importance          int        `json:"importance,omitempty"`
	Pros                StringList `json:"pros,omitempty"`
	Cons                StringList `json:"cons,omitempty"`
	CrawledAt           string     `json:"crawled_at,omitempty"`
	CreatedAt           int64      `json:"created_at,omitempty"`
	UpdatedAt           int64      `json:"updated_at,omitempty"`
}

const uncategorized = "Uncategorized"

// Key derives the dedup key: lowercased name with spaces stripped.
func (p Platform) Key() string {
	return strings.ReplaceAll(strings.ToLower(p.Name), " ", "")
}

// CategoryOrDefault buckets records without a category.
func (p Platform) CategoryOrDefault() string {
	if p.Category == "" {
		return uncategorized
	}
	return p.Category
}

// StoredPlatform is a Platform together with the opaque document id the
// collection assigned to it.
type StoredPlatform struct {
	ID string
	Platform
}
