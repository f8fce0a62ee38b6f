package config

import "github.com/tastetrail/progression/pkg/domain"

// Catalog represents the mission and badge definitions loaded from the
// catalog JSON file. It is parsed and validated during application startup.
type Catalog struct {
	Missions []*domain.Mission `json:"missions"`
	Badges   []*domain.Badge   `json:"badges"`
}
