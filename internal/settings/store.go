package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	optionsKey = "site_widgets_options"

	// Key used by the predecessor weather plugin. Migrated on first activation.
	legacyOptionsKey = "wetter_vorhersage_options"
)

// maskedKey matches the placeholder shown instead of a stored API key. A
// submitted value consisting only of asterisks means "keep the current key".
var maskedKey = regexp.MustCompile(`^\*+$`)

var validate = validator.New()

// Option is a single named record in the options table.
type Option struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// Settings holds the widget configuration mutated through the admin surface.
// CacheDuration is in minutes.
type Settings struct {
	APIKey        string  `json:"api_key"`
	Latitude      float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude     float64 `json:"longitude" validate:"gte=-180,lte=180"`
	LocationName  string  `json:"location_name"`
	ForecastDays  int     `json:"forecast_days" validate:"min=1,max=5"`
	CacheDuration int     `json:"cache_duration" validate:"min=5,max=1440"`
}

// DisplayAPIKey returns the value shown on the settings form. The real key is
// never redisplayed once set.
func (s Settings) DisplayAPIKey() string {
	if s.APIKey == "" {
		return ""
	}
	return strings.Repeat("*", 20)
}

// Store persists widget settings in the options table. Reads never fail:
// absence or a corrupt record resolves to the seeded defaults.
type Store struct {
	db       *gorm.DB
	defaults Settings
}

// Open migrates the options table and runs first-activation seeding: an
// existing record is left alone, a legacy record is migrated, otherwise the
// defaults are written.
func Open(db *gorm.DB, defaults Settings) (*Store, error) {
	if err := db.AutoMigrate(&Option{}); err != nil {
		return nil, fmt.Errorf("failed to migrate options table: %w", err)
	}

	s := &Store{db: db, defaults: defaults}

	var opt Option
	err := db.First(&opt, "key = ?", optionsKey).Error
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	seed := defaults
	var legacy Option
	if err := db.First(&legacy, "key = ?", legacyOptionsKey).Error; err == nil {
		var migrated Settings
		if err := json.Unmarshal([]byte(legacy.Value), &migrated); err == nil {
			seed = withDefaults(migrated, defaults)
		}
	}

	if err := s.save(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the stored settings, falling back to defaults when nothing
// has been stored or the record cannot be decoded.
func (s *Store) Current() Settings {
	var opt Option
	if err := s.db.First(&opt, "key = ?", optionsKey).Error; err != nil {
		return s.defaults
	}

	var set Settings
	if err := json.Unmarshal([]byte(opt.Value), &set); err != nil {
		return s.defaults
	}
	return set
}

// Update validates the candidate settings and persists the result. Invalid
// fields do not fail the write: the latitude, longitude, forecast-day count
// and cache duration revert to their defaults, and an empty or masked API key
// keeps the current one. The persisted settings are returned.
func (s *Store) Update(in Settings) (Settings, error) {
	cur := s.Current()
	next := in

	key := strings.TrimSpace(next.APIKey)
	if key == "" || maskedKey.MatchString(key) {
		next.APIKey = cur.APIKey
	} else {
		next.APIKey = key
	}
	next.LocationName = strings.TrimSpace(next.LocationName)

	if err := validate.Struct(next); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return cur, fmt.Errorf("failed to validate settings: %w", err)
		}
		for _, fe := range verrs {
			switch fe.StructField() {
			case "Latitude":
				next.Latitude = s.defaults.Latitude
			case "Longitude":
				next.Longitude = s.defaults.Longitude
			case "ForecastDays":
				next.ForecastDays = s.defaults.ForecastDays
			case "CacheDuration":
				next.CacheDuration = s.defaults.CacheDuration
			}
		}
	}

	if err := s.save(next); err != nil {
		return cur, err
	}
	return next, nil
}

func (s *Store) save(set Settings) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.db.Save(&Option{Key: optionsKey, Value: string(raw)}).Error; err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}

// withDefaults fills the gaps of a migrated legacy record. The legacy plugin
// stored the same field names, but older records may predate some of them.
func withDefaults(in, defaults Settings) Settings {
	out := in
	if out.Latitude == 0 && out.Longitude == 0 {
		out.Latitude = defaults.Latitude
		out.Longitude = defaults.Longitude
	}
	if out.LocationName == "" {
		out.LocationName = defaults.LocationName
	}
	if out.ForecastDays == 0 {
		out.ForecastDays = defaults.ForecastDays
	}
	if out.CacheDuration == 0 {
		out.CacheDuration = defaults.CacheDuration
	}
	return out
}
