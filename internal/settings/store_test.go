package settings

import (
	"path/filepath"
	"strings"
	"testing"

	"site-widgets/internal/storage"

	"gorm.io/gorm"
)

var testDefaults = Settings{
	APIKey:        "",
	Latitude:      53.822,
	Longitude:     12.788,
	LocationName:  "Neukalen",
	ForecastDays:  3,
	CacheDuration: 30,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { storage.Close(db) })
	return db
}

func TestOpenSeedsDefaults(t *testing.T) {
	db := newTestDB(t)

	store, err := Open(db, testDefaults)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	got := store.Current()
	if got != testDefaults {
		t.Errorf("Current() = %+v, want defaults %+v", got, testDefaults)
	}
}

func TestOpenMigratesLegacyRecord(t *testing.T) {
	db := newTestDB(t)

	if err := db.AutoMigrate(&Option{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	legacy := `{"api_key":"legacy-key","latitude":54.1,"longitude":12.1,"location_name":"Malchin","forecast_days":5,"cache_duration":60}`
	if err := db.Create(&Option{Key: legacyOptionsKey, Value: legacy}).Error; err != nil {
		t.Fatalf("failed to seed legacy record: %v", err)
	}

	store, err := Open(db, testDefaults)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	got := store.Current()
	if got.APIKey != "legacy-key" || got.LocationName != "Malchin" || got.ForecastDays != 5 {
		t.Errorf("legacy record not migrated, got %+v", got)
	}
}

func TestOpenKeepsExistingRecord(t *testing.T) {
	db := newTestDB(t)

	store, err := Open(db, testDefaults)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := store.Update(Settings{
		APIKey:        "existing-key",
		Latitude:      50,
		Longitude:     10,
		ForecastDays:  2,
		CacheDuration: 15,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// Reopening must not reseed defaults.
	reopened, err := Open(db, testDefaults)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if got := reopened.Current(); got.APIKey != "existing-key" || got.ForecastDays != 2 {
		t.Errorf("existing record overwritten, got %+v", got)
	}
}

func TestUpdateRevertsInvalidFields(t *testing.T) {
	db := newTestDB(t)

	store, err := Open(db, testDefaults)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	got, err := store.Update(Settings{
		APIKey:        "valid-key",
		Latitude:      123,  // out of range
		Longitude:     -200, // out of range
		LocationName:  "Teterow",
		ForecastDays:  9,    // out of range
		CacheDuration: 3000, // out of range
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if got.Latitude != testDefaults.Latitude || got.Longitude != testDefaults.Longitude {
		t.Errorf("coordinates = %v/%v, want defaults", got.Latitude, got.Longitude)
	}
	if got.ForecastDays != testDefaults.ForecastDays {
		t.Errorf("ForecastDays = %d, want default %d", got.ForecastDays, testDefaults.ForecastDays)
	}
	if got.CacheDuration != testDefaults.CacheDuration {
		t.Errorf("CacheDuration = %d, want default %d", got.CacheDuration, testDefaults.CacheDuration)
	}
	// Valid fields survive alongside the reverted ones.
	if got.APIKey != "valid-key" || got.LocationName != "Teterow" {
		t.Errorf("valid fields lost, got %+v", got)
	}
}

func TestUpdateMaskedOrEmptyKeyKeepsCurrent(t *testing.T) {
	db := newTestDB(t)

	store, err := Open(db, testDefaults)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	valid := Settings{
		APIKey:        "real-key",
		Latitude:      53.822,
		Longitude:     12.788,
		ForecastDays:  3,
		CacheDuration: 30,
	}
	if _, err := store.Update(valid); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	for _, submitted := range []string{"", "********************", "  "} {
		next := valid
		next.APIKey = submitted
		got, err := store.Update(next)
		if err != nil {
			t.Fatalf("update with key %q failed: %v", submitted, err)
		}
		if got.APIKey != "real-key" {
			t.Errorf("key %q: APIKey = %q, want kept %q", submitted, got.APIKey, "real-key")
		}
	}
}

func TestDisplayAPIKeyNeverRevealsKey(t *testing.T) {
	empty := Settings{}
	if got := empty.DisplayAPIKey(); got != "" {
		t.Errorf("empty key display = %q, want empty", got)
	}

	set := Settings{APIKey: "super-secret"}
	display := set.DisplayAPIKey()
	if strings.Contains(display, "super-secret") {
		t.Error("display leaks the stored key")
	}
	if !maskedKey.MatchString(display) {
		t.Errorf("display %q is not a pure mask", display)
	}
}
