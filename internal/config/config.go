package config

import (
    "os"
    "strconv"
    "time"

    "solartally/internal/tariff"
)

type Config struct {
    // HTTP server
    Port string

    // Enphase production source
    SystemID          int
    ProductionBaseURL string
    ProductionProxy   string

    // Dataset file and publication
    DataFilePath string
    GitPublish   bool
    GitRepoDir   string

    // History windows
    HistoryStart time.Time
    RecentDays   int

    // Update job schedule: integer seconds or cron expression
    UpdateInterval string

    // forecast.solar
    ForecastBaseURL string
    ForecastAPIKey  string
    SiteLatitude    float64
    SiteLongitude   float64
    SiteDeclination float64
    SiteAzimuth     float64
    SiteMaxKW       float64

    // Cache store
    StorageDriver string
    StorageDSN    string
    AutoMigrate   bool

    Rates tariff.RateSchedule
}

// FromEnv builds a Config from environment variables, with sane defaults.
// The site defaults describe the original installation the dashboard
// was built for.
func FromEnv() Config {
    cfg := Config{
        Port:              envOr("SOLARTALLY_PORT", "8080"),
        SystemID:          envInt("SOLARTALLY_SYSTEM_ID", 2875024),
        ProductionBaseURL: envOr("SOLARTALLY_PRODUCTION_BASE_URL", "https://enlighten.enphaseenergy.com"),
        ProductionProxy:   os.Getenv("SOLARTALLY_PRODUCTION_PROXY"),
        DataFilePath:      envOr("SOLARTALLY_DATA_FILE", "public/data.json"),
        GitPublish:        envBool("SOLARTALLY_GIT_PUBLISH", false),
        GitRepoDir:        os.Getenv("SOLARTALLY_GIT_REPO_DIR"),
        HistoryStart:      envDate("SOLARTALLY_HISTORY_START", time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC)),
        RecentDays:        envInt("SOLARTALLY_RECENT_DAYS", 5),
        UpdateInterval:    envOr("SOLARTALLY_UPDATE_INTERVAL", "900"),
        ForecastBaseURL:   envOr("SOLARTALLY_FORECAST_BASE_URL", "https://api.forecast.solar"),
        ForecastAPIKey:    os.Getenv("SOLARTALLY_FORECAST_API_KEY"),
        SiteLatitude:      envFloat("SOLARTALLY_SITE_LATITUDE", 39.8),
        SiteLongitude:     envFloat("SOLARTALLY_SITE_LONGITUDE", -105.08),
        SiteDeclination:   envFloat("SOLARTALLY_SITE_DECLINATION", 0),
        SiteAzimuth:       envFloat("SOLARTALLY_SITE_AZIMUTH", -15),
        SiteMaxKW:         envFloat("SOLARTALLY_SITE_MAX_KW", 7.67),
        StorageDriver:     envOr("SOLARTALLY_DB_DRIVER", "sqlite"),
        StorageDSN:        envOr("SOLARTALLY_DB_DSN", "solartally.db"),
        AutoMigrate:       envBool("SOLARTALLY_AUTO_MIGRATE", true),
    }

    rates := tariff.DefaultRates()
    rates.SummerOff = envRate("SOLARTALLY_RATE_SUMMER_OFF", rates.SummerOff)
    rates.SummerMid = envRate("SOLARTALLY_RATE_SUMMER_MID", rates.SummerMid)
    rates.SummerPeak = envRate("SOLARTALLY_RATE_SUMMER_PEAK", rates.SummerPeak)
    rates.WinterOff = envRate("SOLARTALLY_RATE_WINTER_OFF", rates.WinterOff)
    rates.WinterMid = envRate("SOLARTALLY_RATE_WINTER_MID", rates.WinterMid)
    rates.WinterPeak = envRate("SOLARTALLY_RATE_WINTER_PEAK", rates.WinterPeak)
    cfg.Rates = rates

    return cfg
}

func envOr(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func envInt(key string, def int) int {
    if v := os.Getenv(key); v != "" {
        if n, err := strconv.Atoi(v); err == nil {
            return n
        }
    }
    return def
}

func envFloat(key string, def float64) float64 {
    if v := os.Getenv(key); v != "" {
        if f, err := strconv.ParseFloat(v, 64); err == nil {
            return f
        }
    }
    return def
}

func envRate(key string, def tariff.CentsPerKWh) tariff.CentsPerKWh {
    return tariff.CentsPerKWh(envFloat(key, float64(def)))
}

func envBool(key string, def bool) bool {
    if v := os.Getenv(key); v != "" {
        if b, err := strconv.ParseBool(v); err == nil {
            return b
        }
    }
    return def
}

func envDate(key string, def time.Time) time.Time {
    if v := os.Getenv(key); v != "" {
        if t, err := time.Parse("2006-01-02", v); err == nil {
            return t
        }
    }
    return def
}
