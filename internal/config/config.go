package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
)

type Server struct {
    Port              string `json:"port"`
    RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type FRED struct {
    APIKey                string `json:"api_key"`
    BaseURL               string `json:"base_url"`
    MaxRequestsPerMinute  int    `json:"max_requests_per_minute"`
    MinRequestIntervalSec int    `json:"min_request_interval_sec"`
    Burst                 int    `json:"burst"`
    CacheTTLSeconds       int    `json:"cache_ttl_sec"`
    CacheMaxItems         int    `json:"cache_max_items"`
}

type Output struct {
    Dir string `json:"dir"`
}

type Audit struct {
    SQLitePath string `json:"sqlite_path"`
}

type Config struct {
    Server      Server `json:"server"`
    FRED        FRED   `json:"fred"`
    Output      Output `json:"output"`
    CatalogPath string `json:"catalog_path"`
    Audit       Audit  `json:"audit"`
    LogLevel    string `json:"log_level"`
}

func Default() Config {
    return Config{
        Server: Server{Port: "8080", RequestTimeoutSec: 30},
        FRED: FRED{
            // FRED allows 120 requests per minute per key; stay under it.
            MaxRequestsPerMinute: 100,
            Burst:                10,
            CacheTTLSeconds:      300,
            CacheMaxItems:        256,
        },
        Output:   Output{Dir: "data"},
        LogLevel: "info",
    }
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields for secrecy.
func Load(path string) (Config, error) {
    cfg := Default()
    if path == "" {
        if _, err := os.Stat("config.json"); err == nil {
            path = "config.json"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := json.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    return cfg, nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Server.RequestTimeoutSec = x }
    }
    if v := os.Getenv("FRED_API_KEY"); v != "" { cfg.FRED.APIKey = v }
    if v := os.Getenv("FRED_BASE_URL"); v != "" { cfg.FRED.BaseURL = v }
    if v := os.Getenv("FRED_MAX_RPM"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.FRED.MaxRequestsPerMinute = x }
    }
    if v := os.Getenv("FRED_MIN_INTERVAL_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.FRED.MinRequestIntervalSec = x }
    }
    if v := os.Getenv("FRED_BURST"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.FRED.Burst = x }
    }
    if v := os.Getenv("FRED_CACHE_TTL_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.FRED.CacheTTLSeconds = x }
    }
    if v := os.Getenv("FRED_CACHE_MAX_ITEMS"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.FRED.CacheMaxItems = x }
    }
    if v := os.Getenv("DATA_DIR"); v != "" { cfg.Output.Dir = v }
    if v := os.Getenv("CATALOG_FILE"); v != "" { cfg.CatalogPath = v }
    if v := os.Getenv("AUDIT_SQLITE_PATH"); v != "" { cfg.Audit.SQLitePath = v }
    if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.LogLevel = v }
}
