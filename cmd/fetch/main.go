package main

import (
    "context"
    "flag"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "go.uber.org/zap"

    "macrodash/internal/catalog"
    "macrodash/internal/config"
    "macrodash/internal/fetcher"
    "macrodash/internal/fred"
    "macrodash/internal/httpx"
    "macrodash/internal/logging"
    "macrodash/internal/recorder"
    "macrodash/internal/source"
    "macrodash/internal/source/cache"
    "macrodash/internal/source/ratelimit"
    "macrodash/internal/store"
)

func main() {
    var configPath string
    var dataDir string
    var catalogPath string
    var timeout int

    flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
    flag.StringVar(&dataDir, "data-dir", "", "output directory for JSON documents (overrides config)")
    flag.StringVar(&catalogPath, "catalog", "", "path to series catalog YAML (overrides config)")
    flag.IntVar(&timeout, "timeout", 0, "per-request timeout seconds (overrides config)")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil {
        // No logger yet.
        panic(err)
    }
    if dataDir != "" { cfg.Output.Dir = dataDir }
    if catalogPath != "" { cfg.CatalogPath = catalogPath }
    if timeout > 0 { cfg.Server.RequestTimeoutSec = timeout }

    logger := logging.New(cfg.LogLevel)
    defer logger.Sync()

    if cfg.FRED.APIKey == "" {
        logger.Fatal("FRED_API_KEY is required; request a free key at https://fred.stlouisfed.org/docs/api/api_key.html")
    }

    httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

    opts := []fred.Option{
        fred.WithHTTPClient(httpClient.HTTP),
        fred.WithHeader(http.Header{"User-Agent": []string{httpClient.UserAgent}}),
    }
    if cfg.FRED.BaseURL != "" {
        opts = append(opts, fred.WithBaseURL(cfg.FRED.BaseURL))
    }
    client, err := fred.NewClient(cfg.FRED.APIKey, opts...)
    if err != nil {
        logger.Fatal("fred client", zap.Error(err))
    }

    var src source.Source = client
    // Prefer token bucket with burst if RPM is set, otherwise use min-interval
    if cfg.FRED.MaxRequestsPerMinute > 0 {
        rate := float64(cfg.FRED.MaxRequestsPerMinute) / 60.0
        burst := cfg.FRED.Burst
        if burst <= 0 { burst = 1 }
        src = &ratelimit.TokenBucketSource{S: src, TB: ratelimit.NewTokenBucket(rate, burst)}
    } else if cfg.FRED.MinRequestIntervalSec > 0 {
        interval := time.Duration(cfg.FRED.MinRequestIntervalSec) * time.Second
        src = &ratelimit.MinInterval{S: src, Interval: interval}
    }
    if cfg.FRED.CacheTTLSeconds > 0 {
        src = &cache.Source{S: src, TTL: time.Duration(cfg.FRED.CacheTTLSeconds) * time.Second, MaxItems: cfg.FRED.CacheMaxItems}
    }

    cat, err := catalog.Load(cfg.CatalogPath)
    if err != nil {
        logger.Fatal("catalog", zap.Error(err))
    }
    st, err := store.New(cfg.Output.Dir)
    if err != nil {
        logger.Fatal("store", zap.Error(err))
    }

    var rec recorder.Recorder = recorder.NewNoopRecorder()
    if cfg.Audit.SQLitePath != "" {
        sr, err := recorder.NewSQLiteRecorder(cfg.Audit.SQLitePath)
        if err != nil {
            logger.Warn("audit recorder unavailable, continuing without it", zap.Error(err))
        } else {
            rec = sr
        }
    }
    defer rec.Close()

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    sum := fetcher.New(src, cat, st, rec, logger).Run(ctx)
    if len(sum.Succeeded) == 0 {
        logger.Error("every indicator failed", zap.String("run_id", sum.RunID))
        rec.Close()
        logger.Sync()
        os.Exit(1)
    }
}
