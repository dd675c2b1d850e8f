package cache

import (
    "context"
    "sync"
    "time"

    "macrodash/internal/source"
)

// key identifies one cached upstream request.
type key struct {
    seriesID  string
    start     string
    frequency string
}

// entry stores the observations for one request with expiry.
type entry struct {
    expiresAt time.Time
    obs       []source.Observation
}

// Source caches observations per (series, start, frequency) for a TTL.
// Indicators share upstream series (M2SL feeds both the global total and the
// US country block), so a run-scoped cache halves those requests.
type Source struct {
    S        source.Source
    TTL      time.Duration
    MaxItems int

    mu    sync.RWMutex
    items map[key]entry
}

func (c *Source) Name() string { return c.S.Name() }

func (c *Source) Observations(ctx context.Context, req source.Request) ([]source.Observation, error) {
    if c.S == nil || c.TTL <= 0 {
        return c.S.Observations(ctx, req)
    }

    k := key{seriesID: req.SeriesID, start: req.Start, frequency: req.Frequency}
    now := time.Now()

    c.mu.RLock()
    if e, ok := c.items[k]; ok && now.Before(e.expiresAt) {
        c.mu.RUnlock()
        return e.obs, nil
    }
    c.mu.RUnlock()

    obs, err := c.S.Observations(ctx, req)
    if err != nil {
        return nil, err
    }

    c.mu.Lock()
    if c.items == nil {
        c.items = make(map[key]entry)
    }
    c.items[k] = entry{expiresAt: now.Add(c.TTL), obs: obs}
    // best-effort cap: drop expired entries first, then arbitrary ones
    if c.MaxItems > 0 && len(c.items) > c.MaxItems {
        for k2, v := range c.items {
            if now.After(v.expiresAt) {
                delete(c.items, k2)
            }
            if len(c.items) <= c.MaxItems {
                break
            }
        }
        for k2 := range c.items {
            if len(c.items) <= c.MaxItems {
                break
            }
            delete(c.items, k2)
        }
    }
    c.mu.Unlock()

    return obs, nil
}
