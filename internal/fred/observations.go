package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"sort"
	"strconv"

	"macrodash/internal/source"
)

// apiObservation is one row of the series/observations payload. FRED encodes
// values as strings and uses "." for dates without data.
type apiObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type apiResponse struct {
	Observations []apiObservation `json:"observations"`
	ErrorCode    int              `json:"error_code"`
	ErrorMessage string           `json:"error_message"`
}

// Observations retrieves one series from the FRED series/observations
// endpoint, normalized to ascending, date-unique observations. A "." value
// becomes a null observation.
func (c *Client) Observations(ctx context.Context, req source.Request) ([]source.Observation, error) {
	if req.SeriesID == "" {
		return nil, fmt.Errorf("series id is required")
	}

	query := maps.Clone(c.query)
	query.Set("series_id", req.SeriesID)
	query.Set("file_type", "json")
	query.Set("sort_order", "asc")
	if req.Start != "" {
		query.Set("observation_start", req.Start)
	}
	if req.Frequency != "" {
		query.Set("frequency", req.Frequency)
	}

	url := fmt.Sprintf("%s/series/observations?%s", c.baseURL, query.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header = c.header

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusBadRequest:
		// FRED reports bad series ids and bad keys as 400 with a message body.
		var apiErr apiResponse
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.ErrorMessage != "" {
			return nil, fmt.Errorf("bad request for %s: %s", req.SeriesID, apiErr.ErrorMessage)
		}
		return nil, fmt.Errorf("bad request for %s", req.SeriesID)

	case http.StatusForbidden, http.StatusUnauthorized:
		return nil, fmt.Errorf("unauthorized")

	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("rate limited")

	default:
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding observations response: %w", err)
	}
	if len(body.Observations) == 0 {
		return nil, fmt.Errorf("empty response for %s", req.SeriesID)
	}

	// Revisions can repeat a date; the later row wins.
	byDate := make(map[string]source.Observation, len(body.Observations))
	dates := make([]string, 0, len(body.Observations))
	for _, o := range body.Observations {
		if o.Date == "" {
			continue
		}
		obs := source.Observation{Date: o.Date}
		if o.Value != "" && o.Value != "." {
			v, err := strconv.ParseFloat(o.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("decoding value for %s at %s: %w", req.SeriesID, o.Date, err)
			}
			obs.Value = &v
		}
		if _, seen := byDate[o.Date]; !seen {
			dates = append(dates, o.Date)
		}
		byDate[o.Date] = obs
	}
	sort.Strings(dates)

	out := make([]source.Observation, 0, len(dates))
	for _, d := range dates {
		out = append(out, byDate[d])
	}
	return out, nil
}
