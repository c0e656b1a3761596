// Package hyperliquid is a minimal client for the two public Hyperliquid
// endpoints the monitor needs: the leaderboard and per-trader clearinghouse
// state. Numeric fields arrive as strings and are parsed here.
package hyperliquid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/hyperdash/monitor/internal/domain/models"
	"github.com/hyperdash/monitor/internal/logger"
)

// Client calls the Hyperliquid public info and leaderboard endpoints.
// Calls carry no retries; the snapshot pipeline tolerates individual
// failures instead.
type Client struct {
	infoURL        string
	leaderboardURL string
	httpClient     *http.Client
	log            zerolog.Logger
}

// NewClient creates a client with a hard per-request timeout. Context
// deadlines on individual calls bound them further.
func NewClient(infoURL, leaderboardURL string, timeout time.Duration) *Client {
	return &Client{
		infoURL:        infoURL,
		leaderboardURL: leaderboardURL,
		httpClient:     &http.Client{Timeout: timeout},
		log:            logger.C("hyperliquid"),
	}
}

type leaderboardResponse struct {
	Rows []leaderboardRow `json:"leaderboardRows"`
}

type leaderboardRow struct {
	Address      string `json:"ethAddress"`
	AccountValue string `json:"accountValue"`
}

type clearinghouseRequest struct {
	Type string `json:"type"`
	User string `json:"user"`
}

type clearinghouseResponse struct {
	AssetPositions []struct {
		Position struct {
			Coin          string `json:"coin"`
			Szi           string `json:"szi"`
			PositionValue string `json:"positionValue"`
		} `json:"position"`
	} `json:"assetPositions"`
}

// TopTraders returns the addresses of the n traders with the highest
// account value, descending. Rows without an address are skipped; an
// unparsable account value sorts as zero rather than failing the batch.
func (c *Client) TopTraders(ctx context.Context, n int) ([]string, error) {
	body, err := c.getJSON(ctx, c.leaderboardURL)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}

	var resp leaderboardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}

	type ranked struct {
		address string
		value   float64
	}
	rows := make([]ranked, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		if row.Address == "" {
			continue
		}
		value, err := strconv.ParseFloat(row.AccountValue, 64)
		if err != nil {
			value = 0
		}
		rows = append(rows, ranked{address: row.Address, value: value})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].value > rows[j].value })
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}

	addresses := make([]string, len(rows))
	for i, r := range rows {
		addresses[i] = r.address
	}

	c.log.Debug().Int("rows", len(resp.Rows)).Int("selected", len(addresses)).Msg("leaderboard fetched")
	return addresses, nil
}

// Positions returns a trader's open positions from its clearinghouse state.
// A state without positions yields an empty slice; malformed numeric fields
// fail just this trader.
func (c *Client) Positions(ctx context.Context, address string) ([]models.Position, error) {
	payload, err := json.Marshal(clearinghouseRequest{Type: "clearinghouseState", User: address})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	body, err := c.postJSON(ctx, c.infoURL, payload)
	if err != nil {
		return nil, fmt.Errorf("fetch positions for %s: %w", address, err)
	}

	var state clearinghouseResponse
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("decode positions for %s: %w", address, err)
	}

	positions := make([]models.Position, 0, len(state.AssetPositions))
	for _, ap := range state.AssetPositions {
		size, err := strconv.ParseFloat(ap.Position.Szi, 64)
		if err != nil {
			return nil, fmt.Errorf("parse szi %q for %s: %w", ap.Position.Szi, address, err)
		}
		notional, err := strconv.ParseFloat(ap.Position.PositionValue, 64)
		if err != nil {
			return nil, fmt.Errorf("parse positionValue %q for %s: %w", ap.Position.PositionValue, address, err)
		}
		positions = append(positions, models.Position{
			Asset:    ap.Position.Coin,
			Size:     size,
			Notional: notional,
		})
	}
	return positions, nil
}

func (c *Client) getJSON(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

// truncate keeps error messages readable when the API returns an HTML page.
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
