package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vraelian/OrbitalTrading/internal/game"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) State(ctx context.Context) (*game.State, error) {
	var out game.State
	if err := c.jsonRequest(ctx, http.MethodGet, "/v1/state", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Market(ctx context.Context) ([]game.Quote, error) {
	var out struct {
		Quotes []game.Quote `json:"quotes"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/market", nil, &out)
	return out.Quotes, err
}

func (c *Client) Ledger(ctx context.Context) ([]game.LedgerEntry, error) {
	var out struct {
		Entries []game.LedgerEntry `json:"entries"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/ledger", nil, &out)
	return out.Entries, err
}

func (c *Client) TravelOptions(ctx context.Context) ([]game.RouteQuote, error) {
	var out struct {
		Routes []game.RouteQuote `json:"routes"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/travel/options", nil, &out)
	return out.Routes, err
}

func (c *Client) Shipyard(ctx context.Context) ([]game.ShipListing, error) {
	var out struct {
		Ships []game.ShipListing `json:"ships"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/shipyard", nil, &out)
	return out.Ships, err
}

func (c *Client) LoanOffers(ctx context.Context) ([]game.LoanOffer, error) {
	var out struct {
		Offers []game.LoanOffer `json:"offers"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/loans", nil, &out)
	return out.Offers, err
}

// MutationResult is the envelope every state-changing endpoint returns.
type MutationResult struct {
	Notices  []game.Notice `json:"notices"`
	Day      int           `json:"day"`
	Credits  float64       `json:"credits"`
	Debt     int64         `json:"debt"`
	GameOver bool          `json:"game_over"`
}

func (c *Client) Buy(ctx context.Context, commodityID string, quantity int) (MutationResult, error) {
	var out MutationResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/market/buy", map[string]any{
		"commodity_id": commodityID,
		"quantity":     quantity,
	}, &out)
	return out, err
}

func (c *Client) Sell(ctx context.Context, commodityID string, quantity int) (MutationResult, error) {
	var out MutationResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/market/sell", map[string]any{
		"commodity_id": commodityID,
		"quantity":     quantity,
	}, &out)
	return out, err
}

// TravelResult carries the travel envelope, including a pending event prompt
// when the voyage parked mid-flight.
type TravelResult struct {
	Notices       []game.Notice       `json:"notices"`
	PendingChoice *game.PendingChoice `json:"pending_choice"`
	Day           int                 `json:"day"`
	LocationID    string              `json:"location_id"`
}

func (c *Client) Travel(ctx context.Context, destinationID string, forceEvent bool) (TravelResult, error) {
	path := "/v1/travel"
	if forceEvent {
		path += "?force_event=1"
	}
	var out TravelResult
	err := c.jsonRequest(ctx, http.MethodPost, path, map[string]any{
		"destination_id": destinationID,
	}, &out)
	return out, err
}

type PendingEvents struct {
	PendingChoice *game.PendingChoice `json:"pending_choice"`
	PendingAge    *game.PendingChoice `json:"pending_age"`
}

func (c *Client) PendingEvents(ctx context.Context) (PendingEvents, error) {
	var out PendingEvents
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/travel/event", nil, &out)
	return out, err
}

type ResolveResult struct {
	Narrative string        `json:"narrative"`
	Notices   []game.Notice `json:"notices"`
}

func (c *Client) ResolveChoice(ctx context.Context, choice int) (ResolveResult, error) {
	var out ResolveResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/travel/resolve", map[string]any{
		"choice": choice,
	}, &out)
	return out, err
}

func (c *Client) ResolveAgeChoice(ctx context.Context, choice int) (MutationResult, error) {
	var out MutationResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/age/resolve", map[string]any{
		"choice": choice,
	}, &out)
	return out, err
}

func (c *Client) Refuel(ctx context.Context) (MutationResult, error) {
	var out MutationResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/services/refuel", nil, &out)
	return out, err
}

func (c *Client) Repair(ctx context.Context) (MutationResult, error) {
	var out MutationResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/services/repair", nil, &out)
	return out, err
}

func (c *Client) TakeLoan(ctx context.Context, offer int) (MutationResult, error) {
	var out MutationResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/loans/take", map[string]any{
		"offer": offer,
	}, &out)
	return out, err
}

func (c *Client) PayDebt(ctx context.Context) (MutationResult, error) {
	var out MutationResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/loans/pay", nil, &out)
	return out, err
}

func (c *Client) BuyIntel(ctx context.Context) (MutationResult, error) {
	var out MutationResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/intel/buy", nil, &out)
	return out, err
}

func (c *Client) BuyShip(ctx context.Context, shipID string) (MutationResult, error) {
	var out MutationResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/ships/buy", map[string]any{
		"ship_id": shipID,
	}, &out)
	return out, err
}

func (c *Client) SellShip(ctx context.Context, shipID string) (MutationResult, error) {
	var out MutationResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/ships/sell", map[string]any{
		"ship_id": shipID,
	}, &out)
	return out, err
}

func (c *Client) ActivateShip(ctx context.Context, shipID string) (MutationResult, error) {
	var out MutationResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/ships/activate", map[string]any{
		"ship_id": shipID,
	}, &out)
	return out, err
}

func (c *Client) NewGame(ctx context.Context, seed int64) (*game.State, error) {
	var out game.State
	body := map[string]any{}
	if seed != 0 {
		body["seed"] = seed
	}
	if err := c.jsonRequest(ctx, http.MethodPost, "/v1/game/new", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type SaveInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Day       int       `json:"day"`
	Credits   float64   `json:"credits"`
}

func (c *Client) ListSaves(ctx context.Context) ([]SaveInfo, error) {
	var out struct {
		Saves []SaveInfo `json:"saves"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/saves", nil, &out)
	return out.Saves, err
}

func (c *Client) SaveGame(ctx context.Context, name string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/saves", map[string]any{
		"name": name,
	}, &out)
	return out.ID, err
}

func (c *Client) LoadGame(ctx context.Context, id string) error {
	return c.jsonRequest(ctx, http.MethodPost, "/v1/saves/"+url.PathEscape(id)+"/load", nil, nil)
}

func (c *Client) DeleteSave(ctx context.Context, id string) error {
	return c.jsonRequest(ctx, http.MethodDelete, "/v1/saves/"+url.PathEscape(id), nil, nil)
}

func (c *Client) AdvanceDays(ctx context.Context, days int) (MutationResult, error) {
	var out MutationResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/debug/advance", map[string]any{
		"days": days,
	}, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
