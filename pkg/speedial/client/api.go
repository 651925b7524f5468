package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/reinieltalplacido/speedial/pkg/speedial/links"
	"github.com/reinieltalplacido/speedial/pkg/speedial/models"
)

// APIError carries the status code and the server-provided message for a
// failed request. When the response body has no decodable message, the
// operation's generic message is used instead.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is a thin typed wrapper over the link service HTTP boundary
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the service at baseURL
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// apiError builds an APIError from a non-2xx response, preferring the
// server's error message when one can be decoded
func apiError(resp *http.Response, fallback string) *APIError {
	var body struct {
		Error string `json:"error"`
	}
	message := fallback
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		message = body.Error
	}
	return &APIError{Status: resp.StatusCode, Message: message}
}

// GetLinks fetches all links for an owner; an empty owner fetches the
// entire store
func (c *Client) GetLinks(ctx context.Context, owner string) ([]models.Link, error) {
	endpoint := c.baseURL + "/api/links"
	if owner != "" {
		endpoint += "?owner=" + url.QueryEscape(owner)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp, "Failed to fetch links")
	}

	var fetched []models.Link
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		return nil, err
	}
	return fetched, nil
}

// CreateLink creates a new link for an owner and returns the stored record
func (c *Client) CreateLink(ctx context.Context, title, linkURL, category, owner string) (models.Link, error) {
	payload := links.CreateLinkRequest{Title: title, URL: linkURL, Category: category, Owner: owner}
	return c.send(ctx, http.MethodPost, payload, http.StatusCreated, "Failed to create link")
}

// UpdateLink updates the link matching id and owner and returns the stored
// record
func (c *Client) UpdateLink(ctx context.Context, id, title, linkURL, category, owner string) (models.Link, error) {
	payload := links.UpdateLinkRequest{ID: id, Title: title, URL: linkURL, Category: category, Owner: owner}
	return c.send(ctx, http.MethodPut, payload, http.StatusOK, "Failed to update link")
}

// DeleteLink deletes the link matching id and owner
func (c *Client) DeleteLink(ctx context.Context, id, owner string) error {
	endpoint := c.baseURL + "/api/links?id=" + url.QueryEscape(id) + "&owner=" + url.QueryEscape(owner)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp, "Failed to delete link")
	}
	return nil
}

// send posts a JSON payload to /api/links and decodes the returned record
func (c *Client) send(ctx context.Context, method string, payload any, wantStatus int, fallback string) (models.Link, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.Link{}, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/links", bytes.NewReader(body))
	if err != nil {
		return models.Link{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Link{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return models.Link{}, apiError(resp, fallback)
	}

	var link models.Link
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return models.Link{}, err
	}
	return link, nil
}
