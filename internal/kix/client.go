// Package kix is a thin client for the KIX ticketing REST API.
package kix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"kix-ai-bridge/internal/common/config"
	"kix-ai-bridge/internal/common/errors"
	"kix-ai-bridge/internal/common/logger"
)

// agentUserType is the fixed role used for the login call.
const agentUserType = "Agent"

// Client talks to the KIX REST API. A token is obtained per request via
// Authenticate and passed back in for the read and write calls; tokens are
// not cached across requests and no expiry handling is done.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(cfg config.KIXConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout: config.GetDuration(cfg.Timeout),
		},
		logger: log.With(map[string]interface{}{
			"component": "kix-client",
		}),
	}
}

// Authenticate performs a credential login and returns the session token.
// Transport errors and a missing token field are reported uniformly as
// KIX_AUTH_FAILED.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	body, err := json.Marshal(authRequest{
		UserLogin: c.username,
		Password:  c.password,
		UserType:  agentUserType,
	})
	if err != nil {
		return "", errors.NewKIXAuthFailedError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth", bytes.NewBuffer(body))
	if err != nil {
		return "", errors.NewKIXAuthFailedError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.NewKIXAuthFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", errors.NewKIXAuthFailedError(
			fmt.Errorf("login failed with status %d: %s", resp.StatusCode, string(respBody)))
	}

	var authResp authResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return "", errors.NewKIXAuthFailedError(err)
	}

	if authResp.Token == "" {
		return "", errors.NewKIXAuthFailedError(fmt.Errorf("login response contained no token"))
	}

	return authResp.Token, nil
}

// FetchTicket retrieves a ticket with its articles included. An absent
// ticket in the response and any transport error are reported uniformly as
// TICKET_NOT_FOUND.
func (c *Client) FetchTicket(ctx context.Context, token string, ticketID int64) (*Ticket, error) {
	url := fmt.Sprintf("%s/tickets/%d?include=Articles", c.baseURL, ticketID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewTicketNotFoundError(ticketID, err)
	}
	req.Header.Set("Authorization", "Token "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTicketNotFoundError(ticketID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, errors.NewTicketNotFoundError(ticketID,
			fmt.Errorf("fetch failed with status %d: %s", resp.StatusCode, string(respBody)))
	}

	var ticketResp ticketResponse
	if err := json.NewDecoder(resp.Body).Decode(&ticketResp); err != nil {
		return nil, errors.NewTicketNotFoundError(ticketID, err)
	}

	if ticketResp.Ticket == nil {
		return nil, errors.NewTicketNotFoundError(ticketID, fmt.Errorf("response contained no ticket"))
	}

	return ticketResp.Ticket, nil
}

// UpdateDynamicField sets one dynamic field on a ticket to the given value.
// The orchestrator treats this call as fire-and-forget; the error return
// exists for logging only.
func (c *Client) UpdateDynamicField(ctx context.Context, token string, ticketID int64, fieldName, value string) error {
	url := fmt.Sprintf("%s/tickets/%d", c.baseURL, ticketID)

	body, err := json.Marshal(updateTicketRequest{
		Ticket: updateTicketBody{
			DynamicFields: []DynamicField{{Name: fieldName, Value: value}},
		},
	})
	if err != nil {
		return errors.NewFieldUpdateFailedError(ticketID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewBuffer(body))
	if err != nil {
		return errors.NewFieldUpdateFailedError(ticketID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewFieldUpdateFailedError(ticketID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return errors.NewFieldUpdateFailedError(ticketID,
			fmt.Errorf("update failed with status %d: %s", resp.StatusCode, string(respBody)))
	}

	c.logger.Debug("dynamic field updated", map[string]interface{}{
		"ticketId": ticketID,
		"field":    fieldName,
	})

	return nil
}
