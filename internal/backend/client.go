/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package backend talks to the WrapForge render service: an HTTP JSON API
// for saved designs plus an optional direct Postgres connection to the
// shared swatch library.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wrapproof/internal/domain"
)

// Client is a read-only HTTP client for the render-service API.
type Client struct {
	BaseURL string
	Token   string // bearer token
	client  *http.Client
}

// NewClient creates a render-service client. baseURL may include a trailing
// slash; it will be normalized.
func NewClient(baseURL string, token string) *Client {
	b := strings.TrimRight(baseURL, "/")
	return &Client{
		BaseURL: b,
		Token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, dest any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server %s %s: %s", method, u.Path, resp.Status)
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(dest)
}

// SavedDesign is a minimal projection of a stored customer design.
type SavedDesign struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Tool      string         `json:"tool"` // registry key
	Vehicle   domain.Vehicle `json:"vehicle"`
	UpdatedAt time.Time      `json:"updated_at"`
	ViewCount int            `json:"view_count"`
}

// ListDesigns returns saved designs available to the authenticated account.
func (c *Client) ListDesigns(ctx context.Context) ([]SavedDesign, error) {
	var list []SavedDesign
	if err := c.doJSON(ctx, http.MethodGet, "/api/designs", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// DesignEnvelope is the server response for one design with its render views.
type DesignEnvelope struct {
	Design SavedDesign        `json:"design"`
	Views  []domain.ProofView `json:"views"`
}

// GetDesign fetches one design with its rendered view URLs.
func (c *Client) GetDesign(ctx context.Context, id int64) (*DesignEnvelope, error) {
	var env DesignEnvelope
	path := fmt.Sprintf("/api/designs/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
