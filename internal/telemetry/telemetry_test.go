/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("WPR_TELEMETRY_OPT_IN", "")
	t.Setenv("WPR_TELEMETRY_URL", "")
	t.Setenv("WPR_CRASH_UPLOAD_URL", "")
	t.Setenv("WPR_TELEMETRY_TIMEOUT_MS", "")
	cfg := FromEnv()
	if cfg.OptIn {
		t.Error("telemetry must default to opt-out")
	}
	if cfg.Timeout != 1500*time.Millisecond {
		t.Errorf("default timeout = %v", cfg.Timeout)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("WPR_TELEMETRY_OPT_IN", "yes")
	t.Setenv("WPR_TELEMETRY_URL", "https://metrics.example.com/events")
	t.Setenv("WPR_TELEMETRY_TIMEOUT_MS", "300")
	cfg := FromEnv()
	if !cfg.OptIn || cfg.EventsURL != "https://metrics.example.com/events" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout != 300*time.Millisecond {
		t.Errorf("timeout = %v", cfg.Timeout)
	}
}

func TestEventDelivery(t *testing.T) {
	var mu sync.Mutex
	var got []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var m map[string]any
		_ = json.Unmarshal(body, &m)
		mu.Lock()
		got = append(got, m)
		mu.Unlock()
	}))
	defer srv.Close()

	c := New(Config{OptIn: true, EventsURL: srv.URL, Timeout: time.Second})
	defer c.Close()

	c.Event("export.proofsheet", map[string]any{"views": 6})
	c.Flush(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got[0]["name"] != "export.proofsheet" {
		t.Errorf("event name = %v", got[0]["name"])
	}
	if got[0]["version"] == nil || got[0]["os"] == nil {
		t.Error("event missing standard fields")
	}
}

func TestEventDroppedWhenDisabled(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer srv.Close()

	c := New(Config{OptIn: false, EventsURL: srv.URL, Timeout: time.Second})
	defer c.Close()
	c.Event("export.stamp", nil)
	c.Flush(context.Background())
	time.Sleep(50 * time.Millisecond)
	if hit {
		t.Error("event sent despite opt-out")
	}
}

func TestEnabled(t *testing.T) {
	var nilClient *Client
	if nilClient.Enabled() {
		t.Error("nil client reported enabled")
	}
	c := New(Config{OptIn: true, Timeout: time.Second})
	defer c.Close()
	if c.Enabled() {
		t.Error("enabled without an events URL")
	}
}
