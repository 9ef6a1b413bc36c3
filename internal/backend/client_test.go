/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListDesigns(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/designs" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 7, "name": "Desert Drift", "tool": "colorpro",
			 "vehicle": {"year": "2024", "make": "Ford", "model": "F-150"},
			 "updated_at": "2025-06-01T10:00:00Z", "view_count": 6}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "tok-123")
	list, err := c.ListDesigns(context.Background())
	if err != nil {
		t.Fatalf("ListDesigns: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Desert Drift" || list[0].Vehicle.Make != "Ford" {
		t.Errorf("unexpected designs: %+v", list)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestGetDesign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/designs/7" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"design": {"id": 7, "name": "Desert Drift", "tool": "colorpro",
			           "vehicle": {"year": "2024", "make": "Ford", "model": "F-150"}},
			"views": [
				{"type": "front", "url": "https://renders.example.com/7/front.png"},
				{"type": "rear", "url": "https://renders.example.com/7/rear.png"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	env, err := c.GetDesign(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetDesign: %v", err)
	}
	if env.Design.ID != 7 || len(env.Views) != 2 || env.Views[0].Type != "front" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestClientSurfacesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad")
	if _, err := c.ListDesigns(context.Background()); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
