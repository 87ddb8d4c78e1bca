/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/google/tabula/core/logging"
)

// SessionCookie names the cookie that keys a browser's grids.
const SessionCookie = "tabula_session"

// Handler returns the HTTP routes of the server: the landing page at "/",
// grids at "/grid" and Prometheus metrics at "/metrics".
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("/grid", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sessionID := s.sessionID(w, r)
		result := s.HandleGridRequest(w, r.URL, sessionID, w.Header().Set)
		status := http.StatusOK
		if result != nil {
			status = result.StatusCode
			switch {
			case result.Error != nil:
				s.log.Errorf("%s: %v", result.Message, result.Error)
				http.Error(w, result.Message, status)
			case status == http.StatusSeeOther:
				w.WriteHeader(status)
			default:
				http.Error(w, result.Message, status)
			}
		}
		s.log.WithFields(logging.Fields{
			"path":     r.URL.Path,
			"action":   r.URL.Query().Get("action"),
			"status":   status,
			"duration": time.Since(start).String(),
		}).Debugf("Handled grid request")
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if err := s.HandleLandingRequest(w, w.Header().Set); err != nil {
			s.log.Errorf("Failed to render landing page: %v", err)
			http.Error(w, "Failed to render landing page", http.StatusInternalServerError)
		}
	})
	return mux
}

// sessionID returns the caller's session id, issuing a new cookie when the
// request carries none.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
