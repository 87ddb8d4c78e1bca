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
	"sync"

	"golang.org/x/time/rate"

	"github.com/google/tabula/core/logging"
	"github.com/google/tabula/core/tables"
)

// session is one browser's grid over one dataset.
type session struct {
	mu      sync.Mutex
	dataset Dataset
	grid    tables.Interactive
	limiter *rate.Limiter
	// hoverHidden suppresses a hover that is only waiting for its grace
	// timer to expire.
	hoverHidden bool
}

// view returns the grid snapshot as the page should show it.
func (s *session) view() tables.View {
	s.mu.Lock()
	hidden := s.hoverHidden
	s.mu.Unlock()

	v := s.grid.View()
	if hidden && v.Hover != nil {
		v.Rows[v.Hover.Row].Hovered = false
		v.Hover = nil
	}
	return v
}

func (s *session) setHoverHidden(hidden bool) {
	s.mu.Lock()
	s.hoverHidden = hidden
	s.mu.Unlock()
}

// session returns the grid for sessionID and table, creating it on first use.
func (s *Server) session(sessionID, table string) (*session, bool) {
	key := s.makeCacheKey(sessionID, table)
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions.Get(key); ok {
		return sess, true
	}
	d := s.dataset(table)
	if d == nil {
		return nil, false
	}

	limit := rate.Inf
	if s.opts.ActionsPerSecond > 0 {
		limit = rate.Limit(s.opts.ActionsPerSecond)
	}
	burst := s.opts.Burst
	if burst <= 0 {
		burst = 1
	}
	sess := &session{
		dataset: d,
		grid:    d.NewGrid(s.opts.Env),
		limiter: rate.NewLimiter(limit, burst),
	}
	s.sessions.Add(key, sess)
	s.metrics.sessions.Inc()
	s.log.WithFields(logging.Fields{"session": sessionID, "table": table}).Debugf("Created grid")
	return sess, true
}

// grids returns the live grids showing table.
func (s *Server) grids(table string) []tables.Interactive {
	var out []tables.Interactive
	for _, key := range s.sessions.Keys() {
		sess, ok := s.sessions.Peek(key)
		if ok && sess.dataset.Name() == table {
			out = append(out, sess.grid)
		}
	}
	return out
}
