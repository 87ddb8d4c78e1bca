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
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/google/tabula/core/clock"
	"github.com/google/tabula/core/logging"
	"github.com/google/tabula/core/measure"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/rendering"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/core/views"
)

// ProductConfig defines the configuration interface for a product.
// Products provide their own datasets and landing page settings.
type ProductConfig interface {
	GetName() string
	GetTitle() string
	GetSubtitle() string
	GetDatasets() []Dataset
}

// Dataset is one grid a product offers. Every browser session gets its own
// grid, so NewGrid is called once per session and table.
type Dataset interface {
	Name() string
	DisplayName() string
	Description() string
	NewGrid(env GridEnv) tables.Interactive
}

// GridEnv carries the host services shared by all grids of a server.
type GridEnv struct {
	Limits       tables.Limits
	Measurer     measure.Measurer
	Logger       logging.Logger
	Clock        clock.Clock
	OnInvalidate func()
}

// Options configures a Server.
type Options struct {
	SessionCacheSize int
	ActionsPerSecond float64
	Burst            int
	Env              GridEnv
}

// Server represents the application server with all its dependencies
type Server struct {
	mu       sync.Mutex // serializes session creation
	product  ProductConfig
	renderer *rendering.GridRenderer
	sessions *lru.Cache[string, *session]
	opts     Options
	log      logging.Logger

	registry *prometheus.Registry
	metrics  *metrics
}

// NewServer creates a new server for the given product
func NewServer(product ProductConfig, opts Options) (*Server, error) {
	renderer, err := rendering.NewGridRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if opts.SessionCacheSize <= 0 {
		opts.SessionCacheSize = 256
	}
	if opts.Env.Logger == nil {
		opts.Env.Logger = logging.NewNoOp()
	}
	if opts.Env.Clock == nil {
		opts.Env.Clock = clock.Real()
	}

	s := &Server{
		product:  product,
		renderer: renderer,
		opts:     opts,
		log:      opts.Env.Logger,
		registry: prometheus.NewRegistry(),
	}
	s.metrics = newMetrics(s.registry)

	s.sessions, err = lru.NewWithEvict(opts.SessionCacheSize, func(key string, sess *session) {
		s.log.WithField("session", key).Debugf("Closing evicted grid")
		sess.grid.Close()
		s.metrics.sessions.Dec()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	return s, nil
}

// Close closes every live grid.
func (s *Server) Close() {
	s.sessions.Purge()
}

// makeCacheKey creates a cache key combining the browser session and table
// name, so each session drives its own grid.
func (s *Server) makeCacheKey(sessionID, tableName string) string {
	if sessionID == "" {
		return tableName
	}
	return sessionID + ":" + tableName
}

func (s *Server) dataset(name string) Dataset {
	for _, d := range s.product.GetDatasets() {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// TableHandlerResult represents the result of handling a grid request
type TableHandlerResult struct {
	Error      error
	StatusCode int
	Message    string
}

// TimingCollector collects timing measurements for various operations
type TimingCollector struct {
	entries []views.TimingEntry
	start   time.Time
}

// NewTimingCollector creates a new timing collector
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{start: time.Now()}
}

// Record records a timing entry
func (tc *TimingCollector) Record(operation string, duration time.Duration) {
	tc.entries = append(tc.entries, views.TimingEntry{
		Operation:  operation,
		DurationMs: fmt.Sprintf("%.2f", float64(duration.Microseconds())/1000.0),
	})
}

// GetEntries returns all timing entries
func (tc *TimingCollector) GetEntries() []views.TimingEntry {
	return tc.entries
}

// TotalMs returns total elapsed time in milliseconds as formatted string
func (tc *TimingCollector) TotalMs() string {
	return fmt.Sprintf("%.2f", float64(time.Since(tc.start).Microseconds())/1000.0)
}

// HandleGridRequest applies the action carried by the URL to the session's
// grid. Requests with an action answer with a redirect to the action-free
// URL; requests without one render the grid page. A nil result means the
// page was written.
func (s *Server) HandleGridRequest(w io.Writer, requestURL *url.URL, sessionID string, setHeader func(key, value string)) *TableHandlerResult {
	timing := NewTimingCollector()

	parseStart := time.Now()
	q := query.NewQuery(requestURL)
	timing.Record("Parse Query", time.Since(parseStart))

	if q.Table == "" {
		return &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: "Table parameter is required"}
	}
	if !q.Action.Known() {
		return &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf("Unknown action '%s'", q.Action)}
	}

	sessStart := time.Now()
	sess, ok := s.session(sessionID, q.Table)
	if !ok {
		return &TableHandlerResult{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("Table '%s' not found", q.Table)}
	}
	timing.Record("Get Grid", time.Since(sessStart))

	if q.Action != query.ActionNone {
		if !sess.limiter.Allow() {
			s.metrics.throttled.Inc()
			return &TableHandlerResult{StatusCode: http.StatusTooManyRequests, Message: "Too many actions, slow down"}
		}
		s.apply(sess, q)
		s.metrics.actions.WithLabelValues(string(q.Action)).Inc()
		setHeader("Location", q.Base().ToURL())
		return &TableHandlerResult{StatusCode: http.StatusSeeOther}
	}

	vmStart := time.Now()
	v := sess.view()
	viewModel := views.BuildViewModel(v, sess.dataset.DisplayName(), q)
	viewModel.Subtitle = sess.dataset.Description()
	timing.Record("Build ViewModel", time.Since(vmStart))

	viewModel.RenderTimeMs = timing.TotalMs()
	viewModel.TimingBreakdown = timing.GetEntries()

	setHeader("Content-Type", "text/html; charset=utf-8")
	renderStart := time.Now()
	if err := s.renderer.Render(w, viewModel); err != nil {
		return &TableHandlerResult{Error: err, StatusCode: http.StatusInternalServerError, Message: "Failed to render grid"}
	}
	s.metrics.render.Observe(time.Since(renderStart).Seconds())
	return nil
}

// HandleLandingRequest renders the list of datasets of the product.
func (s *Server) HandleLandingRequest(w io.Writer, setHeader func(key, value string)) error {
	vm := views.LandingViewModel{
		Title:    s.product.GetTitle(),
		Subtitle: s.product.GetSubtitle(),
	}
	for _, d := range s.product.GetDatasets() {
		vm.Tables = append(vm.Tables, views.TableInfo{
			Name:        d.Name(),
			DisplayName: d.DisplayName(),
			Description: d.Description(),
			URL:         (&query.Query{Path: "/grid", Table: d.Name(), Row: -1, Col: -1}).ToSafeURL(),
		})
	}
	setHeader("Content-Type", "text/html; charset=utf-8")
	return s.renderer.RenderLanding(w, vm)
}

// apply dispatches one URL action onto the grid.
func (s *Server) apply(sess *session, q *query.Query) {
	g := sess.grid
	switch q.Action {
	case query.ActionSort:
		g.SortBy(q.Col)
	case query.ActionToggle:
		g.ToggleRowSelection(q.Row, q.Shift)
	case query.ActionSelectAll:
		g.SelectAll()
	case query.ActionClick:
		if q.Col >= 0 {
			g.ClickCell(q.Row, q.Col)
		} else {
			g.ClickRow(q.Row)
		}
	case query.ActionEdit:
		g.BeginEdit(q.Row, q.Col)
	case query.ActionCommit:
		if ref := g.View().Editing; ref == nil || ref.Row != q.Row || ref.Col != q.Col {
			g.BeginEdit(q.Row, q.Col)
		}
		g.EditInput(q.Value)
		g.CommitEdit()
	case query.ActionCancel:
		g.CancelEdit()
	case query.ActionResize:
		g.Resize(q.Col, q.Delta)
	case query.ActionHover:
		sess.setHoverHidden(false)
		g.HoverRow(q.Row, tables.Point{X: q.X, Y: q.Y})
	case query.ActionLeave:
		// The grace timer clears the hover later; the next page must not
		// show it in the meantime.
		sess.setHoverHidden(true)
		g.LeaveRow()
	case query.ActionRun:
		g.RunAction(q.Row, q.ID)
	}
}

