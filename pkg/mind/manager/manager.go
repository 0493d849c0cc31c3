// Copyright 2025 Kadir Pekel
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package manager owns the per-agent Store registry, the dream-cron
// payload description handed to an external scheduler, and the
// dashboard/Prometheus surfaces an operator UI reads.
package manager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kadirpekel/hector-mind/pkg/mind/dream"
	"github.com/kadirpekel/hector-mind/pkg/mind/store"
	"github.com/kadirpekel/hector-mind/pkg/mind/toolsurface"
	"github.com/kadirpekel/hector-mind/pkg/registry"
)

// Manager lazily opens and memoizes one Store per normalized agent id,
// backed by the same generic registry used elsewhere for per-name
// component lifecycles.
type Manager struct {
	dataDir string
	stores  *registry.BaseRegistry[*store.Store]
	metrics *Metrics
}

// New returns a Manager rooted at dataDir. metrics may be nil, in which
// case Prometheus gauges are not updated.
func New(dataDir string, metrics *Metrics) *Manager {
	return &Manager{
		dataDir: dataDir,
		stores:  registry.NewBaseRegistry[*store.Store](),
		metrics: metrics,
	}
}

func normalizeAgentID(agentID string) string {
	agentID = strings.ToLower(strings.TrimSpace(agentID))
	if agentID == "" {
		return "main"
	}
	return agentID
}

// GetMindStore lazily creates <dataDir>/mind/ and opens/creates
// <agent_id>.db, memoizing the handle for subsequent calls.
func (m *Manager) GetMindStore(agentID string) (*store.Store, error) {
	agentID = normalizeAgentID(agentID)

	if s, ok := m.stores.Get(agentID); ok {
		return s, nil
	}

	mindDir := filepath.Join(m.dataDir, "mind")
	if err := os.MkdirAll(mindDir, 0o700); err != nil {
		return nil, fmt.Errorf("create mind dir: %w", err)
	}

	path := filepath.Join(mindDir, agentID+".db")
	s, err := store.OpenSQLite(path, agentID)
	if err != nil {
		return nil, fmt.Errorf("open mind store for %q: %w", agentID, err)
	}

	if err := m.stores.Register(agentID, s); err != nil {
		// Lost the race to another caller opening the same agent's
		// store concurrently; close our duplicate and use theirs.
		_ = s.Close()
		if existing, ok := m.stores.Get(agentID); ok {
			return existing, nil
		}
		return nil, fmt.Errorf("register mind store for %q: %w", agentID, err)
	}

	if m.metrics != nil {
		m.metrics.SetActiveAgents(m.stores.Count())
	}
	return s, nil
}

// HasMindStore reports whether agentID already has an open Store,
// without creating one.
func (m *Manager) HasMindStore(agentID string) bool {
	_, ok := m.stores.Get(normalizeAgentID(agentID))
	return ok
}

// recorder returns m.metrics as a toolsurface.Recorder, or a true nil
// interface when no *Metrics is configured — never a non-nil interface
// wrapping a nil *Metrics pointer. toolsurface.Recorder's method set is
// a superset of dream.Recorder's, so this also satisfies RunDream.
func (m *Manager) recorder() toolsurface.Recorder {
	if m.metrics == nil {
		return nil
	}
	return m.metrics
}

// ToolSurface opens agentID's Store and returns a toolsurface.Surface
// wired to this Manager's metrics, so every tool invocation is recorded.
func (m *Manager) ToolSurface(agentID, sessionKey string) (*toolsurface.Surface, error) {
	s, err := m.GetMindStore(agentID)
	if err != nil {
		return nil, err
	}
	return toolsurface.New(s, sessionKey, m.recorder()), nil
}

// RunDream opens agentID's Store, runs one dream cycle, and records the
// result against this Manager's metrics.
func (m *Manager) RunDream(agentID string, daysToAnalyze int) (dream.Result, error) {
	s, err := m.GetMindStore(agentID)
	if err != nil {
		return dream.Result{}, err
	}
	return dream.Run(s, daysToAnalyze, m.recorder()), nil
}

// CloseAll closes every open Store and clears the registry.
func (m *Manager) CloseAll() {
	for _, s := range m.stores.List() {
		_ = s.Close()
	}
	m.stores.Clear()

	if m.metrics != nil {
		m.metrics.SetActiveAgents(0)
	}
}
