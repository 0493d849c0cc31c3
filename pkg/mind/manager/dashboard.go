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

package manager

import (
	"github.com/google/uuid"

	"github.com/kadirpekel/hector-mind/pkg/mind/store"
)

// DashboardSnapshot is the read-only aggregate an external dashboard UI
// renders for a single agent. SnapshotID correlates a rendered
// dashboard view with whatever logs or traces the UI layer emits.
type DashboardSnapshot struct {
	SnapshotID        string
	AgentID           string
	ApprovedLearnings []store.Learning
	PendingLearnings  []store.Learning
	RecentDreams      []store.DreamRecord
	LogCounts         map[store.Category]int
	TotalLogCount     int
	RejectedTitles    []string
}

var dashboardCategories = []store.Category{
	store.CategoryStress,
	store.CategoryConfession,
	store.CategoryEthics,
	store.CategoryGuidance,
	store.CategorySessionSummary,
}

// DashboardSnapshot builds a DashboardSnapshot for agentID over the
// last sinceDays days, opening its Store if not already open.
func (m *Manager) DashboardSnapshot(agentID string, sinceDays int) (DashboardSnapshot, error) {
	s, err := m.GetMindStore(agentID)
	if err != nil {
		return DashboardSnapshot{}, err
	}

	logCounts := make(map[store.Category]int, len(dashboardCategories))
	for _, c := range dashboardCategories {
		logCounts[c] = len(s.GetLogs(c, sinceDays))
	}

	snap := DashboardSnapshot{
		SnapshotID:        uuid.NewString(),
		AgentID:           s.AgentID(),
		ApprovedLearnings: s.GetApprovedLearnings(),
		PendingLearnings:  s.GetPendingLearnings(),
		RecentDreams:      s.GetRecentDreams(5),
		LogCounts:         logCounts,
		TotalLogCount:     s.GetLogCount(sinceDays),
		RejectedTitles:    s.GetRejectedTitles(),
	}

	if m.metrics != nil {
		m.metrics.SetDashboardGauges(snap.AgentID, len(snap.ApprovedLearnings), len(snap.PendingLearnings), snap.TotalLogCount)
	}

	return snap, nil
}
