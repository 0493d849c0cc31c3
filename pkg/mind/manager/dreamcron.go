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
	"fmt"
	"os"
)

const (
	defaultDreamCron  = "0 3 * * *"
	dreamCronEnvVar   = "OPENCLAW_DREAM_CRON"
	dreamTimeoutSecs  = 120
)

// DreamCronPayload describes (but does not execute) a scheduled dream
// invocation, for an external cron scheduler to fire.
type DreamCronPayload struct {
	ID            string
	Cron          string
	SessionTarget string
	WakeMode      string
	TimeoutSecs   int
	Message       string
}

// DreamCronPayload builds the payload description for agentID, reading
// the cron expression from OPENCLAW_DREAM_CRON (default "0 3 * * *").
func (m *Manager) DreamCronPayload(agentID string) DreamCronPayload {
	agentID = normalizeAgentID(agentID)

	cron := os.Getenv(dreamCronEnvVar)
	if cron == "" {
		cron = defaultDreamCron
	}

	return DreamCronPayload{
		ID:            fmt.Sprintf("mind-dream-%s", agentID),
		Cron:          cron,
		SessionTarget: "isolated",
		WakeMode:      "next-heartbeat",
		TimeoutSecs:   dreamTimeoutSecs,
		Message:       "[DREAM_PHASE] Analyze recent stress patterns, confessions, and action logs. Use mind_dream to generate the analysis prompt, then propose tactical learnings via mind_save_learning.",
	}
}
