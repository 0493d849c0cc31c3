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

package main

import "fmt"

// DreamCmd runs a dream cycle for one agent and prints the resulting
// analysis prompt.
type DreamCmd struct {
	Agent string `arg:"" help:"Agent id to dream for." placeholder:"AGENT"`
	Days  int    `help:"Days of signals to analyze." default:"7"`
}

func (c *DreamCmd) Run(cli *CLI) error {
	m, err := loadManager(cli)
	if err != nil {
		return err
	}
	defer m.CloseAll()

	result, err := m.RunDream(c.Agent, c.Days)
	if err != nil {
		return err
	}

	fmt.Printf("logs analyzed: %d, pruned: %d\n\n%s\n", result.LogCount, result.Pruned, result.Prompt)
	return nil
}

// ApproveCmd approves a pending learning by id.
type ApproveCmd struct {
	Agent string `help:"Agent id." required:""`
	ID    int64  `help:"Learning id to approve." required:""`
}

func (c *ApproveCmd) Run(cli *CLI) error {
	m, err := loadManager(cli)
	if err != nil {
		return err
	}
	defer m.CloseAll()

	s, err := m.GetMindStore(c.Agent)
	if err != nil {
		return err
	}

	s.ApproveLearning(c.ID)
	fmt.Printf("approved learning %d for agent %q\n", c.ID, c.Agent)
	return nil
}

// RejectCmd rejects a learning by id.
type RejectCmd struct {
	Agent string `help:"Agent id." required:""`
	ID    int64  `help:"Learning id to reject." required:""`
}

func (c *RejectCmd) Run(cli *CLI) error {
	m, err := loadManager(cli)
	if err != nil {
		return err
	}
	defer m.CloseAll()

	s, err := m.GetMindStore(c.Agent)
	if err != nil {
		return err
	}

	s.RejectLearning(c.ID)
	fmt.Printf("rejected learning %d for agent %q\n", c.ID, c.Agent)
	return nil
}

// DashboardCmd prints a dashboard snapshot for one agent.
type DashboardCmd struct {
	Agent string `arg:"" help:"Agent id." placeholder:"AGENT"`
	Days  int    `help:"Window, in days, for log counts." default:"7"`
}

func (c *DashboardCmd) Run(cli *CLI) error {
	m, err := loadManager(cli)
	if err != nil {
		return err
	}
	defer m.CloseAll()

	snap, err := m.DashboardSnapshot(c.Agent, c.Days)
	if err != nil {
		return err
	}

	fmt.Printf("agent: %s\n", snap.AgentID)
	fmt.Printf("approved learnings: %d\n", len(snap.ApprovedLearnings))
	fmt.Printf("pending learnings: %d\n", len(snap.PendingLearnings))
	fmt.Printf("recent dreams: %d\n", len(snap.RecentDreams))
	fmt.Printf("total logs (last %d days): %d\n", c.Days, snap.TotalLogCount)
	for category, count := range snap.LogCounts {
		fmt.Printf("  %s: %d\n", category, count)
	}
	fmt.Printf("rejected titles: %d\n", len(snap.RejectedTitles))
	return nil
}
