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

// Package toolsurface exposes the Mind Engine's nine operations as tool
// descriptors: name, description, JSON parameter schema, and executor.
// This is deliberately a narrower shape than the agent runtime's full
// CallableTool interface (it does not depend on agent.CallbackContext)
// because the engine is a self-contained collaborator the runtime
// registers into, not a participant in its session/streaming machinery.
package toolsurface

import (
	"context"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/kadirpekel/hector-mind/pkg/mind/store"
)

// Descriptor is the shape registered with the agent tool runtime.
type Descriptor struct {
	Name        string
	Label       string
	Description string
	Schema      map[string]any
	Execute     func(ctx context.Context, args map[string]any) map[string]any
}

// Recorder receives metrics for log writes and dream cycles run through
// this Surface. Satisfied by *manager.Metrics; rec may be nil, in which
// case descriptors skip recording.
type Recorder interface {
	RecordLog(agentID, category string)
	RecordDream(agentID string, pruned int)
}

// Surface binds the nine operations to a single agent's Store.
type Surface struct {
	store      *store.Store
	sessionKey string
	metrics    Recorder
}

// New returns a Surface bound to s. sessionKey scopes confess/log
// operations that want session correlation; it may be empty. rec may be
// nil, in which case descriptors don't record metrics.
func New(s *store.Store, sessionKey string, rec Recorder) *Surface {
	return &Surface{store: s, sessionKey: sessionKey, metrics: rec}
}

// recordLog increments the log counter for category, if a Recorder is set.
func (s *Surface) recordLog(category store.Category) {
	if s.metrics != nil {
		s.metrics.RecordLog(s.store.AgentID(), string(category))
	}
}

func decodeArgs[T any](args map[string]any) (T, error) {
	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: &out})
	if err != nil {
		return out, err
	}
	err = decoder.Decode(args)
	return out, err
}

func fail(message string) map[string]any {
	return map[string]any{"success": false, "message": message}
}

// ok builds a successful tool result, tagging it with a fresh
// correlation id so a request can be traced through logs independent
// of the (optional, agent-supplied) session key.
func ok(extra map[string]any) map[string]any {
	result := map[string]any{"success": true, "request_id": uuid.NewString()}
	for k, v := range extra {
		result[k] = v
	}
	return result
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Descriptors returns all nine tool descriptors bound to s.
func (s *Surface) Descriptors() []Descriptor {
	return []Descriptor{
		s.logStressDescriptor(),
		s.confessUncertaintyDescriptor(),
		s.logEthicalRefusalDescriptor(),
		s.logGuidanceDescriptor(),
		s.dreamDescriptor(),
		s.getLearningsDescriptor(),
		s.approveLearningDescriptor(),
		s.rejectLearningDescriptor(),
		s.saveLearningDescriptor(),
	}
}
