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

package toolsurface

import "context"

func (s *Surface) getLearningsDescriptor() Descriptor {
	return Descriptor{
		Name:        "get_learnings",
		Label:       "Get Learnings",
		Description: "List approved and pending tactical learnings.",
		Schema:      map[string]any{"type": "object", "properties": map[string]any{}},
		Execute: func(_ context.Context, _ map[string]any) map[string]any {
			approved := s.store.GetApprovedLearnings()
			pending := s.store.GetPendingLearnings()

			formatApproved := make([]map[string]any, 0, len(approved))
			for _, l := range approved {
				formatApproved = append(formatApproved, map[string]any{
					"id": l.ID, "title": l.Title, "content": l.Content,
					"relevance_score": l.RelevanceScore, "activation_count": l.ActivationCount,
				})
			}
			formatPending := make([]map[string]any, 0, len(pending))
			for _, l := range pending {
				formatPending = append(formatPending, map[string]any{
					"id": l.ID, "title": l.Title, "content": l.Content, "rationale": l.Rationale,
				})
			}

			return ok(map[string]any{"approved": formatApproved, "pending": formatPending})
		},
	}
}

type learningIDArgs struct {
	ID int64 `json:"id" jsonschema:"required,description=Learning id"`
}

func (s *Surface) approveLearningDescriptor() Descriptor {
	schema, _ := generateSchema[learningIDArgs]()
	return Descriptor{
		Name:        "approve_learning",
		Label:       "Approve Learning",
		Description: "Approve a pending tactical learning so it is injected into the agent's identity.",
		Schema:      schema,
		Execute: func(_ context.Context, args map[string]any) map[string]any {
			parsed, err := decodeArgs[learningIDArgs](args)
			if err != nil {
				return fail("invalid arguments: " + err.Error())
			}
			s.store.ApproveLearning(parsed.ID)
			return ok(map[string]any{"id": parsed.ID})
		},
	}
}

func (s *Surface) rejectLearningDescriptor() Descriptor {
	schema, _ := generateSchema[learningIDArgs]()
	return Descriptor{
		Name:        "reject_learning",
		Label:       "Reject Learning",
		Description: "Reject a learning, tombstoning its title so the dream planner never re-proposes it.",
		Schema:      schema,
		Execute: func(_ context.Context, args map[string]any) map[string]any {
			parsed, err := decodeArgs[learningIDArgs](args)
			if err != nil {
				return fail("invalid arguments: " + err.Error())
			}
			s.store.RejectLearning(parsed.ID)
			return ok(map[string]any{"id": parsed.ID})
		},
	}
}

type saveLearningArgs struct {
	Title     string `json:"title" jsonschema:"required,description=Short learning title"`
	Content   string `json:"content" jsonschema:"required,description=The tactical rule itself, at most 50 words"`
	Rationale string `json:"rationale" jsonschema:"required,description=Why this learning was proposed"`
}

func (s *Surface) saveLearningDescriptor() Descriptor {
	schema, _ := generateSchema[saveLearningArgs]()
	return Descriptor{
		Name:        "save_learning",
		Label:       "Save Learning",
		Description: "Propose a new tactical learning, pending user approval.",
		Schema:      schema,
		Execute: func(_ context.Context, args map[string]any) map[string]any {
			parsed, err := decodeArgs[saveLearningArgs](args)
			if err != nil {
				return fail("invalid arguments: " + err.Error())
			}
			if parsed.Title == "" || parsed.Content == "" {
				return fail("title and content are required")
			}

			id := s.store.AddLearning(parsed.Title, parsed.Content, parsed.Rationale, false)
			return ok(map[string]any{"id": id})
		},
	}
}
