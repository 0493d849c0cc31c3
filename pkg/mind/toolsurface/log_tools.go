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

import (
	"context"

	"github.com/kadirpekel/hector-mind/pkg/mind/store"
)

type logStressArgs struct {
	SignalType string `json:"signal_type" jsonschema:"required,description=Kind of stress signal,enum=correction|frustration|explicit_negative"`
	Context    string `json:"context" jsonschema:"required,description=The utterance or situation that triggered this signal"`
	Intensity  int    `json:"intensity,omitempty" jsonschema:"description=Severity from 1 (mild) to 5 (severe),default=3,minimum=1,maximum=5"`
}

func (s *Surface) logStressDescriptor() Descriptor {
	schema, _ := generateSchema[logStressArgs]()
	return Descriptor{
		Name:        "log_stress",
		Label:       "Log Stress Signal",
		Description: "Record a user stress signal (correction, frustration, or explicit negative feedback).",
		Schema:      schema,
		Execute: func(_ context.Context, args map[string]any) map[string]any {
			parsed, err := decodeArgs[logStressArgs](args)
			if err != nil {
				return fail("invalid arguments: " + err.Error())
			}
			if parsed.Context == "" {
				return fail("context is required")
			}
			if parsed.Intensity == 0 {
				parsed.Intensity = 3
			}
			parsed.Intensity = clampInt(parsed.Intensity, 1, 5)

			id := s.store.AddLog(store.CategoryStress, parsed, s.sessionKey)
			s.recordLog(store.CategoryStress)
			return ok(map[string]any{"id": id})
		},
	}
}

type confessUncertaintyArgs struct {
	Area               string  `json:"area" jsonschema:"required,description=The domain or topic the agent is uncertain about"`
	Confidence         float64 `json:"confidence" jsonschema:"required,description=Self-assessed confidence from 0 to 1"`
	AlternativeAction  string  `json:"alternative_action,omitempty" jsonschema:"description=A fallback action the agent could take instead"`
}

func (s *Surface) confessUncertaintyDescriptor() Descriptor {
	schema, _ := generateSchema[confessUncertaintyArgs]()
	return Descriptor{
		Name:        "confess_uncertainty",
		Label:       "Confess Uncertainty",
		Description: "Record a low-confidence admission and suggest how the user can help resolve it.",
		Schema:      schema,
		Execute: func(_ context.Context, args map[string]any) map[string]any {
			parsed, err := decodeArgs[confessUncertaintyArgs](args)
			if err != nil {
				return fail("invalid arguments: " + err.Error())
			}
			if parsed.Area == "" {
				return fail("area is required")
			}
			parsed.Confidence = clampFloat(parsed.Confidence, 0, 1)

			id := s.store.AddLog(store.CategoryConfession, parsed, s.sessionKey)
			s.recordLog(store.CategoryConfession)

			message := "Could you share more context about " + parsed.Area + "?"
			if parsed.AlternativeAction != "" {
				message = "I'm not fully confident here; consider asking for more context about " +
					parsed.Area + ", or I can try: " + parsed.AlternativeAction
			}

			return ok(map[string]any{"id": id, "user_message": message})
		},
	}
}

type logEthicalRefusalArgs struct {
	Domain         string `json:"domain" jsonschema:"required,description=Category of the refused request,enum=violence|deception|exploitation|privacy|other"`
	RequestSummary string `json:"request_summary" jsonschema:"required,description=A short summary of what was requested"`
	Reasoning      string `json:"reasoning" jsonschema:"required,description=Why the request was refused"`
}

func (s *Surface) logEthicalRefusalDescriptor() Descriptor {
	schema, _ := generateSchema[logEthicalRefusalArgs]()
	return Descriptor{
		Name:        "log_ethical_refusal",
		Label:       "Log Ethical Refusal",
		Description: "Record a refusal of a harmful or inappropriate request. Refusing harm is a success, not a failure.",
		Schema:      schema,
		Execute: func(_ context.Context, args map[string]any) map[string]any {
			parsed, err := decodeArgs[logEthicalRefusalArgs](args)
			if err != nil {
				return fail("invalid arguments: " + err.Error())
			}
			if parsed.RequestSummary == "" || parsed.Reasoning == "" {
				return fail("request_summary and reasoning are required")
			}

			id := s.store.AddLog(store.CategoryEthics, parsed, s.sessionKey)
			s.recordLog(store.CategoryEthics)
			return ok(map[string]any{"id": id})
		},
	}
}

type logGuidanceArgs struct {
	Topic   string `json:"topic" jsonschema:"required,description=What the guidance is about"`
	Advice  string `json:"advice" jsonschema:"required,description=The guidance itself"`
	Context string `json:"context,omitempty" jsonschema:"description=Additional context for the guidance"`
}

func (s *Surface) logGuidanceDescriptor() Descriptor {
	schema, _ := generateSchema[logGuidanceArgs]()
	return Descriptor{
		Name:        "log_guidance",
		Label:       "Log Guidance",
		Description: "Record explicit meta-guidance the user gave about tone, process, or preference.",
		Schema:      schema,
		Execute: func(_ context.Context, args map[string]any) map[string]any {
			parsed, err := decodeArgs[logGuidanceArgs](args)
			if err != nil {
				return fail("invalid arguments: " + err.Error())
			}
			if parsed.Topic == "" || parsed.Advice == "" {
				return fail("topic and advice are required")
			}

			id := s.store.AddLog(store.CategoryGuidance, parsed, s.sessionKey)
			s.recordLog(store.CategoryGuidance)
			return ok(map[string]any{"id": id})
		},
	}
}
