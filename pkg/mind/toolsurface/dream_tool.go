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

	"github.com/kadirpekel/hector-mind/pkg/mind/dream"
)

type dreamArgs struct {
	DaysToAnalyze int `json:"days_to_analyze,omitempty" jsonschema:"description=How many days of signals to analyze,default=7,minimum=1,maximum=30"`
}

func (s *Surface) dreamDescriptor() Descriptor {
	schema, _ := generateSchema[dreamArgs]()
	return Descriptor{
		Name:        "dream",
		Label:       "Dream",
		Description: "Run a dream cycle: analyze recent behavioral signals and produce an analysis prompt proposing tactical learnings.",
		Schema:      schema,
		Execute: func(_ context.Context, args map[string]any) map[string]any {
			parsed, err := decodeArgs[dreamArgs](args)
			if err != nil {
				return fail("invalid arguments: " + err.Error())
			}
			if parsed.DaysToAnalyze == 0 {
				parsed.DaysToAnalyze = 7
			}

			result := dream.Run(s.store, parsed.DaysToAnalyze, s.metrics)

			return ok(map[string]any{
				"log_count":        result.LogCount,
				"pruned":           result.Pruned,
				"analysis_prompt":  result.Prompt,
				"instruction":      "Review the analysis prompt, propose at most 3 tactical learnings via save_learning, and present them to the user for approval.",
			})
		},
	}
}
