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

package dream

import "regexp"

func compileInjectionPatterns() []*regexp.Regexp {
	raw := []string{
		`(?i)(ignore|disregard|forget) (all )?(previous|prior|above) (instructions?|prompts?|rules?)`,
		`(?i)you are now`,
		`(?i)new instructions?:`,
		`(?i)system:`,
		`(?i)(IMPORTANT|CRITICAL|URGENT):.*?(ignore|override|disregard)`,
		`(?i)</?system>`,
	}

	patterns := make([]*regexp.Regexp, 0, len(raw))
	for _, p := range raw {
		patterns = append(patterns, regexp.MustCompile(p))
	}
	return patterns
}
