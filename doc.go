// Package hectormind implements the Mind Engine: a closed-loop,
// per-agent self-improvement mechanism for an autonomous LLM agent.
//
// The engine observes behavioral signals emitted by a hosting agent
// during live operation (user frustration, low-confidence admissions,
// ethical refusals, meta-guidance, executed tool actions), periodically
// enters a dream phase that synthesizes those signals into proposed
// tactical learnings, and — after explicit user approval — exposes
// those learnings for injection into the agent's system prompt. A
// relevance-decay mechanism prunes learnings that are not reactivated,
// producing long-term stable self-adaptation without unbounded memory
// growth.
//
// # Components
//
//	pkg/mind/store       - per-agent SQLite-backed repository
//	pkg/mind/stress       - regex + optional semantic stress detection
//	pkg/mind/action       - tool-call summarization
//	pkg/mind/dream        - dream-phase prompt synthesis and sanitization
//	pkg/mind/identity     - system-prompt identity section builder
//	pkg/mind/toolsurface  - tool descriptors for the hosting agent runtime
//	pkg/mind/manager      - per-agent store registry, cron payload, dashboard
//	pkg/mind/config       - engine configuration loading
//	cmd/mindctl           - standalone CLI for operating the engine directly
//
// # Quick Start
//
//	import "github.com/kadirpekel/hector-mind/pkg/mind/manager"
//
//	mgr := manager.New("./data", manager.NewMetrics())
//	surface, err := mgr.ToolSurface("assistant", sessionKey)
//	for _, tool := range surface.Descriptors() {
//	    // register tool with the hosting agent runtime
//	}
//
// The engine never calls an LLM itself and never mutates the immutable
// conscience principles exposed by pkg/mind/identity; it only produces
// prompt fragments and consumes tool-call invocations from whatever
// agent runtime embeds it.
//
// # License
//
// Apache-2.0 - See LICENSE for details.
package hectormind
