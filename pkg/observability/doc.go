/*
Package observability provides tools for monitoring the fretwise engine.

It turns the engine's lifecycle hooks into Prometheus metrics and structured
log lines. Both are plain domain.Hooks values, so they can be combined with
Hooks.Merge and passed to fretwise.WithHooks.
*/
package observability
