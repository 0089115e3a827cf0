// Package lua hosts site scripts that extend the coordinator without
// recompiling: registering custom animation definitions and reacting to
// bus events.
//
// Scripts run in a sandboxed interpreter with only the base, table, string,
// and math libraries open. A single global table named scrollstorm exposes
// the host API.
package lua
