// Package animate transitions registered elements from pending to animated
// exactly once when they become visible inside the custom scroll container.
//
// Three activation paths target the same monotonic state transition:
//
//   - the primary visibility detector, when the capability is available;
//   - an immediate fallback that shows everything when it is not;
//   - a bounded sweep (immediate check, then periodic re-checks for a fixed
//     window after load, plus on-demand checks from scroll and resize
//     signals) that catches elements the detector misses.
//
// Double activation is a state-checked no-op. The third-party animation
// library is modeled as an optional capability; its absence is never fatal.
package animate
