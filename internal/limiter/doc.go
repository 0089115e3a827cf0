// Package limiter provides throttle and debounce wrappers for taming
// high-frequency scroll, resize, and touch signals before they reach
// consumers.
//
// Throttle is leading-edge: the first call in a burst invokes the handler
// immediately, and calls arriving inside the suppression window are dropped
// with no trailing invocation. Debounce is trailing: the handler runs once
// the calls have been quiet for the configured wait, with the payload of the
// last call.
//
// Wrapped handlers are cached by a caller-supplied key plus interval, so the
// same logical listener asked for twice shares one timer state instead of
// spawning duplicates.
package limiter
