// Package nav resolves which navigation entry is active for the current
// scroll position, and handles anchor navigation within the custom scroll
// container.
//
// The heart of the package is Score, a pure function over a geometry
// snapshot. The Resolver feeds it one viewport-relative rect per section
// candidate, picks the best-scoring candidate, maps it through its NavGroup
// to a NavTarget, and mutates the DOM at most once per sample.
package nav
