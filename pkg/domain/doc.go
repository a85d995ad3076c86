// Package domain contains the core domain entities of the equation solver:
// solve runs, the classified outcome of symbolic resolution, and the outcome
// of the numeric fallback. These types represent the business concepts and are
// intentionally free of infrastructure concerns so they can be shared across
// packages.
package domain
