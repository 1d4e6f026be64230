// Package live is the interactive render target.
//
// A [Diagram] owns the transient presentation state of one mounted diagram:
// which tiers have finished their entrance animation and which tier, if
// any, is hovered. Mounting schedules one cancellable timer per tier at
// index*StepDelay + BaseDelay; remounting with a different config or
// unmounting cancels every pending timer first, and a timer that still
// fires for a replaced instance is ignored.
//
// None of this state reaches the geometry. [Diagram.Tree] builds its
// document through the same scene view as the static target and only adds
// transform, opacity and filter attributes to tier groups, so once every
// tier has entered and nothing is hovered the path data equals the static
// output.
//
// Timers fire on their own goroutines, so a Diagram guards its state with
// a mutex. It is still meant to have a single owner.
package live
