// Package tablefilter shows and hides table rows according to a set of
// select controls.
//
// Each control is bound to a data attribute of the body rows. A row is
// visible iff every control either holds "all" (or nothing) or matches the
// row's tag. Matching is case-insensitive equality, or substring when the
// control is declared with match: contains. Hidden rows get an inline
// display: none; rows are never removed.
//
// A control may depend on another one: when the governing control changes,
// the options disallowed for its value are disabled and hidden, and a
// selection that became invalid falls back to "all" before the filters run.
//
// Tables declaring a sort attribute have their rows ordered once, ascending
// by that timestamp, when attached.
package tablefilter
