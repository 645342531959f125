// Package ring implements XEDIT's file ring: the set of simultaneously
// open Editors and the currently active one. Each slot carries a stable
// UUID so a host can find a slot again (Ring.Find) even after removals
// shift the ring's indices.
package ring
