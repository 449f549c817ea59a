// Package entity defines the typed domain model behind the published
// metadata graph: the Entity contract, the weak cross-entity reference
// type, the concrete entity structs, and the repository and resolver
// interfaces the mapping engine reads through.
//
// References between entities are never ownership relations. A
// LinkedEntity carries only a uid and a type tag; resolution is a
// repository lookup that may fail, and callers are expected to treat
// a failed resolution as a skippable edge rather than an error.
package entity
