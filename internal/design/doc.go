// Package design holds the streamlet intermediate representation: typed
// interfaces, streamlets, libraries, and the project registry that owns
// them. A project owns its libraries exclusively, libraries own streamlets,
// and streamlets own their interfaces by value; all cross-references go
// through keys and handles rather than shared pointers.
package design
