// Package todo implements tally's owned resource: the todo item.
//
// Every read-by-id, update and delete runs the ownership guard against the
// same row the operation will then act on; existence is decided before
// ownership, and ownership before any mutation.
package todo
