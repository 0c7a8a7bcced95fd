// Package menu implements the interactive, numbered text menu over a
// domain.RecordStore.
//
// Each iteration prints the actions, reads a choice and the inputs that
// action needs, performs exactly one store operation and prints its message.
// Closing the input ends the session like choosing Exit.
package menu
