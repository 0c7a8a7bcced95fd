// Package commands defines the registrar CLI and wires dependencies for subcommands.
//
// Commands
//
//   - (none)   Run the interactive menu
//   - add      Add a student record
//   - view     Show one record
//   - update   Change selected fields of a record
//   - delete   Remove a record
//   - list     Show every record in insertion order
//   - search   Find records by id, name or grade
//   - export   Write all records to CSV or XLSX
//   - passwd   Change the login passphrase
//
// # Implementation
//
// The root command loads configuration through viper, builds the logger and
// the dependency graph, then runs the passphrase gate before any subcommand
// runs, so handlers only ever see an unlocked app context.
package commands
