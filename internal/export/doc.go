// Package export renders student records as CSV or XLSX files.
//
// Both formats share one header and one row layout: id, name, age, grade,
// subjects joined by ", ", and the creation timestamp.
package export
