// Package parallel validates many project files concurrently.
//
// WorkerPool bounds how many files are read and decoded at once; results
// carry the submission index so callers can report in input order.
package parallel
