// Package chksum is the concurrent execution engine behind the chksum CLI.
// Targets are digested by a bounded pool of workers; each worker hands its
// (Target, Outcome) pair to a single Printer over an unbuffered channel, so
// output lines never interleave and a slow printer throttles the workers.
// Per-target outcomes are folded into one Status whose exit code is read
// only after the printer has drained.
//
// The main entry point is Engine.Run, fed by Targets.
package chksum
