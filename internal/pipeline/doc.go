// Package pipeline wires one uniqs run together: it opens INPUT and
// OUTPUT, picks the engine for the (count, terminal) pair, runs it, and
// reports run statistics.
package pipeline
