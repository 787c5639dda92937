// Package engine implements the three output disciplines of uniqs and the
// dispatcher that picks one of them.
//
//   - [Dedup] streams each first occurrence as soon as it is read.
//   - [CountBatch] counts every line and prints the report after EOF.
//   - [CountInteractive] counts like CountBatch but also draws a live,
//     throttled tally on the alternate screen, then prints the same report
//     on the main screen.
//
// All engines are synchronous and single-threaded. The first read or write
// error aborts the run and is returned as a [*ReadError] or [*WriteError].
package engine
