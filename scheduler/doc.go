// Package scheduler implements a single-goroutine timer that runs tasks once,
// with fixed delay or at fixed rate.
//
// Tasks never run concurrently with each other. A slow task delays every other due task;
// Handle.LastStartDelay and Hooks expose how late each run started.
// A task returning an error or panicking is reported to the error observer
// and rescheduled as if it had succeeded.
package scheduler
