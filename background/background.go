// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run long scans as goroutines that can be told
// to stop and waited for
package background

// the shutdown and completed channels of one process
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle to a set of running processes
type T struct {
	s []shutdown
}

// Process - a long running job
//
// Run must return soon after shutdown is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - run each process in its own goroutine
func Start(processes Processes, args interface{}) *T {

	register := &T{
		s: make([]shutdown, len(processes)),
	}

	for i, p := range processes {
		sd := shutdown{
			shutdown: make(chan struct{}),
			finished: make(chan struct{}),
		}
		register.s[i] = sd
		go func(p Process) {
			defer close(sd.finished)
			p.Run(args, sd.shutdown)
		}(p)
	}
	return register
}

// Stop - signal every process and wait for all of them to return
func (t *T) Stop() {
	if nil == t {
		return
	}
	for _, sd := range t.s {
		close(sd.shutdown)
	}
	t.Wait()
}

// Wait - block until every process has returned by itself
func (t *T) Wait() {
	if nil == t {
		return
	}
	for _, sd := range t.s {
		<-sd.finished
	}
}
