// Package kernel implements the virtual-time scheduler the simulation runs
// on: a single-threaded discrete-event clock with FIFO ordering among
// events scheduled for the same instant. Patient pathways run as ordinary
// goroutines that block in Process.Sleep; the clock hands control to
// exactly one goroutine at a time via a baton channel, so no locking is
// needed anywhere in domain code even though goroutines are used to express
// the cooperative-coroutine control flow.
package kernel

import (
	"container/heap"
	"runtime"
)

type event struct {
	time float64
	seq  uint64
	proc *Process
}

type eventHeap []*event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(*event)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Clock drives the simulation clock. Zero value is not usable; use NewClock.
type Clock struct {
	now      float64
	seq      uint64
	queue    eventHeap
	turnDone chan struct{}
	done     chan struct{}
}

func NewClock() *Clock {
	return &Clock{queue: eventHeap{}, turnDone: make(chan struct{}), done: make(chan struct{})}
}

// Now returns the clock's current virtual time.
func (c *Clock) Now() float64 { return c.now }

func (c *Clock) nextSeq() uint64 {
	c.seq++
	return c.seq
}

func (c *Clock) push(at float64, p *Process) {
	heap.Push(&c.queue, &event{time: at, seq: c.nextSeq(), proc: p})
}

// Process is a single cooperative routine driven by the clock.
type Process struct {
	clock *Clock
	wake  chan struct{}
}

// Spawn starts fn as a new process, scheduled to begin running at "at"
// (almost always the clock's current time — use Now()). Spawn does not
// itself yield the caller's turn: it only registers the new process on the
// clock's queue, so several arrivals in a single calling process can be
// spawned back to back without ceding control.
func (c *Clock) Spawn(at float64, fn func(p *Process)) {
	p := &Process{clock: c, wake: make(chan struct{})}
	c.push(at, p)
	go func() {
		select {
		case <-p.wake:
		case <-c.done:
			return
		}
		fn(p)
		select {
		case c.turnDone <- struct{}{}:
		case <-c.done:
		}
	}()
}

// Now returns the clock's current virtual time, as observed by this process.
func (p *Process) Now() float64 { return p.clock.now }

// Clock returns the clock driving this process, so a process can spawn
// children on the same timeline.
func (p *Process) Clock() *Clock { return p.clock }

// Sleep suspends the calling process until the clock has advanced by d
// (d must be >= 0). A process still asleep when the clock stops is
// abandoned: Sleep never returns and the goroutine exits via
// runtime.Goexit, so no goroutine outlives a finished run.
func (p *Process) Sleep(d float64) {
	p.clock.push(p.clock.now+d, p)
	select {
	case p.clock.turnDone <- struct{}{}:
	case <-p.clock.done:
		runtime.Goexit()
	}
	select {
	case <-p.wake:
	case <-p.clock.done:
		runtime.Goexit()
	}
}

// RunUntil advances the clock, resuming processes in (time, schedule-order)
// sequence, until the queue is empty or the next pending event's time
// exceeds limit. Once RunUntil returns, every process still suspended is
// released via runtime.Goexit rather than left blocked forever — the run is
// over and no further events will ever be delivered to it. A Clock is only
// good for a single RunUntil call.
func (c *Clock) RunUntil(limit float64) {
	defer close(c.done)
	for c.queue.Len() > 0 {
		top := c.queue[0]
		if top.time > limit {
			return
		}
		ev := heap.Pop(&c.queue).(*event)
		c.now = ev.time
		select {
		case ev.proc.wake <- struct{}{}:
		case <-c.done:
			return
		}
		<-c.turnDone
	}
}
