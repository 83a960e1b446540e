package request

import (
	"context"
)

// ParallelRequests is a group of requests sent at once, see Parallel.
type ParallelRequests []Sendable

// Parallel wraps parallel requests to one Sendable interface.
// All requests are sent by a WaitGroup, so they can be nested into a RunGroup or another WaitGroup.
func Parallel(requests ...Sendable) ParallelRequests {
	return requests
}

func (v ParallelRequests) SendOrErr(ctx context.Context) error {
	wg := NewWaitGroup(ctx)
	for _, r := range v {
		wg.Send(r)
	}
	return wg.Wait()
}
