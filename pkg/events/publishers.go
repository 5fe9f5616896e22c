package events

import (
	"context"
	"errors"
)

// NoOpPublisher discards every event.
type NoOpPublisher struct{}

// Publish does nothing.
func (NoOpPublisher) Publish(ctx context.Context, event *Event) error {
	return nil
}

// Fanout delivers each event to every publisher, continuing past failures.
type Fanout []Publisher

// Publish returns the joined errors of the publishers that failed.
func (f Fanout) Publish(ctx context.Context, event *Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ Publisher = NoOpPublisher{}
	_ Publisher = Fanout(nil)
)
