package loader

import (
	"context"
	"fmt"

	"github.com/gh-nvat/commitview/src/pkg/models"
	"github.com/gh-nvat/commitview/src/pkg/trace"
)

// Load points the session at coords and runs both requests concurrently,
// applying their results on the calling goroutine. Fetch failures are
// logged and reflected in the session, never returned; only cancellation is.
// If the session is already at coords, the data is reloaded.
func Load(ctx context.Context, src Source, s *Session, coords models.Coordinates) error {
	if !coords.Valid() {
		return fmt.Errorf("%w: %q", ErrIncompleteCoordinates, coords.String())
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("load cancelled: %w", err)
	}

	ctx, span := trace.StartSpan(ctx, "loader.Load", spanAttrs(Ticket{Coords: coords})...)
	defer span.End()

	ticket, ok := s.Navigate(coords)
	if !ok {
		ticket, _ = s.Reload()
	}

	commitChan := make(chan CommitResult, 1)
	diffChan := make(chan DiffResult, 1)

	go func() {
		commitChan <- FetchCommit(ctx, src, ticket)
	}()
	go func() {
		diffChan <- FetchDiff(ctx, src, ticket)
	}()

	for pending := 2; pending > 0; pending-- {
		select {
		case r := <-commitChan:
			s.ApplyCommit(r)
		case r := <-diffChan:
			s.ApplyDiff(r)
		case <-ctx.Done():
			return fmt.Errorf("load cancelled: %w", ctx.Err())
		}
	}

	logger.WithField("commit", coords.String()).
		WithField("files", len(s.Files())).
		WithField("hasCommit", s.Commit() != nil).
		Info("Load: done.")
	return nil
}
