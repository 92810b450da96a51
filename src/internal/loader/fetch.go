package loader

import (
	"context"

	"github.com/gh-nvat/commitview/src/pkg/models"
	"github.com/gh-nvat/commitview/src/pkg/trace"
	"go.opentelemetry.io/otel/attribute"
)

// CommitResult is the outcome of one commit-info request
type CommitResult struct {
	Ticket Ticket
	Commit *models.CommitDescriptor
	Err    error
}

// DiffResult is the outcome of one diff request
type DiffResult struct {
	Ticket Ticket
	Files  []models.FileDiff
	Err    error
}

// FetchCommit performs the commit-info request for a ticket.
// Failures are logged here and carried in the result.
func FetchCommit(ctx context.Context, src Source, t Ticket) CommitResult {
	ctx, span := trace.StartSpan(ctx, "loader.FetchCommit", spanAttrs(t)...)
	commit, err := src.GetCommit(ctx, t.Coords)
	trace.EndSpan(span, err)

	if err != nil {
		logger.WithField("commit", t.Coords.String()).WithError(err).Error("Failed to load commit metadata")
		return CommitResult{Ticket: t, Err: err}
	}
	return CommitResult{Ticket: t, Commit: commit}
}

// FetchDiff performs the diff request for a ticket.
// Failures are logged here and carried in the result.
func FetchDiff(ctx context.Context, src Source, t Ticket) DiffResult {
	ctx, span := trace.StartSpan(ctx, "loader.FetchDiff", spanAttrs(t)...)
	files, err := src.GetDiff(ctx, t.Coords)
	if err == nil {
		span.SetAttributes(attribute.Int("files", len(files)))
	}
	trace.EndSpan(span, err)

	if err != nil {
		logger.WithField("commit", t.Coords.String()).WithError(err).Error("Failed to load file changes")
		return DiffResult{Ticket: t, Err: err}
	}
	return DiffResult{Ticket: t, Files: files}
}

func spanAttrs(t Ticket) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("owner", t.Coords.Owner),
		attribute.String("repo", t.Coords.Repo),
		attribute.String("oid", t.Coords.CommitOID),
		attribute.Int64("generation", int64(t.Generation)),
	}
}
