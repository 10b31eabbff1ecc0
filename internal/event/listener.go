// Package event adapts Firestore snapshot streams into calls on plain
// handler functions, keeping the dispatch and counter logic independent
// of the eventing mechanism.
package event

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sprintindex/notify-api/pkg/logger"
)

// DocumentHandler reacts to one document change. Handlers own their error
// handling; a handler error is logged and never stops the stream.
type DocumentHandler func(ctx context.Context, doc *firestore.DocumentSnapshot) error

// Listener subscribes handler functions to document added/removed changes
// on a Firestore query.
type Listener struct {
	logger *logger.Logger
}

func NewListener(logger *logger.Logger) *Listener {
	return &Listener{logger: logger}
}

// Watch streams snapshot changes from the query until ctx is cancelled,
// invoking onAdded for added documents and onRemoved for removed ones.
// Note that a fresh listen replays all documents currently matching the
// query as added changes; handlers must tolerate replay.
func (l *Listener) Watch(ctx context.Context, name string, query firestore.Query, onAdded, onRemoved DocumentHandler) error {
	it := query.Snapshots(ctx)
	defer it.Stop()

	l.logger.Info("listening for document changes", "stream", name)

	for {
		snap, err := it.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled || ctx.Err() != nil {
				l.logger.Info("listener stopped", "stream", name)
				return nil
			}
			return fmt.Errorf("snapshot stream %s failed: %w", name, err)
		}

		for _, change := range snap.Changes {
			var handler DocumentHandler
			switch change.Kind {
			case firestore.DocumentAdded:
				handler = onAdded
			case firestore.DocumentRemoved:
				handler = onRemoved
			default:
				continue
			}
			if handler == nil {
				continue
			}
			if err := handler(ctx, change.Doc); err != nil {
				l.logger.Error(err, "document handler failed",
					"stream", name,
					"doc_id", change.Doc.Ref.ID)
			}
		}
	}
}

// ParentDocumentID returns the id of the document owning the collection
// that contains doc, e.g. the post id for posts/{postId}/comments/{id}.
func ParentDocumentID(doc *firestore.DocumentSnapshot) string {
	if doc == nil || doc.Ref == nil || doc.Ref.Parent == nil || doc.Ref.Parent.Parent == nil {
		return ""
	}
	return doc.Ref.Parent.Parent.ID
}
