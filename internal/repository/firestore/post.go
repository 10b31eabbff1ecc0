package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/sprintindex/notify-api/internal/model"
	"github.com/sprintindex/notify-api/internal/repository"
	"github.com/sprintindex/notify-api/pkg/logger"
)

type postRepository struct {
	baseRepository
}

func NewPostRepository(client *firestore.Client, logger *logger.Logger) repository.PostRepository {
	return &postRepository{newBaseRepository(client, logger)}
}

func (r *postRepository) Create(ctx context.Context, p *model.Post) (string, error) {
	ref := r.client.Collection(postsCollection).NewDoc()
	if _, err := ref.Set(ctx, p); err != nil {
		return "", fmt.Errorf("failed to create post: %w", err)
	}
	p.ID = ref.ID
	return ref.ID, nil
}

func (r *postRepository) Get(ctx context.Context, id string) (*model.Post, error) {
	doc, err := r.client.Collection(postsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}
	var p model.Post
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode post %s: %w", id, err)
	}
	p.ID = doc.Ref.ID
	return &p, nil
}

// AdjustCommentCount uses the server-side increment transform, so
// concurrent comment creations and deletions never lose updates.
func (r *postRepository) AdjustCommentCount(ctx context.Context, postID string, delta int) error {
	_, err := r.client.Collection(postsCollection).Doc(postID).Update(ctx, []firestore.Update{
		{Path: "commentsCount", Value: firestore.Increment(delta)},
	})
	if err != nil {
		return fmt.Errorf("failed to adjust comment count for post %s: %w", postID, err)
	}
	return nil
}

func (r *postRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	iter := r.client.Collection(postsCollection).
		Where("isPermanent", "==", false).
		Where("expiresAt", "<=", now).
		Documents(ctx)
	defer iter.Stop()

	batch := r.client.Batch()
	count := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to query expired posts: %w", err)
		}
		batch.Delete(doc.Ref)
		count++
	}

	if count == 0 {
		return 0, nil
	}
	if _, err := batch.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to delete %d expired posts: %w", count, err)
	}
	return count, nil
}
