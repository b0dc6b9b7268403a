package comments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	posts    map[int64]bool
	comments map[int64]*Comment
	likes    map[int64]map[string]bool
	nextID   int64
	listHits int
}

func newMemRepo(postIDs ...int64) *memRepo {
	r := &memRepo{
		posts:    map[int64]bool{},
		comments: map[int64]*Comment{},
		likes:    map[int64]map[string]bool{},
	}
	for _, id := range postIDs {
		r.posts[id] = true
	}
	return r
}

func (r *memRepo) PostExists(ctx context.Context, postID int64) (bool, error) {
	return r.posts[postID], nil
}

func (r *memRepo) Create(ctx context.Context, c *Comment) error {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *memRepo) ListByPost(ctx context.Context, postID int64) ([]Comment, error) {
	r.listHits++
	out := []Comment{}
	for id := int64(1); id <= r.nextID; id++ {
		if c, ok := r.comments[id]; ok && c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memRepo) GetByID(ctx context.Context, commentID int64) (*Comment, error) {
	c, ok := r.comments[commentID]
	if !ok {
		return nil, ErrCommentNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) Update(ctx context.Context, c *Comment) error {
	stored, ok := r.comments[c.ID]
	if !ok {
		return ErrCommentNotFound
	}
	stored.Name, stored.Email, stored.Body = c.Name, c.Email, c.Body
	c.PostID, c.Author, c.Likes = stored.PostID, stored.Author, stored.Likes
	return nil
}

func (r *memRepo) Delete(ctx context.Context, commentID int64) error {
	if _, ok := r.comments[commentID]; !ok {
		return ErrCommentNotFound
	}
	delete(r.comments, commentID)
	return nil
}

func (r *memRepo) AddLike(ctx context.Context, commentID int64, username string) (bool, error) {
	if r.likes[commentID] == nil {
		r.likes[commentID] = map[string]bool{}
	}
	if r.likes[commentID][username] {
		return false, nil
	}
	r.likes[commentID][username] = true
	r.comments[commentID].Likes++
	return true, nil
}

type memCache struct {
	lists       map[int64][]Comment
	invalidated []int64
}

func (c *memCache) GetList(ctx context.Context, postID int64) ([]Comment, bool) {
	l, ok := c.lists[postID]
	return l, ok
}

func (c *memCache) SetList(ctx context.Context, postID int64, list []Comment) {
	c.lists[postID] = list
}

func (c *memCache) Invalidate(ctx context.Context, postID int64) {
	delete(c.lists, postID)
	c.invalidated = append(c.invalidated, postID)
}

type recordingPublisher struct {
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(key string, event any) error {
	if ev, ok := event.(Event); ok {
		p.events = append(p.events, ev)
	}
	return p.err
}

var sampleReq = CommentRequest{Name: "Alice", Email: "alice@example.com", Body: "Nice"}

func TestService_CreateRequiresPost(t *testing.T) {
	svc := NewService(newMemRepo(), nil, nil, nil)

	_, err := svc.Create(context.Background(), "alice", 1, sampleReq)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestService_CreateSetsAuthor(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(newMemRepo(1), nil, pub, nil)

	c, err := svc.Create(context.Background(), "alice", 1, sampleReq)
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Author)
	assert.Equal(t, int64(0), c.Likes)

	require.Len(t, pub.events, 1)
	assert.Equal(t, EventCreated, pub.events[0].Type)
	assert.Equal(t, c.ID, pub.events[0].CommentID)
}

func TestService_PublishFailureDoesNotFailRequest(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewService(newMemRepo(1), nil, pub, nil)

	_, err := svc.Create(context.Background(), "alice", 1, sampleReq)
	assert.NoError(t, err)
}

func TestService_GetChecksPost(t *testing.T) {
	repo := newMemRepo(1, 2)
	svc := NewService(repo, nil, nil, nil)

	c, err := svc.Create(context.Background(), "alice", 1, sampleReq)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), 1, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = svc.Get(context.Background(), 2, c.ID)
	assert.ErrorIs(t, err, ErrCommentNotInPost)

	_, err = svc.Get(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestService_UpdateAndDelete(t *testing.T) {
	repo := newMemRepo(1)
	svc := NewService(repo, nil, nil, nil)
	ctx := context.Background()

	c, err := svc.Create(ctx, "alice", 1, sampleReq)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, c.ID, CommentRequest{Name: "Alice", Email: "alice@example.com", Body: "Edited"})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Body)
	assert.Equal(t, "alice", updated.Author)

	require.NoError(t, svc.Delete(ctx, 1, c.ID))
	_, err = svc.Get(ctx, 1, c.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 1, c.ID), ErrCommentNotFound)
}

func TestService_LikeOncePerUser(t *testing.T) {
	repo := newMemRepo(1)
	pub := &recordingPublisher{}
	svc := NewService(repo, nil, pub, nil)
	ctx := context.Background()

	c, err := svc.Create(ctx, "alice", 1, sampleReq)
	require.NoError(t, err)

	require.NoError(t, svc.Like(ctx, "bob", c.ID))
	require.NoError(t, svc.Like(ctx, "bob", c.ID))
	require.NoError(t, svc.Like(ctx, "carol", c.ID))

	got, err := svc.Get(ctx, 1, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Likes)

	liked := 0
	for _, ev := range pub.events {
		if ev.Type == EventLiked {
			liked++
		}
	}
	assert.Equal(t, 2, liked)
}

func TestService_LikeMissingComment(t *testing.T) {
	svc := NewService(newMemRepo(1), nil, nil, nil)

	err := svc.Like(context.Background(), "bob", 42)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestService_ListUsesCache(t *testing.T) {
	repo := newMemRepo(1)
	cache := &memCache{lists: map[int64][]Comment{}}
	svc := NewService(repo, cache, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", 1, sampleReq)
	require.NoError(t, err)

	first, err := svc.ListByPost(ctx, 1)
	require.NoError(t, err)
	second, err := svc.ListByPost(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listHits)

	_, err = svc.Create(ctx, "bob", 1, sampleReq)
	require.NoError(t, err)

	third, err := svc.ListByPost(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 2, repo.listHits)
	assert.Contains(t, cache.invalidated, int64(1))
}
