package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/repositories"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
)

type fakeBlogs struct {
	blogs []models.Blog
}

func (f *fakeBlogs) Create(_ context.Context, b *models.Blog) error {
	b.ID = int64(len(f.blogs) + 1)
	f.blogs = append(f.blogs, *b)
	return nil
}

func (f *fakeBlogs) List(_ context.Context, filter repositories.BlogFilter) ([]models.Blog, error) {
	out := []models.Blog{}
	for i := len(f.blogs) - 1; i >= 0; i-- {
		b := f.blogs[i]
		if b.IsBreakingNews != filter.BreakingNews {
			continue
		}
		if filter.UniversityID != nil && (b.UniversityID == nil || *b.UniversityID != *filter.UniversityID) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBlogs) GetByID(_ context.Context, id int64) (*models.Blog, error) {
	for _, b := range f.blogs {
		if b.ID == id {
			b.AuthorUsername = "author"
			return &b, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("Blog not found")
}

type likeKey struct{ comment, user int64 }

type fakeComments struct {
	comments []models.BlogComment
	likes    map[likeKey]bool
}

func (f *fakeComments) Create(_ context.Context, c *models.BlogComment) error {
	c.ID = int64(len(f.comments) + 1)
	c.CreatedAt = time.Now()
	f.comments = append(f.comments, *c)
	return nil
}

func (f *fakeComments) filter(keep func(models.BlogComment) bool) []models.BlogComment {
	out := []models.BlogComment{}
	for _, c := range f.comments {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeComments) ListByBlog(_ context.Context, blogID int64) ([]models.BlogComment, error) {
	return f.filter(func(c models.BlogComment) bool { return c.BlogID == blogID && c.ParentID == nil }), nil
}

func (f *fakeComments) ListReplies(_ context.Context, parentID int64) ([]models.BlogComment, error) {
	return f.filter(func(c models.BlogComment) bool { return c.ParentID != nil && *c.ParentID == parentID }), nil
}

func (f *fakeComments) GetByID(_ context.Context, id int64) (*models.BlogComment, error) {
	for _, c := range f.comments {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("Comment not found")
}

func (f *fakeComments) Delete(_ context.Context, id int64) error {
	f.comments = f.filter(func(c models.BlogComment) bool {
		return c.ID != id && (c.ParentID == nil || *c.ParentID != id)
	})
	return nil
}

func (f *fakeComments) ToggleLike(_ context.Context, commentID, userID int64) (bool, int, error) {
	k := likeKey{commentID, userID}
	if f.likes[k] {
		delete(f.likes, k)
	} else {
		f.likes[k] = true
	}
	total := 0
	for l := range f.likes {
		if l.comment == commentID {
			total++
		}
	}
	return f.likes[k], total, nil
}

func newBlogFixture() (BlogService, *fakeBlogs, *fakeComments) {
	blogs := &fakeBlogs{}
	comments := &fakeComments{likes: map[likeKey]bool{}}
	return NewBlogService(blogs, comments, newFakeDirectory(), &fakeStorage{}, zerolog.Nop()), blogs, comments
}

func TestBreakingNewsHasItsOwnFeed(t *testing.T) {
	svc, _, _ := newBlogFixture()
	ctx := context.Background()

	_, err := svc.CreateBlog(ctx, 1, &dto.CreateBlogRequest{Title: "Welcome", Content: "Hello", Date: "2025-03-01"}, nil)
	require.NoError(t, err)
	breaking, err := svc.CreateBlog(ctx, 1, &dto.CreateBlogRequest{Title: "Exams moved", Content: "...", IsBreakingNews: true, UniversityID: int64Ptr(1)}, upload("alert.png"))
	require.NoError(t, err)
	assert.Equal(t, "/media/blogs/alert.png", *breaking.ImageURL)
	assert.Equal(t, "author", breaking.Author)

	feed, err := svc.ListBlogs(ctx, nil)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Welcome", feed[0].Title)
	assert.Equal(t, "2025-03-01", feed[0].Date)

	news, err := svc.ListBreakingNews(ctx, int64Ptr(1))
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "Exams moved", news[0].Title)

	_, err = svc.CreateBlog(ctx, 1, &dto.CreateBlogRequest{Title: "x", Content: "y", UniversityID: int64Ptr(9)}, nil)
	assert.Equal(t, apperrors.ErrInvalidUniversity, err)

	_, err = svc.CreateBlog(ctx, 1, &dto.CreateBlogRequest{Title: "x", Content: "y", Date: "01/03/2025"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCommentThreads(t *testing.T) {
	svc, _, comments := newBlogFixture()
	ctx := context.Background()

	blog, err := svc.CreateBlog(ctx, 1, &dto.CreateBlogRequest{Title: "Welcome", Content: "Hello"}, nil)
	require.NoError(t, err)

	top, err := svc.CreateComment(ctx, blog.ID, int64Ptr(3), &dto.CreateCommentRequest{Content: "Nice"})
	require.NoError(t, err)
	anon, err := svc.CreateComment(ctx, blog.ID, nil, &dto.CreateCommentRequest{Content: "Anonymous"})
	require.NoError(t, err)
	assert.Nil(t, anon.User)

	reply, err := svc.Reply(ctx, top.ID, int64Ptr(4), &dto.CreateCommentRequest{Content: "Agreed"})
	require.NoError(t, err)
	assert.Equal(t, blog.ID, reply.Blog)
	assert.Equal(t, top.ID, *reply.ParentComment)

	list, err := svc.ListComments(ctx, blog.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	replies, err := svc.ListReplies(ctx, top.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "Agreed", replies[0].Content)

	_, err = svc.CreateComment(ctx, 404, nil, &dto.CreateCommentRequest{Content: "lost"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	_, err = svc.CreateComment(ctx, blog.ID, nil, &dto.CreateCommentRequest{Content: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.ErrorIs(t, svc.DeleteComment(ctx, top.ID, 4), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.DeleteComment(ctx, anon.ID, 4), apperrors.ErrPermissionDenied)
	require.NoError(t, svc.DeleteComment(ctx, top.ID, 3))
	assert.Len(t, comments.comments, 1)
}

func TestToggleLike(t *testing.T) {
	svc, _, _ := newBlogFixture()
	ctx := context.Background()

	blog, err := svc.CreateBlog(ctx, 1, &dto.CreateBlogRequest{Title: "Welcome", Content: "Hello"}, nil)
	require.NoError(t, err)
	c, err := svc.CreateComment(ctx, blog.ID, int64Ptr(3), &dto.CreateCommentRequest{Content: "Nice"})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, c.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, &dto.LikeToggleResponse{Action: LikeActionLiked, TotalLikes: 1}, liked)

	unliked, err := svc.ToggleLike(ctx, c.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, &dto.LikeToggleResponse{Action: LikeActionUnliked, TotalLikes: 0}, unliked)

	_, err = svc.ToggleLike(ctx, 99, 5)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
