package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/cache"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/storage"
)

const defaultFeedPageSize = 20

type PostService struct {
	Repo   *repositories.PostRepository
	Store  storage.Store
	Logger *zap.Logger
}

func NewPostService(repo *repositories.PostRepository, store storage.Store, logger *zap.Logger) *PostService {
	return &PostService{Repo: repo, Store: store, Logger: logger}
}

// CreatePost publishes to the community feed; file is the optional image
// and may be nil.
func (s *PostService) CreatePost(ctx context.Context, authorID int, body, filename, contentType string, file io.Reader) (*models.Post, error) {
	if body == "" && file == nil {
		return nil, errors.New("post body is required")
	}
	post := &models.Post{
		AuthorID: authorID,
		Body:     body,
	}
	if file != nil {
		key := storage.MakeKey("posts", filename)
		url, err := s.Store.Put(ctx, key, file, contentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		post.ImageKey = key
		post.ImageURL = url
	}
	if err := s.Repo.CreatePost(ctx, post); err != nil {
		if post.ImageKey != "" {
			if delErr := s.Store.Delete(ctx, post.ImageKey); delErr != nil {
				s.Logger.Warn("failed to remove orphaned post image",
					zap.String("key", post.ImageKey), zap.Error(delErr))
			}
		}
		return nil, err
	}
	cache.InvalidateFeedCaches(ctx)
	return post, nil
}

// GetPost retrieves one post with its author and comment count
func (s *PostService) GetPost(ctx context.Context, postID int) (*models.Post, error) {
	return s.Repo.GetPost(ctx, postID)
}

// ListFeed retrieves a page of the feed, newest first. Pages are cached
// briefly and invalidated on any write.
func (s *PostService) ListFeed(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultFeedPageSize
	}
	if offset < 0 {
		offset = 0
	}
	if data, ok := cache.GetCachedFeedPage(ctx, limit, offset); ok {
		var posts []*models.Post
		if err := json.Unmarshal(data, &posts); err == nil {
			return posts, nil
		}
	}
	posts, err := s.Repo.ListPosts(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(posts); err == nil {
		cache.CacheFeedPage(ctx, limit, offset, data)
	}
	return posts, nil
}

// DeletePost removes the caller's own post; admins may remove any.
func (s *PostService) DeletePost(ctx context.Context, postID, userID int, isAdmin bool) error {
	post, err := s.Repo.GetPost(ctx, postID)
	if err != nil {
		return errors.New("post not found")
	}
	if post.AuthorID != userID && !isAdmin {
		return ErrForbidden
	}
	if err := s.Repo.DeletePost(ctx, postID); err != nil {
		return err
	}
	if post.ImageKey != "" {
		if err := s.Store.Delete(ctx, post.ImageKey); err != nil {
			s.Logger.Warn("failed to delete post image",
				zap.String("key", post.ImageKey), zap.Error(err))
		}
	}
	cache.InvalidateFeedCaches(ctx)
	return nil
}

// CreateComment adds a comment under a post
func (s *PostService) CreateComment(ctx context.Context, postID, authorID int, body string) (*models.Comment, error) {
	if body == "" {
		return nil, errors.New("comment body is required")
	}
	if _, err := s.Repo.GetPost(ctx, postID); err != nil {
		return nil, errors.New("post not found")
	}
	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.Repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	cache.InvalidateFeedCaches(ctx)
	return comment, nil
}

// ListComments retrieves a post's comments, oldest first
func (s *PostService) ListComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	return s.Repo.ListComments(ctx, postID)
}

// DeleteComment removes the caller's own comment; admins may remove any.
func (s *PostService) DeleteComment(ctx context.Context, commentID, userID int, isAdmin bool) error {
	comment, err := s.Repo.GetComment(ctx, commentID)
	if err != nil {
		return errors.New("comment not found")
	}
	if comment.AuthorID != userID && !isAdmin {
		return ErrForbidden
	}
	if err := s.Repo.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	cache.InvalidateFeedCaches(ctx)
	return nil
}
