package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

type PostRepository struct {
	DB *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{DB: db}
}

// CreatePost publishes a post to the community feed
func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (author_id, body, image_key, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		post.AuthorID, post.Body, post.ImageKey, post.ImageURL,
	).Scan(&post.ID, &post.CreatedAt)
}

// GetPost retrieves a post with its author name and comment count
func (r *PostRepository) GetPost(ctx context.Context, id int) (*models.Post, error) {
	query := `
		SELECT p.id, p.author_id, u.name, p.body, p.image_key, p.image_url, p.created_at,
		       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`
	post := &models.Post{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.AuthorName, &post.Body,
		&post.ImageKey, &post.ImageURL, &post.CreatedAt, &post.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts retrieves the feed newest first with a limit/offset window
func (r *PostRepository) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	query := `
		SELECT p.id, p.author_id, u.name, p.body, p.image_key, p.image_url, p.created_at,
		       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post := &models.Post{}
		err := rows.Scan(
			&post.ID, &post.AuthorID, &post.AuthorName, &post.Body,
			&post.ImageKey, &post.ImageURL, &post.CreatedAt, &post.CommentCount,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// DeletePost removes a post; its comments cascade away
func (r *PostRepository) DeletePost(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

// CreateComment adds a comment under a post
func (r *PostRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		comment.PostID, comment.AuthorID, comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt)
}

// GetComment retrieves a comment by ID
func (r *PostRepository) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, u.name, c.body, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1
	`
	comment := &models.Comment{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.AuthorID, &comment.AuthorName,
		&comment.Body, &comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments retrieves a post's comments oldest first
func (r *PostRepository) ListComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, u.name, c.body, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`
	rows, err := r.DB.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment := &models.Comment{}
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID, &comment.AuthorName,
			&comment.Body, &comment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// DeleteComment removes a comment
func (r *PostRepository) DeleteComment(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}
