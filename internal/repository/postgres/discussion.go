package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shlok-baraskar/skill-swap-hub/internal/apperrors"
	"github.com/shlok-baraskar/skill-swap-hub/internal/domain"
	"github.com/shlok-baraskar/skill-swap-hub/internal/repository"
)

var discussionColumns = []string{
	"id", "title", "content", "author_id", "category", "tags", "views",
	"is_pinned", "is_closed", "last_activity", "created_at", "updated_at",
}

var replyColumns = []string{
	"id", "discussion_id", "author_id", "content", "created_at",
}

type DiscussionRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewDiscussionRepository(db *sqlx.DB, log *slog.Logger) *DiscussionRepository {
	return &DiscussionRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *DiscussionRepository) CreateDiscussion(ctx context.Context, discussion *domain.Discussion) error {
	const op = "internal.repository.postgres.CreateDiscussion"

	query, args, err := r.sq.Insert("discussions").
		Columns("id", "title", "content", "author_id", "category", "tags",
			"last_activity").
		Values(discussion.ID, discussion.Title, discussion.Content,
			discussion.AuthorID, discussion.Category, discussion.Tags,
			discussion.LastActivity).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w: author with id '%s'", op, apperrors.ErrNotFound, discussion.AuthorID)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *DiscussionRepository) GetDiscussionByID(ctx context.Context, discussionID string) (*domain.Discussion, error) {
	const op = "internal.repository.postgres.GetDiscussionByID"

	query, args, err := r.sq.Select(discussionColumns...).
		From("discussions").
		Where(sq.Eq{"id": discussionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var discussion domain.Discussion
	if err := r.db.GetContext(ctx, &discussion, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: discussion with id '%s'", op, apperrors.ErrNotFound, discussionID)
		}

		return nil, fmt.Errorf("%s: failed to get discussion: %w", op, err)
	}

	likes, err := selectMembers(ctx, r.db, r.sq, "discussion_likes", "discussion_id", discussionID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load likes: %w", op, err)
	}
	discussion.LikeIDs = likes

	replies, err := r.listReplies(ctx, discussionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	discussion.Replies = replies

	return &discussion, nil
}

func (r *DiscussionRepository) listReplies(ctx context.Context, discussionID string) ([]domain.Reply, error) {
	query, args, err := r.sq.Select(replyColumns...).
		From("discussion_replies").
		Where(sq.Eq{"discussion_id": discussionID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build replies query: %w", err)
	}

	var replies []domain.Reply
	if err := r.db.SelectContext(ctx, &replies, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select replies: %w", err)
	}

	for i := range replies {
		likes, err := selectMembers(ctx, r.db, r.sq, "reply_likes", "reply_id", replies[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load reply likes: %w", err)
		}
		replies[i].LikeIDs = likes
	}

	return replies, nil
}

func (r *DiscussionRepository) IncrementViews(ctx context.Context, discussionID string) error {
	const op = "internal.repository.postgres.IncrementViews"

	query, args, err := r.sq.Update("discussions").
		Set("views", sq.Expr("views + 1")).
		Where(sq.Eq{"id": discussionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return nil
}

func (r *DiscussionRepository) ListDiscussions(ctx context.Context, filter repository.DiscussionFilter) ([]domain.Discussion, int, error) {
	const op = "internal.repository.postgres.ListDiscussions"

	conds := sq.And{}
	if filter.Category != "" && filter.Category != "all" {
		conds = append(conds, sq.Eq{"category": filter.Category})
	}
	if filter.Sort == "unanswered" {
		conds = append(conds, sq.Expr(
			"NOT EXISTS (SELECT 1 FROM discussion_replies dr WHERE dr.discussion_id = discussions.id)",
		))
	}

	countBuilder := r.sq.Select("COUNT(*)").From("discussions")
	if len(conds) > 0 {
		countBuilder = countBuilder.Where(conds)
	}

	countQuery, args, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build count query: %w", op, err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count discussions: %w", op, err)
	}

	// Pinned discussions always surface first.
	var order string
	switch filter.Sort {
	case "popular":
		order = "views DESC"
	default:
		order = "last_activity DESC"
	}

	page, limit := normalizePage(filter.Page, filter.Limit, 20)

	builder := r.sq.Select(discussionColumns...).
		From("discussions").
		OrderBy("is_pinned DESC", order).
		Offset(uint64((page - 1) * limit)).
		Limit(uint64(limit))
	if len(conds) > 0 {
		builder = builder.Where(conds)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var discussions []domain.Discussion
	if err := r.db.SelectContext(ctx, &discussions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to select discussions: %w", op, err)
	}

	return discussions, total, nil
}

func (r *DiscussionRepository) DeleteDiscussion(ctx context.Context, discussionID string) error {
	const op = "internal.repository.postgres.DeleteDiscussion"

	// Replies and like rows go with it via ON DELETE CASCADE.
	query, args, err := r.sq.Delete("discussions").
		Where(sq.Eq{"id": discussionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: discussion with id '%s'", op, apperrors.ErrNotFound, discussionID)
	}

	return nil
}

func (r *DiscussionRepository) AppendReply(ctx context.Context, tx *sqlx.Tx, reply *domain.Reply, lastActivity time.Time) error {
	const op = "internal.repository.postgres.AppendReply"

	insertQuery, args, err := r.sq.Insert("discussion_replies").
		Columns("id", "discussion_id", "author_id", "content", "created_at").
		Values(reply.ID, reply.DiscussionID, reply.AuthorID, reply.Content, reply.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w: discussion with id '%s'", op, apperrors.ErrNotFound, reply.DiscussionID)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	updateQuery, args, err := r.sq.Update("discussions").
		Set("last_activity", lastActivity).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": reply.DiscussionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, updateQuery, args...); err != nil {
		return fmt.Errorf("%s: failed to bump last activity: %w", op, err)
	}

	return nil
}

func (r *DiscussionRepository) ToggleLike(ctx context.Context, discussionID string, userID string) (*domain.ToggleResult, error) {
	const op = "internal.repository.postgres.ToggleLike"

	result, err := toggleMembership(ctx, r.db, r.log, r.sq, "discussion_likes", "discussion_id", discussionID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (r *DiscussionRepository) ToggleReplyLike(ctx context.Context, discussionID, replyID, userID string) (*domain.ToggleResult, error) {
	const op = "internal.repository.postgres.ToggleReplyLike"

	query, args, err := r.sq.Select("1").
		From("discussion_replies").
		Where(sq.Eq{"id": replyID, "discussion_id": discussionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: reply with id '%s'", op, apperrors.ErrNotFound, replyID)
		}

		return nil, fmt.Errorf("%s: failed to check reply: %w", op, err)
	}

	result, err := toggleMembership(ctx, r.db, r.log, r.sq, "reply_likes", "reply_id", replyID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (r *DiscussionRepository) Trending(ctx context.Context, limit int) ([]domain.TrendingTopic, error) {
	const op = "internal.repository.postgres.Trending"

	if limit <= 0 {
		limit = 10
	}

	// score = replies + 2*likes + views/10, same weighting the community
	// page has always used.
	query, args, err := r.sq.Select(
		"d.id", "d.title", "d.category",
		"COALESCE(rc.n, 0) AS reply_count",
		"COALESCE(lc.n, 0) AS likes_count",
		"d.views",
		"COALESCE(rc.n, 0) + COALESCE(lc.n, 0) * 2 + d.views / 10.0 AS score",
	).
		From("discussions d").
		LeftJoin("(SELECT discussion_id, COUNT(*) AS n FROM discussion_replies GROUP BY discussion_id) rc ON rc.discussion_id = d.id").
		LeftJoin("(SELECT discussion_id, COUNT(*) AS n FROM discussion_likes GROUP BY discussion_id) lc ON lc.discussion_id = d.id").
		OrderBy("score DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var topics []domain.TrendingTopic
	if err := r.db.SelectContext(ctx, &topics, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select trending topics: %w", op, err)
	}

	return topics, nil
}
