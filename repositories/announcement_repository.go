package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/house7784/golf-trip-app/models"
)

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrAnnouncementInvalid  = errors.New("announcement event or author invalid")
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	FindByID(ctx context.Context, id int) (*models.Announcement, error)
	// ListByEvent returns announcements newest first, authors preloaded.
	ListByEvent(ctx context.Context, eventID int) ([]*models.Announcement, error)
	Delete(ctx context.Context, id int) error
}

type postgresAnnouncementRepository struct {
	db *sql.DB
}

func NewPostgresAnnouncementRepository(db *sql.DB) AnnouncementRepository {
	return &postgresAnnouncementRepository{db: db}
}

func (r *postgresAnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	query := `
		INSERT INTO announcements (event_id, author_id, message, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		announcement.EventID, announcement.AuthorID, announcement.Message).
		Scan(&announcement.ID, &announcement.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrAnnouncementInvalid
		}
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *postgresAnnouncementRepository) FindByID(ctx context.Context, id int) (*models.Announcement, error) {
	var a models.Announcement
	query := `
		SELECT id, event_id, author_id, message, created_at
		FROM announcements WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.EventID, &a.AuthorID, &a.Message, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresAnnouncementRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.Announcement, error) {
	query := `
		SELECT a.id, a.event_id, a.author_id, a.message, a.created_at,
		       u.full_name, u.email
		FROM announcements a
		JOIN users u ON u.id = a.author_id
		WHERE a.event_id = $1
		ORDER BY a.created_at DESC, a.id DESC`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	announcements := make([]*models.Announcement, 0)
	for rows.Next() {
		var a models.Announcement
		var author models.User
		err := rows.Scan(&a.ID, &a.EventID, &a.AuthorID, &a.Message, &a.CreatedAt,
			&author.FullName, &author.Email)
		if err != nil {
			return nil, err
		}
		author.ID = a.AuthorID
		a.Author = &author
		announcements = append(announcements, &a)
	}
	return announcements, rows.Err()
}

func (r *postgresAnnouncementRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	return checkAffectedRows(result, ErrAnnouncementNotFound)
}
