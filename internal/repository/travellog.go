// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"wanderlog/internal/models"

	"gorm.io/gorm"
)

// TravelLogRepository defines the interface for travel log data operations.
type TravelLogRepository interface {
	Create(ctx context.Context, log *models.TravelLog) error
	GetByID(ctx context.Context, id uint) (*models.TravelLog, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.TravelLog, error)
	List(ctx context.Context, limit, offset int) ([]*models.TravelLog, error)
	Update(ctx context.Context, log *models.TravelLog) error
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, logID uint) (bool, error)
	Like(ctx context.Context, userID, logID uint) error
	Unlike(ctx context.Context, userID, logID uint) error
}

// travelLogRepository implements TravelLogRepository
type travelLogRepository struct {
	db *gorm.DB
}

// NewTravelLogRepository creates a new travel log repository
func NewTravelLogRepository(db *gorm.DB) TravelLogRepository {
	return &travelLogRepository{db: db}
}

func (r *travelLogRepository) Create(ctx context.Context, log *models.TravelLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *travelLogRepository) GetByID(ctx context.Context, id uint) (*models.TravelLog, error) {
	var log models.TravelLog
	err := r.applyLogDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Comments", commentOrder).
		Preload("Comments.User").
		First(&log, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Travel log", id)
		}
		return nil, models.NewInternalError(err)
	}

	logs := []*models.TravelLog{&log}
	if err := r.attachLikes(ctx, logs); err != nil {
		return nil, err
	}
	resolveAll(logs)
	return &log, nil
}

func (r *travelLogRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.TravelLog, error) {
	var logs []*models.TravelLog
	err := r.applyLogDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Comments", commentOrder).
		Preload("Comments.User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachLikes(ctx, logs); err != nil {
		return nil, err
	}
	resolveAll(logs)
	return logs, nil
}

func (r *travelLogRepository) List(ctx context.Context, limit, offset int) ([]*models.TravelLog, error) {
	var logs []*models.TravelLog
	err := r.applyLogDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Comments", commentOrder).
		Preload("Comments.User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachLikes(ctx, logs); err != nil {
		return nil, err
	}
	resolveAll(logs)
	return logs, nil
}

// commentOrder keeps embedded comments in insertion order.
func commentOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

// applyLogDetails adds subqueries to fetch counts in a single query.
func (r *travelLogRepository) applyLogDetails(db *gorm.DB) *gorm.DB {
	return db.Select("travel_logs.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.travel_log_id = travel_logs.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.travel_log_id = travel_logs.id) as likes_count")
}

// attachLikes loads liking-user IDs for the given logs in a single query.
func (r *travelLogRepository) attachLikes(ctx context.Context, logs []*models.TravelLog) error {
	if len(logs) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(logs))
	for _, l := range logs {
		ids = append(ids, l.ID)
	}

	var rows []models.Like
	if err := r.db.WithContext(ctx).
		Where("travel_log_id IN ?", ids).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return models.NewInternalError(err)
	}

	byLog := make(map[uint][]uint, len(logs))
	for _, row := range rows {
		byLog[row.TravelLogID] = append(byLog[row.TravelLogID], row.UserID)
	}
	for _, l := range logs {
		l.Likes = byLog[l.ID]
	}
	return nil
}

// resolveAll recomputes the author projections on every read.
func resolveAll(logs []*models.TravelLog) {
	for _, l := range logs {
		l.Resolve()
	}
}

func (r *travelLogRepository) Update(ctx context.Context, log *models.TravelLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

// Delete removes the log together with its owned comments and likes.
func (r *travelLogRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("travel_log_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("travel_log_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TravelLog{}, id).Error
	})
}

func (r *travelLogRepository) IsLiked(ctx context.Context, userID, logID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND travel_log_id = ?", userID, logID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *travelLogRepository) Like(ctx context.Context, userID, logID uint) error {
	// INSERT ... ON CONFLICT DO NOTHING is atomic: concurrent likes from the
	// same user collapse into a single membership row.
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, travel_log_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, travel_log_id) DO NOTHING`,
		userID, logID,
	).Error
}

func (r *travelLogRepository) Unlike(ctx context.Context, userID, logID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND travel_log_id = ?", userID, logID).
		Delete(&models.Like{}).Error
}
