package service

import (
	"context"
	"strings"

	"wanderlog/internal/models"
	"wanderlog/internal/repository"
)

type TravelLogService struct {
	logRepo     repository.TravelLogRepository
	commentRepo repository.CommentRepository
}

type CreateLogInput struct {
	UserID      uint
	Title       string
	Description string
	Location    string
	Tags        []string
	ImageURL    string
}

type ListLogsInput struct {
	Limit  int
	Offset int
}

type UpdateLogInput struct {
	UserID      uint
	LogID       uint
	Title       string
	Description string
	Location    string
	Tags        []string
	ImageURL    string
}

type DeleteLogInput struct {
	UserID uint
	LogID  uint
}

type CreateCommentInput struct {
	UserID  uint
	LogID   uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	LogID     uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	LogID     uint
	CommentID uint
}

func NewTravelLogService(
	logRepo repository.TravelLogRepository,
	commentRepo repository.CommentRepository,
) *TravelLogService {
	return &TravelLogService{
		logRepo:     logRepo,
		commentRepo: commentRepo,
	}
}

const (
	maxTitleLen       = 200
	maxLocationLen    = 200
	maxDescriptionLen = 50000
	maxCommentLen     = 10000
	maxTags           = 20
)

// normalizeTags trims whitespace and drops empty entries.
func normalizeTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func validateLogFields(title, description, location string, tags []string) error {
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 200 characters)")
	}
	if description == "" {
		return models.NewValidationError("Description is required")
	}
	if len(description) > maxDescriptionLen {
		return models.NewValidationError("Description too long (max 50000 characters)")
	}
	if location == "" {
		return models.NewValidationError("Location is required")
	}
	if len(location) > maxLocationLen {
		return models.NewValidationError("Location too long (max 200 characters)")
	}
	if len(tags) > maxTags {
		return models.NewValidationError("Too many tags (max 20)")
	}
	return nil
}

func (s *TravelLogService) CreateLog(ctx context.Context, in CreateLogInput) (*models.TravelLog, error) {
	tags := normalizeTags(in.Tags)
	if err := validateLogFields(in.Title, in.Description, in.Location, tags); err != nil {
		return nil, err
	}

	log := &models.TravelLog{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Tags:        tags,
		ImageURL:    in.ImageURL,
		UserID:      in.UserID,
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return s.logRepo.GetByID(ctx, log.ID)
}

func (s *TravelLogService) ListLogs(ctx context.Context, in ListLogsInput) ([]*models.TravelLog, error) {
	return s.logRepo.List(ctx, in.Limit, in.Offset)
}

func (s *TravelLogService) GetLog(ctx context.Context, id uint) (*models.TravelLog, error) {
	return s.logRepo.GetByID(ctx, id)
}

func (s *TravelLogService) GetUserLogs(ctx context.Context, userID uint, limit, offset int) ([]*models.TravelLog, error) {
	return s.logRepo.GetByUserID(ctx, userID, limit, offset)
}

func (s *TravelLogService) UpdateLog(ctx context.Context, in UpdateLogInput) (*models.TravelLog, error) {
	log, err := s.logRepo.GetByID(ctx, in.LogID)
	if err != nil {
		return nil, err
	}

	if log.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own travel logs")
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		log.Title = in.Title
	}
	if in.Description != "" {
		if len(in.Description) > maxDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 50000 characters)")
		}
		log.Description = in.Description
	}
	if in.Location != "" {
		if len(in.Location) > maxLocationLen {
			return nil, models.NewValidationError("Location too long (max 200 characters)")
		}
		log.Location = in.Location
	}
	if in.Tags != nil {
		tags := normalizeTags(in.Tags)
		if len(tags) > maxTags {
			return nil, models.NewValidationError("Too many tags (max 20)")
		}
		log.Tags = tags
	}
	if in.ImageURL != "" {
		log.ImageURL = in.ImageURL
	}

	if err := s.logRepo.Update(ctx, log); err != nil {
		return nil, err
	}
	return s.logRepo.GetByID(ctx, in.LogID)
}

func (s *TravelLogService) DeleteLog(ctx context.Context, in DeleteLogInput) error {
	log, err := s.logRepo.GetByID(ctx, in.LogID)
	if err != nil {
		return err
	}

	if log.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own travel logs")
	}

	return s.logRepo.Delete(ctx, in.LogID)
}

// ToggleLike flips the caller's membership in the log's like set and
// returns the refreshed log. Liking an already-liked log removes the
// like; the set never holds duplicates.
func (s *TravelLogService) ToggleLike(ctx context.Context, userID, logID uint) (*models.TravelLog, bool, error) {
	if _, err := s.logRepo.GetByID(ctx, logID); err != nil {
		return nil, false, err
	}

	isLiked, err := s.logRepo.IsLiked(ctx, userID, logID)
	if err != nil {
		return nil, false, err
	}

	if isLiked {
		if err := s.logRepo.Unlike(ctx, userID, logID); err != nil {
			return nil, false, err
		}
	} else {
		if err := s.logRepo.Like(ctx, userID, logID); err != nil {
			return nil, false, err
		}
	}

	log, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		return nil, false, err
	}
	return log, !isLiked, nil
}

func (s *TravelLogService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.TravelLog, error) {
	// Content is checked before the log lookup so a bad body is always a
	// validation error, even when the log does not exist.
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if _, err := s.logRepo.GetByID(ctx, in.LogID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:     in.Content,
		UserID:      in.UserID,
		TravelLogID: in.LogID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.logRepo.GetByID(ctx, in.LogID)
}

func (s *TravelLogService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.TravelLog, error) {
	comment, err := s.findLogComment(ctx, in.LogID, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.logRepo.GetByID(ctx, in.LogID)
}

func (s *TravelLogService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.TravelLog, error) {
	comment, err := s.findLogComment(ctx, in.LogID, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}

	return s.logRepo.GetByID(ctx, in.LogID)
}

// findLogComment loads the comment only if both the log and the comment
// exist and the comment belongs to that log. A comment attached to a
// different log is reported as a missing comment, not a missing log.
func (s *TravelLogService) findLogComment(ctx context.Context, logID, commentID uint) (*models.Comment, error) {
	if _, err := s.logRepo.GetByID(ctx, logID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.TravelLogID != logID {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	return comment, nil
}
