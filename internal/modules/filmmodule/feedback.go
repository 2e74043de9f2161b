package filmmodule

import (
	"errors"
	"strings"
	"time"

	"github.com/mantonx/paradiso/internal/database"
	"gorm.io/gorm"
)

// Validation failures raised before anything touches storage
var (
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrEmptyComment     = errors.New("comment text cannot be empty")
)

// UpsertRating records or changes a star rating for a (film, profile) pair.
// Reports "created" or "updated".
func (r *Repository) UpsertRating(filmID, profileID uint32, rating int) (string, error) {
	if rating < 1 || rating > 5 {
		return "", ErrRatingOutOfRange
	}

	var existing database.ArchiveRating
	err := r.db.Where("film_id = ? AND profile_id = ?", filmID, profileID).
		First(&existing).Error
	if err == nil {
		updateErr := r.db.Model(&database.ArchiveRating{}).
			Where("film_id = ? AND profile_id = ?", filmID, profileID).
			Updates(map[string]interface{}{
				"rating":     rating,
				"updated_at": time.Now(),
			}).Error
		if updateErr != nil {
			return "", updateErr
		}
		return "updated", nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	newRating := database.ArchiveRating{FilmID: filmID, ProfileID: profileID, Rating: rating}
	if err := r.db.Create(&newRating).Error; err != nil {
		return "", err
	}
	return "created", nil
}

// GetFilmRatings returns all ratings for a film with the rater's name,
// newest first
func (r *Repository) GetFilmRatings(filmID uint32) ([]database.RatingWithProfile, error) {
	ratings := []database.RatingWithProfile{}
	err := r.db.Raw(`SELECT ar.*, p.name AS profile_name
		FROM archive_ratings ar
		JOIN profiles p ON ar.profile_id = p.id
		WHERE ar.film_id = ?
		ORDER BY ar.created_at DESC`, filmID).Scan(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// DeleteRating removes a profile's rating for a film. Returns false if no
// rating existed.
func (r *Repository) DeleteRating(filmID, profileID uint32) (bool, error) {
	result := r.db.Where("film_id = ? AND profile_id = ?", filmID, profileID).
		Delete(&database.ArchiveRating{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpsertComment records or changes a retrospective comment for a
// (film, profile) pair. Text is trimmed; empty text is rejected.
// Reports "created" or "updated".
func (r *Repository) UpsertComment(filmID, profileID uint32, commentText string) (string, error) {
	text := strings.TrimSpace(commentText)
	if text == "" {
		return "", ErrEmptyComment
	}

	var existing database.ArchiveComment
	err := r.db.Where("film_id = ? AND profile_id = ?", filmID, profileID).
		First(&existing).Error
	if err == nil {
		updateErr := r.db.Model(&database.ArchiveComment{}).
			Where("film_id = ? AND profile_id = ?", filmID, profileID).
			Updates(map[string]interface{}{
				"comment_text": text,
				"updated_at":   time.Now(),
			}).Error
		if updateErr != nil {
			return "", updateErr
		}
		return "updated", nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	newComment := database.ArchiveComment{FilmID: filmID, ProfileID: profileID, CommentText: text}
	if err := r.db.Create(&newComment).Error; err != nil {
		return "", err
	}
	return "created", nil
}

// GetFilmComments returns all comments for a film with the commenter's name,
// newest first
func (r *Repository) GetFilmComments(filmID uint32) ([]database.CommentWithProfile, error) {
	comments := []database.CommentWithProfile{}
	err := r.db.Raw(`SELECT ac.*, p.name AS profile_name
		FROM archive_comments ac
		JOIN profiles p ON ac.profile_id = p.id
		WHERE ac.film_id = ?
		ORDER BY ac.created_at DESC`, filmID).Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes a profile's comment for a film. Returns false if no
// comment existed.
func (r *Repository) DeleteComment(filmID, profileID uint32) (bool, error) {
	result := r.db.Where("film_id = ? AND profile_id = ?", filmID, profileID).
		Delete(&database.ArchiveComment{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
