package filmmodule

import (
	"errors"

	"github.com/mantonx/paradiso/internal/database"
	"gorm.io/gorm"
)

// Repository owns all film reads and writes
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a film repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// filmAggregateSelect joins films with their per-film vote tallies.
// totalScore sums upvotes and downvotes only; neutral votes (2) are counted
// separately and never scored.
const filmAggregateSelect = `SELECT f.*,
	COALESCE(SUM(CASE WHEN v.vote = 1 THEN 1 ELSE 0 END), 0) AS upvotes,
	COALESCE(SUM(CASE WHEN v.vote = -1 THEN 1 ELSE 0 END), 0) AS downvotes,
	COALESCE(SUM(CASE WHEN v.vote = 2 THEN 1 ELSE 0 END), 0) AS neutral_votes,
	COALESCE(SUM(CASE WHEN v.vote IN (1, -1) THEN v.vote ELSE 0 END), 0) AS total_score
FROM films f`

// ListFilms returns films with vote aggregates. When profileIDs is non-empty,
// only votes from those profiles are tallied; the restriction lives inside the
// outer join so films with no matching votes still appear with zero counts.
func (r *Repository) ListFilms(archived bool, profileIDs []uint32) ([]database.FilmWithVotes, error) {
	query := filmAggregateSelect
	args := []interface{}{}

	if len(profileIDs) > 0 {
		query += " LEFT JOIN votes v ON f.id = v.film_id AND v.profile_id IN ?"
		args = append(args, profileIDs)
	} else {
		query += " LEFT JOIN votes v ON f.id = v.film_id"
	}

	query += " WHERE f.is_archived = ? GROUP BY f.id"
	args = append(args, archived)

	if archived {
		// archive_date is a plain date string; fall back to created_at for
		// films archived before the date field existed
		query += " ORDER BY COALESCE(f.archive_date, CAST(f.created_at AS TEXT)) DESC"
	} else {
		query += " ORDER BY total_score DESC, f.created_at DESC"
	}

	var films []database.FilmWithVotes
	if err := r.db.Raw(query, args...).Scan(&films).Error; err != nil {
		return nil, err
	}
	return films, nil
}

// ListAllFilms returns every film regardless of archive state, newest first.
// Used by the original-title backfill.
func (r *Repository) ListAllFilms() ([]database.Film, error) {
	var films []database.Film
	if err := r.db.Order("created_at DESC").Find(&films).Error; err != nil {
		return nil, err
	}
	return films, nil
}

// CreateFilm inserts a new film. The unique constraint on imdb_id is the
// backstop for concurrent adds of the same title.
func (r *Repository) CreateFilm(film *database.Film) error {
	return r.db.Create(film).Error
}

// GetByImdbID returns the film with the given IMDb id, or nil
func (r *Repository) GetByImdbID(imdbID string) (*database.Film, error) {
	var film database.Film
	err := r.db.Where("imdb_id = ?", imdbID).First(&film).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// GetByID returns the film with the given id, or nil
func (r *Repository) GetByID(id uint32) (*database.Film, error) {
	var film database.Film
	err := r.db.First(&film, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// Delete removes a film; dependent votes, viewed marks, ratings and comments
// cascade in the storage engine. Returns false if it never existed.
func (r *Repository) Delete(id uint32) (bool, error) {
	result := r.db.Delete(&database.Film{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateTeaser sets the teaser text and its submitter. Returns false if the
// film does not exist.
func (r *Repository) UpdateTeaser(filmID uint32, teaserText string, submittedBy *uint32) (bool, error) {
	return r.updateFilmColumns(filmID, map[string]interface{}{
		"teaser_text":             teaserText,
		"submitted_by_profile_id": submittedBy,
	})
}

// DeleteTeaser nulls out the teaser text and submitter together
func (r *Repository) DeleteTeaser(filmID uint32) (bool, error) {
	return r.updateFilmColumns(filmID, map[string]interface{}{
		"teaser_text":             nil,
		"submitted_by_profile_id": nil,
	})
}

// ToggleArchive flips the archive flag. Returns the resulting state and
// whether the film existed. Archive metadata is left untouched either way.
func (r *Repository) ToggleArchive(filmID uint32) (archived bool, existed bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var film database.Film
		txErr := tx.First(&film, filmID).Error
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return nil
		}
		if txErr != nil {
			return txErr
		}

		existed = true
		archived = !film.IsArchived
		return tx.Model(&database.Film{}).Where("id = ?", filmID).
			Update("is_archived", archived).Error
	})
	if err != nil {
		return false, false, err
	}
	return archived, existed, nil
}

// UpdateArchiveMetadata overwrites the archive date and commentary. Passing
// nil clears a field. Returns false if the film does not exist.
func (r *Repository) UpdateArchiveMetadata(filmID uint32, archiveDate, archiveCommentary *string) (bool, error) {
	return r.updateFilmColumns(filmID, map[string]interface{}{
		"archive_date":       archiveDate,
		"archive_commentary": archiveCommentary,
	})
}

// UpdateOriginalTitle sets or clears the original title for a film
func (r *Repository) UpdateOriginalTitle(filmID uint32, originalTitle *string) (bool, error) {
	return r.updateFilmColumns(filmID, map[string]interface{}{
		"original_title": originalTitle,
	})
}

func (r *Repository) updateFilmColumns(filmID uint32, columns map[string]interface{}) (bool, error) {
	var existed bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var film database.Film
		txErr := tx.Select("id").First(&film, filmID).Error
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return nil
		}
		if txErr != nil {
			return txErr
		}

		existed = true
		return tx.Model(&database.Film{}).Where("id = ?", filmID).
			Updates(columns).Error
	})
	if err != nil {
		return false, err
	}
	return existed, nil
}
