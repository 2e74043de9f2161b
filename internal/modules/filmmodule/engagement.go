package filmmodule

import (
	"errors"
	"time"

	"github.com/mantonx/paradiso/internal/database"
	"gorm.io/gorm"
)

// Vote upsert outcomes reported back to the caller
const (
	VoteCreated = "created"
	VoteUpdated = "updated"
	VoteRemoved = "removed"
	VoteNone    = "no_vote"
)

// UpsertVote records, changes or removes a vote for a (film, profile) pair.
// A vote of 0 removes any existing row; removing a vote that never existed
// reports "no_vote". Concurrent first votes are arbitrated by the unique
// constraint: the loser lands on the update path and reports "updated".
func (r *Repository) UpsertVote(filmID, profileID uint32, vote int) (string, error) {
	var existing database.Vote
	err := r.db.Where("film_id = ? AND profile_id = ?", filmID, profileID).
		First(&existing).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	if vote == 0 {
		if !found {
			return VoteNone, nil
		}
		if err := r.db.Where("film_id = ? AND profile_id = ?", filmID, profileID).
			Delete(&database.Vote{}).Error; err != nil {
			return "", err
		}
		return VoteRemoved, nil
	}

	if found {
		if err := r.updateVote(filmID, profileID, vote); err != nil {
			return "", err
		}
		return VoteUpdated, nil
	}

	newVote := database.Vote{FilmID: filmID, ProfileID: profileID, Vote: vote}
	if err := r.db.Create(&newVote).Error; err != nil {
		// Lost a race against a concurrent first vote for this pair
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if updateErr := r.updateVote(filmID, profileID, vote); updateErr != nil {
				return "", updateErr
			}
			return VoteUpdated, nil
		}
		return "", err
	}
	return VoteCreated, nil
}

func (r *Repository) updateVote(filmID, profileID uint32, vote int) error {
	return r.db.Model(&database.Vote{}).
		Where("film_id = ? AND profile_id = ?", filmID, profileID).
		Updates(map[string]interface{}{
			"vote":     vote,
			"voted_at": time.Now(),
		}).Error
}

// GetUserVotes returns a profile's votes keyed by film id
func (r *Repository) GetUserVotes(profileID uint32) (map[uint32]int, error) {
	var votes []database.Vote
	if err := r.db.Where("profile_id = ?", profileID).Find(&votes).Error; err != nil {
		return nil, err
	}

	result := make(map[uint32]int, len(votes))
	for _, v := range votes {
		result[v.FilmID] = v.Vote
	}
	return result, nil
}

// FilmVoters partitions a film's voters by vote direction. Neutral voters
// are listed even though they never affect the score.
type FilmVoters struct {
	Upvoters      []string `json:"upvoters"`
	Downvoters    []string `json:"downvoters"`
	Neutralvoters []string `json:"neutralvoters"`
}

// GetFilmVoters returns the names of everyone who voted on a film,
// partitioned by vote direction
func (r *Repository) GetFilmVoters(filmID uint32) (*FilmVoters, error) {
	var rows []struct {
		Name string
		Vote int
	}
	err := r.db.Raw(`SELECT p.name, v.vote
		FROM votes v
		JOIN profiles p ON v.profile_id = p.id
		WHERE v.film_id = ?`, filmID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	voters := &FilmVoters{
		Upvoters:      []string{},
		Downvoters:    []string{},
		Neutralvoters: []string{},
	}
	for _, row := range rows {
		switch row.Vote {
		case 1:
			voters.Upvoters = append(voters.Upvoters, row.Name)
		case -1:
			voters.Downvoters = append(voters.Downvoters, row.Name)
		case 2:
			voters.Neutralvoters = append(voters.Neutralvoters, row.Name)
		}
	}
	return voters, nil
}

// ToggleViewed flips the viewed mark for a (film, profile) pair. Returns
// true when the film is now marked viewed.
func (r *Repository) ToggleViewed(filmID, profileID uint32) (bool, error) {
	var existing database.Viewed
	err := r.db.Where("film_id = ? AND profile_id = ?", filmID, profileID).
		First(&existing).Error
	if err == nil {
		if delErr := r.db.Where("film_id = ? AND profile_id = ?", filmID, profileID).
			Delete(&database.Viewed{}).Error; delErr != nil {
			return false, delErr
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	mark := database.Viewed{FilmID: filmID, ProfileID: profileID}
	if err := r.db.Create(&mark).Error; err != nil {
		// Concurrent toggle already created the mark; presence wins
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// GetUserViewed returns the ids of every film a profile has marked viewed
func (r *Repository) GetUserViewed(profileID uint32) ([]uint32, error) {
	var filmIDs []uint32
	err := r.db.Model(&database.Viewed{}).
		Where("profile_id = ?", profileID).
		Pluck("film_id", &filmIDs).Error
	if err != nil {
		return nil, err
	}
	return filmIDs, nil
}

// GetFilmViewers returns the names of profiles who marked a film viewed,
// alphabetically, optionally restricted to a set of profile ids
func (r *Repository) GetFilmViewers(filmID uint32, profileIDs []uint32) ([]string, error) {
	query := `SELECT p.name
		FROM viewed v
		JOIN profiles p ON v.profile_id = p.id
		WHERE v.film_id = ?`
	args := []interface{}{filmID}

	if len(profileIDs) > 0 {
		query += " AND v.profile_id IN ?"
		args = append(args, profileIDs)
	}
	query += " ORDER BY p.name"

	names := []string{}
	if err := r.db.Raw(query, args...).Scan(&names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
