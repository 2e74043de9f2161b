package database

import (
	"time"
)

// Profile represents a named participant who can vote, view, rate and comment
type Profile struct {
	ID        uint32    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Film represents a catalogued movie identified by its IMDb id
type Film struct {
	ID                   uint32    `gorm:"primaryKey" json:"id"`
	ImdbID               string    `gorm:"uniqueIndex;not null" json:"imdb_id"`
	Title                string    `gorm:"not null" json:"title"`
	Year                 string    `gorm:"not null" json:"year"`
	OriginalTitle        *string   `json:"original_title"`
	PosterURL            *string   `json:"poster_url"`
	Genre                string    `json:"genre"`
	Director             string    `json:"director"`
	Actors               string    `json:"actors"`
	Plot                 string    `gorm:"type:text" json:"plot"`
	TrailerURL           string    `json:"trailer_url"`
	TeaserText           *string   `gorm:"type:text" json:"teaser_text"`
	SubmittedByProfileID *uint32   `gorm:"index" json:"submitted_by_profile_id"`
	IsArchived           bool      `gorm:"not null;default:false;index" json:"is_archived"`
	ArchiveDate          *string   `json:"archive_date"`
	ArchiveCommentary    *string   `gorm:"type:text" json:"archive_commentary"`
	CreatedAt            time.Time `json:"created_at"`
}

// Vote holds one vote per (film, profile) pair. Value is 1 (upvote),
// -1 (downvote) or 2 (neutral); "no vote" is row absence.
type Vote struct {
	ID        uint32    `gorm:"primaryKey" json:"id"`
	FilmID    uint32    `gorm:"not null;uniqueIndex:idx_votes_film_profile;index" json:"film_id"`
	ProfileID uint32    `gorm:"not null;uniqueIndex:idx_votes_film_profile;index" json:"profile_id"`
	Film      Film      `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE" json:"-"`
	Profile   Profile   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
	Vote      int       `gorm:"not null" json:"vote"`
	VotedAt   time.Time `gorm:"autoCreateTime" json:"voted_at"`
}

// Viewed marks a film as seen by a profile; presence is the whole state
type Viewed struct {
	ID        uint32    `gorm:"primaryKey" json:"id"`
	FilmID    uint32    `gorm:"not null;uniqueIndex:idx_viewed_film_profile;index" json:"film_id"`
	ProfileID uint32    `gorm:"not null;uniqueIndex:idx_viewed_film_profile;index" json:"profile_id"`
	Film      Film      `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE" json:"-"`
	Profile   Profile   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
	ViewedAt  time.Time `gorm:"autoCreateTime" json:"viewed_at"`
}

// TableName keeps the original table name ("viewed", not "vieweds")
func (Viewed) TableName() string {
	return "viewed"
}

// ArchiveRating is a 1-5 star rating on an archived film
type ArchiveRating struct {
	ID        uint32    `gorm:"primaryKey" json:"id"`
	FilmID    uint32    `gorm:"not null;uniqueIndex:idx_archive_ratings_film_profile;index" json:"film_id"`
	ProfileID uint32    `gorm:"not null;uniqueIndex:idx_archive_ratings_film_profile;index" json:"profile_id"`
	Film      Film      `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE" json:"-"`
	Profile   Profile   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArchiveComment is a free-text retrospective note on an archived film
type ArchiveComment struct {
	ID          uint32    `gorm:"primaryKey" json:"id"`
	FilmID      uint32    `gorm:"not null;uniqueIndex:idx_archive_comments_film_profile;index" json:"film_id"`
	ProfileID   uint32    `gorm:"not null;uniqueIndex:idx_archive_comments_film_profile;index" json:"profile_id"`
	Film        Film      `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE" json:"-"`
	Profile     Profile   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
	CommentText string    `gorm:"type:text;not null" json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FilmWithVotes is a film row joined with its per-film vote aggregate.
// TotalScore counts upvotes and downvotes only; neutral votes are listed
// but never scored.
type FilmWithVotes struct {
	Film         `gorm:"embedded"`
	Upvotes      int `json:"upvotes"`
	Downvotes    int `json:"downvotes"`
	NeutralVotes int `json:"neutral_votes"`
	TotalScore   int `json:"total_score"`
}

// RatingWithProfile is a rating row joined with the rater's name
type RatingWithProfile struct {
	ArchiveRating `gorm:"embedded"`
	ProfileName   string `json:"profile_name"`
}

// CommentWithProfile is a comment row joined with the commenter's name
type CommentWithProfile struct {
	ArchiveComment `gorm:"embedded"`
	ProfileName    string `json:"profile_name"`
}
