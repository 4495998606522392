package movie

import (
	"strings"
	"time"

	"theater/errs"
)

// Status is the release status of a movie. It carries no transitions;
// callers set it freely to one of the three literals.
type Status string

const (
	StatusReleased       Status = "Released"
	StatusPostProduction Status = "Post Production"
	StatusInProduction   Status = "In Production"
)

func (s Status) Valid() bool {
	switch s {
	case StatusReleased, StatusPostProduction, StatusInProduction:
		return true
	}
	return false
}

var (
	ErrMovieNotFound = errs.Errorf(errs.ENOTFOUND, "Movie with the given ID was not found.")
	ErrNoMovies      = errs.Errorf(errs.ENOTFOUND, "No movies found.")

	ErrInvalidName    = errs.Errorf(errs.EINVALID, "movie: name must be non-blank and at most 255 characters")
	ErrInvalidScore   = errs.Errorf(errs.EINVALID, "movie: score must be between 0 and 100")
	ErrInvalidStatus  = errs.Errorf(errs.EINVALID, "movie: status must be one of Released, Post Production, In Production")
	ErrInvalidBudget  = errs.Errorf(errs.EINVALID, "movie: budget must not be negative")
	ErrInvalidRevenue = errs.Errorf(errs.EINVALID, "movie: revenue must not be negative")
	ErrInvalidCountry = errs.Errorf(errs.EINVALID, "movie: country must be a 3-letter code")
	ErrInvalidPage    = errs.Errorf(errs.EINVALID, "movie: page must be at least 1")
	ErrInvalidPerPage = errs.Errorf(errs.EINVALID, "movie: per_page must be between 1 and 20")
)

// ErrDuplicateMovie reports a (name, release date) pair that already
// exists in the catalog.
func ErrDuplicateMovie(name string, date time.Time) *errs.Error {
	return errs.Errorf(errs.ECONFLICT,
		"A movie with the name '%s' and release date '%s' already exists.",
		name, date.Format(DateLayout))
}

// DateLayout is the wire format for release dates.
const DateLayout = "2006-01-02"

type Country struct {
	ID   uint
	Code string
	Name string
}

type Genre struct {
	ID   uint
	Name string
}

type Actor struct {
	ID   uint
	Name string
}

type Language struct {
	ID   uint
	Name string
}

type Movie struct {
	ID        uint
	Name      string
	Date      time.Time
	Score     float64
	Overview  string
	Status    Status
	Budget    float64
	Revenue   float64
	Country   Country
	Genres    []Genre
	Actors    []Actor
	Languages []Language
}

// CreateInput is the full set of fields needed to add a movie.
// Country is a 3-letter code; Genres, Actors and Languages are plain
// names resolved (find-or-create) by the repository.
type CreateInput struct {
	Name      string
	Date      time.Time
	Score     float64
	Overview  string
	Status    Status
	Budget    float64
	Revenue   float64
	Country   string
	Genres    []string
	Actors    []string
	Languages []string
}

func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 255 {
		return ErrInvalidName
	}
	if in.Score < 0 || in.Score > 100 {
		return ErrInvalidScore
	}
	if !in.Status.Valid() {
		return ErrInvalidStatus
	}
	if in.Budget < 0 {
		return ErrInvalidBudget
	}
	if in.Revenue < 0 {
		return ErrInvalidRevenue
	}
	if len(in.Country) != 3 {
		return ErrInvalidCountry
	}
	return nil
}

// UpdateInput is a merge patch: nil fields are left untouched, set
// fields are applied. Relation lists use nil-slice-means-absent, so an
// explicitly empty list clears the association set.
type UpdateInput struct {
	Name      *string
	Date      *time.Time
	Score     *float64
	Overview  *string
	Status    *Status
	Budget    *float64
	Revenue   *float64
	Country   *string
	Genres    []string
	Actors    []string
	Languages []string
}

// Empty reports whether the patch touches nothing.
func (in UpdateInput) Empty() bool {
	return in.Name == nil && in.Date == nil && in.Score == nil &&
		in.Overview == nil && in.Status == nil && in.Budget == nil &&
		in.Revenue == nil && in.Country == nil &&
		in.Genres == nil && in.Actors == nil && in.Languages == nil
}

func (in UpdateInput) Validate() error {
	if in.Name != nil && (strings.TrimSpace(*in.Name) == "" || len(*in.Name) > 255) {
		return ErrInvalidName
	}
	if in.Score != nil && (*in.Score < 0 || *in.Score > 100) {
		return ErrInvalidScore
	}
	if in.Status != nil && !in.Status.Valid() {
		return ErrInvalidStatus
	}
	if in.Budget != nil && *in.Budget < 0 {
		return ErrInvalidBudget
	}
	if in.Revenue != nil && *in.Revenue < 0 {
		return ErrInvalidRevenue
	}
	if in.Country != nil && len(*in.Country) != 3 {
		return ErrInvalidCountry
	}
	return nil
}

// Page is one page of the catalog listing.
type Page struct {
	Movies     []Movie
	PrevPage   *string
	NextPage   *string
	TotalPages int
	TotalItems int64
}
