package httpserver

import (
	"time"

	"theater/errs"
	"theater/movie"
)

// Score, overview, budget and revenue are pointers so a missing field
// is rejected as such while zero stays a valid value.
type CreateMovieRequest struct {
	Name      string   `json:"name" validate:"required,notblank,max=255"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	Score     *float64 `json:"score" validate:"required,min=0,max=100"`
	Overview  *string  `json:"overview" validate:"required"`
	Status    string   `json:"status" validate:"required,oneof='Released' 'Post Production' 'In Production'"`
	Budget    *float64 `json:"budget" validate:"required,min=0"`
	Revenue   *float64 `json:"revenue" validate:"required,min=0"`
	Country   string   `json:"country" validate:"required,len=3"`
	Genres    []string `json:"genres" validate:"required,dive,notblank"`
	Actors    []string `json:"actors" validate:"required,dive,notblank"`
	Languages []string `json:"languages" validate:"required,dive,notblank"`
}

func (r CreateMovieRequest) ToInput() (movie.CreateInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return movie.CreateInput{}, err
	}

	return movie.CreateInput{
		Name:      r.Name,
		Date:      date,
		Score:     *r.Score,
		Overview:  *r.Overview,
		Status:    movie.Status(r.Status),
		Budget:    *r.Budget,
		Revenue:   *r.Revenue,
		Country:   r.Country,
		Genres:    r.Genres,
		Actors:    r.Actors,
		Languages: r.Languages,
	}, nil
}

// UpdateMovieRequest is a merge patch: absent fields stay untouched.
// Relation lists distinguish absent (nil) from explicitly empty.
type UpdateMovieRequest struct {
	Name      *string  `json:"name" validate:"omitempty,notblank,max=255"`
	Date      *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Score     *float64 `json:"score" validate:"omitempty,min=0,max=100"`
	Overview  *string  `json:"overview"`
	Status    *string  `json:"status" validate:"omitempty,oneof='Released' 'Post Production' 'In Production'"`
	Budget    *float64 `json:"budget" validate:"omitempty,min=0"`
	Revenue   *float64 `json:"revenue" validate:"omitempty,min=0"`
	Country   *string  `json:"country" validate:"omitempty,len=3"`
	Genres    []string `json:"genres" validate:"omitempty,dive,notblank"`
	Actors    []string `json:"actors" validate:"omitempty,dive,notblank"`
	Languages []string `json:"languages" validate:"omitempty,dive,notblank"`
}

func (r UpdateMovieRequest) ToInput() (movie.UpdateInput, error) {
	in := movie.UpdateInput{
		Name:      r.Name,
		Score:     r.Score,
		Overview:  r.Overview,
		Budget:    r.Budget,
		Revenue:   r.Revenue,
		Country:   r.Country,
		Genres:    r.Genres,
		Actors:    r.Actors,
		Languages: r.Languages,
	}

	if r.Date != nil {
		date, err := parseDate(*r.Date)
		if err != nil {
			return movie.UpdateInput{}, err
		}
		in.Date = &date
	}
	if r.Status != nil {
		status := movie.Status(*r.Status)
		in.Status = &status
	}
	return in, nil
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse(movie.DateLayout, raw)
	if err != nil {
		return time.Time{}, errs.Errorf(errs.EINVALID, "date must be in YYYY-MM-DD format")
	}
	return date, nil
}
