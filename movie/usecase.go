package movie

import (
	"context"
	"fmt"
	"time"
)

// listBasePath is the public path the listing navigation links point at.
const listBasePath = "/theater/movies/"

const (
	MinPerPage     = 1
	MaxPerPage     = 20
	DefaultPerPage = 10
)

type Service interface {
	List(ctx context.Context, page, perPage int) (Page, error)
	Create(ctx context.Context, in CreateInput) (Movie, error)
	Detail(ctx context.Context, id uint) (Movie, error)
	Update(ctx context.Context, id uint, in UpdateInput) (Movie, error)
	Delete(ctx context.Context, id uint) error
}

type Repository interface {
	CountMovies(ctx context.Context) (int64, error)
	ListMovies(ctx context.Context, offset, limit int) ([]Movie, error)
	GetMovie(ctx context.Context, id uint) (Movie, error)
	MovieExists(ctx context.Context, name string, date time.Time) (bool, error)
	CreateMovie(ctx context.Context, in CreateInput) (Movie, error)
	UpdateMovie(ctx context.Context, id uint, in UpdateInput) (Movie, error)
	DeleteMovie(ctx context.Context, id uint) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) List(ctx context.Context, page, perPage int) (Page, error) {
	if page < 1 {
		return Page{}, ErrInvalidPage
	}
	if perPage < MinPerPage || perPage > MaxPerPage {
		return Page{}, ErrInvalidPerPage
	}

	totalItems, err := uc.r.CountMovies(ctx)
	if err != nil {
		return Page{}, err
	}
	if totalItems == 0 {
		return Page{}, ErrNoMovies
	}

	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))
	if page > totalPages {
		return Page{}, ErrNoMovies
	}

	movies, err := uc.r.ListMovies(ctx, (page-1)*perPage, perPage)
	if err != nil {
		return Page{}, err
	}

	p := Page{
		Movies:     movies,
		TotalPages: totalPages,
		TotalItems: totalItems,
	}
	if page > 1 {
		p.PrevPage = pageLink(page-1, perPage)
	}
	if page < totalPages {
		p.NextPage = pageLink(page+1, perPage)
	}
	return p, nil
}

func pageLink(page, perPage int) *string {
	link := fmt.Sprintf("%s?page=%d&per_page=%d", listBasePath, page, perPage)
	return &link
}

func (uc *Usecase) Create(ctx context.Context, in CreateInput) (Movie, error) {
	if err := in.Validate(); err != nil {
		return Movie{}, err
	}

	exists, err := uc.r.MovieExists(ctx, in.Name, in.Date)
	if err != nil {
		return Movie{}, err
	}
	if exists {
		return Movie{}, ErrDuplicateMovie(in.Name, in.Date)
	}

	return uc.r.CreateMovie(ctx, in)
}

func (uc *Usecase) Detail(ctx context.Context, id uint) (Movie, error) {
	return uc.r.GetMovie(ctx, id)
}

func (uc *Usecase) Update(ctx context.Context, id uint, in UpdateInput) (Movie, error) {
	if err := in.Validate(); err != nil {
		return Movie{}, err
	}
	// An empty patch changes nothing, so skip the write transaction.
	if in.Empty() {
		return uc.r.GetMovie(ctx, id)
	}
	return uc.r.UpdateMovie(ctx, id, in)
}

func (uc *Usecase) Delete(ctx context.Context, id uint) error {
	return uc.r.DeleteMovie(ctx, id)
}
