package postgres

import (
	"context"
	"errors"
	"time"

	"theater/movie"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// MovieModel represents the database model for movies.
// The (name, date) pair carries a unique index so duplicate creates are
// rejected by the schema even when two requests race past the service
// level check.
type MovieModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_movies_name_date"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_movies_name_date"`
	Score     float64   `gorm:"not null"`
	Overview  string    `gorm:"type:text;not null"`
	Status    string    `gorm:"not null"`
	Budget    float64   `gorm:"not null;default:0"`
	Revenue   float64   `gorm:"not null;default:0"`
	CountryID uint      `gorm:"not null"`

	Country   CountryModel
	Genres    []GenreModel    `gorm:"many2many:movie_genres"`
	Actors    []ActorModel    `gorm:"many2many:movie_actors"`
	Languages []LanguageModel `gorm:"many2many:movie_languages"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository on PostgreSQL. Create and
// Update run all their reads and writes, lookup-entity resolution
// included, inside a single transaction.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) CountMovies(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&MovieModel{}).Count(&count).Error
	return count, err
}

// ListMovies returns a page of movies ordered by id descending. The
// listing is a summary view, relations are not loaded here.
func (r *MovieRepository) ListMovies(ctx context.Context, offset, limit int) ([]movie.Movie, error) {
	var models []MovieModel
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies, nil
}

// GetMovie fetches a movie with all relations eagerly loaded.
func (r *MovieRepository) GetMovie(ctx context.Context, id uint) (movie.Movie, error) {
	model, err := getMovieDetail(r.db.WithContext(ctx), id)
	if err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

func (r *MovieRepository) MovieExists(ctx context.Context, name string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&MovieModel{}).
		Where("name = ? AND date = ?", name, date).
		Count(&count).Error
	return count > 0, err
}

// CreateMovie inserts a movie together with any lookup entities it
// needs, all in one transaction. Relation name lists are deduplicated
// preserving first occurrence before resolution.
func (r *MovieRepository) CreateMovie(ctx context.Context, in movie.CreateInput) (movie.Movie, error) {
	var created movie.Movie

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		country, err := findOrCreateCountry(tx, in.Country)
		if err != nil {
			return err
		}
		genres, err := resolveGenres(tx, in.Genres)
		if err != nil {
			return err
		}
		actors, err := resolveActors(tx, in.Actors)
		if err != nil {
			return err
		}
		languages, err := resolveLanguages(tx, in.Languages)
		if err != nil {
			return err
		}

		model := MovieModel{
			Name:      in.Name,
			Date:      in.Date,
			Score:     in.Score,
			Overview:  in.Overview,
			Status:    string(in.Status),
			Budget:    in.Budget,
			Revenue:   in.Revenue,
			CountryID: country.ID,
			Country:   country,
			Genres:    genres,
			Actors:    actors,
			Languages: languages,
		}
		if err := tx.Create(&model).Error; err != nil {
			if isUniqueViolation(err) {
				return movie.ErrDuplicateMovie(in.Name, in.Date)
			}
			return err
		}

		created = toDomainMovie(model)
		return nil
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return created, nil
}

// UpdateMovie applies a merge patch: only fields set in the input are
// written, relation lists supplied in the patch replace the current
// association set after resolving through the same find-or-create path
// as create.
func (r *MovieRepository) UpdateMovie(ctx context.Context, id uint, in movie.UpdateInput) (movie.Movie, error) {
	var updated movie.Movie

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model MovieModel
		if err := tx.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return movie.ErrMovieNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			updates["name"] = *in.Name
		}
		if in.Date != nil {
			updates["date"] = *in.Date
		}
		if in.Score != nil {
			updates["score"] = *in.Score
		}
		if in.Overview != nil {
			updates["overview"] = *in.Overview
		}
		if in.Status != nil {
			updates["status"] = string(*in.Status)
		}
		if in.Budget != nil {
			updates["budget"] = *in.Budget
		}
		if in.Revenue != nil {
			updates["revenue"] = *in.Revenue
		}
		if in.Country != nil {
			country, err := findOrCreateCountry(tx, *in.Country)
			if err != nil {
				return err
			}
			updates["country_id"] = country.ID
		}

		if len(updates) > 0 {
			if err := tx.Model(&model).Updates(updates).Error; err != nil {
				if isUniqueViolation(err) {
					name, date := model.Name, model.Date
					if in.Name != nil {
						name = *in.Name
					}
					if in.Date != nil {
						date = *in.Date
					}
					return movie.ErrDuplicateMovie(name, date)
				}
				return err
			}
		}

		if in.Genres != nil {
			genres, err := resolveGenres(tx, in.Genres)
			if err != nil {
				return err
			}
			if err := tx.Model(&model).Association("Genres").Replace(genres); err != nil {
				return err
			}
		}
		if in.Actors != nil {
			actors, err := resolveActors(tx, in.Actors)
			if err != nil {
				return err
			}
			if err := tx.Model(&model).Association("Actors").Replace(actors); err != nil {
				return err
			}
		}
		if in.Languages != nil {
			languages, err := resolveLanguages(tx, in.Languages)
			if err != nil {
				return err
			}
			if err := tx.Model(&model).Association("Languages").Replace(languages); err != nil {
				return err
			}
		}

		fresh, err := getMovieDetail(tx, id)
		if err != nil {
			return err
		}
		updated = toDomainMovie(fresh)
		return nil
	})
	if err != nil {
		return movie.Movie{}, err
	}
	return updated, nil
}

// DeleteMovie removes the movie row. Junction rows go with it via the
// schema's ON DELETE CASCADE; lookup entities stay for reuse.
func (r *MovieRepository) DeleteMovie(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&MovieModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return movie.ErrMovieNotFound
	}
	return nil
}

func getMovieDetail(db *gorm.DB, id uint) (MovieModel, error) {
	var model MovieModel
	err := db.
		Preload("Country").
		Preload("Genres").
		Preload("Actors").
		Preload("Languages").
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MovieModel{}, movie.ErrMovieNotFound
		}
		return MovieModel{}, err
	}
	return model, nil
}

func toDomainMovie(model MovieModel) movie.Movie {
	m := movie.Movie{
		ID:       model.ID,
		Name:     model.Name,
		Date:     model.Date,
		Score:    model.Score,
		Overview: model.Overview,
		Status:   movie.Status(model.Status),
		Budget:   model.Budget,
		Revenue:  model.Revenue,
		Country:  toDomainCountry(model.Country),
	}
	for _, g := range model.Genres {
		m.Genres = append(m.Genres, movie.Genre{ID: g.ID, Name: g.Name})
	}
	for _, a := range model.Actors {
		m.Actors = append(m.Actors, movie.Actor{ID: a.ID, Name: a.Name})
	}
	for _, l := range model.Languages {
		m.Languages = append(m.Languages, movie.Language{ID: l.ID, Name: l.Name})
	}
	return m
}

func toDomainCountry(model CountryModel) movie.Country {
	c := movie.Country{ID: model.ID, Code: model.Code}
	if model.Name != nil {
		c.Name = *model.Name
	}
	return c
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
