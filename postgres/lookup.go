package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Lookup entities are shared across movies and referenced by unique
// key: countries by 3-letter code, genres/actors/languages by name.
// The find-or-create helpers below take the caller's transaction handle
// so new rows are visible to later lookups in the same request and roll
// back together with the movie write. Inserts go through ON CONFLICT
// DO NOTHING, so losing a race with a concurrent insert degrades to a
// fetch instead of aborting the surrounding transaction.

// CountryModel represents the database model for countries
type CountryModel struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"size:3;not null;uniqueIndex"`
	Name *string
}

// TableName specifies the table name for GORM
func (CountryModel) TableName() string {
	return "countries"
}

// GenreModel represents the database model for genres
type GenreModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null;uniqueIndex"`
}

// TableName specifies the table name for GORM
func (GenreModel) TableName() string {
	return "genres"
}

// ActorModel represents the database model for actors
type ActorModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null;uniqueIndex"`
}

// TableName specifies the table name for GORM
func (ActorModel) TableName() string {
	return "actors"
}

// LanguageModel represents the database model for languages
type LanguageModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null;uniqueIndex"`
}

// TableName specifies the table name for GORM
func (LanguageModel) TableName() string {
	return "languages"
}

func findOrCreateCountry(tx *gorm.DB, code string) (CountryModel, error) {
	var m CountryModel
	err := tx.Where("code = ?", code).First(&m).Error
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return CountryModel{}, err
	}

	m = CountryModel{Code: code}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
	if res.Error != nil {
		return CountryModel{}, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the insert race; the winner's row is committed by now.
		if err := tx.Where("code = ?", code).First(&m).Error; err != nil {
			return CountryModel{}, err
		}
	}
	return m, nil
}

func findOrCreateGenre(tx *gorm.DB, name string) (GenreModel, error) {
	var m GenreModel
	err := tx.Where("name = ?", name).First(&m).Error
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return GenreModel{}, err
	}

	m = GenreModel{Name: name}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
	if res.Error != nil {
		return GenreModel{}, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Where("name = ?", name).First(&m).Error; err != nil {
			return GenreModel{}, err
		}
	}
	return m, nil
}

func findOrCreateActor(tx *gorm.DB, name string) (ActorModel, error) {
	var m ActorModel
	err := tx.Where("name = ?", name).First(&m).Error
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ActorModel{}, err
	}

	m = ActorModel{Name: name}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
	if res.Error != nil {
		return ActorModel{}, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Where("name = ?", name).First(&m).Error; err != nil {
			return ActorModel{}, err
		}
	}
	return m, nil
}

func findOrCreateLanguage(tx *gorm.DB, name string) (LanguageModel, error) {
	var m LanguageModel
	err := tx.Where("name = ?", name).First(&m).Error
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LanguageModel{}, err
	}

	m = LanguageModel{Name: name}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
	if res.Error != nil {
		return LanguageModel{}, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Where("name = ?", name).First(&m).Error; err != nil {
			return LanguageModel{}, err
		}
	}
	return m, nil
}

func resolveGenres(tx *gorm.DB, names []string) ([]GenreModel, error) {
	models := make([]GenreModel, 0, len(names))
	for _, name := range dedupNames(names) {
		m, err := findOrCreateGenre(tx, name)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

func resolveActors(tx *gorm.DB, names []string) ([]ActorModel, error) {
	models := make([]ActorModel, 0, len(names))
	for _, name := range dedupNames(names) {
		m, err := findOrCreateActor(tx, name)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

func resolveLanguages(tx *gorm.DB, names []string) ([]LanguageModel, error) {
	models := make([]LanguageModel, 0, len(names))
	for _, name := range dedupNames(names) {
		m, err := findOrCreateLanguage(tx, name)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

// dedupNames drops repeated entries keeping the first occurrence order.
func dedupNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
