package httpserver

import (
	"strconv"

	"theater/movie"

	"github.com/labstack/echo/v4"
)

const successMessage = "OK"

// APIResponse is the generic envelope used by non-resource endpoints.
type APIResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
	Info    string      `json:"info,omitempty"`
}

func RespondSuccess(c echo.Context, status int, result interface{}) error {
	return c.JSON(status, APIResponse{
		Code:    strconv.Itoa(status),
		Message: successMessage,
		Result:  result,
	})
}

// Movie payloads keep the wire shape of the catalog API: snake_case
// fields, ISO dates, relation objects with ids.

type CountryResponse struct {
	ID   uint    `json:"id"`
	Code string  `json:"code"`
	Name *string `json:"name"`
}

type NamedResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type MovieSummaryResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Date     string  `json:"date"`
	Score    float64 `json:"score"`
	Overview string  `json:"overview"`
}

type MovieDetailResponse struct {
	MovieSummaryResponse
	Status    string          `json:"status"`
	Budget    float64         `json:"budget"`
	Revenue   float64         `json:"revenue"`
	Country   CountryResponse `json:"country"`
	Genres    []NamedResponse `json:"genres"`
	Actors    []NamedResponse `json:"actors"`
	Languages []NamedResponse `json:"languages"`
}

type MovieListResponse struct {
	Movies     []MovieSummaryResponse `json:"movies"`
	PrevPage   *string                `json:"prev_page"`
	NextPage   *string                `json:"next_page"`
	TotalPages int                    `json:"total_pages"`
	TotalItems int64                  `json:"total_items"`
}

type MovieUpdatedResponse struct {
	Detail string              `json:"detail"`
	Movie  MovieDetailResponse `json:"movie"`
}

func toMovieSummaryResponse(m movie.Movie) MovieSummaryResponse {
	return MovieSummaryResponse{
		ID:       m.ID,
		Name:     m.Name,
		Date:     m.Date.Format(movie.DateLayout),
		Score:    m.Score,
		Overview: m.Overview,
	}
}

func toMovieDetailResponse(m movie.Movie) MovieDetailResponse {
	resp := MovieDetailResponse{
		MovieSummaryResponse: toMovieSummaryResponse(m),
		Status:               string(m.Status),
		Budget:               m.Budget,
		Revenue:              m.Revenue,
		Country: CountryResponse{
			ID:   m.Country.ID,
			Code: m.Country.Code,
		},
		Genres:    make([]NamedResponse, 0, len(m.Genres)),
		Actors:    make([]NamedResponse, 0, len(m.Actors)),
		Languages: make([]NamedResponse, 0, len(m.Languages)),
	}
	if m.Country.Name != "" {
		name := m.Country.Name
		resp.Country.Name = &name
	}
	for _, g := range m.Genres {
		resp.Genres = append(resp.Genres, NamedResponse{ID: g.ID, Name: g.Name})
	}
	for _, a := range m.Actors {
		resp.Actors = append(resp.Actors, NamedResponse{ID: a.ID, Name: a.Name})
	}
	for _, l := range m.Languages {
		resp.Languages = append(resp.Languages, NamedResponse{ID: l.ID, Name: l.Name})
	}
	return resp
}

func toMovieListResponse(p movie.Page) MovieListResponse {
	resp := MovieListResponse{
		Movies:     make([]MovieSummaryResponse, 0, len(p.Movies)),
		PrevPage:   p.PrevPage,
		NextPage:   p.NextPage,
		TotalPages: p.TotalPages,
		TotalItems: p.TotalItems,
	}
	for _, m := range p.Movies {
		resp.Movies = append(resp.Movies, toMovieSummaryResponse(m))
	}
	return resp
}
