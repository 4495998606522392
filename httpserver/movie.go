package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"theater/errs"
	"theater/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies/", s.handleListMovies)
	g.POST("/movies/", s.handleCreateMovie)
	g.GET("/movies/:id/", s.handleMovieDetail)
	g.PATCH("/movies/:id/", s.handleUpdateMovie)
	g.DELETE("/movies/:id/", s.handleDeleteMovie)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Paginated movie catalog, newest first
// @Tags movies
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param per_page query int false "Movies per page (1-20, default 10)"
// @Success 200 {object} MovieListResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /theater/movies/ [get]
func (s *Server) handleListMovies(c echo.Context) error {
	page, err := queryInt(c, "page", 1, movie.ErrInvalidPage)
	if err != nil {
		return err
	}
	perPage, err := queryInt(c, "per_page", movie.DefaultPerPage, movie.ErrInvalidPerPage)
	if err != nil {
		return err
	}

	result, err := s.MovieService.List(c.Request().Context(), page, perPage)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMovieListResponse(result))
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Description Add a movie with its country, genres, actors and languages
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body CreateMovieRequest true "Movie Data"
// @Success 201 {object} MovieDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /theater/movies/ [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	var req CreateMovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in, err := req.ToInput()
	if err != nil {
		return err
	}

	created, err := s.MovieService.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toMovieDetailResponse(created))
}

// handleMovieDetail godoc
// @Summary Movie Detail
// @Description Movie with all relations loaded
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} MovieDetailResponse
// @Failure 404 {object} map[string]string
// @Router /theater/movies/{id}/ [get]
func (s *Server) handleMovieDetail(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	m, err := s.MovieService.Detail(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMovieDetailResponse(m))
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Description Merge-patch: only supplied fields change
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body UpdateMovieRequest true "Fields to change"
// @Success 200 {object} MovieUpdatedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /theater/movies/{id}/ [patch]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	var req UpdateMovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in, err := req.ToInput()
	if err != nil {
		return err
	}

	updated, err := s.MovieService.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MovieUpdatedResponse{
		Detail: "Movie updated successfully.",
		Movie:  toMovieDetailResponse(updated),
	})
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Description Removes the movie; shared lookup entities stay
// @Tags movies
// @Param id path int true "Movie ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /theater/movies/{id}/ [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	if err := s.MovieService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func movieID(c echo.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errs.Errorf(errs.EINVALID, "invalid movie id %q", raw)
	}
	return uint(id), nil
}

func queryInt(c echo.Context, name string, fallback int, invalid error) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid
	}
	return parsed, nil
}
