package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"theater/errs"
	"theater/movie"
	"theater/pkg/config"
	"theater/postgres"

	_ "github.com/lib/pq"
)

// Seeds the catalog from a CSV export. Header columns: name, date,
// score, overview, status, budget, revenue, country, genres, actors,
// languages; the last three are pipe-separated lists. Rows whose
// (name, date) pair already exists are skipped.
func main() {
	var (
		csvPath string
		limit   int
	)

	flag.StringVar(&csvPath, "csv", "", "Path to the catalog CSV")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if csvPath == "" {
		slog.Error("missing -csv flag")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	svc := movie.NewUsecase(postgres.NewMovieRepository(db))

	imported, skipped, err := importMovies(context.Background(), svc, csvPath, limit)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("import completed", "imported", imported, "skipped", skipped)
}

func importMovies(ctx context.Context, svc movie.Service, csvPath string, limit int) (int, int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	columns, err := parseHeader(reader)
	if err != nil {
		return 0, 0, err
	}

	imported, skipped := 0, 0
	for limit <= 0 || imported < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, skipped, err
		}

		in, err := parseRecord(record, columns)
		if err != nil {
			slog.Warn("skipping malformed row", "error", err)
			skipped++
			continue
		}

		if _, err := svc.Create(ctx, in); err != nil {
			switch errs.ErrorCode(err) {
			case errs.ECONFLICT, errs.EINVALID:
				slog.Warn("skipping row", "name", in.Name, "reason", errs.ErrorMessage(err))
				skipped++
				continue
			}
			return imported, skipped, err
		}
		imported++
	}

	return imported, skipped, nil
}

var requiredColumns = []string{
	"name", "date", "score", "overview", "status",
	"budget", "revenue", "country", "genres", "actors", "languages",
}

func parseHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q in csv header", name)
		}
	}
	return columns, nil
}

func parseRecord(record []string, columns map[string]int) (movie.CreateInput, error) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := time.Parse(movie.DateLayout, field("date"))
	if err != nil {
		return movie.CreateInput{}, fmt.Errorf("bad date %q: %w", field("date"), err)
	}
	score, err := strconv.ParseFloat(field("score"), 64)
	if err != nil {
		return movie.CreateInput{}, fmt.Errorf("bad score %q: %w", field("score"), err)
	}
	budget, err := strconv.ParseFloat(field("budget"), 64)
	if err != nil {
		return movie.CreateInput{}, fmt.Errorf("bad budget %q: %w", field("budget"), err)
	}
	revenue, err := strconv.ParseFloat(field("revenue"), 64)
	if err != nil {
		return movie.CreateInput{}, fmt.Errorf("bad revenue %q: %w", field("revenue"), err)
	}

	return movie.CreateInput{
		Name:      field("name"),
		Date:      date,
		Score:     score,
		Overview:  field("overview"),
		Status:    movie.Status(field("status")),
		Budget:    budget,
		Revenue:   revenue,
		Country:   field("country"),
		Genres:    splitList(field("genres")),
		Actors:    splitList(field("actors")),
		Languages: splitList(field("languages")),
	}, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
