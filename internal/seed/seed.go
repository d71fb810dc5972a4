// Package seed loads university directories into the database.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DirectoryFile is the YAML layout of a directory seed file
type DirectoryFile struct {
	Universities []University `yaml:"universities"`
}

// University lists the campuses of one university
type University struct {
	Name     string   `yaml:"name"`
	Campuses []Campus `yaml:"campuses"`
}

// Campus lists the courses taught on one campus
type Campus struct {
	Name    string   `yaml:"name"`
	Courses []string `yaml:"courses"`
}

// DirectoryWriter creates directory entries idempotently
type DirectoryWriter interface {
	EnsureUniversity(ctx context.Context, name string) (int64, error)
	EnsureCampus(ctx context.Context, universityID int64, name string) (int64, error)
	EnsureCourse(ctx context.Context, universityID, campusID int64, name string) (int64, error)
}

// Stats counts the entries visited by Apply
type Stats struct {
	Universities int
	Campuses     int
	Courses      int
}

// Parse decodes and validates a directory file
func Parse(data []byte) (*DirectoryFile, error) {
	var file DirectoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse directory file: %w", err)
	}
	if err := file.validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// LoadFile reads a directory file from disk
func LoadFile(path string) (*DirectoryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory file: %w", err)
	}
	return Parse(data)
}

func (f *DirectoryFile) validate() error {
	var errs error
	for i, u := range f.Universities {
		if strings.TrimSpace(u.Name) == "" {
			errs = errors.Join(errs, fmt.Errorf("university %d has no name", i+1))
			continue
		}
		for j, c := range u.Campuses {
			if strings.TrimSpace(c.Name) == "" {
				errs = errors.Join(errs, fmt.Errorf("campus %d of %s has no name", j+1, u.Name))
			}
		}
	}
	return errs
}

// Apply writes every entry of the file. Entries that already exist are reused,
// so running it twice changes nothing.
func Apply(ctx context.Context, w DirectoryWriter, file *DirectoryFile, lgr zerolog.Logger) (Stats, error) {
	var stats Stats
	for _, u := range file.Universities {
		universityID, err := w.EnsureUniversity(ctx, strings.TrimSpace(u.Name))
		if err != nil {
			return stats, fmt.Errorf("university %s: %w", u.Name, err)
		}
		stats.Universities++

		for _, c := range u.Campuses {
			campusID, err := w.EnsureCampus(ctx, universityID, strings.TrimSpace(c.Name))
			if err != nil {
				return stats, fmt.Errorf("campus %s: %w", c.Name, err)
			}
			stats.Campuses++

			for _, course := range c.Courses {
				course = strings.TrimSpace(course)
				if course == "" {
					continue
				}
				if _, err := w.EnsureCourse(ctx, universityID, campusID, course); err != nil {
					return stats, fmt.Errorf("course %s: %w", course, err)
				}
				stats.Courses++
			}
		}
		lgr.Debug().Str("university", u.Name).Int("campuses", len(u.Campuses)).Msg("University seeded")
	}

	lgr.Info().
		Int("universities", stats.Universities).
		Int("campuses", stats.Campuses).
		Int("courses", stats.Courses).
		Msg("Directory seeded")
	return stats, nil
}
