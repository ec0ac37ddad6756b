package parse

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// Year holds a project year in its string form. The project list writes
// years as numbers or strings; both decode to the same value.
type Year string

func (y *Year) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*y = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("year: %w", err)
		}
		*y = Year(strings.TrimSpace(unq))
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("year: unexpected %s", s)
	}
	*y = Year(s)
	return nil
}

// Values returns the project's present field values in document order.
func (p Project) Values() []string {
	var vals []string
	for _, v := range []string{p.Title, p.Image, string(p.Year), p.Description, p.URL} {
		if v != "" {
			vals = append(vals, v)
		}
	}
	return vals
}

// ParseProjects decodes a JSON array of projects.
func ParseProjects(r io.Reader) ([]Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read projects: %w", err)
	}
	var projects []Project
	if err := sonic.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

// LoadProjects fetches and decodes the project list at source, degrading to
// an empty list on any failure.
func LoadProjects(ctx context.Context, source string) []Project {
	rc, err := Open(ctx, source)
	if err != nil {
		slog.Default().Warn("load projects", "source", source, "error", err)
		return nil
	}
	defer rc.Close()

	projects, err := ParseProjects(rc)
	if err != nil {
		slog.Default().Warn("parse projects", "source", source, "error", err)
		return nil
	}
	return projects
}

// LoadProfile fetches a GitHub user profile. It returns nil when the user is
// empty or the request fails.
func LoadProfile(ctx context.Context, apiBase, user string) *Profile {
	if user == "" {
		return nil
	}
	source := strings.TrimRight(apiBase, "/") + "/users/" + user
	rc, err := Open(ctx, source)
	if err != nil {
		slog.Default().Warn("load profile", "user", user, "error", err)
		return nil
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		slog.Default().Warn("read profile", "user", user, "error", err)
		return nil
	}
	var p Profile
	if err := sonic.Unmarshal(data, &p); err != nil {
		slog.Default().Warn("decode profile", "user", user, "error", err)
		return nil
	}
	return &p
}
