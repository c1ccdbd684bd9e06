package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidRepositoryURL is returned when a repository URL cannot be resolved to owner/repo.
var ErrInvalidRepositoryURL = errors.New("invalid repository url")

// Repository identifies a repository by its owner login and name.
type Repository struct {
	Owner string
	Name  string
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepositoryURL extracts owner and repo from a URL such as https://github.com/owner/repo.
// Blank path segments are skipped and anything after the second segment is ignored.
func ParseRepositoryURL(raw string) (Repository, error) {
	if strings.TrimSpace(raw) == "" {
		return Repository{}, fmt.Errorf("%w: url is empty", ErrInvalidRepositoryURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Repository{}, fmt.Errorf("%w: %v", ErrInvalidRepositoryURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Repository{}, fmt.Errorf("%w: %q is not an absolute url", ErrInvalidRepositoryURL, raw)
	}

	segments := make([]string, 0, 2)
	for _, s := range strings.Split(u.Path, "/") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		segments = append(segments, s)
		if len(segments) == 2 {
			break
		}
	}
	if len(segments) < 2 {
		return Repository{}, fmt.Errorf("%w: path %q must contain /owner/repo", ErrInvalidRepositoryURL, u.Path)
	}
	return Repository{Owner: segments[0], Name: segments[1]}, nil
}
