package repository

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/arthur-debert/livelink/pkg/errors"
)

var (
	shorthandPattern = regexp.MustCompile(`^(gitlab|bitbucket|github|gist):`)
	sshPattern       = regexp.MustCompile(`git\+ssh://.*?@`)
	dirPattern       = regexp.MustCompile(`^.*/`)
)

// Normalize rewrites a repository address into a fetchable URL. Rules are
// tried in order and only the first matching one is applied.
func Normalize(address string) string {
	if m := shorthandPattern.FindStringSubmatch(address); m != nil {
		service := m[1]
		path := address[len(m[0]):]
		return "https://" + ServiceDomain(service) + "/" + path + ".git"
	}

	if loc := sshPattern.FindStringIndex(address); loc != nil {
		rest := address[:loc[0]] + address[loc[1]:]
		return "https://" + strings.Replace(rest, ":", "/", 1)
	}

	return strings.Replace(address, "git://", "https://", 1)
}

// ServiceDomain returns the host a shorthand service prefix expands to
func ServiceDomain(service string) string {
	switch service {
	case "gist":
		return "gist." + service + ".com"
	case "bitbucket":
		return service + ".org"
	default:
		return service + ".com"
	}
}

// DirName derives a clone directory name from a repository URL
func DirName(repo string) string {
	return strings.Replace(dirPattern.ReplaceAllString(repo, ""), ".git", "", 1)
}

// Validate checks that repo is a URL a clone can be attempted against
func Validate(repo string) error {
	if repo == "" {
		return errors.New(errors.ErrInvalidRepository, "repository URL is empty")
	}

	u, err := url.Parse(repo)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidRepository, "invalid repository URL %q", repo)
	}
	if u.Scheme == "" {
		return errors.Newf(errors.ErrInvalidRepository, "repository URL %q has no scheme", repo).
			WithDetail("repo", repo)
	}
	if u.Scheme != "file" && u.Host == "" {
		return errors.Newf(errors.ErrInvalidRepository, "repository URL %q has no host", repo).
			WithDetail("repo", repo)
	}
	return nil
}
