// Package manifest reads the repository address a dependency declares in its
// installed manifest.
package manifest

import (
	"encoding/json"
	"path/filepath"

	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/logging"
	"github.com/arthur-debert/livelink/pkg/repository"
	"github.com/arthur-debert/livelink/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultFile is the manifest filename used when none is configured
const DefaultFile = "package.json"

// ModulesDir is the directory dependencies are installed into
const ModulesDir = "node_modules"

// Extractor loads dependency manifests from an explicit root directory
type Extractor struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewExtractor creates an Extractor reading through fs
func NewExtractor(fs types.FS) *Extractor {
	return &Extractor{
		fs:     fs,
		logger: logging.GetLogger("manifest"),
	}
}

// Path returns where the manifest of package id is expected under cwd
func Path(cwd, id, manifestFile string) string {
	return filepath.Join(cwd, ModulesDir, id, manifestFile)
}

// Load reads and parses the manifest of package id installed under cwd
func (e *Extractor) Load(cwd, id, manifestFile string) (map[string]interface{}, error) {
	path := Path(cwd, id, manifestFile)

	data, err := e.fs.ReadFile(path)
	if err != nil {
		return nil, loadError(err, path, cwd)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, loadError(err, path, cwd)
	}
	if doc == nil {
		return nil, loadError(errors.New(errors.ErrInvalidInput, "manifest is not a JSON object"), path, cwd)
	}
	return doc, nil
}

// Extract returns the normalized repository URL declared by package id
func (e *Extractor) Extract(cwd, id, manifestFile string) (string, error) {
	doc, err := e.Load(cwd, id, manifestFile)
	if err != nil {
		return "", err
	}

	raw, err := RepositoryAddress(doc)
	if err != nil {
		if le, ok := err.(*errors.LinkError); ok {
			le.WithDetail("path", Path(cwd, id, manifestFile))
		}
		return "", err
	}

	repo := repository.Normalize(raw)
	e.logger.Debug().
		Str("id", id).
		Str("declared", raw).
		Str("repo", repo).
		Msg("Extracted repository from manifest")
	return repo, nil
}

// RepositoryAddress pulls the raw repository address out of a parsed
// manifest. The field is either a shorthand string or an object with type
// and url; a present type must be "git".
func RepositoryAddress(doc map[string]interface{}) (string, error) {
	field := doc["repository"]

	var repoType, repoURL interface{}
	var hasType, hasURL bool
	if obj, ok := field.(map[string]interface{}); ok {
		repoType, hasType = obj["type"]
		repoURL, hasURL = obj["url"]
	}

	if !hasType && !hasURL {
		if s, ok := field.(string); ok && s != "" {
			return s, nil
		}
		return "", errors.New(errors.ErrMissingRepository, "could not extract a usable repository address")
	}

	if hasType {
		if t, ok := repoType.(string); !ok || t != "git" {
			return "", errors.Newf(errors.ErrUnsupportedRepositoryType,
				"cannot extract from repository type %v", repoType).
				WithDetail("type", repoType)
		}
	}

	url, ok := repoURL.(string)
	if !ok || url == "" {
		return "", errors.New(errors.ErrMissingRepository, "repository object has no url")
	}
	return url, nil
}

func loadError(err error, path, root string) error {
	return errors.Wrapf(err, errors.ErrManifestLoad,
		"could not load package file: %s using root search path of: %s", path, root).
		WithDetail("path", path).
		WithDetail("root", root)
}
