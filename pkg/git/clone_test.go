package git_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/git"
	gogit "github.com/go-git/go-git/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nop = zerolog.Nop()

func TestCloneIntoExistingRepository(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "widget")
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	cloner := git.NewCloner(git.Options{Logger: &nop})
	err = cloner.Clone(context.Background(), "https://github.com/acme/widget.git", dir)
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrClone))
	assert.ErrorIs(t, err, gogit.ErrRepositoryAlreadyExists)
	assert.Equal(t, dir, errors.GetErrorDetails(err)["dir"])
}

func TestCloneCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := filepath.Join(t.TempDir(), "widget")
	cloner := git.NewCloner(git.Options{Logger: &nop})

	err := cloner.Clone(ctx, "https://github.com/acme/widget.git", dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrClone))
	assert.NoDirExists(t, dir, "failed clone must not leave the directory behind")
}
