// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package modelfetch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidRepoID(t *testing.T) {
	valid := []string{
		"microsoft/DialoGPT-medium",
		"unsloth/Qwen3-30B-A3B-Instruct-2507-GGUF",
		"hf-internal-testing/tiny-random-gpt2",
		"gpt2",
		"a/b",
	}
	for _, id := range valid {
		assert.True(t, IsValidRepoID(id), id)
	}

	invalid := []string{
		"",
		"/name",
		"owner/",
		"org//name",
		"a/b/c",
		"has space/model",
		"../escape",
		"owner/..",
	}
	for _, id := range invalid {
		assert.False(t, IsValidRepoID(id), id)
	}
}

func TestJob_Validate(t *testing.T) {
	assert.NoError(t, Job{Repo: "a/b"}.Validate())
	assert.ErrorIs(t, Job{}.Validate(), ErrMissingRepo)
	assert.ErrorIs(t, Job{Repo: "\t"}.Validate(), ErrMissingRepo)

	err := Job{Repo: "bad id"}.Validate()
	assert.ErrorIs(t, err, ErrInvalidRepo)
	assert.Contains(t, err.Error(), `"bad id"`)
	assert.Contains(t, err.Error(), "rule repoid")
}

func TestDefaultDestination(t *testing.T) {
	assert.Equal(t, filepath.Join("models", "org", "name"), DefaultDestination("models", "org/name"))
	assert.Equal(t, filepath.Join("models", "name"), DefaultDestination("models", "name"))
	assert.Equal(t, filepath.Join("models", "x_y_z"), DefaultDestination("models", "x/y/z"))
}

func TestAcceleratedTransfer(t *testing.T) {
	for _, v := range []string{"1", "true", "ON", " yes "} {
		t.Setenv(EnvHFTransfer, v)
		assert.True(t, AcceleratedTransfer(), v)
	}
	for _, v := range []string{"", "0", "false", "off"} {
		t.Setenv(EnvHFTransfer, v)
		assert.False(t, AcceleratedTransfer(), v)
	}
}

func TestMaterialize(t *testing.T) {
	dir := t.TempDir()
	blob := filepath.Join(dir, "blobs", "abc123")
	require.NoError(t, os.MkdirAll(filepath.Dir(blob), 0o755))
	require.NoError(t, os.WriteFile(blob, []byte("weights"), 0o644))

	// The hub cache exposes snapshot files as symlinks into blobs.
	snap := filepath.Join(dir, "snapshots", "main", "model.gguf")
	require.NoError(t, os.MkdirAll(filepath.Dir(snap), 0o755))
	require.NoError(t, os.Symlink(blob, snap))

	dst := filepath.Join(dir, "out", "sub", "model.gguf")
	require.NoError(t, materialize(snap, dst))

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "weights", string(b))
	fi, err := os.Lstat(dst)
	require.NoError(t, err)
	assert.Zero(t, fi.Mode()&os.ModeSymlink, "destination must be a regular file")

	t.Run("replaces existing file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(blob+"2", []byte("newer"), 0o644))
		require.NoError(t, materialize(blob+"2", dst))
		b, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "newer", string(b))
		assert.NoFileExists(t, dst+".part")
	})

	t.Run("refuses directory", func(t *testing.T) {
		d := filepath.Join(dir, "out", "sub")
		assert.Error(t, materialize(blob, d))
	})
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.WriteFile(src, []byte("tokenizer"), 0o644))

	dst := filepath.Join(dir, "dst")
	require.NoError(t, copyFile(src, dst))
	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "tokenizer", string(b))
}
