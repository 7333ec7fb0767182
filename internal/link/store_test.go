package link

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/envdock/edk/internal/errors"
)

const workDir = "/work/app"

func newTestStore(t *testing.T, content *string) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(workDir, 0o755))
	if content != nil {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(workDir, FileName), []byte(*content), 0o644))
	}
	return NewStore(fs, workDir), fs
}

func ptr(s string) *string { return &s }

func TestIsLinked(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    bool
	}{
		{"absent", nil, false},
		{"valid", ptr(`{"projectId":"p1","env":"dev"}`), true},
		{"json without projectId", ptr(`{"env":"dev"}`), true},
		{"not json", ptr(`projectId=p1`), false},
		{"trailing garbage", ptr(`{"projectId":"p1"} trailing`), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t, tt.content)
			assert.Equal(t, tt.want, store.IsLinked())
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("absent is not linked", func(t *testing.T) {
		store, _ := newTestStore(t, nil)
		_, err := store.Load()
		assert.ErrorIs(t, err, kerrors.ErrNotLinked)
	})

	corrupt := map[string]string{
		"not json":          `{projectId: p1`,
		"missing projectId": `{"env":"dev"}`,
		"empty projectId":   `{"projectId":""}`,
		"numeric projectId": `{"projectId":42}`,
		"array":             `["p1"]`,
	}
	for name, content := range corrupt {
		t.Run(name, func(t *testing.T) {
			store, _ := newTestStore(t, ptr(content))
			_, err := store.Load()
			assert.ErrorIs(t, err, kerrors.ErrCorruptLink)
		})
	}

	t.Run("valid", func(t *testing.T) {
		store, _ := newTestStore(t, ptr(`{"projectId":"65f0c9","env":"staging"}`))
		d, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "65f0c9", d.ProjectID)
		assert.Equal(t, "staging", d.Env)
	})

	t.Run("env is optional", func(t *testing.T) {
		store, _ := newTestStore(t, ptr(`{"projectId":"p1"}`))
		d, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "", d.Env)
	})
}

func TestSaveThenLoad(t *testing.T) {
	store, fs := newTestStore(t, nil)

	require.NoError(t, store.Save(Descriptor{ProjectID: "p1", Env: "prod"}))
	assert.True(t, store.IsLinked())

	d, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "p1", d.ProjectID)
	assert.Equal(t, "prod", d.Env)

	raw, err := afero.ReadFile(fs, store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"projectId\": \"p1\"")
}

func TestSaveOverwritesWholeFile(t *testing.T) {
	store, _ := newTestStore(t, ptr(`{"projectId":"old","env":"dev","team":"payments"}`))

	require.NoError(t, store.Save(Descriptor{ProjectID: "new", Env: "staging"}))

	d, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "new", d.ProjectID)
	_, ok := d.Extra("team")
	assert.False(t, ok, "Save replaces the file; only UpdateField carries extras")
}

func TestUpdateFieldPreservesUnknownFields(t *testing.T) {
	store, fs := newTestStore(t, ptr(`{"projectId":"p1","env":"dev","team":"payments","meta":{"pinned":true}}`))

	d, err := store.UpdateField(FieldEnv, "prod")
	require.NoError(t, err)
	assert.Equal(t, "prod", d.Env)

	raw, err := afero.ReadFile(fs, store.Path())
	require.NoError(t, err)

	var onDisk map[string]any
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, "p1", onDisk["projectId"])
	assert.Equal(t, "prod", onDisk["env"])
	assert.Equal(t, "payments", onDisk["team"])
	assert.Equal(t, map[string]any{"pinned": true}, onDisk["meta"])
}

func TestUpdateFieldUnknownAttribute(t *testing.T) {
	store, _ := newTestStore(t, ptr(`{"projectId":"p1"}`))

	_, err := store.UpdateField(Field("owner"), "ana@example.com")
	require.NoError(t, err)

	d, err := store.Load()
	require.NoError(t, err)
	raw, ok := d.Extra("owner")
	require.True(t, ok)
	assert.JSONEq(t, `"ana@example.com"`, string(raw))
}

func TestUpdateFieldRequiresLink(t *testing.T) {
	store, _ := newTestStore(t, nil)

	_, err := store.UpdateField(FieldEnv, "prod")
	assert.ErrorIs(t, err, kerrors.ErrNotLinked)
}

func TestSaveFailureIsIOError(t *testing.T) {
	store := NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), workDir)

	err := store.Save(Descriptor{ProjectID: "p1"})
	var ioErr *kerrors.IOError
	assert.True(t, errors.As(err, &ioErr), "got %v", err)
}

func TestRemove(t *testing.T) {
	store, _ := newTestStore(t, ptr(`{"projectId":"p1"}`))

	require.NoError(t, store.Remove())
	assert.False(t, store.IsLinked())
	assert.NoError(t, store.Remove(), "removing twice is fine")
}
