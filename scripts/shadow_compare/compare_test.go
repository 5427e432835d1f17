package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodiesEqualIgnoresOrderAndFields(t *testing.T) {
	goBody := []byte(`[{"id":"7f1c","subject":"Math","cost":80},{"id":"a2b3","subject":"Math","cost":95.5}]`)
	legacyBody := []byte(`[{"id":2,"subject":"Math","cost":95.5},{"id":1,"subject":"Math","cost":80.0}]`)

	assert.True(t, bodiesEqual(goBody, legacyBody, []string{"id"}))
	assert.False(t, bodiesEqual(goBody, legacyBody, nil))
}

func TestBodiesEqualErrorContract(t *testing.T) {
	assert.True(t, bodiesEqual([]byte(`{"error":"Missing filters search classes"}`), []byte(`{ "error": "Missing filters search classes" }`), nil))
	assert.False(t, bodiesEqual([]byte(`{"error":"Missing filters search classes"}`), []byte(`{"error":"Invalid filters search classes"}`), nil))
	assert.True(t, bodiesEqual([]byte("plain\n"), []byte("plain"), nil))
}

func TestCompareAgainstServers(t *testing.T) {
	goSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Missing filters search classes"}`))
	}))
	defer goSrv.Close()
	legacySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Missing filters search classes"}`))
	}))
	defer legacySrv.Close()

	cmp := &comparer{client: http.DefaultClient, goBase: goSrv.URL, legacyBase: legacySrv.URL}
	res := cmp.compare(context.Background(), target{Path: "classes?subject=Math"})

	require.NoError(t, res.Error)
	assert.True(t, res.StatusMatch)
	assert.True(t, res.BodyMatch)
}

func TestLoadTargets(t *testing.T) {
	targets, err := loadTargets("targets.json")
	require.NoError(t, err)
	assert.NotEmpty(t, targets)

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"targets":[]}`), 0o600))
	_, err = loadTargets(empty)
	assert.Error(t, err)
}
