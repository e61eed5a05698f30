package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	_ "movie-recommendation/docs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var routerAnnotation = regexp.MustCompile(`@Router\s+(\S+)\s+\[(\w+)\]`)

var pathParam = regexp.MustCompile(`:(\w+)`)

// TestSwaggerDocMatchesRoutes fails when docs/ was not regenerated with
// `go generate ./...` after a route or @Router annotation changed.
func TestSwaggerDocMatchesRoutes(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	documented := []string{}
	for path, ops := range doc.Paths {
		for method := range ops {
			documented = append(documented, strings.ToUpper(method)+" "+path)
		}
	}
	sort.Strings(documented)

	registered := []string{}
	for _, r := range app.GetRoutes(true) {
		if r.Method == http.MethodHead || r.Path == "/health" || strings.HasPrefix(r.Path, "/swagger") {
			continue
		}
		path := pathParam.ReplaceAllString(r.Path, "{$1}")
		if !strings.HasSuffix(path, "/") {
			path += "/"
		}
		registered = append(registered, r.Method+" "+path)
	}
	sort.Strings(registered)

	files, err := filepath.Glob("../handlers/*_handler.go")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	annotated := []string{}
	for _, file := range files {
		src, err := os.ReadFile(file)
		require.NoError(t, err)
		for _, m := range routerAnnotation.FindAllStringSubmatch(string(src), -1) {
			annotated = append(annotated, strings.ToUpper(m[2])+" "+m[1])
		}
	}
	sort.Strings(annotated)

	assert.Equal(t, registered, documented, "swagger paths differ from the registered routes")
	assert.Equal(t, annotated, documented, "swagger paths differ from the @Router annotations")
}
