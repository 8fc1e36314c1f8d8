package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	gelbooru "github.com/dictor/gelbooru-client"
)

const (
	postsJSON = `{"@attributes":{"limit":100,"offset":0,"count":2},"post":[{"id":1,"rating":"general","width":10,"height":20,"tags":"cat solo","file_url":"https:\/\/example.com\/images\/one.jpg"},{"id":2,"rating":"e","tags":"cat","file_url":"https:\/\/example.com\/images\/two.jpg"}]}`
	tagsJSON  = `{"@attributes":{"limit":100,"offset":0,"count":2},"tag":[{"id":1,"name":"fluffy","count":1234,"type":0,"ambiguous":0},{"id":2,"name":"fluffy_tail","count":56,"type":4,"ambiguous":0}]}`
	emptyJSON = `{"@attributes":{"limit":100,"offset":0,"count":0}}`
)

type fakeBoard struct {
	mu      sync.Mutex
	queries []url.Values
}

func (b *fakeBoard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b.mu.Lock()
	b.queries = append(b.queries, q)
	b.mu.Unlock()

	switch {
	case q.Get("s") == "tag":
		io.WriteString(w, tagsJSON)
	case q.Get("id") == "404":
		io.WriteString(w, emptyJSON)
	case q.Get("id") == "500":
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"message":"database unavailable"}`)
	case q.Get("id") != "":
		io.WriteString(w, strings.Replace(postsJSON, `"id":1,`, `"id":`+q.Get("id")+`,`, 1))
	default:
		io.WriteString(w, postsJSON)
	}
}

func (b *fakeBoard) last() url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queries[len(b.queries)-1]
}

func run(t *testing.T, args ...string) (string, *fakeBoard, error) {
	t.Helper()

	board := &fakeBoard{}
	srv := httptest.NewServer(board)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	var out bytes.Buffer
	root := newRootCmd(log)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--base-url", srv.URL + "/index.php"}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), board, err
}

func TestSearchCommand(t *testing.T) {
	t.Parallel()

	out, board, err := run(t, "-o", "json", "search", "Cat Ears", "-x", "nsfw,comic", "-l", "200")
	require.NoError(t, err)

	q := board.last()
	assert.Equal(t, "post", q.Get("s"))
	assert.Equal(t, "100", q.Get("limit"))
	assert.Equal(t, "cat_ears -nsfw -comic", q.Get("tags"))

	var images []gelbooru.Image
	require.NoError(t, json.Unmarshal([]byte(out), &images))
	require.Len(t, images, 2)
	assert.Equal(t, "one.jpg", images[0].Filename)
	assert.Equal(t, []string{"cat", "solo"}, images[0].Tags)
}

func TestSearchCommandText(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "search", "cat")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "https://example.com/images/one.jpg")
	assert.Contains(t, lines[2], "explicit")
}

func TestPostCommand(t *testing.T) {
	t.Parallel()

	out, board, err := run(t, "-o", "yaml", "post", "7", "404", "9")
	require.NoError(t, err)

	var images []gelbooru.Image
	require.NoError(t, yaml.Unmarshal([]byte(out), &images))
	require.Len(t, images, 2, "missing posts are skipped")
	assert.Equal(t, 7, images[0].ID)
	assert.Equal(t, 9, images[1].ID)

	board.mu.Lock()
	defer board.mu.Unlock()
	assert.Len(t, board.queries, 3)
}

func TestPostCommandErrors(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "post", "abc")
	assert.ErrorContains(t, err, "invalid post id")

	_, _, err = run(t, "post", "500")
	var respErr *gelbooru.ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, "database unavailable", respErr.Message)
}

func TestTagsCommand(t *testing.T) {
	t.Parallel()

	t.Run("single name", func(t *testing.T) {
		t.Parallel()

		out, board, err := run(t, "-o", "json", "tags", "Fluffy", "-p", "ignored")
		require.NoError(t, err)

		q := board.last()
		assert.Equal(t, "fluffy", q.Get("name"))
		assert.NotContains(t, q, "name_pattern")

		var tags []gelbooru.Tag
		require.NoError(t, json.Unmarshal([]byte(out), &tags))
		assert.Len(t, tags, 1)
	})

	t.Run("pattern and sorting", func(t *testing.T) {
		t.Parallel()

		out, board, err := run(t, "-o", "json", "tags", "-p", "fluff", "--sort", "name", "--order", "asc", "-l", "5")
		require.NoError(t, err)

		q := board.last()
		assert.Equal(t, "fluff", q.Get("name_pattern"))
		assert.Equal(t, "name", q.Get("orderby"))
		assert.Equal(t, "ASC", q.Get("order"))
		assert.Equal(t, "5", q.Get("limit"))

		var tags []gelbooru.Tag
		require.NoError(t, json.Unmarshal([]byte(out), &tags))
		assert.Len(t, tags, 2)
	})
}

func TestCredentialFlags(t *testing.T) {
	t.Parallel()

	_, board, err := run(t, "--api-key", "secret", "--user-id", "42", "search")
	require.NoError(t, err)

	q := board.last()
	assert.Equal(t, "secret", q.Get("api_key"))
	assert.Equal(t, "42", q.Get("user_id"))
	assert.NotContains(t, q, "tags")
}

func TestInvalidFormats(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "-o", "csv", "search")
	assert.ErrorContains(t, err, "unknown output format")

	_, _, err = run(t, "--api-format", "html", "search")
	assert.ErrorContains(t, err, "unknown api format")
}
