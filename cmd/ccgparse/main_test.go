package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ling0322/ccg"
	"github.com/stretchr/testify/require"
)

const testLexicon = `
:- S, NP, N
the => NP/N
dog => N
runs => S\NP
John => NP
Mary => NP
likes => (S\NP)/NP
`

func writeLexicon(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "toy.lex")
	require.NoError(t, os.WriteFile(path, []byte(testLexicon), 0644))
	return path
}

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	path := writeLexicon(t)

	out, err := runCmd(t, "", "parse", "-l", path, "the", "dog", "runs")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "(S A\n"), out)

	out, err = runCmd(t, "runs the dog\nthe dog runs\n", "parse", "-l", path, "--rules", "A")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "no parse\n(S A"), out)

	_, err = runCmd(t, "", "parse", "-l", path, "the", "cat")
	require.Error(t, err)

	_, err = runCmd(t, "", "parse", "the", "dog")
	require.Error(t, err)

	_, err = runCmd(t, "", "parse", "-l", path, "--rules", "lifting", "the", "dog")
	require.Error(t, err)
}

func TestAcceptsCmd(t *testing.T) {
	path := writeLexicon(t)

	out, err := runCmd(t, "", "accepts", "-l", path, "John", "likes", "Mary")
	require.NoError(t, err)
	require.Equal(t, "true\tJohn likes Mary\n", out)

	out, err = runCmd(t, "", "accepts", "-l", path, "--start", "NP", "the", "dog")
	require.NoError(t, err)
	require.Equal(t, "true\tthe dog\n", out)

	out, err = runCmd(t, "the dog runs\nMary John\n", "accepts", "-l", path)
	require.Error(t, err)
	require.Equal(t, "true\tthe dog runs\nfalse\tMary John\n", out)
}

func TestChartCmd(t *testing.T) {
	path := writeLexicon(t)
	out, err := runCmd(t, "", "chart", "-l", path, "--rules", "A,C", "-j", "4", "the", "dog", "runs")
	require.NoError(t, err)
	require.Equal(t, "[0,1: NP/N] [1,2: N] [2,3: S\\NP]\n[0,2: NP] [1,3: ]\n[0,3: S]\n", out)
}

func newTestHandler(t *testing.T) http.Handler {
	lexicon, err := ccg.ParseLexicon(testLexicon)
	require.NoError(t, err)
	return newHandler(ccg.NewParser(lexicon), lexicon)
}

func get(t *testing.T, handler http.Handler, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleParse(t *testing.T) {
	handler := newTestHandler(t)

	rec := get(t, handler, "/api/parse?sentence=the+dog+runs")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var resp parseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, []string{"the", "dog", "runs"}, resp.Tokens)
	require.Len(t, resp.Trees, 1)
	root := resp.Trees[0]
	require.Equal(t, "S", root.Category)
	require.Equal(t, "A", root.Rule)
	require.Len(t, root.Children, 2)
	require.Equal(t, "NP", root.Children[0].Category)
	require.Equal(t, "runs", root.Children[1].Children[0].Word)

	rec = get(t, handler, "/api/parse?sentence=John+likes+Mary")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Trees, 2)

	rec = get(t, handler, "/api/parse?sentence=the+unicorn")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var errResp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	require.Equal(t, "unicorn", errResp.Token)
	require.NotNil(t, errResp.Position)
	require.Equal(t, 1, *errResp.Position)

	rec = get(t, handler, "/api/parse")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = get(t, handler, "/api/parse?sentence=the+dog&start=NP/")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/parse?sentence=the+dog", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleAccepts(t *testing.T) {
	handler := newTestHandler(t)

	rec := get(t, handler, "/api/accepts?sentence=the+dog&start=NP")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp acceptsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Accepted)
	require.Equal(t, "NP", resp.Start)

	rec = get(t, handler, "/api/accepts?sentence=the+dog")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Accepted)
	require.Equal(t, "S", resp.Start)
}

func TestHandleLexicon(t *testing.T) {
	rec := get(t, newTestHandler(t), "/api/lexicon")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp lexiconResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, []string{"N", "NP", "S"}, resp.Primitives)
	require.Equal(t, []string{"(S\\NP)/NP"}, resp.Entries["likes"])
	require.Len(t, resp.Entries, 6)
}
