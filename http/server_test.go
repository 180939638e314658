package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/clip"
	"github.com/fwojciec/mdclip/goquery"
	mdcliphttp "github.com/fwojciec/mdclip/http"
	"github.com/fwojciec/mdclip/markdown"
	"github.com/fwojciec/mdclip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><head><title>My Page</title></head><body><article><h1>Hi</h1><p>World</p></article></body></html>`

const expectedMarkdown = "# My Page\n\n*Source: [https://ex.com/a](https://ex.com/a)*\n\n# Hi\n\nWorld"

func newServer(t *testing.T, loader mdclip.PageLoader) *httptest.Server {
	t.Helper()
	builder := clip.NewBuilder(goquery.NewArticleExtractor(), markdown.NewConverter())
	srv := httptest.NewServer(mdcliphttp.NewServer(builder, loader, goquery.ParsePage))
	t.Cleanup(srv.Close)
	return srv
}

func staticLoader() *mock.PageLoader {
	return &mock.PageLoader{
		LoadPageFn: func(_ context.Context, url string) (*mdclip.Page, error) {
			return goquery.ParsePage(url, articlePage)
		},
	}
}

func postConvert(t *testing.T, srv *httptest.Server, body string) (int, mdclip.Response) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/convert", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out mdclip.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	srv := newServer(t, staticLoader())

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts supplied HTML", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, &mock.PageLoader{})
		body, err := json.Marshal(mdcliphttp.ConvertRequest{
			Action: mdclip.ActionConvertArticle,
			URL:    "https://ex.com/a",
			HTML:   articlePage,
		})
		require.NoError(t, err)

		status, resp := postConvert(t, srv, string(body))

		assert.Equal(t, http.StatusOK, status)
		assert.True(t, resp.Success)
		assert.Equal(t, expectedMarkdown, resp.Markdown)
	})

	t.Run("loads the page when no HTML is supplied", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, staticLoader())

		status, resp := postConvert(t, srv, `{"action":"convertArticle","url":"https://ex.com/a"}`)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, expectedMarkdown, resp.Markdown)
	})

	t.Run("title overrides the page title", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, staticLoader())

		_, resp := postConvert(t, srv, `{"action":"convertArticle","url":"https://ex.com/a","title":"Other"}`)

		assert.True(t, strings.HasPrefix(resp.Markdown, "# Other\n\n"))
	})

	t.Run("unknown action is reported in the response", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, staticLoader())

		status, resp := postConvert(t, srv, `{"action":"summarize","url":"https://ex.com/a"}`)

		assert.Equal(t, http.StatusOK, status)
		assert.False(t, resp.Success)
		assert.Equal(t, `unsupported action "summarize"`, resp.Error)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, staticLoader())

		status, resp := postConvert(t, srv, `{`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.False(t, resp.Success)
	})

	t.Run("requires a URL", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, staticLoader())

		status, resp := postConvert(t, srv, `{"action":"convertArticle"}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "url required", resp.Error)
	})

	t.Run("requires HTML when no loader is configured", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, nil)

		status, resp := postConvert(t, srv, `{"action":"convertArticle","url":"https://ex.com/a"}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "html required", resp.Error)
	})

	t.Run("maps load errors to status codes", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, &mock.PageLoader{
			LoadPageFn: func(_ context.Context, _ string) (*mdclip.Page, error) {
				return nil, mdclip.Errorf(mdclip.ENOTFOUND, "HTTP 404")
			},
		})

		status, resp := postConvert(t, srv, `{"action":"convertArticle","url":"https://ex.com/missing"}`)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "HTTP 404", resp.Error)
	})
}

func TestServer_Preview(t *testing.T) {
	t.Parallel()

	t.Run("renders sanitized HTML", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, staticLoader())

		resp, err := http.Get(srv.URL + "/preview?url=https://ex.com/a")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		assert.Contains(t, string(body), "<h1")
		assert.Contains(t, string(body), "World")
	})

	t.Run("reports missing content", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, &mock.PageLoader{
			LoadPageFn: func(_ context.Context, url string) (*mdclip.Page, error) {
				return &mdclip.Page{URL: url}, nil
			},
		})

		resp, err := http.Get(srv.URL + "/preview?url=https://ex.com/a")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestRenderPreview(t *testing.T) {
	t.Parallel()

	t.Run("renders markdown", func(t *testing.T) {
		t.Parallel()

		got, err := mdcliphttp.RenderPreview("# Title\n\n**bold**")

		require.NoError(t, err)
		assert.Contains(t, string(got), "<strong>bold</strong>")
	})

	t.Run("strips scripts", func(t *testing.T) {
		t.Parallel()

		got, err := mdcliphttp.RenderPreview(`[x](javascript:alert(1)) <script>alert(1)</script>`)

		require.NoError(t, err)
		assert.NotContains(t, string(got), "<script")
		assert.NotContains(t, string(got), "javascript:")
	})
}

func TestServer_OpenClose(t *testing.T) {
	t.Parallel()

	builder := clip.NewBuilder(goquery.NewArticleExtractor(), markdown.NewConverter())
	s := mdcliphttp.NewServer(builder, staticLoader(), goquery.ParsePage)
	s.Addr = "127.0.0.1:0"

	require.NoError(t, s.Open())
	s.Init()

	resp, err := http.Get(s.URL() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Close(ctx))
}
