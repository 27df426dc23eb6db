package jobdesc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articleHTML() string {
	var paragraphs strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&paragraphs,
			"<p>We are looking for a backend engineer with experience in distributed systems, API design and production operations. Paragraph %d.</p>", i)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Backend Engineer - Acme</title></head>
<body>
<nav>Home | Jobs | About</nav>
<article>
<h1>Backend Engineer</h1>
%s
</article>
<footer>Copyright Acme</footer>
</body>
</html>`, paragraphs.String())
}

func TestFetch_ExtractsArticleText(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, articleHTML())
	}))
	defer srv.Close()

	f := NewFetcher(nil)
	text, err := f.Fetch(context.Background(), srv.URL+"/jobs/123")
	require.NoError(t, err)

	assert.Contains(t, text, "distributed systems")
	assert.NotContains(t, text, "Copyright Acme")
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestFetch_ShortContentIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><article><p>Log in to view this job.</p></article></body></html>`)
	}))
	defer srv.Close()

	f := NewFetcher(nil)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.Error(), "too short")
}

func TestFetch_ShortCJKContentIsFailure(t *testing.T) {
	// well over 200 bytes but far under 200 characters; the threshold is
	// a rune count
	text := strings.Repeat("백엔드 엔지니어 채용 공고 ", 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<html><body><article><p>%s</p></article></body></html>`, text)
	}))
	defer srv.Close()

	f := NewFetcher(nil)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestFetch_CJKArticlePasses(t *testing.T) {
	text := strings.Repeat("분산 시스템과 API 설계 경험이 있는 백엔드 엔지니어를 찾습니다. ", 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<html><body><article><h1>백엔드 엔지니어</h1><p>%s</p></article></body></html>`, text)
	}))
	defer srv.Close()

	f := NewFetcher(nil)
	got, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, got, "백엔드 엔지니어")
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(nil)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, http.StatusNotFound, ferr.Status)
}

func TestFetch_RejectsNonHTTPScheme(t *testing.T) {
	f := NewFetcher(nil)
	_, err := f.Fetch(context.Background(), "file:///etc/passwd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported URL scheme")
}

func TestFetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	f := NewFetcher(nil)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var ferr *FetchError
	assert.ErrorAs(t, err, &ferr)
}
