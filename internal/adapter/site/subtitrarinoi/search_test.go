package subtitrarinoi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subtitrari-noi-addon/internal/domain"
)

// fakeSite serves canned pages for the paginated search, public search and detail endpoints.
type fakeSite struct {
	mu            sync.Mutex
	paginated     map[string]string // cautare term -> HTML
	public        map[string]string // s term -> HTML
	detail        map[string]string // id -> HTML
	paginatedSeen []string
	publicSeen    []string
	detailSeen    []string
}

func newFakeSite() *fakeSite {
	return &fakeSite{
		paginated: map[string]string{},
		public:    map[string]string{},
		detail:    map[string]string{},
	}
}

func (f *fakeSite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == paginatedSearchPath && r.Method == http.MethodPost:
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		term := r.PostForm.Get("cautare")
		f.paginatedSeen = append(f.paginatedSeen, term)
		_, _ = w.Write([]byte(f.paginated[term]))
	case r.URL.Path == "/index.php" && r.URL.Query().Get("page") == "movie_details":
		id := r.URL.Query().Get("id")
		f.detailSeen = append(f.detailSeen, id)
		page, ok := f.detail[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(page))
	case r.URL.Path == "/" && r.URL.Query().Has("s"):
		term := r.URL.Query().Get("s")
		f.publicSeen = append(f.publicSeen, term)
		_, _ = w.Write([]byte(f.public[term]))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeSite) seen() (paginated, public, detail []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paginatedSeen...), append([]string(nil), f.publicSeen...), append([]string(nil), f.detailSeen...)
}

func newTestSite(t *testing.T, fake *fakeSite) *Site {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return New(server.URL)
}

func resultsPage(links ...string) string {
	html := "<html><body><div class=\"results\">"
	for _, l := range links {
		html += l
	}
	return html + "</div></body></html>"
}

func TestNumericForms(t *testing.T) {
	assert.Equal(t, []string{"468569", "0468569"}, numericForms("tt0468569"))
	assert.Equal(t, []string{"1375666"}, numericForms("tt1375666"))
	assert.Equal(t, []string{"000"}, numericForms("tt000"))
}

func TestFreeTextTerms(t *testing.T) {
	info := &domain.MediaInfo{Title: "The Dark Knight", Year: "2008"}
	assert.Equal(t,
		[]string{"468569", "tt0468569", "The Dark Knight 2008", "The Dark Knight"},
		freeTextTerms("tt0468569", info),
	)
	assert.Equal(t, []string{"468569", "tt0468569"}, freeTextTerms("tt0468569", nil))
	assert.Equal(t,
		[]string{"1375666", "tt1375666", "Inception"},
		freeTextTerms("tt1375666", &domain.MediaInfo{Title: "Inception"}),
	)
}

func TestInternalIDFromHref(t *testing.T) {
	tests := []struct {
		href   string
		want   string
		wantOK bool
	}{
		{"/index.php?page=movie_details&act=1&id=12345", "12345", true},
		{"https://www.subtitrari-noi.ro/index.php?id=7", "7", true},
		{"/the-dark-knight-2008-12345", "12345", true},
		{"https://www.subtitrari-noi.ro/the-dark-knight-12345/", "12345", true},
		{"/12345-subtitrari-noi.ro-the.dark.knight.zip", "", false},
		{"/contact", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.href, func(t *testing.T) {
			got, ok := internalIDFromHref(tc.href)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSearch_DirectNumeric_TriesZeroStrippedFirst(t *testing.T) {
	fake := newFakeSite()
	fake.paginated["0468569"] = resultsPage(`<a href="/index.php?page=movie_details&act=1&id=555">The Dark Knight (2008)</a>`)
	site := newTestSite(t, fake)

	result, ok := site.Search(context.Background(), "tt0468569", nil)
	require.True(t, ok)
	assert.Equal(t, "555", result.InternalID)

	paginated, public, _ := fake.seen()
	assert.Equal(t, []string{"468569", "0468569"}, paginated)
	assert.Empty(t, public, "free-text strategy must not run after a direct hit")
}

func TestSearch_DirectNumeric_StopsAtFirstFormWithCandidates(t *testing.T) {
	fake := newFakeSite()
	fake.paginated["468569"] = resultsPage(`<a href="/the-dark-knight-2008-321">The Dark Knight (2008)</a>`)
	site := newTestSite(t, fake)

	result, ok := site.Search(context.Background(), "tt0468569", nil)
	require.True(t, ok)
	assert.Equal(t, "321", result.InternalID)
	assert.Equal(t, "The Dark Knight (2008)", result.DisplayText)

	paginated, _, _ := fake.seen()
	assert.Equal(t, []string{"468569"}, paginated)
}

func TestSearch_DirectNumeric_FiltersAndDeduplicates(t *testing.T) {
	fake := newFakeSite()
	fake.paginated["1375666"] = resultsPage(
		`<a href="/index.php?page=movie_details&act=1&id=1">abc</a>`,
		`<a href="/contact">Contact us</a>`,
		`<a href="/index.php?page=movie_details&act=1&id=2">Inception (2010)</a>`,
		`<a href="/inception-2010-2">Inception again</a>`,
		`<a href="/index.php?page=movie_details&act=1&id=3">Inception: The Cobol Job</a>`,
	)

	site := newTestSite(t, fake)
	doc, err := site.postPaginatedSearch(context.Background(), "1375666")
	require.NoError(t, err)

	candidates := searchCandidates(doc, DefaultSelectors.SearchResultLink)
	require.Len(t, candidates, 2)
	assert.Equal(t, "2", candidates[0].InternalID)
	assert.Equal(t, "Inception (2010)", candidates[0].DisplayText)
	assert.Equal(t, "3", candidates[1].InternalID)
}

func TestSearch_Disambiguation_PrefersNormalizedMatch(t *testing.T) {
	fake := newFakeSite()
	fake.paginated["468569"] = resultsPage(
		`<a href="/index.php?page=movie_details&act=1&id=900">Batman Begins (2005)</a>`,
		`<a href="/index.php?page=movie_details&act=1&id=100">The Dark Knight (2008)</a>`,
		`<a href="/index.php?page=movie_details&act=1&id=200">The Dark Knight Rises (2012)</a>`,
	)
	site := newTestSite(t, fake)

	result, ok := site.Search(context.Background(), "tt0468569", &domain.MediaInfo{Title: "The Dark Knight", Year: "2008"})
	require.True(t, ok)
	assert.Equal(t, "100", result.InternalID)
}

func TestDisambiguate(t *testing.T) {
	candidates := []domain.SiteSearchResult{
		{InternalID: "1", DisplayText: "The Dark Knight (2008)"},
		{InternalID: "2", DisplayText: "The Dark Knight Rises (2012)"},
	}

	assert.Equal(t, "1", disambiguate(candidates, "The Dark Knight").InternalID)
	assert.Equal(t, "2", disambiguate(candidates, "the dark knight rises").InternalID)
	assert.Equal(t, "1", disambiguate(candidates, "Inception").InternalID, "no match falls back to first")
	assert.Equal(t, "1", disambiguate(candidates, "").InternalID, "no title falls back to first")
}

func TestSearch_FallsBackToFreeText(t *testing.T) {
	fake := newFakeSite()
	fake.public["The Dark Knight 2008"] = resultsPage(
		`<a href="/news/123">News</a>`,
		`<a href="/index.php?page=movie_details&act=1&id=4242">The Dark Knight</a>`,
		`<a href="/index.php?page=movie_details&act=1&id=4343">The Dark Knight Rises</a>`,
	)
	site := newTestSite(t, fake)

	result, ok := site.Search(context.Background(), "tt0468569", &domain.MediaInfo{Title: "The Dark Knight", Year: "2008"})
	require.True(t, ok)
	assert.Equal(t, "4242", result.InternalID)
	assert.Equal(t, "The Dark Knight", result.DisplayText)

	paginated, public, _ := fake.seen()
	assert.Equal(t, []string{"468569", "0468569"}, paginated)
	assert.Equal(t, []string{"468569", "tt0468569", "The Dark Knight 2008"}, public)
}

func TestSearch_NothingFound(t *testing.T) {
	fake := newFakeSite()
	site := newTestSite(t, fake)

	_, ok := site.Search(context.Background(), "tt1375666", &domain.MediaInfo{Title: "Inception", Year: "2010"})
	assert.False(t, ok)

	_, public, _ := fake.seen()
	assert.Equal(t, []string{"1375666", "tt1375666", "Inception 2010", "Inception"}, public)
}

func TestSearch_UpstreamErrorsAreSoft(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	site := New(server.URL)
	_, ok := site.Search(context.Background(), "tt1375666", nil)
	assert.False(t, ok)
	// one paginated attempt plus two public terms, each tried exactly once
	assert.Equal(t, 3, calls, fmt.Sprintf("unexpected call count %d", calls))
}

func TestSite_ID(t *testing.T) {
	assert.Equal(t, "subtitrari-noi", New("").ID())
}
