package cvstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"

	"cv-builder/internal/cv"
)

const resumeBody = `{
  "personal": {"name": "Jordan Lee", "email": "jordan.lee@example.com"},
  "experience": [{"company": "Acme", "position": "Engineer", "startDate": "2021-04", "endDate": "Present"}],
  "education": [{"institution": "UT Austin", "degree": "B.Sc."}],
  "skills": [{"category": "Languages", "items": ["Go", "SQL"]}]
}`

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != DataPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewStoreStartsLoadingWithoutData(t *testing.T) {
	st := New(nil).State()
	if !st.IsLoading {
		t.Fatalf("expected isLoading true before first load")
	}
	if st.ResumeData != nil || st.Error != nil {
		t.Fatalf("expected empty state, got %+v", st)
	}
}

func TestLoadResumeDataSuccess(t *testing.T) {
	srv := newServer(t, http.StatusOK, resumeBody)
	store := New(NewHTTPFetcher(srv.URL, 0))

	if err := store.LoadResumeData(context.Background()); err != nil {
		t.Fatalf("LoadResumeData: %v", err)
	}

	var want cv.Resume
	if err := json.Unmarshal([]byte(resumeBody), &want); err != nil {
		t.Fatalf("decode expected: %v", err)
	}
	st := store.State()
	if st.ResumeData == nil || !reflect.DeepEqual(*st.ResumeData, want) {
		t.Fatalf("expected resume %+v, got %+v", want, st.ResumeData)
	}
	if st.Error != nil {
		t.Fatalf("expected no error, got %q", *st.Error)
	}
	if st.IsLoading {
		t.Fatalf("expected isLoading false")
	}
}

func TestLoadResumeDataKeepsDocumentAsServed(t *testing.T) {
	body := `{
  "personal": {"name": "A", "nationality": "DE"},
  "skills": ["Go", "SQL"],
  "certifications": [{"name": "CKA"}]
}`
	srv := newServer(t, http.StatusOK, body)
	store := New(NewHTTPFetcher(srv.URL, 0))

	if err := store.LoadResumeData(context.Background()); err != nil {
		t.Fatalf("LoadResumeData: %v", err)
	}
	st := store.State()
	if st.Error != nil {
		t.Fatalf("expected no error, got %q", *st.Error)
	}
	if st.ResumeData == nil {
		t.Fatalf("expected resume to be loaded")
	}

	got, err := json.Marshal(st.ResumeData)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var want bytes.Buffer
	if err := json.Compact(&want, []byte(body)); err != nil {
		t.Fatalf("Compact: %v", err)
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Fatalf("expected document unchanged\nwant %s\ngot  %s", want.Bytes(), got)
	}

	skills := st.ResumeData.Skills
	if len(skills) != 1 || !reflect.DeepEqual(skills[0].Items, []string{"Go", "SQL"}) {
		t.Fatalf("expected one group of loose skills, got %+v", skills)
	}
	if st.ResumeData.Personal.Name != "A" {
		t.Fatalf("expected name A, got %q", st.ResumeData.Personal.Name)
	}
}

func TestLoadResumeDataNonSuccessKeepsDefaults(t *testing.T) {
	srv := newServer(t, http.StatusNotFound, `not found`)
	store := New(NewHTTPFetcher(srv.URL, 0))

	if err := store.LoadResumeData(context.Background()); err != nil {
		t.Fatalf("expected non-success status to be silent, got %v", err)
	}

	st := store.State()
	if st.ResumeData != nil {
		t.Fatalf("expected no resume, got %+v", st.ResumeData)
	}
	if st.Error != nil {
		t.Fatalf("expected no error, got %q", *st.Error)
	}
	if st.IsLoading {
		t.Fatalf("expected isLoading false")
	}
}

func TestLoadResumeDataNonSuccessKeepsPreviousResume(t *testing.T) {
	srv := newServer(t, http.StatusInternalServerError, ``)
	store := New(NewHTTPFetcher(srv.URL, 0))
	store.UpdateResumeData(cv.Sample())

	if err := store.LoadResumeData(context.Background()); err != nil {
		t.Fatalf("LoadResumeData: %v", err)
	}
	if _, ok := store.Resume(); !ok {
		t.Fatalf("expected previous resume to survive a non-success load")
	}
}

func TestLoadResumeDataFetchFailureRecordsError(t *testing.T) {
	store := New(FetcherFunc(func(ctx context.Context) (cv.Resume, error) {
		return cv.Resume{}, errors.New("connection refused")
	}))

	err := store.LoadResumeData(context.Background())
	if !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed, got %v", err)
	}

	st := store.State()
	if st.Error == nil || *st.Error == "" {
		t.Fatalf("expected error message")
	}
	if st.ResumeData != nil {
		t.Fatalf("expected no resume")
	}
	if st.IsLoading {
		t.Fatalf("expected isLoading false")
	}
}

func TestLoadResumeDataEmptyErrorUsesFallbackMessage(t *testing.T) {
	store := New(FetcherFunc(func(ctx context.Context) (cv.Resume, error) {
		return cv.Resume{}, errors.New("")
	}))
	_ = store.LoadResumeData(context.Background())

	st := store.State()
	if st.Error == nil || *st.Error != unknownErrorMessage {
		t.Fatalf("expected fallback message, got %v", st.Error)
	}
}

func TestLoadResumeDataMalformedBodyRecordsError(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"personal":`)
	store := New(NewHTTPFetcher(srv.URL, 0))

	if err := store.LoadResumeData(context.Background()); !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed, got %v", err)
	}
	if st := store.State(); st.Error == nil {
		t.Fatalf("expected decode error to be recorded")
	}
}

func TestLoadResumeDataClearsPreviousError(t *testing.T) {
	fail := true
	store := New(FetcherFunc(func(ctx context.Context) (cv.Resume, error) {
		if fail {
			return cv.Resume{}, errors.New("boom")
		}
		return cv.Sample(), nil
	}))

	_ = store.LoadResumeData(context.Background())
	fail = false
	if err := store.LoadResumeData(context.Background()); err != nil {
		t.Fatalf("LoadResumeData: %v", err)
	}
	if st := store.State(); st.Error != nil {
		t.Fatalf("expected error cleared, got %q", *st.Error)
	}
}

func TestResetResumeDataLeavesLoadingUntouched(t *testing.T) {
	store := New(FetcherFunc(func(ctx context.Context) (cv.Resume, error) {
		return cv.Resume{}, errors.New("boom")
	}))
	store.UpdateResumeData(cv.Sample())

	store.ResetResumeData()
	st := store.State()
	if st.ResumeData != nil || st.Error != nil {
		t.Fatalf("expected cleared state, got %+v", st)
	}
	if !st.IsLoading {
		t.Fatalf("expected isLoading to stay true before any load")
	}

	_ = store.LoadResumeData(context.Background())
	store.ResetResumeData()
	st = store.State()
	if st.ResumeData != nil || st.Error != nil {
		t.Fatalf("expected cleared state after failed load, got %+v", st)
	}
	if st.IsLoading {
		t.Fatalf("expected isLoading to stay false after load")
	}
}

func TestUpdateResumeDataReplacesWholesale(t *testing.T) {
	store := New(nil)
	store.UpdateResumeData(cv.Sample())

	next := cv.Resume{Personal: cv.Personal{Name: "Alex Doe"}}
	store.UpdateResumeData(next)

	st := store.State()
	if st.ResumeData == nil || !reflect.DeepEqual(*st.ResumeData, next) {
		t.Fatalf("expected exactly %+v, got %+v", next, st.ResumeData)
	}
}

func TestOverlappingLoadsNewestStartedWins(t *testing.T) {
	releaseFirst := make(chan struct{})
	firstStarted := make(chan struct{})
	var once sync.Once
	calls := 0
	var mu sync.Mutex

	store := New(FetcherFunc(func(ctx context.Context) (cv.Resume, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			once.Do(func() { close(firstStarted) })
			<-releaseFirst
			return cv.Resume{Personal: cv.Personal{Name: "stale"}}, nil
		}
		return cv.Resume{Personal: cv.Personal{Name: "fresh"}}, nil
	}))

	done := make(chan error, 1)
	go func() {
		done <- store.LoadResumeData(context.Background())
	}()
	<-firstStarted

	if err := store.LoadResumeData(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	close(releaseFirst)
	if err := <-done; err != nil {
		t.Fatalf("first load: %v", err)
	}

	r, ok := store.Resume()
	if !ok || r.Personal.Name != "fresh" {
		t.Fatalf("expected newest load to win, got %+v", r)
	}
	if store.State().IsLoading {
		t.Fatalf("expected isLoading false")
	}
}

func TestEnsureLoadedOnlyLoadsOnce(t *testing.T) {
	calls := 0
	store := New(FetcherFunc(func(ctx context.Context) (cv.Resume, error) {
		calls++
		return cv.Sample(), nil
	}))

	for i := 0; i < 3; i++ {
		if err := store.EnsureLoaded(context.Background()); err != nil {
			t.Fatalf("EnsureLoaded: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one fetch, got %d", calls)
	}
}
