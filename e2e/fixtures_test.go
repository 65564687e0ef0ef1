//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

const testAPIKey = "e2e-key"

// fakeOMDb serves title lookups from a fixed catalogue
type fakeOMDb struct {
	*httptest.Server

	mu      sync.Mutex
	titles  []string
	failing bool
}

func newFakeOMDb(t *testing.T, catalogue map[string]map[string]string) *fakeOMDb {
	t.Helper()
	f := &fakeOMDb{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title := r.URL.Query().Get("t")
		f.mu.Lock()
		f.titles = append(f.titles, title)
		failing := f.failing
		f.mu.Unlock()

		if failing {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		if r.URL.Query().Get("apikey") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Invalid API key!"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		movie, ok := catalogue[title]
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Movie not found!"})
			return
		}
		body := map[string]string{"Response": "True", "Title": title}
		for k, v := range movie {
			body[k] = v
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(f.Close)
	return f
}

// Titles returns the titles looked up so far
func (f *fakeOMDb) Titles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.titles...)
}

// SetFailing makes every lookup answer with a server error
func (f *fakeOMDb) SetFailing(v bool) {
	f.mu.Lock()
	f.failing = v
	f.mu.Unlock()
}

// searchArgs points the app at the fake service
func (f *fakeOMDb) searchArgs() []string {
	return []string{"-omdb-url", f.URL + "/", "-api-key", testAPIKey}
}

var alien = map[string]string{
	"Year":     "1979",
	"Genre":    "Horror, Sci-Fi",
	"Director": "Ridley Scott",
	"Awards":   "Won 1 Oscar",
	"Plot":     "The crew of a commercial spacecraft encounters a deadly lifeform.",
}
