package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/scoring"
	"github.com/timmy/reconlens/internal/source"
)

// fakeProvider returns the same items for every query. The score of an item
// is read from its Description; items below 5 are rejected.
type fakeProvider struct {
	name  string
	items []source.Item
	err   error

	mu      sync.Mutex
	queries []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(_ context.Context, query string, _ int) ([]source.Item, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeProvider) Normalize(item source.Item, query string, _ *scoring.Matcher, _ bool) (domain.Candidate, bool) {
	score, _ := strconv.Atoi(item.Description)
	if score < 5 {
		return domain.Candidate{}, false
	}
	return domain.Candidate{
		Identity: f.name + "-" + item.ID,
		Title:    item.Title,
		ImageURL: item.ImageURL,
		Score:    score,
		Query:    query,
	}, true
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func scoredItems(prefix string, scores ...int) []source.Item {
	items := make([]source.Item, 0, len(scores))
	for i, s := range scores {
		id := fmt.Sprintf("%s%d", prefix, i+1)
		items = append(items, source.Item{
			ID:          id,
			Title:       "Image " + id,
			ImageURL:    "https://img.example/" + id + ".jpg",
			Description: strconv.Itoa(s),
		})
	}
	return items
}

// fakeFetcher serves payloads by URL.
type fakeFetcher struct {
	mu      sync.Mutex
	bodies  map[string][]byte
	fails   map[string]bool
	fetched []string
}

func (f *fakeFetcher) GetBytes(_ context.Context, url string, _ map[string]string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, url)
	if f.fails[url] {
		return nil, errors.New("connection reset")
	}
	body, ok := f.bodies[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return body, nil
}

// memStore is an in-memory ObjectStorage.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (m *memStore) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()
	return nil
}

func (m *memStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *memStore) GetURL(key string) string { return "https://cdn.example/" + key }

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *memStore) keys() []string {
	keys, _ := m.List(context.Background(), "")
	return keys
}
