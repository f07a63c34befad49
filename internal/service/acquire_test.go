package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/fetch"
	"github.com/timmy/reconlens/internal/logger"
	"github.com/timmy/reconlens/internal/sitedir"
	"github.com/timmy/reconlens/internal/source/commons"
)

var stonehenge = domain.Site{Slug: "stonehenge", Name: "Stonehenge", Region: "England", Blurb: "Neolithic monument"}

func TestSiteBudget(t *testing.T) {
	assert.Equal(t, 220*time.Second, SiteBudget(3))
	assert.Equal(t, 300*time.Second, SiteBudget(100))
	assert.Equal(t, 320*time.Second, SiteBudget(128))
}

func TestAttemptBudget(t *testing.T) {
	assert.Equal(t, 83, AttemptBudget(3))
	assert.Equal(t, 120, AttemptBudget(10))
}

// commonsFixture serves one search page with three files scoring 12, 9 and 4
// for Stonehenge, and a 4 KB body for every image URL.
func commonsFixture(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/img/") {
			w.Write([]byte(strings.Repeat("x", 4000)))
			return
		}
		page := func(id, index int, title string) map[string]interface{} {
			name := strings.ReplaceAll(title, " ", "_") + ".jpg"
			return map[string]interface{}{
				"pageid": id,
				"index":  index,
				"title":  "File:" + title,
				"imageinfo": []map[string]interface{}{{
					"thumburl":       srv.URL + "/img/" + name,
					"descriptionurl": "https://commons.example/wiki/File:" + name,
					"mime":           "image/jpeg",
					"extmetadata": map[string]interface{}{
						"LicenseShortName": map[string]interface{}{"value": "CC BY-SA 4.0"},
					},
				}},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"query": map[string]interface{}{"pages": map[string]interface{}{
				"1": page(1, 1, "Stonehenge drawing painting ruins today"),
				"2": page(2, 2, "Stonehenge reconstruction"),
				"3": page(3, 3, "Stonehenge reconstruction drawing"),
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProcessSiteEndToEnd(t *testing.T) {
	srv := commonsFixture(t)
	client := fetch.New(&fetch.Config{})
	primary := commons.NewAdapter(client, commons.Config{APIURL: srv.URL + "/w/api.php"})
	svc := NewAcquisitionService(NewRetriever(nil, Tier{Provider: primary, Ceiling: 2, Primary: true}), client, nil)

	root := t.TempDir()
	report, err := svc.ProcessSite(context.Background(), stonehenge, FetchOptions{Root: root, Target: 3, MaxPerQuery: 50})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Downloaded)
	assert.Equal(t, 3, report.Target)
	assert.False(t, report.Skipped)
	assert.Len(t, report.Queries, 7)

	d := sitedir.Open(root, "stonehenge")
	recs, err := d.ReadCaptions()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.NoError(t, domain.ValidateManifest(recs))
	assert.Equal(t, 12, recs[0].Score)
	assert.Equal(t, "001.jpg", recs[0].File)
	assert.Equal(t, "Stonehenge reconstruction drawing", recs[0].Title)
	assert.Equal(t, "Stonehenge reconstruction drawing (License: CC BY-SA 4.0)", recs[0].Caption)
	assert.Equal(t, 9, recs[1].Score)
	assert.Equal(t, "Stonehenge reconstruction", recs[0].Query)

	onDisk, err := d.ReadReport()
	require.NoError(t, err)
	assert.Equal(t, 2, onDisk.Downloaded)
	assert.Equal(t, "England", onDisk.Region)

	for _, name := range []string{"001.jpg", "002.jpg", domain.GalleryFileName} {
		_, err := os.Stat(d.Join(name))
		assert.NoError(t, err, name)
	}
}

func newFakeService(items []string, bodies map[string][]byte) (*AcquisitionService, *fakeFetcher) {
	scores := make([]int, len(items))
	for i := range items {
		scores[i] = 20 - i
	}
	provider := &fakeProvider{name: "p", items: scoredItems("p", scores...)}
	fetcher := &fakeFetcher{bodies: bodies, fails: map[string]bool{}}
	return NewAcquisitionService(NewRetriever(nil, Tier{Provider: provider, Ceiling: 2, Primary: true}), fetcher, nil), fetcher
}

func TestProcessSiteRejectsSmallPayloads(t *testing.T) {
	big := []byte(strings.Repeat("x", DefaultMinBytes))
	svc, fetcher := newFakeService([]string{"a", "b", "c"}, map[string][]byte{
		"https://img.example/p1.jpg": []byte("tiny"),
		"https://img.example/p2.jpg": big,
		"https://img.example/p3.jpg": big,
	})
	fetcher.fails["https://img.example/p2.jpg"] = true

	root := t.TempDir()
	report, err := svc.ProcessSite(context.Background(), stonehenge, FetchOptions{Root: root, Target: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Downloaded)

	recs, err := sitedir.Open(root, "stonehenge").ReadCaptions()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Image p3", recs[0].Title)
	assert.Equal(t, "001.jpg", recs[0].File)

	data, err := os.ReadFile(sitedir.Open(root, "stonehenge").Join("001.jpg"))
	require.NoError(t, err)
	assert.Len(t, data, DefaultMinBytes)
}

func TestProcessSiteWarnsOnFormatMismatch(t *testing.T) {
	pngBody := noisyPNG(t, 64)
	svc, _ := newFakeService([]string{"a"}, map[string][]byte{"https://img.example/p1.jpg": pngBody})

	var buf bytes.Buffer
	ctx := logger.New(&logger.Config{Level: "warn", Format: "json", Output: &buf}).WithContext(context.Background())

	root := t.TempDir()
	report, err := svc.ProcessSite(ctx, stonehenge, FetchOptions{Root: root, Target: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Downloaded)

	out := buf.String()
	assert.Contains(t, out, "Image content is png but saved as .jpg")
	assert.Contains(t, out, `"file":"001.jpg"`)
	assert.Contains(t, out, `"url":"https://img.example/p1.jpg"`)
}

func TestProcessSiteSkipsCompleteManifest(t *testing.T) {
	root := t.TempDir()
	d := sitedir.Open(root, "stonehenge")
	require.NoError(t, d.Ensure())
	require.NoError(t, d.WriteCaptions([]domain.CaptionRecord{{Index: 1, File: "001.jpg"}, {Index: 2, File: "002.jpg"}}))

	svc, fetcher := newFakeService([]string{"a"}, nil)
	report, err := svc.ProcessSite(context.Background(), stonehenge, FetchOptions{Root: root, Target: 2})
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Equal(t, 2, report.Downloaded)
	assert.Empty(t, fetcher.fetched)
}

func TestProcessSiteReusesExistingFiles(t *testing.T) {
	root := t.TempDir()
	d := sitedir.Open(root, "stonehenge")
	require.NoError(t, d.Ensure())
	existing := []byte(strings.Repeat("k", 5000))
	require.NoError(t, os.WriteFile(d.Join("001.jpg"), existing, 0644))

	big := []byte(strings.Repeat("n", 6000))
	svc, fetcher := newFakeService([]string{"a"}, map[string][]byte{"https://img.example/p1.jpg": big})

	_, err := svc.ProcessSite(context.Background(), stonehenge, FetchOptions{Root: root, Target: 1})
	require.NoError(t, err)
	assert.Empty(t, fetcher.fetched)
	data, _ := os.ReadFile(d.Join("001.jpg"))
	assert.Equal(t, existing, data)

	_, err = svc.ProcessSite(context.Background(), stonehenge, FetchOptions{Root: root, Target: 1, Force: true})
	require.NoError(t, err)
	assert.Len(t, fetcher.fetched, 1)
	data, _ = os.ReadFile(d.Join("001.jpg"))
	assert.Equal(t, big, data)
}
