package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/sitedir"
)

func TestParseIndices(t *testing.T) {
	tests := []struct {
		spec    string
		want    []int
		wantErr bool
	}{
		{"3,8,14-17", []int{3, 8, 14, 15, 16, 17}, false},
		{"5-5", []int{5}, false},
		{"9-7", []int{7, 8, 9}, false},
		{" 2 , ,4 ", []int{2, 4}, false},
		{"1-3,2-4", []int{1, 2, 3, 4}, false},
		{"", []int{}, false},
		{"a", nil, true},
		{"0", nil, true},
		{"3-x", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseIndices(tt.spec)
			if tt.wantErr {
				assert.True(t, errors.Is(err, domain.ErrInvalidIndexSpec), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, SortedIndices(got))
		})
	}
}

// seedSite writes n records; odd indices are .jpg and even ones .png.
func seedSite(t *testing.T, root string, slug string, n int) sitedir.Dir {
	t.Helper()
	d := sitedir.Open(root, slug)
	require.NoError(t, d.Ensure())
	recs := make([]domain.CaptionRecord, 0, n)
	for i := 1; i <= n; i++ {
		ext := ".jpg"
		if i%2 == 0 {
			ext = ".PNG"
		}
		name := fmt.Sprintf("%03d%s", i, ext)
		require.NoError(t, os.WriteFile(d.Join(name), []byte(fmt.Sprintf("image-%d", i)), 0644))
		recs = append(recs, domain.CaptionRecord{Index: i, File: name, Title: fmt.Sprintf("orig-%d", i)})
	}
	require.NoError(t, d.WriteCaptions(recs))
	return d
}

func TestCurateRemovesAndRenumbers(t *testing.T) {
	root := t.TempDir()
	d := seedSite(t, root, "petra", 10)
	site := domain.Site{Slug: "petra", Name: "Petra"}

	res, err := NewCurator(nil).Curate(context.Background(), root, site, map[int]struct{}{3: {}, 8: {}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Removed)
	assert.Zero(t, res.Missing)
	require.Len(t, res.Records, 8)
	require.NoError(t, domain.ValidateManifest(res.Records))

	// old record 4 (.PNG) is now index 3 with a lowercased extension
	assert.Equal(t, "orig-4", res.Records[2].Title)
	assert.Equal(t, "003.png", res.Records[2].File)
	data, err := os.ReadFile(d.Join("003.png"))
	require.NoError(t, err)
	assert.Equal(t, "image-4", string(data))

	// old record 9 is now index 7
	assert.Equal(t, "orig-9", res.Records[6].Title)
	data, err = os.ReadFile(d.Join("007.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "image-9", string(data))

	onDisk, err := d.ReadCaptions()
	require.NoError(t, err)
	assert.Equal(t, res.Records, onDisk)

	entries, err := os.ReadDir(d.Path)
	require.NoError(t, err)
	var images []string
	for _, e := range entries {
		switch e.Name() {
		case domain.ManifestFileName, domain.GalleryFileName:
			continue
		}
		assert.NotContains(t, e.Name(), stagePrefix)
		images = append(images, e.Name())
	}
	assert.Len(t, images, 8)
	_, err = os.Stat(d.Join("009.jpg"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(d.Path, domain.GalleryFileName))
	assert.NoError(t, err)
}

func TestCurateDropsRecordsWithMissingFiles(t *testing.T) {
	root := t.TempDir()
	d := seedSite(t, root, "petra", 4)
	require.NoError(t, os.Remove(d.Join("002.PNG")))

	res, err := NewCurator(nil).Curate(context.Background(), root, domain.Site{Slug: "petra"}, map[int]struct{}{1: {}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, 1, res.Missing)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "orig-3", res.Records[0].Title)
	assert.Equal(t, "001.jpg", res.Records[0].File)
	assert.Equal(t, "002.png", res.Records[1].File)
}

func TestCurateEmptyRemoveCompacts(t *testing.T) {
	root := t.TempDir()
	seedSite(t, root, "petra", 3)

	res, err := NewCurator(nil).Curate(context.Background(), root, domain.Site{Slug: "petra"}, map[int]struct{}{})
	require.NoError(t, err)
	assert.Len(t, res.Records, 3)
	assert.Equal(t, "002.png", res.Records[1].File)
}

func TestCurateWithoutManifest(t *testing.T) {
	_, err := NewCurator(nil).Curate(context.Background(), t.TempDir(), domain.Site{Slug: "nowhere"}, map[int]struct{}{1: {}})
	assert.True(t, errors.Is(err, domain.ErrManifestNotFound))
	assert.True(t, domain.IsConfigError(err))
}

func TestCurateSameSiteConcurrently(t *testing.T) {
	for trial := 0; trial < 10; trial++ {
		root := t.TempDir()
		d := seedSite(t, root, "petra", 200)
		site := domain.Site{Slug: "petra", Name: "Petra"}
		curator := NewCurator(nil)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, idx := range []int{3, 10} {
			wg.Add(1)
			go func(i, idx int) {
				defer wg.Done()
				_, errs[i] = curator.Curate(context.Background(), root, site, map[int]struct{}{idx: {}})
			}(i, idx)
		}
		wg.Wait()
		require.NoError(t, errs[0])
		require.NoError(t, errs[1])

		recs, err := d.ReadCaptions()
		require.NoError(t, err)
		require.Len(t, recs, 198)
		require.NoError(t, domain.ValidateManifest(recs))

		entries, err := os.ReadDir(d.Path)
		require.NoError(t, err)
		images := 0
		for _, e := range entries {
			name := e.Name()
			if name == domain.ManifestFileName || name == domain.GalleryFileName {
				continue
			}
			require.False(t, strings.HasPrefix(name, stagePrefix), "leftover %s", name)
			images++
		}
		assert.Equal(t, 198, images, "trial %d", trial)
		for _, rec := range recs {
			_, err := os.Stat(d.Join(rec.File))
			require.NoError(t, err)
		}
	}
}
