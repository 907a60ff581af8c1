package gallery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	domain "marianails/internal/domain/gallery"
	"marianails/internal/store/fsdir"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// Test Setup Helpers
// ========================================

func setupGallery(t *testing.T, files ...string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "img", "galeria")
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("fake image data"), 0644))
	}
	return dir
}

func numberedImages(n int) []string {
	files := make([]string, n)
	for i := range files {
		files[i] = fmt.Sprintf("img_%03d.jpg", i)
	}
	return files
}

type memCache struct {
	mu          sync.Mutex
	data        map[string][]string
	gets, sets  int
	invalidated int
}

func newMemCache() *memCache { return &memCache{data: map[string][]string{}} }

func (c *memCache) Get(_ context.Context, dir string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[dir]
	return v, ok
}

func (c *memCache) Set(_ context.Context, dir string, names []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[dir] = names
	return nil
}

func (c *memCache) Invalidate(_ context.Context, dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	delete(c.data, dir)
	return nil
}

func (c *memCache) invalidations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidated
}

type failingReader struct{ err error }

func (r failingReader) FileNames(context.Context, string) ([]string, error) { return nil, r.err }
func (r failingReader) RawNames(context.Context, string) ([]string, error)  { return nil, r.err }

type panickyReader struct{}

func (panickyReader) FileNames(context.Context, string) ([]string, error) { panic("boom") }
func (panickyReader) RawNames(context.Context, string) ([]string, error)  { panic("boom") }

// ========================================
// Listing Tests
// ========================================

func TestListImagesSecondPage(t *testing.T) {
	dir := setupGallery(t, numberedImages(35)...)
	svc := NewService(dir, fsdir.New(), Options{})

	res, err := svc.ListImages(context.Background(), ListRequest{Page: 2, PerPage: 30})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Len(t, res.Images, 5)
	assert.Equal(t, 2, res.CurrentPage)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 35, res.TotalImages)
	assert.Equal(t, "/img/galeria/img_030.jpg", res.Images[0])
}

func TestListImagesDefaults(t *testing.T) {
	dir := setupGallery(t, numberedImages(45)...)
	svc := NewService(dir, fsdir.New(), Options{DefaultPerPage: 30})

	res, err := svc.ListImages(context.Background(), ListRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.CurrentPage)
	assert.Len(t, res.Images, 30)
	assert.Equal(t, 2, res.TotalPages)
}

func TestListImagesPastLastPage(t *testing.T) {
	dir := setupGallery(t, numberedImages(3)...)
	svc := NewService(dir, fsdir.New(), Options{})

	res, err := svc.ListImages(context.Background(), ListRequest{Page: 5, PerPage: 2})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Empty(t, res.Images)
	assert.NotNil(t, res.Images)
	assert.Equal(t, 5, res.CurrentPage)
	assert.Equal(t, 2, res.TotalPages)
}

func TestListImagesFiltersAndSorts(t *testing.T) {
	dir := setupGallery(t, "b.PNG", "a.jpg", "c.webp", "d.JPEG", "e.gif", "notes.txt", "f.bmp", ".png")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.jpg"), 0755))
	svc := NewService(dir, fsdir.New(), Options{})

	res, err := svc.ListImages(context.Background(), ListRequest{Page: 1, PerPage: 50})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/img/galeria/a.jpg",
		"/img/galeria/b.PNG",
		"/img/galeria/c.webp",
		"/img/galeria/d.JPEG",
	}, res.Images)
	assert.Equal(t, 4, res.TotalImages)
}

func TestListImagesEncodesNames(t *testing.T) {
	dir := setupGallery(t, "uñas francesas.jpg")
	svc := NewService(dir, fsdir.New(), Options{})

	res, err := svc.ListImages(context.Background(), ListRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"/img/galeria/u%C3%B1as%20francesas.jpg"}, res.Images)
}

func TestListImagesMaxPerPage(t *testing.T) {
	dir := setupGallery(t, numberedImages(20)...)
	svc := NewService(dir, fsdir.New(), Options{MaxPerPage: 8})

	res, err := svc.ListImages(context.Background(), ListRequest{Page: 1, PerPage: 100})
	require.NoError(t, err)

	assert.Len(t, res.Images, 8)
	assert.Equal(t, 3, res.TotalPages)
}

func TestListImagesCountProperty(t *testing.T) {
	dir := setupGallery(t, numberedImages(17)...)
	svc := NewService(dir, fsdir.New(), Options{})
	ctx := context.Background()

	for perPage := 1; perPage <= 20; perPage++ {
		for page := 1; page <= 20; page++ {
			res, err := svc.ListImages(ctx, ListRequest{Page: page, PerPage: perPage})
			require.NoError(t, err)
			want := min(perPage, max(0, 17-(page-1)*perPage))
			assert.Len(t, res.Images, want, "page=%d perPage=%d", page, perPage)
			assert.Equal(t, (17+perPage-1)/perPage, res.TotalPages)
		}
	}
}

// ========================================
// Error Tests
// ========================================

func TestListImagesDirectoryNotFound(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "missing"), fsdir.New(), Options{})

	res, err := svc.ListImages(context.Background(), ListRequest{})

	assert.Nil(t, res)
	require.Error(t, err)
	assert.Equal(t, domain.KindDirectoryNotFound, KindOf(err))
	assert.True(t, errors.Is(err, domain.ErrDirectoryNotFound))
}

func TestListImagesNoImages(t *testing.T) {
	dir := setupGallery(t, "readme.txt", "clip.mp4")
	svc := NewService(dir, fsdir.New(), Options{})

	_, err := svc.ListImages(context.Background(), ListRequest{})

	require.Error(t, err)
	assert.Equal(t, domain.KindNoImagesFound, KindOf(err))
	assert.True(t, errors.Is(err, domain.ErrNoImagesFound))
}

func TestListImagesReadError(t *testing.T) {
	cause := errors.New("input/output error")
	svc := NewService("/gallery", failingReader{err: cause}, Options{})

	_, err := svc.ListImages(context.Background(), ListRequest{})

	require.Error(t, err)
	assert.Equal(t, domain.KindReadError, KindOf(err))
	assert.ErrorIs(t, err, cause)

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "list_images", se.Op)
}

func TestListImagesRecoversPanic(t *testing.T) {
	svc := NewService("/gallery", panickyReader{}, Options{})

	res, err := svc.ListImages(context.Background(), ListRequest{})

	assert.Nil(t, res)
	assert.Equal(t, domain.KindUnexpected, KindOf(err))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, domain.KindUnexpected, KindOf(errors.New("x")))
}

func TestRawEntries(t *testing.T) {
	dir := setupGallery(t, "a.jpg", "notes.txt")
	svc := NewService(dir, fsdir.New(), Options{})

	names, err := svc.RawEntries(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.jpg", "notes.txt"}, names)

	missing := NewService(filepath.Join(dir, "nope"), fsdir.New(), Options{})
	_, err = missing.RawEntries(context.Background())
	assert.Equal(t, domain.KindDirectoryNotFound, KindOf(err))
}

// ========================================
// Cache Tests
// ========================================

func TestListImagesUsesCache(t *testing.T) {
	dir := setupGallery(t, "a.jpg", "b.jpg")
	cache := newMemCache()
	svc := NewService(dir, fsdir.New(), Options{Cache: cache})
	ctx := context.Background()

	_, err := svc.ListImages(ctx, ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// A new file is not visible until the listing is invalidated.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.jpg"), []byte("x"), 0644))
	res, err := svc.ListImages(ctx, ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalImages)
	assert.Equal(t, 1, cache.sets)

	require.NoError(t, svc.Invalidate(ctx))
	res, err = svc.ListImages(ctx, ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalImages)
}

func TestListImagesDoesNotCacheFailures(t *testing.T) {
	dir := setupGallery(t, "notes.txt")
	cache := newMemCache()
	svc := NewService(dir, fsdir.New(), Options{Cache: cache})

	_, err := svc.ListImages(context.Background(), ListRequest{})
	require.Error(t, err)
	assert.Equal(t, 0, cache.sets)
}

func TestInvalidateWithoutCache(t *testing.T) {
	svc := NewService(t.TempDir(), fsdir.New(), Options{})
	assert.NoError(t, svc.Invalidate(context.Background()))
}

func TestWatcherInvalidatesOnChange(t *testing.T) {
	dir := setupGallery(t, "a.jpg")
	cache := newMemCache()
	svc := NewService(dir, fsdir.New(), Options{Cache: cache})

	w, err := NewWatcher(svc)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("x"), 0644))

	assert.Eventually(t, func() bool { return cache.invalidations() > 0 }, 5*time.Second, 20*time.Millisecond)
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "missing"), fsdir.New(), Options{Cache: newMemCache()})

	_, err := NewWatcher(svc)
	assert.Error(t, err)
}
