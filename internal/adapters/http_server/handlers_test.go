package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	httpserver "github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/adapters/http_server"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/app"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/domain"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/filestore"
)

// ---- in-memory repo ----

type memRepo struct {
	nextID int64
	hotels map[int64]domain.Hotel
	order  []int64
}

func newMemRepo() *memRepo { return &memRepo{nextID: 1, hotels: map[int64]domain.Hotel{}} }

func (m *memRepo) Insert(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	h.ID = m.nextID
	m.nextID++
	now := time.Now()
	h.CreatedAt, h.UpdatedAt = now, now
	m.hotels[h.ID] = h
	m.order = append(m.order, h.ID)
	return h, nil
}

func (m *memRepo) Update(ctx context.Context, id int64, p domain.HotelPatch) (domain.Hotel, error) {
	h, ok := m.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	if p.Title != nil {
		h.Title = *p.Title
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.ImageURL != nil {
		h.ImageURL = *p.ImageURL
	}
	if p.Latitude != nil {
		h.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		h.Longitude = *p.Longitude
	}
	if p.Price != nil {
		h.Price = *p.Price
	}
	h.UpdatedAt = h.UpdatedAt.Add(time.Second)
	m.hotels[id] = h
	return h, nil
}

func (m *memRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.hotels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.hotels, id)
	return nil
}

func (m *memRepo) Get(ctx context.Context, id int64) (domain.Hotel, error) {
	h, ok := m.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (m *memRepo) List(ctx context.Context, q domain.ListQuery) ([]domain.Hotel, error) {
	q = q.Normalize()
	var out []domain.Hotel
	for i := len(m.order) - 1; i >= 0; i-- {
		h, ok := m.hotels[m.order[i]]
		if !ok {
			continue
		}
		if q.Title != nil && !strings.Contains(strings.ToLower(h.Title), strings.ToLower(*q.Title)) {
			continue
		}
		if q.MinPrice != nil && h.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && h.Price > *q.MaxPrice {
			continue
		}
		out = append(out, h)
	}
	if q.Offset >= len(out) {
		return nil, nil
	}
	out = out[q.Offset:]
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dst any) (bool, error)  { return false, nil }
func (noopCache) Set(ctx context.Context, key string, v any, ttlSec int) error { return nil }
func (noopCache) Del(ctx context.Context, key string) error                    { return nil }

// ---- harness ----

type harness struct {
	ts  *httptest.Server
	dir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	disk, err := filestore.NewDisk(dir)
	if err != nil {
		t.Fatalf("disk: %v", err)
	}
	repo := newMemRepo()
	q := app.NewQueryService(repo, noopCache{}, time.Minute)
	c := app.NewCommandService(repo, disk, noopCache{})

	srv := httpserver.New([]string{"*"})
	srv.Mount("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(dir))))
	srv.MountHandlers(&httpserver.Handlers{Q: q, C: c})

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return &harness{ts: ts, dir: dir}
}

type formSpec struct {
	fields map[string]string
	image  string // image content; empty means no file part
}

func (h *harness) multipart(t *testing.T, method, path string, f formSpec) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range f.fields {
		_ = mw.WriteField(k, v)
	}
	if f.image != "" {
		fw, _ := mw.CreateFormFile("hotel_image", "photo.jpg")
		_, _ = fw.Write([]byte(f.image))
	}
	_ = mw.Close()

	req, err := http.NewRequest(method, h.ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	return resp
}

func decodeHotel(t *testing.T, resp *http.Response) domain.Hotel {
	t.Helper()
	defer resp.Body.Close()
	var h domain.Hotel
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return h
}

func problemDetail(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var p struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&p)
	return p.Detail
}

func validFields() map[string]string {
	return map[string]string{
		"title":       "Sea View",
		"description": "a hotel with a view of the sea",
		"latitude":    "12.97",
		"longitude":   "77.59",
		"price":       "2500",
	}
}

// ---- tests ----

func TestCreate_RequiresImage(t *testing.T) {
	h := newHarness(t)
	resp := h.multipart(t, http.MethodPost, "/api/hotels", formSpec{fields: validFields()})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if d := problemDetail(t, resp); d != "Image is required" {
		t.Fatalf("detail %q", d)
	}
}

func TestCreate_RequiresFields(t *testing.T) {
	h := newHarness(t)
	fields := validFields()
	delete(fields, "title")
	resp := h.multipart(t, http.MethodPost, "/api/hotels", formSpec{fields: fields, image: "jpegbytes"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if d := problemDetail(t, resp); d != "Missing required fields" {
		t.Fatalf("detail %q", d)
	}
}

func TestCreate_StoresFileAndReturnsRecord(t *testing.T) {
	h := newHarness(t)
	resp := h.multipart(t, http.MethodPost, "/api/hotels", formSpec{fields: validFields(), image: "jpegbytes"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status %d", resp.StatusCode)
	}
	created := decodeHotel(t, resp)
	if created.ID == 0 || created.Title != "Sea View" || created.Price != 2500 {
		t.Fatalf("unexpected record: %+v", created)
	}
	if !strings.HasPrefix(created.ImageURL, "/uploads/") {
		t.Fatalf("image_url %q", created.ImageURL)
	}

	// the file exists and is served
	if _, err := os.Stat(filepath.Join(h.dir, filepath.Base(created.ImageURL))); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	img, err := http.Get(h.ts.URL + created.ImageURL)
	if err != nil {
		t.Fatalf("get image: %v", err)
	}
	defer img.Body.Close()
	if img.StatusCode != http.StatusOK {
		t.Fatalf("image status %d", img.StatusCode)
	}
	b, _ := io.ReadAll(img.Body)
	if string(b) != "jpegbytes" {
		t.Fatalf("image content %q", b)
	}
}

func TestList_FiltersAndBadInput(t *testing.T) {
	h := newHarness(t)
	for i, f := range []map[string]string{
		{"title": "Mountain Lodge", "description": "high up in the hills", "latitude": "46.5", "longitude": "7.9", "price": "900"},
		{"title": "Sea View", "description": "a view of the sea", "latitude": "12.9", "longitude": "77.5", "price": "2500"},
	} {
		resp := h.multipart(t, http.MethodPost, "/api/hotels", formSpec{fields: f, image: fmt.Sprintf("img%d", i)})
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed status %d", resp.StatusCode)
		}
	}

	resp, err := http.Get(h.ts.URL + "/api/hotels?title=SEA&minPrice=1000&maxPrice=3000")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var out []domain.Hotel
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Title != "Sea View" {
		t.Fatalf("unexpected list: %+v", out)
	}

	bad, err := http.Get(h.ts.URL + "/api/hotels?minPrice=abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad filter status %d", bad.StatusCode)
	}
}

func TestGet_UnknownID(t *testing.T) {
	h := newHarness(t)
	resp, err := http.Get(h.ts.URL + "/api/hotels/42")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestUpdate_NoFields(t *testing.T) {
	h := newHarness(t)
	resp := h.multipart(t, http.MethodPost, "/api/hotels", formSpec{fields: validFields(), image: "jpegbytes"})
	created := decodeHotel(t, resp)

	upd := h.multipart(t, http.MethodPut, fmt.Sprintf("/api/hotels/%d", created.ID), formSpec{fields: map[string]string{}})
	if upd.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", upd.StatusCode)
	}
	if d := problemDetail(t, upd); d != "No valid fields to update" {
		t.Fatalf("detail %q", d)
	}
}

func TestUpdate_UnknownIDIs404(t *testing.T) {
	h := newHarness(t)
	resp := h.multipart(t, http.MethodPut, "/api/hotels/999", formSpec{fields: map[string]string{"price": "3000"}})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestUpdate_PriceOnly(t *testing.T) {
	h := newHarness(t)
	resp := h.multipart(t, http.MethodPost, "/api/hotels", formSpec{fields: validFields(), image: "jpegbytes"})
	created := decodeHotel(t, resp)

	upd := h.multipart(t, http.MethodPut, fmt.Sprintf("/api/hotels/%d", created.ID), formSpec{fields: map[string]string{"price": "3000"}})
	if upd.StatusCode != http.StatusOK {
		t.Fatalf("status %d", upd.StatusCode)
	}
	got := decodeHotel(t, upd)
	if got.Price != 3000 || got.Title != created.Title || got.ImageURL != created.ImageURL {
		t.Fatalf("unexpected update result: %+v", got)
	}
	if !got.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updated_at did not advance")
	}
}

func TestUpdate_NewImageReplacesOldFile(t *testing.T) {
	h := newHarness(t)
	resp := h.multipart(t, http.MethodPost, "/api/hotels", formSpec{fields: validFields(), image: "oldbytes"})
	created := decodeHotel(t, resp)

	upd := h.multipart(t, http.MethodPut, fmt.Sprintf("/api/hotels/%d", created.ID), formSpec{image: "newbytes"})
	if upd.StatusCode != http.StatusOK {
		t.Fatalf("status %d", upd.StatusCode)
	}
	got := decodeHotel(t, upd)
	if got.ImageURL == created.ImageURL {
		t.Fatalf("image_url unchanged")
	}
	if _, err := os.Stat(filepath.Join(h.dir, filepath.Base(created.ImageURL))); !os.IsNotExist(err) {
		t.Fatalf("superseded file still on disk")
	}
}

func TestDelete_RemovesRecordAndFile(t *testing.T) {
	h := newHarness(t)
	resp := h.multipart(t, http.MethodPost, "/api/hotels", formSpec{fields: validFields(), image: "jpegbytes"})
	created := decodeHotel(t, resp)

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/hotels/%d", h.ts.URL, created.ID), nil)
	del, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("status %d", del.StatusCode)
	}

	if _, err := os.Stat(filepath.Join(h.dir, filepath.Base(created.ImageURL))); !os.IsNotExist(err) {
		t.Fatalf("file still on disk after delete")
	}

	list, err := http.Get(h.ts.URL + "/api/hotels")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer list.Body.Close()
	var out []domain.Hotel
	_ = json.NewDecoder(list.Body).Decode(&out)
	for _, got := range out {
		if got.ID == created.ID {
			t.Fatalf("deleted id still listed")
		}
	}

	// second delete is a 404
	req2, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/hotels/%d", h.ts.URL, created.ID), nil)
	del2, err := http.DefaultClient.Do(req2)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	del2.Body.Close()
	if del2.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status %d", del2.StatusCode)
	}
}

func TestList_ETagShortCircuits(t *testing.T) {
	h := newHarness(t)
	resp, err := http.Get(h.ts.URL + "/api/hotels")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	etag := resp.Header.Get("ETag")
	resp.Body.Close()
	if etag == "" {
		t.Fatalf("missing ETag")
	}

	req, _ := http.NewRequest(http.MethodGet, h.ts.URL+"/api/hotels", nil)
	req.Header.Set("If-None-Match", etag)
	again, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	again.Body.Close()
	if again.StatusCode != http.StatusNotModified {
		t.Fatalf("status %d", again.StatusCode)
	}
}
