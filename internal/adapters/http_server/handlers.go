package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/app"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/domain"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/filestore"
)

const maxUploadBytes = 32 << 20

type Handlers struct {
	Q *app.QueryService
	C *app.CommandService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/api/hotels", func(r chi.Router) {
		r.Get("/", h.listHotels)
		r.Post("/", h.createHotel)
		r.Get("/{id}", h.getHotel)
		r.Put("/{id}", h.updateHotel)
		r.Delete("/{id}", h.deleteHotel)
	})
}

// PresignRedirect serves /uploads/* for the MinIO backend by redirecting to a
// short-lived presigned object URL.
func PresignRedirect(m *filestore.MinIO) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := m.PresignGet(r.Context(), r.URL.Path, 15*time.Minute)
		if err != nil {
			writeProblem(w, http.StatusNotFound, "Not Found", "image not found")
			return
		}
		http.Redirect(w, r, u, http.StatusFound)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the error taxonomy onto problem responses: validation 400,
// unknown id 404, anything else a generic 500 that leaks nothing.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusBadRequest, "Bad Request", ve.Msg)
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	etag, body := calcETagAndBody(v)
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation("id must be a positive number")
	}
	return id, nil
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	var q domain.ListQuery
	vals := r.URL.Query()
	if t := vals.Get("title"); t != "" {
		q.Title = &t
	}
	if v := vals.Get("minPrice"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "minPrice must be an integer")
			return
		}
		q.MinPrice = &n
	}
	if v := vals.Get("maxPrice"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "maxPrice must be an integer")
			return
		}
		q.MaxPrice = &n
	}
	if v := vals.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "offset must be a non-negative integer")
			return
		}
		q.Offset = n
	}
	if v := vals.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > domain.MaxListLimit {
			writeProblem(w, http.StatusBadRequest, "Bad Request",
				"limit must be an integer between 1 and "+strconv.Itoa(domain.MaxListLimit))
			return
		}
		q.Limit = n
	}

	out, err := h.Q.List(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}

	etag, body := calcETagAndBody(out)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listHotels body")
	}
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := h.Q.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	etag, body := calcETagAndBody(resp)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getHotel body")
	}
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "Image is required")
		return
	}
	file, hdr, err := r.FormFile("hotel_image")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "Image is required")
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	latStr := r.FormValue("latitude")
	lonStr := r.FormValue("longitude")
	priceStr := r.FormValue("price")
	if title == "" || latStr == "" || lonStr == "" || priceStr == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "Missing required fields")
		return
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "latitude must be a number")
		return
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "longitude must be a number")
		return
	}
	price, err := strconv.Atoi(priceStr)
	if err != nil || price <= 0 {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "price must be a positive integer")
		return
	}

	created, err := h.C.Create(r.Context(), app.CreateHotel{
		Title:       title,
		Description: r.FormValue("description"),
		Latitude:    lat,
		Longitude:   lon,
		Price:       price,
		ImageName:   hdr.Filename,
		Image:       file,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed form body")
		return
	}

	// Empty form values count as "not supplied", matching the create form's
	// behavior of omitting untouched fields.
	var in app.UpdateHotel
	if v := r.FormValue("title"); v != "" {
		in.Patch.Title = &v
	}
	if v := r.FormValue("description"); v != "" {
		in.Patch.Description = &v
	}
	if v := r.FormValue("latitude"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "latitude must be a number")
			return
		}
		in.Patch.Latitude = &f
	}
	if v := r.FormValue("longitude"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "longitude must be a number")
			return
		}
		in.Patch.Longitude = &f
	}
	if v := r.FormValue("price"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "price must be a positive integer")
			return
		}
		in.Patch.Price = &n
	}
	if file, hdr, err := r.FormFile("hotel_image"); err == nil {
		defer file.Close()
		in.Image = file
		in.ImageName = hdr.Filename
	}

	updated, err := h.C.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.C.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
