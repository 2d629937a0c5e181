// Package client is the Go front end of the hotels API: an HTTP client, the
// in-memory state store the views read from, and the list/form controllers
// that used to live in the browser.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/domain"
)

// Client talks to the hotels REST API. The base URL comes from configuration;
// nothing is hardcoded. Failed calls are reported once, never retried.
type Client struct {
	base string
	hc   *http.Client
}

func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// ResolveImageURL turns the stored image path into a fetchable URL against
// the configured public base. Absolute URLs (minio presign targets) pass
// through untouched.
func ResolveImageURL(base, path string) string {
	if path == "" || strings.Contains(path, "://") {
		return path
	}
	return strings.TrimRight(base, "/") + path
}

type ListParams struct {
	Title    string
	MinPrice *int
	MaxPrice *int
	Offset   int
	Limit    int
}

type CreateParams struct {
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Price       int
	ImageName   string
	Image       io.Reader
}

// UpdateParams carries a partial update; nil fields are omitted from the
// request entirely.
type UpdateParams struct {
	Title       *string
	Description *string
	Latitude    *float64
	Longitude   *float64
	Price       *int
	ImageName   string
	Image       io.Reader
}

func (c *Client) List(ctx context.Context, p ListParams) ([]domain.Hotel, error) {
	q := url.Values{}
	if p.Title != "" {
		q.Set("title", p.Title)
	}
	if p.MinPrice != nil {
		q.Set("minPrice", strconv.Itoa(*p.MinPrice))
	}
	if p.MaxPrice != nil {
		q.Set("maxPrice", strconv.Itoa(*p.MaxPrice))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	u := c.base + "/api/hotels"
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var out []domain.Hotel
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (domain.Hotel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/hotels/%d", c.base, id), nil)
	if err != nil {
		return domain.Hotel{}, err
	}
	var out domain.Hotel
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return domain.Hotel{}, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, p CreateParams) (domain.Hotel, error) {
	fields := map[string]string{
		"title":       p.Title,
		"description": p.Description,
		"latitude":    strconv.FormatFloat(p.Latitude, 'f', -1, 64),
		"longitude":   strconv.FormatFloat(p.Longitude, 'f', -1, 64),
		"price":       strconv.Itoa(p.Price),
	}
	body, ctype, err := multipartBody(fields, p.ImageName, p.Image)
	if err != nil {
		return domain.Hotel{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/hotels", body)
	if err != nil {
		return domain.Hotel{}, err
	}
	req.Header.Set("Content-Type", ctype)
	var out domain.Hotel
	if err := c.do(req, http.StatusCreated, &out); err != nil {
		return domain.Hotel{}, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, id int64, p UpdateParams) (domain.Hotel, error) {
	fields := map[string]string{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Latitude != nil {
		fields["latitude"] = strconv.FormatFloat(*p.Latitude, 'f', -1, 64)
	}
	if p.Longitude != nil {
		fields["longitude"] = strconv.FormatFloat(*p.Longitude, 'f', -1, 64)
	}
	if p.Price != nil {
		fields["price"] = strconv.Itoa(*p.Price)
	}
	body, ctype, err := multipartBody(fields, p.ImageName, p.Image)
	if err != nil {
		return domain.Hotel{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/api/hotels/%d", c.base, id), body)
	if err != nil {
		return domain.Hotel{}, err
	}
	req.Header.Set("Content-Type", ctype)
	var out domain.Hotel
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return domain.Hotel{}, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/api/hotels/%d", c.base, id), nil)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusNoContent, nil)
}

// do runs one request and decodes into out when the expected status arrives.
// Other statuses are mapped back onto the domain error taxonomy.
func (c *Client) do(req *http.Request, want int, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return statusError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(resp *http.Response) error {
	var p struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&p)
	switch resp.StatusCode {
	case http.StatusBadRequest:
		msg := p.Detail
		if msg == "" {
			msg = "invalid input"
		}
		return domain.Validation(msg)
	case http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return fmt.Errorf("server error (%d)", resp.StatusCode)
	}
}

func multipartBody(fields map[string]string, imageName string, image io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	// deterministic order keeps request logs and tests stable
	for _, k := range []string{"title", "description", "latitude", "longitude", "price"} {
		if v, ok := fields[k]; ok {
			if err := mw.WriteField(k, v); err != nil {
				return nil, "", err
			}
		}
	}
	if image != nil {
		fw, err := mw.CreateFormFile("hotel_image", imageName)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(fw, image); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
