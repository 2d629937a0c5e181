package client

import (
	"context"
	"io"
	"regexp"
	"strconv"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/domain"
)

var priceRe = regexp.MustCompile(`^\d{1,6}$`)

// Submitter is the write side of Client the form needs.
type Submitter interface {
	Create(ctx context.Context, p CreateParams) (domain.Hotel, error)
	Update(ctx context.Context, id int64, p UpdateParams) (domain.Hotel, error)
}

// Form collects hotel fields as the user typed them and validates before
// submission. Create mode starts blank and requires an image; edit mode is
// pre-populated from the store and keeps the old image unless a new one is
// set.
type Form struct {
	edit bool
	id   int64

	Title       string
	Description string
	Latitude    string
	Longitude   string
	Price       string

	imageName string
	image     io.Reader

	errs map[string]string
}

func NewCreateForm() *Form { return &Form{} }

// NewEditForm pre-populates from the store; ok is false when the id is not in
// the cached list.
func NewEditForm(store *Store, id int64) (*Form, bool) {
	h, ok := store.Find(id)
	if !ok {
		return nil, false
	}
	return &Form{
		edit:        true,
		id:          id,
		Title:       h.Title,
		Description: h.Description,
		Latitude:    strconv.FormatFloat(h.Latitude, 'f', -1, 64),
		Longitude:   strconv.FormatFloat(h.Longitude, 'f', -1, 64),
		Price:       strconv.Itoa(h.Price),
	}, true
}

func (f *Form) SetImage(name string, r io.Reader) {
	f.imageName = name
	f.image = r
}

// Validate checks every field and records per-field messages; it returns true
// when the form can be submitted.
func (f *Form) Validate() bool {
	f.errs = map[string]string{}

	switch {
	case f.Title == "":
		f.errs["title"] = "Title is required"
	case len(f.Title) < 3:
		f.errs["title"] = "Title must be at least 3 characters"
	case len(f.Title) > 80:
		f.errs["title"] = "Title must be at most 80 characters"
	}

	switch {
	case f.Description == "":
		f.errs["description"] = "Description is required"
	case len(f.Description) < 10:
		f.errs["description"] = "Description must be at least 10 characters"
	case len(f.Description) > 500:
		f.errs["description"] = "Description must be at most 500 characters"
	}

	if f.Latitude == "" {
		f.errs["latitude"] = "Latitude is required"
	} else if _, err := strconv.ParseFloat(f.Latitude, 64); err != nil {
		f.errs["latitude"] = "Latitude must be a number"
	}

	if f.Longitude == "" {
		f.errs["longitude"] = "Longitude is required"
	} else if _, err := strconv.ParseFloat(f.Longitude, 64); err != nil {
		f.errs["longitude"] = "Longitude must be a number"
	}

	switch {
	case f.Price == "":
		f.errs["price"] = "Price is required"
	case !priceRe.MatchString(f.Price):
		f.errs["price"] = "Only digits allowed, up to 6 digits"
	}

	if !f.edit && f.image == nil {
		f.errs["image"] = "Image is required"
	}

	return len(f.errs) == 0
}

// Errors holds the messages from the last Validate call, keyed by field.
func (f *Form) Errors() map[string]string { return f.errs }

// Submit validates and sends the form, returning the one-shot success message
// to flash on the list view. The error is typed for callers that care; the UI
// shows a single generic notice either way.
func (f *Form) Submit(ctx context.Context, api Submitter) (string, error) {
	if !f.Validate() {
		return "", domain.Validation("form has errors")
	}
	lat, _ := strconv.ParseFloat(f.Latitude, 64)
	lon, _ := strconv.ParseFloat(f.Longitude, 64)
	price, _ := strconv.Atoi(f.Price)

	if !f.edit {
		_, err := api.Create(ctx, CreateParams{
			Title:       f.Title,
			Description: f.Description,
			Latitude:    lat,
			Longitude:   lon,
			Price:       price,
			ImageName:   f.imageName,
			Image:       f.image,
		})
		if err != nil {
			return "", err
		}
		return "Hotel created successfully!", nil
	}

	_, err := api.Update(ctx, f.id, UpdateParams{
		Title:       &f.Title,
		Description: &f.Description,
		Latitude:    &lat,
		Longitude:   &lon,
		Price:       &price,
		ImageName:   f.imageName,
		Image:       f.image,
	})
	if err != nil {
		return "", err
	}
	return "Hotel updated successfully!", nil
}
