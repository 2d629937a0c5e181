// hotelctl is a terminal front end for the hotels API: the list view with
// search/price filters and pagination, the create/edit form, and the
// confirm-before-delete flow, all driven by the client packages.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/client"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/shared"
)

func main() {
	cfg := shared.Load()
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	api := client.New(cfg.APIBaseURL)
	store := client.NewStore()
	var flash client.Flash
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "list":
		err = runList(ctx, api, store, &flash, os.Args[2:])
	case "show":
		err = runShow(ctx, api, cfg.PublicBaseURL, os.Args[2:])
	case "create":
		err = runCreate(ctx, api, store, &flash, os.Args[2:])
	case "update":
		err = runUpdate(ctx, api, store, &flash, os.Args[2:])
	case "delete":
		err = runDelete(ctx, api, store, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		// one generic notice; details are in the log
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, "Something went wrong.")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: hotelctl <command> [flags]

commands:
  list    -title s -min n -max n -page n
  show    -id n
  create  -title s -desc s -lat f -lon f -price n -image path
  update  -id n [-title s] [-desc s] [-lat f] [-lon f] [-price n] [-image path]
  delete  -id n [-yes]`)
}

func runList(ctx context.Context, api *client.Client, store *client.Store, flash *client.Flash, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	title := fs.String("title", "", "search by title substring")
	min := fs.Int("min", -1, "minimum price (inclusive)")
	max := fs.Int("max", -1, "maximum price (inclusive)")
	page := fs.Int("page", 1, "page number (1-indexed)")
	_ = fs.Parse(args)

	if err := store.EnsureLoaded(ctx, api); err != nil {
		return err
	}

	view := client.NewListView(store)
	view.SetSearch(*title)
	if *min >= 0 {
		view.SetMinPrice(min)
	}
	if *max >= 0 {
		view.SetMaxPrice(max)
	}
	view.SetPage(*page)

	renderList(view, flash)
	return nil
}

func renderList(view *client.ListView, flash *client.Flash) {
	if msg, ok := flash.Consume(); ok {
		fmt.Println(msg)
	}
	visible := view.Visible()
	if len(visible) == 0 {
		fmt.Println("No hotels found.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tLAT\tLON\tCREATED")
	for _, h := range visible {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.5f\t%.5f\t%s\n",
			h.ID, h.Title, h.Price, h.Latitude, h.Longitude, h.CreatedAt.Format("2006-01-02"))
	}
	_ = w.Flush()
	fmt.Printf("page %d of %d (%d hotels)\n", view.Page(), view.PageCount(), len(view.Filtered()))
}

func runShow(ctx context.Context, api *client.Client, imageBase string, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	id := fs.Int64("id", 0, "hotel id")
	_ = fs.Parse(args)

	h, err := api.Get(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("#%d %s (%d)\n%s\nimage: %s\nlocation: %.5f, %.5f\ncreated: %s\nupdated: %s\n",
		h.ID, h.Title, h.Price, h.Description, client.ResolveImageURL(imageBase, h.ImageURL),
		h.Latitude, h.Longitude, h.CreatedAt.Format("2006-01-02 15:04"), h.UpdatedAt.Format("2006-01-02 15:04"))
	return nil
}

func fillForm(f *client.Form, fs *flag.FlagSet, title, desc, lat, lon, price *string) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "title":
			f.Title = *title
		case "desc":
			f.Description = *desc
		case "lat":
			f.Latitude = *lat
		case "lon":
			f.Longitude = *lon
		case "price":
			f.Price = *price
		}
	})
}

func submit(ctx context.Context, api *client.Client, store *client.Store, flash *client.Flash, f *client.Form, image string) error {
	if image != "" {
		img, err := os.Open(image)
		if err != nil {
			return err
		}
		defer img.Close()
		f.SetImage(img.Name(), img)
	}

	msg, err := f.Submit(ctx, api)
	if err != nil {
		for field, m := range f.Errors() {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, m)
		}
		return err
	}
	flash.Set(msg)

	// back to the list view, carrying the one-shot message
	if err := store.Fetch(ctx, api); err != nil {
		return err
	}
	renderList(client.NewListView(store), flash)
	return nil
}

func runCreate(ctx context.Context, api *client.Client, store *client.Store, flash *client.Flash, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "hotel title")
	desc := fs.String("desc", "", "description")
	lat := fs.String("lat", "", "latitude")
	lon := fs.String("lon", "", "longitude")
	price := fs.String("price", "", "price")
	image := fs.String("image", "", "path to image file")
	_ = fs.Parse(args)

	f := client.NewCreateForm()
	fillForm(f, fs, title, desc, lat, lon, price)
	return submit(ctx, api, store, flash, f, *image)
}

func runUpdate(ctx context.Context, api *client.Client, store *client.Store, flash *client.Flash, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.Int64("id", 0, "hotel id")
	title := fs.String("title", "", "hotel title")
	desc := fs.String("desc", "", "description")
	lat := fs.String("lat", "", "latitude")
	lon := fs.String("lon", "", "longitude")
	price := fs.String("price", "", "price")
	image := fs.String("image", "", "path to replacement image file")
	_ = fs.Parse(args)

	if err := store.EnsureLoaded(ctx, api); err != nil {
		return err
	}
	f, ok := client.NewEditForm(store, *id)
	if !ok {
		return fmt.Errorf("hotel %d not found", *id)
	}
	fillForm(f, fs, title, desc, lat, lon, price)
	return submit(ctx, api, store, flash, f, *image)
}

func runDelete(ctx context.Context, api *client.Client, store *client.Store, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "hotel id")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	_ = fs.Parse(args)

	if err := store.EnsureLoaded(ctx, api); err != nil {
		return err
	}
	view := client.NewListView(store)
	view.SelectDelete(*id)

	if !*yes {
		fmt.Printf("Delete hotel %d? This action cannot be undone. [y/N] ", *id)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if s := strings.ToLower(strings.TrimSpace(line)); s != "y" && s != "yes" {
			view.CancelDelete()
			fmt.Println("cancelled")
			return nil
		}
	}
	if err := view.ConfirmDelete(ctx, api); err != nil {
		return err
	}
	fmt.Println("Hotel deleted successfully!")
	return nil
}
