package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bitmark-inc/community-aid/filter"
	"github.com/bitmark-inc/community-aid/listing"
	"github.com/bitmark-inc/community-aid/schema"
)

// fields are the listing values accepted on the command line
type fields struct {
	Title       string
	Category    string
	Description string
	Location    string
	Owner       string
	ImageURL    string
	Urgency     string
}

// kind describes how one listing collection is shown and edited
type kind[T any, PT schema.Record[T]] struct {
	name      string
	short     string
	ownerFlag string
	image     bool
	urgency   bool

	store  func(*App) *listing.Store[T, PT]
	fill   func(item *T, f fields, changed func(string) bool)
	header []string
	row    func(item T) []string
}

var donationKind = kind[schema.Donation, *schema.Donation]{
	name:      "donations",
	short:     "Browse and manage donations",
	ownerFlag: "donor",
	image:     true,
	store: func(a *App) *listing.Store[schema.Donation, *schema.Donation] {
		return a.donations
	},
	fill: func(d *schema.Donation, f fields, changed func(string) bool) {
		fillCommon(&d.Listing, f, changed)
		if changed("donor") {
			d.DonorName = f.Owner
		}
		if changed("image") {
			d.ImageURL = f.ImageURL
		}
	},
	header: []string{"ID", "TITLE", "CATEGORY", "LOCATION", "DONOR", "POSTED"},
	row: func(d schema.Donation) []string {
		return []string{d.ID, d.Title, d.Category, d.Location, d.DonorName, posted(&d.Listing)}
	},
}

var requestKind = kind[schema.Request, *schema.Request]{
	name:      "requests",
	short:     "Browse and manage help requests",
	ownerFlag: "requester",
	urgency:   true,
	store: func(a *App) *listing.Store[schema.Request, *schema.Request] {
		return a.requests
	},
	fill: func(r *schema.Request, f fields, changed func(string) bool) {
		fillCommon(&r.Listing, f, changed)
		if changed("requester") {
			r.RequesterName = f.Owner
		}
		if changed("urgency") {
			r.Urgency = schema.Urgency(strings.ToLower(f.Urgency))
		}
	},
	header: []string{"ID", "TITLE", "CATEGORY", "URGENCY", "LOCATION", "REQUESTER", "POSTED"},
	row: func(r schema.Request) []string {
		return []string{r.ID, r.Title, r.Category, string(r.UrgencyLevel()), r.Location, r.RequesterName, posted(&r.Listing)}
	},
}

func fillCommon(l *schema.Listing, f fields, changed func(string) bool) {
	if changed("title") {
		l.Title = f.Title
	}
	if changed("category") {
		l.Category = f.Category
	}
	if changed("description") {
		l.Description = f.Description
	}
	if changed("location") {
		l.Location = f.Location
	}
}

func (k kind[T, PT]) bindFields(flags *pflag.FlagSet, f *fields) {
	flags.StringVar(&f.Title, "title", "", "title, 5 to 100 characters")
	flags.StringVar(&f.Category, "category", "", "one of "+strings.Join(schema.Categories, ", "))
	flags.StringVar(&f.Description, "description", "", "description, 20 to 500 characters")
	flags.StringVar(&f.Location, "location", "", "where to meet")
	flags.StringVar(&f.Owner, k.ownerFlag, "", "name shown with the listing")
	if k.image {
		flags.StringVar(&f.ImageURL, "image", "", "image url")
	}
	if k.urgency {
		flags.StringVar(&f.Urgency, "urgency", "", "low, medium or high")
	}
}

func newListingCommand[T any, PT schema.Record[T]](app *App, k kind[T, PT]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   k.name,
		Short: k.short,
	}

	cmd.AddCommand(
		k.listCommand(app),
		k.addCommand(app),
		k.editCommand(app),
		k.deleteCommand(app),
	)
	return cmd
}

func (k kind[T, PT]) listCommand(app *App) *cobra.Command {
	var criteria filter.Criteria
	var mine bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + k.name + ", newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := k.store(app)
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}

			items := s.Items()
			if mine {
				identity, err := app.requireAuthenticated()
				if err != nil {
					return err
				}
				items = filter.OwnedBy(items, identity.Name)
			}

			matched := filter.Apply[T, PT](items, criteria)
			k.render(app, matched)

			if s.IsSample() {
				fmt.Fprintln(app.out, "(sample data, the server is not reachable)")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&criteria.Query, "search", "q", "", "match title or description")
	cmd.Flags().StringVar(&criteria.Category, "category", filter.All, "one of "+strings.Join(filter.Categories, ", "))
	if k.urgency {
		cmd.Flags().StringVar(&criteria.Urgency, "urgency", filter.All, "one of "+strings.Join(filter.UrgencyLevels, ", "))
	}
	cmd.Flags().BoolVar(&mine, "mine", false, "only the listings posted under your name")
	return cmd
}

func (k kind[T, PT]) render(app *App, items []T) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, k.row(item))
	}
	renderTable(app.out, k.header, rows)
}

func (k kind[T, PT]) addCommand(app *App) *cobra.Command {
	var f fields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Post a new listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAuthenticated(); err != nil {
				return err
			}

			var item T
			k.fill(&item, f, cmd.Flags().Changed)

			created, err := k.store(app).Add(cmd.Context(), item)
			if err != nil {
				return err
			}
			k.render(app, []T{created})
			return nil
		},
	}

	k.bindFields(cmd.Flags(), &f)
	return cmd
}

func (k kind[T, PT]) editCommand(app *App) *cobra.Command {
	var f fields

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the fields of a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAuthenticated(); err != nil {
				return err
			}

			s := k.store(app)
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}

			item, ok := find[T, PT](s.Items(), args[0])
			if !ok {
				return fmt.Errorf("%s %s: %w", k.name, args[0], listing.ErrUnknownID)
			}
			k.fill(&item, f, cmd.Flags().Changed)

			updated, err := s.Edit(cmd.Context(), item)
			if err != nil {
				return err
			}
			k.render(app, []T{updated})
			return nil
		},
	}

	k.bindFields(cmd.Flags(), &f)
	return cmd
}

func (k kind[T, PT]) deleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a listing",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireAuthenticated(); err != nil {
				return err
			}

			s := k.store(app)
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			return s.Remove(cmd.Context(), args[0])
		},
	}
}

func find[T any, PT schema.Record[T]](items []T, id string) (T, bool) {
	for _, item := range items {
		if PT(&item).Common().ID == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
