package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"

	"github.com/bitmark-inc/community-aid/client"
	"github.com/bitmark-inc/community-aid/listing"
	"github.com/bitmark-inc/community-aid/localstore"
	"github.com/bitmark-inc/community-aid/notify"
	"github.com/bitmark-inc/community-aid/schema"
	"github.com/bitmark-inc/community-aid/session"
)

var (
	errNotSignedIn = fmt.Errorf("please login first")
	errNotAdmin    = fmt.Errorf("only an admin can do this")
)

type options struct {
	Server        string
	DataDir       string
	Ephemeral     bool
	Lang          string
	VerifySession bool
}

// App wires the client side stores for one command run
type App struct {
	out     io.Writer
	storage localstore.Store

	session   *session.Store
	donations *listing.Store[schema.Donation, *schema.Donation]
	requests  *listing.Store[schema.Request, *schema.Request]
}

func openStorage(opts options) (localstore.Store, error) {
	if opts.Ephemeral {
		return localstore.NewMemory(), nil
	}

	dir, err := homedir.Expand(opts.DataDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return localstore.Open(dir)
}

func newApp(out io.Writer, opts options) (*App, error) {
	storage, err := openStorage(opts)
	if err != nil {
		return nil, err
	}

	c := client.New(opts.Server, nil)
	messages := notify.NewMessages(opts.Lang)
	notifier := notify.NewWriter(out)

	a := client.NewAuth(c)
	sessionConfig := session.Config{
		Authenticator: a,
		Storage:       storage,
		Notifier:      notifier,
		Messages:      messages,
	}
	if opts.VerifySession {
		sessionConfig.Verifier = a
	}

	app := &App{out: out, storage: storage}

	if app.session, err = session.New(sessionConfig); err != nil {
		storage.Close()
		return nil, err
	}

	if app.donations, err = listing.NewDonations(c, listing.Config[schema.Donation]{
		Notifier: notifier,
		Messages: messages,
		Persist:  storage,
	}); err != nil {
		storage.Close()
		return nil, err
	}

	if app.requests, err = listing.NewRequests(c, listing.Config[schema.Request]{
		Notifier: notifier,
		Messages: messages,
		Persist:  storage,
	}); err != nil {
		storage.Close()
		return nil, err
	}

	return app, nil
}

// Close releases the local data. It is a no-op before the app is opened.
func (a *App) Close() error {
	if a.storage == nil {
		return nil
	}
	return a.storage.Close()
}

func (a *App) requireAuthenticated() (schema.Identity, error) {
	identity, ok := a.session.Identity()
	if !ok {
		return schema.Identity{}, errNotSignedIn
	}
	return identity, nil
}

func (a *App) requireAdmin() error {
	if _, err := a.requireAuthenticated(); err != nil {
		return err
	}
	if !a.session.IsAdmin() {
		return errNotAdmin
	}
	return nil
}
