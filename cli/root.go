package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the aidctl command tree writing to out. The local
// data opened by a command stays open until the returned close func runs.
func NewRootCommand(out io.Writer) (*cobra.Command, func() error) {
	opts := options{}
	app := &App{}

	root := &cobra.Command{
		Use:           "aidctl",
		Short:         "aidctl browses and manages community donations and help requests",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(out, opts)
			if err != nil {
				return err
			}
			*app = *a
			return app.session.Restore(cmd.Context())
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&opts.Server, "server", "s", envOr("AID_SERVER", "http://localhost:5000"), "listing service url")
	root.PersistentFlags().StringVarP(&opts.DataDir, "data-dir", "d", "~/.aidctl", "directory of the local data")
	root.PersistentFlags().BoolVar(&opts.Ephemeral, "ephemeral", false, "keep nothing between runs")
	root.PersistentFlags().StringVar(&opts.Lang, "lang", "en", "language of the messages, e.g. zh-TW")
	root.PersistentFlags().BoolVar(&opts.VerifySession, "verify-session", false, "check a restored login with the server")

	root.AddCommand(
		newLoginCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newListingCommand(app, donationKind),
		newListingCommand(app, requestKind),
		newStatsCommand(app),
	)

	return root, app.Close
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Run executes one command line
func Run(ctx context.Context, out io.Writer, args []string) error {
	root, closeApp := NewRootCommand(out)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if closeErr := closeApp(); err == nil {
		err = closeErr
	}
	return err
}

func Execute() {
	if err := Run(context.Background(), os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
