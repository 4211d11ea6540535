// Package cli implements the leadctl command tree.
package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lead_backend/internal/client"
)

// EnvServer overrides the default API address.
const EnvServer = "LEADCTL_SERVER"

const defaultServer = "http://localhost:5000"

// App holds the state shared by every command of one invocation.
type App struct {
	in  *bufio.Reader
	out io.Writer

	server    string
	tokenFile string

	client *client.Client
	auth   *client.Auth
}

// NewRootCmd builds the leadctl command tree reading prompts from in and
// writing results to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &App{in: bufio.NewReader(in), out: out}

	server := os.Getenv(EnvServer)
	if server == "" {
		server = defaultServer
	}

	root := &cobra.Command{
		Use:           "leadctl",
		Short:         "Command-line client for the lead management API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.connect()
		},
	}
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().StringVar(&a.server, "server", server, "API base URL (env "+EnvServer+")")
	root.PersistentFlags().StringVar(&a.tokenFile, "token-file", "", "where the session token is kept (default <config dir>/leadctl/token)")

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.meCmd(),
		a.leadsCmd(),
	)
	return root
}

func (a *App) connect() error {
	path := a.tokenFile
	if path == "" {
		p, err := client.DefaultTokenPath()
		if err != nil {
			return err
		}
		path = p
	}
	c, err := client.New(a.server, nil, &client.FileTokenStore{Path: path})
	if err != nil {
		return err
	}
	a.client = c
	a.auth = client.NewAuth(c)
	return nil
}
