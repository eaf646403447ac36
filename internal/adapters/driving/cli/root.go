package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/foliohq/folio-cli/internal/core/ports/driven"
	"github.com/foliohq/folio-cli/internal/core/ports/driving"
	"github.com/foliohq/folio-cli/internal/logger"
)

// version is reported by the version command. Overridden at build time
// via -ldflags.
var version = "dev"

// Services the commands run against. Wired once by the composition
// root through SetServices.
var (
	documentsService   driving.DocumentsService
	collectionsService driving.CollectionsService
	configStore        driven.ConfigStore
	verifyCredentials  VerifyFunc
)

// VerifyFunc validates a server URL and API token pair against the
// workspace and returns the authenticated user's name. The composition
// root binds it to a throwaway API client so 'auth login' can check
// credentials before saving them.
type VerifyFunc func(ctx context.Context, serverURL, token string) (string, error)

// Services bundles the dependencies the command tree needs.
type Services struct {
	Documents   driving.DocumentsService
	Collections driving.CollectionsService
	Config      driven.ConfigStore
	Verify      VerifyFunc
}

// SetServices wires the shared services into the command tree.
func SetServices(s Services) {
	documentsService = s.Documents
	collectionsService = s.Collections
	configStore = s.Config
	verifyCredentials = s.Verify
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// verboseFlag enables debug logging on any command.
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Command-line client for your document workspace",
	Long: `folio is a command-line client for a shared document workspace.

It keeps a local cache of documents and collections so listings and
searches you have already run stay browsable while new pages load.

Start with 'folio auth login' to connect to your workspace, then try
'folio list' or 'folio tui'.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context; commands
// see it via cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
