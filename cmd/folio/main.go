package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/foliohq/folio-cli/internal/adapters/driven/config/file"
	"github.com/foliohq/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/foliohq/folio-cli/internal/adapters/driven/transport/api"
	"github.com/foliohq/folio-cli/internal/adapters/driving/cli"
	"github.com/foliohq/folio-cli/internal/core/domain"
	"github.com/foliohq/folio-cli/internal/core/ports/driven"
	"github.com/foliohq/folio-cli/internal/core/services"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open config: %v\n", err)
		os.Exit(1)
	}

	transport := buildTransport(ctx, configStore)

	collectionTable := memory.NewCollectionTable()
	documentTable := memory.NewDocumentTable()
	collections := services.NewCollectionsService(transport, collectionTable)
	documents := services.NewDocumentsService(transport, documentTable, collections)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Documents:   documents,
		Collections: collections,
		Config:      configStore,
		Verify:      verifyCredentials,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// buildTransport creates the API client from the stored credentials.
// Until 'auth login' has run, commands get a transport whose calls fail
// with ErrNotConfigured.
func buildTransport(ctx context.Context, config driven.ConfigStore) driven.Transport {
	baseURL := config.GetString("api.url")
	token := config.GetString("api.token")
	if baseURL == "" || token == "" {
		return unconfiguredTransport{}
	}

	client, err := api.NewClient(ctx, api.Config{
		BaseURL:           baseURL,
		Token:             token,
		RequestsPerSecond: float64(config.GetInt("api.rate_limit")),
	})
	if err != nil {
		return unconfiguredTransport{}
	}
	return client
}

// unconfiguredTransport fails every call until credentials are stored.
type unconfiguredTransport struct{}

func (unconfiguredTransport) Post(context.Context, string, any) (*driven.Payload, error) {
	return nil, fmt.Errorf("%w: run 'folio auth login' first", domain.ErrNotConfigured)
}

func (unconfiguredTransport) Get(context.Context, string, map[string]string) (*driven.Payload, error) {
	return nil, fmt.Errorf("%w: run 'folio auth login' first", domain.ErrNotConfigured)
}

// verifyCredentials checks a URL and token pair with a throwaway client
// and returns the authenticated user's name.
func verifyCredentials(ctx context.Context, serverURL, token string) (string, error) {
	client, err := api.NewClient(ctx, api.Config{BaseURL: serverURL, Token: token})
	if err != nil {
		return "", err
	}

	payload, err := client.Post(ctx, "auth.info", nil)
	if err != nil {
		return "", err
	}
	if !payload.HasData() {
		return "", domain.ErrMissingData
	}

	var info struct {
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := json.Unmarshal(payload.Data, &info); err != nil {
		return "", fmt.Errorf("decode auth.info: %w", err)
	}
	if info.User.Name == "" {
		return "(unknown user)", nil
	}
	return info.User.Name, nil
}
