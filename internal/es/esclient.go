package es

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v9"
)

type Options struct {
	URL      string
	Username string
	Password string
}

// NewClient connects to Elasticsearch and checks the cluster answers.
func NewClient(ctx context.Context, opts Options) (*elasticsearch.Client, error) {
	slog.Info("es_connect", "url", opts.URL, "user", opts.Username)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{opts.URL},
		Username:  opts.Username,
		Password:  opts.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("es: new client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("es: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("es: info: %s: %s", res.Status(), body)
	}

	slog.Info("es_connected", "url", opts.URL)
	return client, nil
}
