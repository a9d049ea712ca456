package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	docsysSvc "fitconsole/internal/domain/services/docsystem"
	"fitconsole/internal/repository/rest"
	serviceDocsys "fitconsole/internal/service/docsystem"
	"fitconsole/internal/session"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8000"

// app is the per-invocation wiring: services over the REST backend and a
// throwaway session at root.
type app struct {
	views   docsysSvc.ViewService
	folders docsysSvc.FolderService
	moves   docsysSvc.RelocationService
	sess    *session.Session
	out     io.Writer
}

func newApp(cmd *cobra.Command) (*app, error) {
	base := firstNonEmpty(apiURL, os.Getenv("API_BASE_URL"), defaultAPIURL)
	company := firstNonEmpty(companyID, os.Getenv("DOCSCTL_COMPANY"))
	token := firstNonEmpty(apiToken, os.Getenv("DOCSCTL_TOKEN"))
	if company == "" {
		return nil, fmt.Errorf("company is required (use --company or set DOCSCTL_COMPANY)")
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	registry, err := serviceDocsys.NewCategoryRegistry()
	if err != nil {
		return nil, err
	}
	client := rest.NewClient(base, 30*time.Second, logger, rest.WithToken(token))
	resolver := serviceDocsys.NewResolver(registry, "")
	cache := serviceDocsys.NewSnapshotCache(client, 0, logger)

	return &app{
		views:   serviceDocsys.NewViewService(cache, resolver, serviceDocsys.PlacementMembership, logger),
		folders: serviceDocsys.NewFolderService(client, serviceDocsys.NewResourceValidator(client, cache), cache, logger),
		moves:   serviceDocsys.NewRelocationService(client, cache, resolver, logger),
		sess:    session.New("docsctl", "", company, token),
		out:     cmd.OutOrStdout(),
	}, nil
}

// printJSON writes v indented; used by every command under --json.
func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
