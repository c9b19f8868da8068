/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubdiff

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"
)

// Auth selects how the GitHub client authenticates.
// App credentials take precedence over Token when both are set.
type Auth struct {
	Token string

	AppID          int64
	InstallationID int64
	PrivateKeyPath string

	// BaseURL points the client at a GitHub Enterprise API, e.g. https://ghe.example.com/api/v3/.
	BaseURL string
}

func (a Auth) app() bool {
	return a.AppID != 0 || a.InstallationID != 0 || a.PrivateKeyPath != ""
}

// NewClient builds a GitHub REST client for auth.
func NewClient(ctx context.Context, auth Auth) (*github.Client, error) {
	log := clog.FromContext(ctx)

	var httpClient *http.Client
	switch {
	case auth.app():
		if auth.AppID == 0 || auth.InstallationID == 0 || auth.PrivateKeyPath == "" {
			return nil, fmt.Errorf("github app auth needs app id, installation id and private key path")
		}
		itr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, auth.AppID, auth.InstallationID, auth.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("creating installation transport: %w", err)
		}
		if auth.BaseURL != "" {
			itr.BaseURL = strings.TrimSuffix(auth.BaseURL, "/")
		}
		httpClient = &http.Client{Transport: itr}
		log.With("app_id", auth.AppID, "installation_id", auth.InstallationID).Info("Using GitHub App authentication")

	case auth.Token != "":
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: auth.Token}))
		log.Info("Using GitHub token authentication")

	default:
		log.Warn("No GitHub credentials configured, requests are unauthenticated and rate limited")
	}

	client := github.NewClient(httpClient)
	if auth.BaseURL != "" {
		c, err := client.WithEnterpriseURLs(auth.BaseURL, auth.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("configuring enterprise URL: %w", err)
		}
		client = c
	}
	return client, nil
}
