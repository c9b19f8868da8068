/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package githubdiff fetches pull request changes from GitHub and formats them
// as a single markdown document: a YAML metadata header, a table of changed
// files, and each file's patch.
//
// Authentication is either a static token (oauth2) or a GitHub App
// installation (ghinstallation). Pull request metadata and the paginated file
// list are fetched concurrently.
package githubdiff
