/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package notionpages creates Notion pages from paragraph blocks.
package notionpages
