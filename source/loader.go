// Copyright 2025 Parthenon Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package source

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/parthenonlabs/repoassist/core"
)

// maxFileSize is the largest blob the loader will fetch.
const maxFileSize = 1024 * 1024 // 1 MiB

// Loader streams the files of a GitHub repository branch as documents.
// Each document's metadata carries the API-host source URL and the
// repository-relative path.
type Loader struct {
	owner  string
	name   string
	branch string
	filter PathFilter
	client *gh.Client
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFilter restricts the stream to paths accepted by the filter.
// Default accepts every path.
func WithFilter(filter PathFilter) LoaderOption {
	return func(l *Loader) {
		if filter != nil {
			l.filter = filter
		}
	}
}

// WithClient sets a custom GitHub API client, mainly for tests.
func WithClient(client *gh.Client) LoaderOption {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// WithLoaderLogger sets a custom logger.
// Default is slog.Default().
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader for "owner/name" at the given branch.
// A GITHUB_TOKEN environment variable, when present, authenticates the
// client and raises the API rate limit.
func NewLoader(repo, branch string, opts ...LoaderOption) (*Loader, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRepo, repo)
	}
	if branch == "" {
		return nil, ErrBranchRequired
	}

	l := &Loader{
		owner:  owner,
		name:   name,
		branch: branch,
		filter: func(string) bool { return true },
		logger: slog.Default().With("component", "github-loader"),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.client == nil {
		var httpClient *http.Client
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
			httpClient = oauth2.NewClient(context.Background(), ts)
		}
		l.client = gh.NewClient(httpClient)
	}

	return l, nil
}

// Load streams the branch's files lazily, calling fn once per document in
// tree order. Blob content is fetched one file at a time, only for paths
// that pass the filter. Load stops at the first error, including an error
// returned by fn or context cancellation.
func (l *Loader) Load(ctx context.Context, fn func(doc core.Document) error) error {
	tree, _, err := l.client.Git.GetTree(ctx, l.owner, l.name, l.branch, true)
	if err != nil {
		return fmt.Errorf("get tree for %s/%s@%s: %w", l.owner, l.name, l.branch, err)
	}
	if tree.GetTruncated() {
		l.logger.Warn("repository tree is truncated, some files will be skipped",
			"repo", l.owner+"/"+l.name)
	}

	for _, entry := range tree.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		if entry.GetType() != "blob" {
			continue
		}

		path := entry.GetPath()
		if isBinaryExtension(path) || entry.GetSize() > maxFileSize {
			continue
		}
		if !l.filter(path) {
			continue
		}

		content, err := l.fetchBlob(ctx, entry.GetSHA())
		if err != nil {
			return fmt.Errorf("fetch blob %s: %w", path, err)
		}

		doc := core.Document{
			Content: content,
			Metadata: map[string]string{
				core.MetadataSource: l.sourceURL(path),
				core.MetadataPath:   path,
			},
		}
		if err := fn(doc); err != nil {
			return err
		}
	}

	return nil
}

// fetchBlob retrieves and decodes a blob's content.
func (l *Loader) fetchBlob(ctx context.Context, sha string) (string, error) {
	blob, _, err := l.client.Git.GetBlob(ctx, l.owner, l.name, sha)
	if err != nil {
		return "", err
	}

	if blob.GetEncoding() == "base64" {
		raw := strings.ReplaceAll(blob.GetContent(), "\n", "")
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}

	return blob.GetContent(), nil
}

// sourceURL builds the API-host contents URL for a path.
// Ingestion rewrites this to the public-host form before storage.
func (l *Loader) sourceURL(path string) string {
	return fmt.Sprintf("https://api.github.com/repos/%s/%s/contents/%s", l.owner, l.name, path)
}

var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true,
	".pdf": true, ".zip": true, ".tar": true, ".gz": true, ".bz2": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".webm": true,
	".jar": true, ".class": true, ".wasm": true,
}

// isBinaryExtension reports whether a path looks like a binary file.
func isBinaryExtension(path string) bool {
	return binaryExtensions[strings.ToLower(filepath.Ext(path))]
}
