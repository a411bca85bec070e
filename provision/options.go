package provision

import (
	"path/filepath"
)

type Option func(s *SDK)

// WithDirectory sets the directory the sdk gets extracted into.
func WithDirectory(dir string) Option {
	return func(s *SDK) {
		s.template.Directory = filepath.FromSlash(dir)
	}
}

// WithArchive sets the local path the downloaded archive is written to.
func WithArchive(path string) Option {
	return func(s *SDK) {
		s.template.Archive = filepath.FromSlash(path)
	}
}

// WithClient allows using a preconfigured client, e.g. one with a timeout.
func WithClient(client *Client) Option {
	return func(s *SDK) {
		s.client = client
	}
}

// WithPatches replaces the default patches; passing none disables patching.
func WithPatches(patches ...Patch) Option {
	return func(s *SDK) {
		s.patches = patches
	}
}

// WithStrictPatching makes the patch step fail when a patch doesn't match anything,
// instead of just printing a warning.
func WithStrictPatching(strict bool) Option {
	return func(s *SDK) {
		s.strict = strict
	}
}
