package provision

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

const (
	DefaultArchive   = "ovr_sdk.zip"
	DefaultDirectory = "ovr_sdk"
)

var ErrNotLocated = errors.New("download url not located yet")

// SDK is a release of the vendor SDK to be provisioned into a local directory.
// Its steps are meant to run once, in order: Locate, Download, Extract, Patch.
type SDK struct {
	source   Source
	client   *Client
	template Template

	patches []Patch
	strict  bool

	url string
}

func New(version string, source Source, options ...Option) (*SDK, error) {
	if err := ValidateVersion(version); err != nil {
		return nil, err
	}

	if source == nil {
		return nil, fmt.Errorf("source must be set")
	}

	sdk := SDK{
		source: source,
		template: Template{
			Version:   version,
			Directory: filepath.FromSlash(DefaultDirectory),
			Archive:   filepath.FromSlash(DefaultArchive),
		},
		patches: []Patch{AndroidMkPatch},
	}

	for _, opt := range options {
		opt(&sdk)
	}

	if sdk.client == nil {
		sdk.client = NewClient()
	}

	return &sdk, nil
}

// URL returns the archive url, empty until [SDK.Locate] ran.
func (s *SDK) URL() string {
	return s.url
}

func (s *SDK) ArchivePath() string {
	return s.template.Archive
}

func (s *SDK) Directory() string {
	return s.template.Directory
}

func (s *SDK) Version() string {
	return s.template.Version
}

// Locate resolves the url the archive will be downloaded from.
func (s *SDK) Locate(ctx context.Context) error {
	logstep(fmt.Sprintf("locating sdk %s", s.template.Version))

	url, err := s.source.Locate(ctx, s.client, s.template)
	if err != nil {
		return fmt.Errorf("failed to locate sdk archive: %w", err)
	}

	s.url = url
	return nil
}

// Download writes the archive to its local path, overwriting whatever was there.
func (s *SDK) Download(ctx context.Context) error {
	if s.url == "" {
		return ErrNotLocated
	}

	logstep(fmt.Sprintf("downloading sdk %s", s.template.Version))

	if err := s.client.Download(ctx, s.url, s.template.Archive); err != nil {
		return fmt.Errorf("failed to download sdk archive: %w", err)
	}

	return nil
}

// Extract expands the downloaded archive into the sdk directory.
func (s *SDK) Extract(_ context.Context) error {
	logstep(fmt.Sprintf("extracting %s", s.template.Archive))

	if err := Extract(s.template.Archive, s.template.Directory); err != nil {
		return fmt.Errorf("failed to extract sdk archive: %w", err)
	}

	return nil
}

// Patch applies every configured patch to the extracted sdk.
// A patch whose text isn't found leaves the file as it was and only prints a warning,
// unless strict patching was requested.
func (s *SDK) Patch(_ context.Context) error {
	logstep(fmt.Sprintf("patching %d files", len(s.patches)))

	for _, patch := range s.patches {
		count, err := patch.Apply(s.template.Directory)
		if err != nil {
			return fmt.Errorf("failed to patch %s: %w", patch.File, err)
		}

		if count == 0 {
			if s.strict {
				return fmt.Errorf("failed to apply %s: %w", patch, ErrPatternNotFound)
			}
			logwarn(fmt.Sprintf("%s: no match, file left unchanged", patch))
			continue
		}

		logdetail(fmt.Sprintf("%s: %d replacements", patch, count))
	}

	return nil
}

// Steps returns every provisioning step in the order it has to run.
func (s *SDK) Steps() []func(ctx context.Context) error {
	return []func(ctx context.Context) error{
		s.Locate,
		s.Download,
		s.Extract,
		s.Patch,
	}
}
