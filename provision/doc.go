// Package provision downloads and prepares the Oculus Mobile SDK for a build.
//
// Provisioning is a fixed sequence of steps, each one consuming what the
// previous one left on disk:
// - Locate: find the archive url, by default scraping the vendor product page
// - Download: write the archive to ovr_sdk.zip
// - Extract: expand the archive into ovr_sdk/
// - Patch: rewrite the include path in the sample framework Android.mk
//
// Where the archive comes from is decided by a [Source]. Two are implemented:
// - [ScrapedDownload]: fetches a product page and takes the first secure cdn link in it
// - [DirectDownload]: for archives whose url is already known
//
// example usage
//
//	sdk, err := provision.New(
//		"1.32.0",
//		provision.ScrapedDownload(provision.DefaultPage),
//		provision.WithStrictPatching(true),
//	)
//	if err != nil {
//		return err
//	}
//
//	for _, step := range sdk.Steps() {
//		if err := step(ctx); err != nil {
//			return err
//		}
//	}
package provision
