package commands

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aexvir/ovrsdk/provision"
)

func flagset(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(flags)
	require.NoError(t, flags.Parse(args))

	return flags
}

func TestLoadConfigDefaults(t *testing.T) {
	conf, err := loadConfig(flagset(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), conf)
	assert.Equal(t, "1.32.0", conf.Version)
	assert.Equal(t, "ovr_sdk.zip", conf.Archive)
	assert.Equal(t, "ovr_sdk", conf.Directory)
	assert.Zero(t, conf.Timeout)
	assert.IsType(t, provision.ScrapedDownload(""), conf.source())
}

func TestPageFlagUsage(t *testing.T) {
	usage := flagset(t).Lookup("page").Usage

	assert.Contains(t, usage, "https://developer.oculus.com/downloads/package/oculus-mobile-sdk/1.32.0/")
}

func TestLoadConfigInvalidIsNotReported(t *testing.T) {
	_, err := loadConfig(flagset(t, "--version", "nope"))
	assert.NotErrorIs(t, err, errReported)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("OVRSDK_VERSION", "1.33.0")
	t.Setenv("OVRSDK_URL", "https://example.com/sdk.zip")
	t.Setenv("OVRSDK_STRICT", "true")
	t.Setenv("OVRSDK_TIMEOUT", "30s")

	conf, err := loadConfig(flagset(t))
	require.NoError(t, err)

	assert.Equal(t, "1.33.0", conf.Version)
	assert.Equal(t, "https://example.com/sdk.zip", conf.URL)
	assert.True(t, conf.Strict)
	assert.Equal(t, 30*time.Second, conf.Timeout)
	assert.IsType(t, provision.DirectDownload(""), conf.source())
}

func TestLoadConfigFlagsWinOverEnv(t *testing.T) {
	t.Setenv("OVRSDK_DIRECTORY", "from_env")

	conf, err := loadConfig(flagset(t, "--directory", "from_flag", "--archive", "sdk.zip"))
	require.NoError(t, err)

	assert.Equal(t, "from_flag", conf.Directory)
	assert.Equal(t, "sdk.zip", conf.Archive)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := loadConfig(flagset(t, "--version", "one point three"))
	assert.ErrorIs(t, err, provision.ErrInvalidVersion)

	_, err = loadConfig(flagset(t, "--directory", ""))
	assert.Error(t, err)

	_, err = loadConfig(flagset(t, "--timeout", "-1s"))
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	buf := new(bytes.Buffer)
	writer := zip.NewWriter(buf)
	w, err := writer.Create("VrSamples/SampleFramework/Projects/Android/jni/Android.mk")
	require.NoError(t, err)
	_, err = w.Write([]byte("include ../../../../cflags.mk\nOTHER=1\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.Write(buf.Bytes())
			},
		),
	)
	defer server.Close()

	dir := t.TempDir()
	conf := DefaultConfig()
	conf.URL = server.URL + "/ovr_sdk_mobile_{{.Version}}.zip"
	conf.Archive = filepath.Join(dir, "ovr_sdk.zip")
	conf.Directory = filepath.Join(dir, "ovr_sdk")
	conf.Strict = true

	require.NoError(t, setup(context.Background(), conf))

	data, err := os.ReadFile(filepath.Join(dir, "ovr_sdk", "VrSamples", "SampleFramework", "Projects", "Android", "jni", "Android.mk"))
	require.NoError(t, err)
	assert.Equal(t, "include $(LOCAL_PATH)/../../../../../cflags.mk\nOTHER=1\n", string(data))
	assert.FileExists(t, conf.Archive)
}

func TestSetupFailsFast(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not a zip"))
			},
		),
	)
	defer server.Close()

	dir := t.TempDir()
	conf := DefaultConfig()
	conf.URL = server.URL
	conf.Archive = filepath.Join(dir, "ovr_sdk.zip")
	conf.Directory = filepath.Join(dir, "ovr_sdk")

	err := setup(context.Background(), conf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract sdk archive")
	assert.ErrorIs(t, err, errReported)

	// the downloaded file is left behind for inspection
	assert.FileExists(t, conf.Archive)
}
