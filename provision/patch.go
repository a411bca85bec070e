package provision

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrPatternNotFound = errors.New("pattern not found")

// Patch is a literal text substitution on a single file of the extracted SDK.
type Patch struct {
	// File is the path of the file to patch, relative to the SDK directory
	File string
	// Old is the literal text being replaced; every occurrence is replaced
	Old string
	// New is the text replacing Old
	New string
}

// AndroidMkPatch makes the sample framework makefile include cflags.mk relative
// to LOCAL_PATH, so it can be built from a project living next to the SDK.
var AndroidMkPatch = Patch{
	File: "VrSamples/SampleFramework/Projects/Android/jni/Android.mk",
	Old:  "include ../../../../cflags.mk",
	New:  "include $(LOCAL_PATH)/../../../../../cflags.mk",
}

// Apply replaces every occurrence of Old in the file under root and writes the
// result back to the same path, returning the number of replacements done.
// The file is rewritten even when nothing matched, in which case its content is unchanged.
func (p Patch) Apply(root string) (int, error) {
	path := filepath.Join(root, filepath.FromSlash(p.File))

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	contents := string(data)
	count := strings.Count(contents, p.Old)
	if p.Old == "" {
		count = 0
	}

	if count > 0 {
		contents = strings.ReplaceAll(contents, p.Old, p.New)
	}

	if err := os.WriteFile(path, []byte(contents), info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return count, nil
}

func (p Patch) String() string {
	return fmt.Sprintf("%s: %q -> %q", p.File, p.Old, p.New)
}
