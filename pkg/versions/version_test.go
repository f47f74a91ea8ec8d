package versions

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	t.Parallel()

	info := GetVersionInfo()
	assert.NotEmpty(t, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH), info.Platform)
}

func TestGetVersionInfoWithValues(t *testing.T) {
	t.Parallel()

	info := getVersionInfoWithValues("1.2.3", "abcdef1234567890", "2026-01-02T15:04:05Z")
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abcdef1234567890", info.Commit)
	assert.Equal(t, "2026-01-02 15:04:05 UTC", info.BuildDate)
}

func TestGetVersionInfoDevBuild(t *testing.T) {
	t.Parallel()

	info := getVersionInfoWithValues("dev", "abcdef1234567890", unknownStr)
	assert.Equal(t, "build-abcdef12", info.Version)
}
