package utils

import (
	"os"
	"testing"

	"github.com/jesb1n/immich/internal/testutils"
)

func TestMain(m *testing.M) {
	os.Exit(testutils.RunWithConfig(m, "utils", "test_secret"))
}
