package config

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// SupportedMajor is the configuration format major version this build reads
const SupportedMajor = 1

// parseSemVer splits a "major.minor.patch" version, with an optional "v" prefix
func parseSemVer(version string) (int, int, int, error) {
	if version == "" {
		return 0, 0, 0, stderrors.New("version cannot be empty")
	}
	version = strings.TrimPrefix(version, "v")

	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("version must be in format 'major.minor.patch', got '%s'", version)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, 0, 0, fmt.Errorf("invalid version component '%s'", part)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

// checkVersion rejects configuration written for a newer format
func checkVersion(version string) error {
	major, _, _, err := parseSemVer(version)
	if err != nil {
		return err
	}
	if major > SupportedMajor {
		return fmt.Errorf("version %s is newer than supported major %d", version, SupportedMajor)
	}
	return nil
}
