// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride lets tests bypass os.UserConfigDir.
var configDirOverride string

// Reset clears test overrides.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride sets a custom config directory path for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
