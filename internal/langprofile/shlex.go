package langprofile

import "github.com/google/shlex"

// splitFlags splits a space-separated flags string the way the
// teacher's command-template builder does, so an operator can supply
// "-std=c++17 -Wall" in config without the profile caring about
// shell-style quoting rules itself.
func splitFlags(flags string) []string {
	if flags == "" {
		return nil
	}
	parts, err := shlex.Split(flags)
	if err != nil {
		return nil
	}
	return parts
}
