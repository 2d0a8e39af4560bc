// Package version reports build information for the lego binary.
//
// Release builds set the variables with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/lego/version.Version=v1.2.0" ./cmd/lego
//
// Development builds fall back to the VCS stamps Go embeds in the binary.
package version
