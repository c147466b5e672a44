// Package appinfo describes the running application.
package appinfo

import "context"

// Version is set via ldflags at build time. It must stay a parseable
// "<int>.<int>.<int>" version because project files record it.
var Version = "0.4.0"

// Name is the application name recorded in logs.
const Name = "voicevox"

// Info holds metadata about the running application.
type Info struct {
	Name    string
	Version string
}

// Static reports a fixed Info.
type Static struct {
	Info Info
}

// Default returns a Static provider for the built binary. A non-empty
// override replaces the build version.
func Default(override string) Static {
	v := Version
	if override != "" {
		v = override
	}
	return Static{Info: Info{Name: Name, Version: v}}
}

// AppInfos returns the configured Info.
func (s Static) AppInfos(ctx context.Context) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	return s.Info, nil
}
