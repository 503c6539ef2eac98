package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantDone bool
		wantCode int
		wantErr  string
		check    func(t *testing.T, cfgPath, level string, loop, debug bool)
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, cfgPath, level string, loop, debug bool) {
				if cfgPath != "" || level != "" || loop || debug {
					t.Errorf("unexpected options: %q %q %v %v", cfgPath, level, loop, debug)
				}
			},
		},
		{
			name: "all options",
			args: []string{"-c", "macrorec.toml", "-log-level", "warn", "-loop", "-d"},
			check: func(t *testing.T, cfgPath, level string, loop, debug bool) {
				if cfgPath != "macrorec.toml" || level != "warn" || !loop || !debug {
					t.Errorf("unexpected options: %q %q %v %v", cfgPath, level, loop, debug)
				}
			},
		},
		{name: "invalid log level", args: []string{"-log-level", "loud"}, wantDone: true, wantCode: 1, wantErr: "invalid log level"},
		{name: "unknown flag", args: []string{"-x"}, wantDone: true, wantCode: 2},
		{name: "positional argument", args: []string{"file.txt"}, wantDone: true, wantCode: 2, wantErr: "unexpected arguments"},
		{name: "help", args: []string{"-h"}, wantDone: true, wantCode: 0, wantErr: "Usage: macrorec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			opts, code, done := parseFlags(tt.args, &stderr)
			if done != tt.wantDone || code != tt.wantCode {
				t.Fatalf("parseFlags() = (%d, %v), want (%d, %v)", code, done, tt.wantCode, tt.wantDone)
			}
			if tt.wantErr != "" && !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, opts.ConfigPath, opts.LogLevel, opts.Loop, opts.Debug)
			}
		})
	}
}
