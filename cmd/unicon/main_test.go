package main

import (
	"reflect"
	"testing"
)

func TestExtractFlagsAndCommands(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantFlags    []string
		wantCommands []string
	}{
		{
			name:         "no args",
			args:         []string{},
			wantFlags:    nil,
			wantCommands: nil,
		},
		{
			name:         "only commands",
			args:         []string{"config", "list"},
			wantFlags:    nil,
			wantCommands: []string{"config", "list"},
		},
		{
			name:         "only flags",
			args:         []string{"--help", "-h", "--no-color"},
			wantFlags:    []string{"--help", "-h", "--no-color"},
			wantCommands: nil,
		},
		{
			name:         "mixed order",
			args:         []string{"fetch", "--since=2024-01-01", "--pick"},
			wantFlags:    []string{"--since=2024-01-01", "--pick"},
			wantCommands: []string{"fetch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotFlags := extractFlags(tt.args)
			gotCommands := extractCommands(tt.args)

			if !reflect.DeepEqual(gotFlags, tt.wantFlags) {
				t.Errorf("extractFlags(%v) = %v, want %v", tt.args, gotFlags, tt.wantFlags)
			}
			if !reflect.DeepEqual(gotCommands, tt.wantCommands) {
				t.Errorf("extractCommands(%v) = %v, want %v", tt.args, gotCommands, tt.wantCommands)
			}
		})
	}
}
