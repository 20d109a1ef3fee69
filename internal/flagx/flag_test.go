package flagx

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "flag with separate value",
			args:    []string{"-env-file", ".env", "-a", "localhost"},
			allowed: []string{"-env-file"},
			want:    []string{"-env-file", ".env"},
		},
		{
			name:    "flag with equals",
			args:    []string{"-env-file=.env.local", "-a", "localhost"},
			allowed: []string{"-env-file"},
			want:    []string{"-env-file=.env.local"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-env-file"},
			want:    []string{},
		},
		{
			name:    "flag without value at end is kept as-is",
			args:    []string{"-env-file"},
			allowed: []string{"-env-file"},
			want:    []string{"-env-file"},
		},
		{
			name:    "dash-starting token is not taken as a value",
			args:    []string{"-env-file", "-a=localhost"},
			allowed: []string{"-env-file", "-a"},
			want:    []string{"-env-file", "-a=localhost"},
		},
		{
			name:    "multiple allowed flags kept in order",
			args:    []string{"-a", "localhost:8080", "-e", "a@x.com", "--other", "x"},
			allowed: []string{"-a", "-e"},
			want:    []string{"-a", "localhost:8080", "-e", "a@x.com"},
		},
		{
			name:    "repeated flag preserved in order",
			args:    []string{"-e", "one@x.com", "-e", "two@x.com"},
			allowed: []string{"-e"},
			want:    []string{"-e", "one@x.com", "-e", "two@x.com"},
		},
		{
			name:    "empty args",
			args:    []string{},
			allowed: []string{"-env-file"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEnvFilePath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("flag with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-env-file", "/etc/dragon/.env"}
		assert.Equal(t, "/etc/dragon/.env", EnvFilePath())
	})

	t.Run("equals form", func(t *testing.T) {
		os.Args = []string{"testbin", "-env-file=.env.local"}
		assert.Equal(t, ".env.local", EnvFilePath())
	})

	t.Run("absent flag yields empty path", func(t *testing.T) {
		os.Args = []string{"testbin", "-a", "localhost:8080"}
		assert.Empty(t, EnvFilePath())
	})

	t.Run("foreign flags do not interfere", func(t *testing.T) {
		os.Args = []string{"testbin", "-e", "a@x.com", "-env-file", ".env"}
		assert.Equal(t, ".env", EnvFilePath())
	})
}
