// Package flagx helps several flag-consuming layers share one command line.
// The config layer and individual binaries each parse only the flags they
// own, so a flag defined by one does not make the other's Parse fail.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args belonging to the allowed flags.
// Both "-flag value" and "-flag=value" forms are recognized. Anything else,
// including positional arguments and unknown flags with their values, is
// dropped.
func FilterArgs(args []string, allowed []string) []string {
	keep := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		keep[name] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := keep[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := keep[arg]; ok {
			filtered = append(filtered, arg)
			// The value travels with its flag unless the next token is
			// itself a flag.
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// EnvFilePath extracts the -env-file flag from the process arguments without
// disturbing flags owned by other layers. An empty string means the flag was
// not given.
func EnvFilePath() string {
	var path string

	args := FilterArgs(os.Args[1:], []string{"-env-file"})

	fs := flag.NewFlagSet("env-file", flag.ContinueOnError)
	fs.StringVar(&path, "env-file", "", "path to a .env file loaded before other configuration")
	_ = fs.Parse(args)

	return path
}
