// Package flagx lets several config loaders share os.Args: each one picks
// out only the flags it owns and parses those in its own FlagSet.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns a slice of command-line arguments that only contains
// the allowed flags (and their values) specified in allowedFlags.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json
//
// Parameters:
//
//	args         - the command-line arguments (usually os.Args[1:])
//	allowedFlags - list of allowed flag names (e.g. []string{"-c", "-config"})
//
// Returns:
//
//	A slice containing the allowed flags and their values (if provided
//	separately). The slice is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	// set of allowed names for O(1) lookup
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "-flag=value": keep the whole argument when the name is allowed
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		// "-flag value": the value, if any, is the next argument
		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			// a following token that is not itself a flag is the value
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++ // skip the value on the next iteration
			}
		}
	}

	return filtered
}

// stringFlag parses a single string option that may be spelled with any of
// names. The last occurrence wins. Everything else in os.Args is ignored, so
// callers can run it before (or alongside) their own FlagSet without
// tripping over unknown flags.
//
// Parameters:
//
//	usage - help text registered for every spelling
//	names - flag names without the leading dash, e.g. "config", "c"
//
// Returns:
//
//	The flag value, or "" when none of the names is present.
func stringFlag(usage string, names ...string) string {
	var value string

	allowed := make([]string, 0, len(names))
	for _, n := range names {
		allowed = append(allowed, "-"+n)
	}

	fs := flag.NewFlagSet(names[0], flag.ContinueOnError)
	for _, n := range names {
		fs.StringVar(&value, n, "", usage)
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], allowed))

	return value
}

// JsonConfigFlags inspects command-line arguments and extracts the config
// file path provided via the -c or -config flags.
//
// Only these flags are parsed; other arguments are ignored. This allows the
// application to parse its own flags later without interference.
//
// If neither -c nor -config is present, an empty string is returned.
func JsonConfigFlags() string {
	return stringFlag("Path to config file", "config", "c")
}

// EnvFileFlag extracts the dotenv file path given via -envfile. The server
// config loader reads that file before applying CIVICHUB_* variables.
//
// If -envfile is absent, an empty string is returned.
func EnvFileFlag() string {
	return stringFlag("Path to .env file", "envfile")
}
