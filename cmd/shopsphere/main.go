package main

import (
	"os"
	"strings"

	"shopsphere/internal/cli"
)

func isShopID(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "shop-") {
		return false
	}
	// Anything non-empty after the prefix counts; the lookup itself decides
	// whether the id exists.
	return len(s) > len("shop-")
}

func rewriteDirectShopLookupArgs(argv []string) []string {
	// `shopsphere <shop-id>` is shorthand for `shopsphere shops show <shop-id>`.
	// Cobra would otherwise try to resolve the id as a subcommand, so the
	// rewrite happens on raw argv before Execute.
	//
	// The shop id is the first positional token, not necessarily argv[1]:
	// persistent flags like `--dir` may come before it.
	if len(argv) < 2 {
		return argv
	}

	// Only the root command's own flags are modeled. An unrecognized flag is
	// skipped without assuming it takes a value; guessing wrong would swallow
	// the shop id.
	valueFlags := map[string]bool{
		"--dir":    true,
		"--remote": true,
		"--user":   true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// Everything after the terminator is positional.
			if i+1 < len(argv) && isShopID(argv[i+1]) {
				out := make([]string, 0, len(argv)+2)
				out = append(out, argv[:i+1]...)
				out = append(out, "shops", "show")
				out = append(out, argv[i+1:]...)
				return out
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") {
				// --flag=value carries its value inline.
				continue
			}
			if boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // the next token is the flag's value
				continue
			}
			continue
		}

		// First positional token decides.
		if isShopID(a) {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, "shops", "show")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectShopLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
