// gen_config_env_file – list the environment variables that can override an
// INI configuration file.
//
// Usage:
//
//	gen_config_env_file <config_file> <prefix>
//
// For every section of config_file a "# [section]" comment is printed,
// followed by one "PREFIX_Section_Key=" line per key, in file order. Section
// and key names are capitalized: first letter upper case, the rest lower
// case. config_file may be "-" to read standard input.
//
// Flags:
//
//	-f, --format env|yaml|json   output format (default env)
//	    --color never|always|auto
//	    --debug                  log parser details to stderr
//	    --version
package main

import "os"

// Version is the build version, set with -ldflags "-X main.Version=...".
var Version = "dev"

const usageLine = "Usage: gen_config_env_file.py <config_file> <prefix of env names>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
