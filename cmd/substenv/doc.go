/*
substenv isn't a shell, but expands ${FOO} and $(command) in env values
anyway.

# Usage

	substenv [flags] [text...]

Without any text arguments, substenv expands text read from stdin. With the
--all flag it instead prints all resolved KEY=value pairs from the loaded
env files.

# Flags

	-a, --all                     print all resolved KEY=value pairs from the loaded env files
	-e, --env-file strings        env file to load variables from; repeatable, later files override earlier ones
	    --fail-on-command-error   fail when a command substitution exits non-zero
	-h, --help                    help for substenv
	    --insecure                don't shell-escape variable values interpolated into command lines
	    --max-iterations uint     bound on the passes re-scanning for newly exposed substitutions (default 10)
	    --no-commands             leave $(command) substitutions literal, never invoking a shell
	    --no-escapes              leave backslash escape sequences untouched
	    --no-variables            leave $FOO and ${FOO} references literal
	-v, --version                 version for substenv
	    --warn-undefined          warn about references to undefined variables
*/
package main
