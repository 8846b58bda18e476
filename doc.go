/*
Package substenv loads environment variable definitions from env files and
resolves the shell-like interpolation syntax embedded in their values.

“substenv isn't a shell.” It understands just enough Bash-like syntax to make
env files useful: variable references ($FOO and ${FOO}), default and
alternate substitutions (${FOO:-bar} and friends), and command substitution
($(command)). A value such as

	DATABASE_URL=postgres://${DB_HOST}:${DB_PORT:-5432}/${DB_NAME}

thus resolves against the other variables from the same (or other) env
files, with the process environment as fallback. The interpolation engine
itself lives in the [github.com/thediveo/substenv/interpolate] package; this
package adds the thin tooling around it: loading dotenv and flat YAML env
files into variable maps and resolving whole maps in one go.

Use [Load] to read env files (later files override earlier ones), then
[ResolveAll] for a fully resolved name/value view, or hand the loaded map
together with any string to [interpolate.Interpolate].
*/
package substenv
