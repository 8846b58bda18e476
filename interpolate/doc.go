/*
Package interpolate resolves the shell-like substitution syntax embedded in
environment variable values, producing fully expanded strings. It is the
engine behind tooling that loads raw key/value pairs from env files and then
needs values that reference other variables or shell output, such as

	DATABASE_URL=postgres://${DB_HOST}:${DB_PORT}/${DB_NAME}

This interpolation uses a Bash-like syntax, both in so-called “unbraced” and
“braced” syntax:

	$FOO
	${FOO}

Variable names resolve first against the caller-supplied variable map and
then against a read-only snapshot of the process environment. But unlike
Bash, interpolation can be nested:

	${FOO:-${BAR}}

Values whose substitution exposes further references get resolved too: the
whole string is re-scanned until it reaches a fixed point, bounded by a
configurable iteration budget so that cyclic references terminate with a
best-effort result instead of hanging.

# Default

The following substitution

	${VARIABLE:-default}

evaluates to “default” if VARIABLE is unset or empty. In contrast,

	${VARIABLE-default}

evaluates to default only if VARIABLE is unset, but not if it is empty.

# Replacement

The substitution

	${VARIABLE:+replacement}

replaces with replacement if VARIABLE is set and non-empty, otherwise empty.
In contrast,

	${VARIABLE+replacement}

replaces with replacement if VARIABLE is set, otherwise empty, even if it is
empty. In both forms VARIABLE's own value is never emitted; it only acts as
the condition.

# Command Substitution

The substitution

	$(command)

runs the command line through an external shell and replaces itself with the
captured standard output, stripped of exactly one trailing newline. Braced
variable references inside the command line are resolved first, with their
values shell-escaped so they cannot break out of the command line. Commands
that fail substitute empty text, unless failing the whole interpolation was
explicitly requested.

# Quoting and Escapes

A value entirely wrapped in single quotes suppresses all substitution; the
quotes are stripped and backslash escapes decoded. Double quotes are
stripped with substitution applied as usual. The escape sequences \n, \t,
\", \' and \\ decode to the characters they stand for.

# Malformed Input

Interpolation never fails on malformed input: any “${” or “$(” without its
matching closer stays in the result exactly as written, as does any braced
region with invalid operation syntax. Undefined variables without a default
substitute empty text.

# Implementation Note

This interpolation is implemented as a dedicated recursive-descent parser
instead of using regular expressions. A dedicated parser implementation is
probably much more straightforward to carry out, understand, and maintain
than regular expressions that really don't work well in the face of
recursive interpolation where they need dodgy parsing helpers anyway.
*/
package interpolate
