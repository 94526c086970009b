/*
Package normst normalizes actual program output to an expected pattern.
The pattern is the expected output itself, with wildcards where the
actual output is allowed to vary. Normalization rewrites the actual output
into the pattern's form wherever it matches the pattern. Where it stops
matching, the rest of the actual output is kept verbatim. The actual output
matches the pattern iff the normalized output equals the pattern. If it
does not, a diff of pattern and normalized output shows only the relevant
differences, not the ones hidden by wildcards.

# Text Patterns

A text pattern is compared line by line. There are two wildcards:

	...   on a line of its own matches zero or more complete lines
	[..]  matches zero or more characters within a line

E.g. the pattern

	Hello [..]
	...
	Goodbye [..]

matches

	Hello World
	How are you?
	Goodbye World

and normalizing that text yields the pattern itself. The elision line
"..." claims as few lines as possible, i.e. it ends right before the first
line that matches the pattern line following the elision. An elision on the
last line of a pattern takes all remaining lines.

If the pattern were

	Hello [..]
	...
	Moon

normalization gives up at the elision, because no line matches "Moon".
The result is the unchanged actual text.

# Redactions

Dynamic parts like paths, times or ids are replaced with placeholders of
the form [NAME] before matching (see Redactions). A pattern then simply
contains the placeholder:

	input: [HOME]

matches "input: /home/alice" if the literal "/home/alice" is registered
for "[HOME]". Placeholders may also be bound to regular expressions.
Registering the empty literal disables a placeholder. It then matches the
empty string, e.g. "cargo[EXE]" matches "cargo".

# Tree Patterns

Tree values (JSON, YAML) are normalized structurally with NormalizeValue.
Strings are matched like text. The string "{...}" matches any value; as an
array element it matches any run of elements:

	[1, "{...}", 5]

matches [1, 2, 3, 4, 5]. An object entry "...": "{...}" accepts any keys
the pattern does not list:

	{"a": 1, "...": "{...}"}

matches {"a": 1, "b": 2}. Object keys are redacted like text.

# Concurrency

All normalization functions are pure. They may be called concurrently as
long as the Redactions in use are not modified.
*/
package normst
