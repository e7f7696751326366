package parser

// The patterns below are written for regexp2's IgnorePatternWhitespace mode:
// whitespace is insignificant and "#" starts a comment that runs to the end
// of the line. A group that some context may want to capture is written as
// `(?: # <NAME>` and only becomes a real named group through
// setCaptureGroup, so a fragment can be embedded many times without
// duplicating group names.

//////////////////////////////////////
// lexical

const keywords = `auto|extern|register|static|_Thread_local|typedef|` +
	`const|volatile|` +
	`signed|unsigned|char|short|int|long|float|double|void|_Bool|` +
	`struct|union|enum|` +
	`goto|return|sizeof|break|continue|if|else|for|do|while|switch|case|default|entry`

var (
	keyword = `(?:\b(?:` + keywords + `)\b)`

	identifier = `(?:[a-zA-Z_][a-zA-Z0-9_]*)`
	// Keywords are filtered out with a negative lookahead.
	strictIdentifier = `(?:(?!` + keyword + `)\b[a-zA-Z_][a-zA-Z0-9_]*)`
	// Synthetic names for anonymous types look like "inline-3".
	anonIdentifier = `(?:(?!` + keyword + `)\b[a-zA-Z_][a-zA-Z0-9_]*(?:-\d+)?)`

	escaped = `(?:\\(?:x[0-9a-fA-F]+|[^x]))`

	stringLiteral = `
		# string literal
		(?:
			(?: u8 | u | U | L )?
			(?:
				(?: ['] (?: [^'\\] | ` + escaped + ` )+ ['] )
				|
				(?: ["] (?: [^"\\] | ` + escaped + ` )* ["] )
			)
		)
		# end string literal
		`
)

//////////////////////////////////////
// types

var (
	simpleType = `
		# simple type
		(?:
			\b
			(?:
				(?:
					(?: (?: signed | unsigned ) \s+ )?
					(?: (?: long | short ) \s+ ){0,2}
					(?: char | short | int | long | float | double )
				)
				|
				(?: signed | unsigned )
				|
				void
				|
				_Bool
			)
			\b
		)
		# end simple type
		`

	compoundTypeKind = `(?: \b (?: struct | union | enum ) \b )`

	storageClass  = `(?: \b (?: auto | register | static | extern | _Thread_local ) \b )`
	typeQualifier = `(?: \b (?: const | volatile ) \b )`
	ptrQualifier  = `(?: [*] (?: \s* \b (?: const | volatile | restrict | __restrict | __restrict__ ) \b )* )`

	typeSpec = `
		# type spec
		(?:
			` + simpleType + `
			|
			(?:
				[_]*typeof[_]*
				\s* [(]
				(?: \s* [*&] )*
				\s* ` + strictIdentifier + `
				\s* [)]
			)
			|
			# reference to a compound type
			(?:
				` + compoundTypeKind + `
				(?: \s* ` + anonIdentifier + ` )?
			)
			|
			# reference to a typedef
			` + strictIdentifier + `
		)
		# end type spec
		`
)

//////////////////////////////////////
// declarations

var (
	// The brackets actually hold a constant expression.
	arraySuffixes = `(?: \s* \[ [^\]]* \] )*`

	declarator = `
		# declarator (possibly abstract)
		(?:
			(?: ` + ptrQualifier + ` \s* )*
			(?:
				(?:
					(?: # <IDENTIFIER>
						` + strictIdentifier + `
					)
					` + arraySuffixes + `
				)
				|
				(?:
					[(] \s*
					(?: # <WRAPPED_IDENTIFIER>
						` + strictIdentifier + `
					)
					` + arraySuffixes + `
					\s* [)]
				)
				|
				# function pointer
				(?:
					[(] (?: \s* ` + ptrQualifier + ` ){1,2} \s*
					(?: # <FUNC_IDENTIFIER>
						` + strictIdentifier + `
					)
					` + arraySuffixes + `
					\s* [)]
					# at most one level of nested parens in the parameters
					\s* [(] (?: [^()]* [(] [^)]* [)] )* [^)]* [)]
				)
			)
		)
		# end declarator
		`

	varDecl = `
		# var decl (and typedef and func return type)
		(?:
			(?:
				(?: # <STORAGE>
					` + storageClass + `
				)
				\s*
			)?
			(?:
				(?: # <TYPE_QUAL>
					` + typeQualifier + `
				)
				\s*
			)?
			(?: # <TYPE_SPEC>
				` + typeSpec + `
			)
			\s*
			(?: # <DECLARATOR>
				` + declarator + `
			)
		)
		# end var decl
		`

	// parenGroup allows one level of nesting, enough for calls and casts.
	parenGroup = `[(] (?: [^'"()] | ` + stringLiteral + ` | [(] [^()]* [)] )* [)]`

	initializer = `
		# initializer
		(?:
			(?:
				[(]
				# no nested parens (e.g. func ptr)
				[^)]*
				[)]
				\s*
			)?
			(?:
				# a string literal
				(?:
					(?: ` + stringLiteral + ` \s* )*
					` + stringLiteral + `
				)
				|
				# a simple initializer
				(?:
					[^'"(),;{}]
					|
					` + stringLiteral + `
					|
					` + parenGroup + `
				)*
				|
				# a struct/array literal
				(?:
					# only expected with single-variable declarations
					[{]
					(?: [^'";] | ` + stringLiteral + ` )*?
					[}]
					(?= \s* ; )
				)
			)
		)
		# end initializer
		`
)

//////////////////////////////////////
// contexts

// globalPattern matches one construct at file scope. When reparse is set the
// text starts with a compound tag that has already been reported, so the
// bare-tag alternative is replaced by one that silently drops "struct x;".
func globalPattern(reparse bool) string {
	tag := `
			# a tag that is not followed by a body
			(?:
				(?: # <FORWARD_KIND>
					` + compoundTypeKind + `
				)
				\s*
				(?: # <FORWARD_NAME>
					` + anonIdentifier + `
				)
				(?: # <MAYBE_INLINE_ACTUAL>
					[^=,;({}]*
					[=,;({]
				)
			)
			`
	if reparse {
		tag = `
			# a tag that was already reported
			(?: # <TAG_ONLY>
				` + compoundTypeKind + ` \s* ` + anonIdentifier + ` \s* [;]
			)
			`
	}
	return `
		^ \s*
		(?:
			# an empty statement
			(?: # <EMPTY>
				[;]
			)
			|
			# compound type decl (maybe inline)
			(?:
				(?: # <COMPOUND_LEADING>
					(?: (?: ` + storageClass + ` | \b typedef \b ) \s* )*
					(?: ` + typeQualifier + ` \s* )?
				)
				(?: # <COMPOUND_KIND>
					` + compoundTypeKind + `
				)
				(?:
					\s+
					(?: # <COMPOUND_NAME>
						` + strictIdentifier + `
					)
				)?
				\s* [{]
			)
			|
			` + tag + `
			|
			# typedef
			(?:
				\b typedef \b \s*
				(?: # <TYPEDEF_DECL>
					` + varDecl + `
				)
				(?:
					# a function type; no inline type definitions in the parameters
					\s* [(] \s*
					(?: # <TYPEDEF_FUNC_PARAMS>
						[^{;]*
					)
					\s* [)]
				)?
				\s*
				(?: # <TYPEDEF_ENDING>
					[,;]
				)
			)
			|
			# func decl/definition and var decls
			(?:
				(?:
					(?: # <VAR_STORAGE>
						` + storageClass + `
					)
					\s*
				)?
				(?:
					(?: # <FUNC_INLINE>
						\b (?: inline | __inline__ | __inline ) \b
					)
					\s*
				)?
				(?: # <VAR_DECL>
					` + varDecl + `
				)
				(?:
					# func decl / definition
					(?:
						[(] \s*
						(?: # <FUNC_PARAMS>
							[^{;]*
						)
						\s* [)] \s*
						(?: # <FUNC_DELIM>
							[{;]
						)
					)
					|
					# K&R style parameters
					(?:
						[(] \s*
						(?: # <FUNC_LEGACY_NAMES>
							` + strictIdentifier + `
							(?: \s* , \s* ` + strictIdentifier + ` )*
						)
						\s* [)] \s*
						(?: # <FUNC_LEGACY_PARAMS>
							(?:
								(?: ` + typeQualifier + ` \s* )?
								` + typeSpec + `
								\s*
								` + declarator + `
								(?: \s* , \s* ` + declarator + ` )*
								\s* [;] \s*
							)+
						)
						[{]
					)
					|
					# var decl
					(?:
						(?:
							\s* = \s*
							(?: # <VAR_INIT>
								` + initializer + `
							)
						)?
						\s*
						(?: # <VAR_ENDING>
							[,;]
						)
					)
				)
			)
		)
		`
}

var structMemberDecl = `
		^ \s*
		(?:
			# inline compound type decl
			(?:
				(?: # <INLINE_LEADING>
					(?: ` + typeQualifier + ` \s* )?
				)
				(?: # <INLINE_KIND>
					` + compoundTypeKind + `
				)
				(?:
					\s+
					(?: # <INLINE_NAME>
						` + strictIdentifier + `
					)
				)?
				\s* [{]
			)
			|
			# typed member
			(?:
				(?: # <SPECIFIER_QUALIFIER>
					(?:
						(?: # <MEMBER_QUAL>
							` + typeQualifier + `
						)
						\s*
					)?
					(?: # <MEMBER_SPEC>
						` + typeSpec + `
					)
				)
				# a member without a declarator is anonymous or padding
				(?:
					\s*
					(?: # <DECLARATOR>
						` + declarator + `
					)
				)?
				(?:
					\s* [:] \s*
					(?: # <SIZE>
						[^,;:]*?
					)
				)?
				\s*
				(?: # <ENDING>
					[,;]
				)
			)
			|
			# end of struct or union
			(?: # <CLOSE>
				[}]
			)
		)
		`

var enumMemberDecl = `
		^ \s*
		(?:
			(?: # <CLOSE>
				[}]
			)
			|
			(?:
				(?: # <NAME>
					` + identifier + `
				)
				(?:
					\s* = \s*
					(?: # <INIT>
						(?:
							` + stringLiteral + `
							|
							` + parenGroup + `
							|
							[^'"(),}]
						)+
					)
				)?
				\s*
				(?: # <ENDING>
					[,}]
				)
			)
		)
		`

// localStatics walks a function body: it only recognizes static locals and
// inline type definitions, everything else is skipped one statement or
// brace at a time.
var localStatics = `
		^ \s*
		(?:
			# inline type decl
			(?:
				(?: # <INLINE_LEADING>
					(?: [^;{}'"] | ` + stringLiteral + ` )*?
				)
				(?: # <INLINE_PRE>
					(?: ` + storageClass + ` \s* )?
					(?: ` + typeQualifier + ` \s* )?
				)
				(?: # <INLINE_KIND>
					` + compoundTypeKind + `
				)
				(?:
					\s+
					(?: # <INLINE_NAME>
						` + strictIdentifier + `
					)
				)?
				\s* [{]
			)
			|
			# static local variable
			(?:
				(?: # <STATIC_DECL>
					\b static \b
					(?: \s* ` + typeQualifier + ` )?
					\s* ` + typeSpec + `
					\s* ` + declarator + `
				)
				(?:
					\s* = \s*
					(?: # <STATIC_INIT>
						` + initializer + `
					)
				)?
				\s*
				(?: # <STATIC_ENDING>
					[,;]
				)
			)
			|
			# everything else
			(?:
				(?: # <DELIM_LEADING>
					(?: [^;{}'"] | ` + stringLiteral + ` )*?
				)
				\s*
				(?:
					(?: # <BLOCK_OPEN>
						[{]
					)
					|
					(?: # <BLOCK_CLOSE>
						[}]
					)
					|
					(?: # <STMT_END>
						[;]
					)
				)
			)
		)
		`

//////////////////////////////////////
// compiled

var (
	globalRE = compile(setCaptureGroup(globalPattern(false),
		"EMPTY",
		"COMPOUND_LEADING", "COMPOUND_KIND", "COMPOUND_NAME",
		"FORWARD_KIND", "FORWARD_NAME", "MAYBE_INLINE_ACTUAL",
		"TYPEDEF_DECL", "TYPEDEF_FUNC_PARAMS", "TYPEDEF_ENDING",
		"VAR_STORAGE", "FUNC_INLINE", "VAR_DECL",
		"FUNC_PARAMS", "FUNC_DELIM", "FUNC_LEGACY_NAMES", "FUNC_LEGACY_PARAMS",
		"VAR_INIT", "VAR_ENDING",
	))

	globalReparseRE = compile(setCaptureGroup(globalPattern(true),
		"EMPTY",
		"COMPOUND_LEADING", "COMPOUND_KIND", "COMPOUND_NAME",
		"TAG_ONLY",
		"TYPEDEF_DECL", "TYPEDEF_FUNC_PARAMS", "TYPEDEF_ENDING",
		"VAR_STORAGE", "FUNC_INLINE", "VAR_DECL",
		"FUNC_PARAMS", "FUNC_DELIM", "FUNC_LEGACY_NAMES", "FUNC_LEGACY_PARAMS",
		"VAR_INIT", "VAR_ENDING",
	))

	structMemberRE = compile(setCaptureGroup(structMemberDecl,
		"INLINE_LEADING", "INLINE_KIND", "INLINE_NAME",
		"SPECIFIER_QUALIFIER", "MEMBER_QUAL", "MEMBER_SPEC",
		"DECLARATOR", "SIZE", "ENDING",
		"CLOSE",
	))

	enumMemberRE = compile(setCaptureGroup(enumMemberDecl,
		"CLOSE", "NAME", "INIT", "ENDING",
	))

	localStaticsRE = compile(setCaptureGroup(localStatics,
		"INLINE_LEADING", "INLINE_PRE", "INLINE_KIND", "INLINE_NAME",
		"STATIC_DECL", "STATIC_INIT", "STATIC_ENDING",
		"DELIM_LEADING", "BLOCK_OPEN", "BLOCK_CLOSE", "STMT_END",
	))

	varDeclRE = compile(`^ \s* ` + setCaptureGroup(varDecl,
		"STORAGE", "TYPE_QUAL", "TYPE_SPEC", "DECLARATOR",
		"IDENTIFIER", "WRAPPED_IDENTIFIER", "FUNC_IDENTIFIER",
	) + ` \s* \z`)
)
