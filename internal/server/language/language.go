// Package language defines the closed set of code languages accepted by the
// snippet-sharing flow, with display names for presentation.
package language

import "strings"

type Language string

const (
	Php        Language = "php"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Python     Language = "python"
	Java       Language = "java"
	CSharp     Language = "csharp"
	Cpp        Language = "cpp"
	C          Language = "c"
	Go         Language = "go"
	Rust       Language = "rust"
	Ruby       Language = "ruby"
	Swift      Language = "swift"
	Kotlin     Language = "kotlin"
	Html       Language = "html"
	Css        Language = "css"
	Sql        Language = "sql"
	Bash       Language = "bash"
	Json       Language = "json"
	Xml        Language = "xml"
	Markdown   Language = "markdown"
	Yaml       Language = "yaml"
	Text       Language = "text"
)

var displayNames = map[Language]string{
	Php:        "PHP",
	JavaScript: "JavaScript",
	TypeScript: "TypeScript",
	Python:     "Python",
	Java:       "Java",
	CSharp:     "C#",
	Cpp:        "C++",
	C:          "C",
	Go:         "Go",
	Rust:       "Rust",
	Ruby:       "Ruby",
	Swift:      "Swift",
	Kotlin:     "Kotlin",
	Html:       "HTML",
	Css:        "CSS",
	Sql:        "SQL",
	Bash:       "Bash",
	Json:       "JSON",
	Xml:        "XML",
	Markdown:   "Markdown",
	Yaml:       "YAML",
	Text:       "Plain Text",
}

// DisplayName returns the human-readable name of the language.
func (l Language) DisplayName() string {
	return displayNames[l]
}

// Valid reports whether l is one of the declared variants.
func (l Language) Valid() bool {
	_, ok := displayNames[l]
	return ok
}

// Parse maps a raw value (case-insensitive) to a Language.
func Parse(s string) (Language, bool) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if l.Valid() {
		return l, true
	}
	return "", false
}
