/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package db

import (
	"strings"
	"unicode"
)

type sqlParseState struct {
	inSingleQuote  bool
	inDoubleQuote  bool
	inLineComment  bool
	inBlockComment bool
	dollarTag      string
}

func (s *sqlParseState) quoted() bool {
	return s.inSingleQuote || s.inDoubleQuote || s.dollarTag != ""
}

// splitSQLStatements splits a migration file on top-level semicolons, skipping
// comments and leaving quoted or dollar-quoted bodies intact.
func splitSQLStatements(content string) []string {
	var (
		statements []string
		current    strings.Builder
	)

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}

		current.Reset()
	}

	state := &sqlParseState{}

	for i := 0; i < len(content); i++ {
		ch := content[i]
		next := byte(0)

		if i+1 < len(content) {
			next = content[i+1]
		}

		switch {
		case state.inLineComment:
			if ch == '\n' {
				state.inLineComment = false

				current.WriteByte(ch)
			}
		case state.inBlockComment:
			if ch == '*' && next == '/' {
				state.inBlockComment = false
				i++
			}
		case state.dollarTag != "":
			if strings.HasPrefix(content[i:], state.dollarTag) {
				current.WriteString(state.dollarTag)
				i += len(state.dollarTag) - 1
				state.dollarTag = ""

				continue
			}

			current.WriteByte(ch)
		case !state.inSingleQuote && !state.inDoubleQuote && ch == '-' && next == '-':
			state.inLineComment = true
			i++
		case !state.inSingleQuote && !state.inDoubleQuote && ch == '/' && next == '*':
			state.inBlockComment = true
			i++
		case !state.quoted() && ch == '$':
			if tag := parseDollarTag(content[i:]); tag != "" {
				state.dollarTag = tag
				current.WriteString(tag)
				i += len(tag) - 1

				continue
			}

			current.WriteByte(ch)
		case !state.inDoubleQuote && ch == '\'':
			state.inSingleQuote = !state.inSingleQuote

			current.WriteByte(ch)
		case !state.inSingleQuote && ch == '"':
			state.inDoubleQuote = !state.inDoubleQuote

			current.WriteByte(ch)
		case ch == ';' && !state.quoted():
			flush()
		default:
			current.WriteByte(ch)
		}
	}

	flush()

	return statements
}

// parseDollarTag returns the opening tag ($$ or $name$) at the start of content.
func parseDollarTag(content string) string {
	for i := 1; i < len(content); i++ {
		if content[i] == '$' {
			return content[:i+1]
		}

		if ch := rune(content[i]); ch != '_' && !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
			return ""
		}
	}

	return ""
}

// extractVersion takes the numeric prefix of a migration file name.
func extractVersion(filename string) string {
	version, _, _ := strings.Cut(filename, "_")

	return version
}
