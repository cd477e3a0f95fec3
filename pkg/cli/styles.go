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

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaComment    = "#6272A4"
)

// logStyles defines styles for logging messages
type logStyles struct {
	success, warning, error, hint, label, value lipgloss.Style
}

func newLogStyles() logStyles {
	return logStyles{
		success: lipgloss.NewStyle().Foreground(lipgloss.Color(draculaGreen)),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color(draculaOrange)),
		error:   lipgloss.NewStyle().Foreground(lipgloss.Color(draculaRed)).Bold(true),
		hint:    lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment)),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPurple)).Bold(true),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color(draculaForeground)),
	}
}

// printer writes styled lines to a command's output.
type printer struct {
	out    io.Writer
	styles logStyles
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out, styles: newLogStyles()}
}

func (p *printer) field(label, value string) {
	fmt.Fprintf(p.out, "%s %s\n", p.styles.label.Render(label+":"), p.styles.value.Render(value))
}

func (p *printer) success(msg string) {
	fmt.Fprintln(p.out, p.styles.success.Render(msg))
}

func (p *printer) warn(msg string) {
	fmt.Fprintln(p.out, p.styles.warning.Render(msg))
}

func (p *printer) failure(msg string) {
	fmt.Fprintln(p.out, p.styles.error.Render(msg))
}

func (p *printer) hint(msg string) {
	fmt.Fprintln(p.out, p.styles.hint.Render(msg))
}
