// Package input parses what is typed into the TUI command prompt.
package input

import "strings"

// PromptCommand is a slash command offered by the prompt.
type PromptCommand struct {
	Name        string
	Description string
}

// IsCommand reports whether input is a slash command rather than a free
// text request.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// SplitCommand splits "/plan gym at 7" into "/plan" and "gym at 7". The
// name is lower-cased.
func SplitCommand(input string) (name, args string) {
	input = strings.TrimSpace(input)
	name, args, _ = strings.Cut(input, " ")
	return strings.ToLower(name), strings.TrimSpace(args)
}

// PromptMatchingCommands returns the commands whose name starts with the
// typed prefix. Nothing matches once arguments are being typed.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !IsCommand(input) || strings.Contains(strings.TrimSpace(input), " ") {
		return nil
	}
	prefix := strings.ToLower(strings.TrimSpace(input))
	var matches []PromptCommand
	for _, cmd := range commands {
		if strings.HasPrefix(cmd.Name, prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete completes the input to the first matching command,
// followed by a space for its arguments.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// ResolveCommand maps a command name or an unambiguous prefix of one
// ("/sum") to the full name.
func ResolveCommand(name string, commands []PromptCommand) (string, bool) {
	name = strings.ToLower(name)
	var found string
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd.Name, true
		}
		if strings.HasPrefix(cmd.Name, name) {
			if found != "" {
				return "", false
			}
			found = cmd.Name
		}
	}
	return found, found != ""
}
