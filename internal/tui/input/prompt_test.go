package input

import "testing"

var testCommands = []PromptCommand{
	{Name: "/plan", Description: "Plan"},
	{Name: "/summary", Description: "Summary"},
	{Name: "/help", Description: "Help"},
	{Name: "/hello", Description: "Hello"},
}

func TestPromptMatchingCommands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "no_slash", input: "plan", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "slash only", input: "/", want: 4},
		{name: "full", input: "/plan", want: 1},
		{name: "prefix", input: "/p", want: 1},
		{name: "shared prefix", input: "/hel", want: 2},
		{name: "with_space", input: "/plan x", want: 0},
		{name: "uppercase", input: "/SUM", want: 1},
		{name: "unknown", input: "/week", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PromptMatchingCommands(tt.input, testCommands)
			if len(got) != tt.want {
				t.Fatalf("matches = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPromptAutocomplete(t *testing.T) {
	value, ok := PromptAutocomplete("/p", testCommands)
	if !ok || value != "/plan " {
		t.Fatalf("PromptAutocomplete(/p) = %q, %v", value, ok)
	}
	if _, ok := PromptAutocomplete("lunch at noon", testCommands); ok {
		t.Fatal("free text should not autocomplete")
	}
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantArgs string
	}{
		{input: "/plan gym at 7", wantName: "/plan", wantArgs: "gym at 7"},
		{input: "  /SUMMARY  ", wantName: "/summary", wantArgs: ""},
		{input: "/plan   read  ", wantName: "/plan", wantArgs: "read"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, args := SplitCommand(tt.input)
			if name != tt.wantName || args != tt.wantArgs {
				t.Errorf("SplitCommand(%q) = %q, %q", tt.input, name, args)
			}
		})
	}
}

func TestResolveCommand(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{name: "/summary", want: "/summary", wantOK: true},
		{name: "/sum", want: "/summary", wantOK: true},
		{name: "/help", want: "/help", wantOK: true},
		{name: "/hel", wantOK: false},
		{name: "/week", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveCommand(tt.name, testCommands)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ResolveCommand(%q) = %q, %v", tt.name, got, ok)
			}
		})
	}
}
