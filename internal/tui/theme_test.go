package tui

import "testing"

func TestThemePreference(t *testing.T) {
	cases := []struct {
		name     string
		env      map[string]string
		wantDark bool
		wantOK   bool
	}{
		{name: "unset", env: nil, wantOK: false},
		{name: "light", env: map[string]string{"TODO_TUI_THEME": "light"}, wantDark: false, wantOK: true},
		{name: "dark", env: map[string]string{"TODO_TUI_THEME": "DARK"}, wantDark: true, wantOK: true},
		{name: "auto falls through", env: map[string]string{"TODO_TUI_THEME": "auto", "TODO_TUI_DARKBG": "true"}, wantDark: true, wantOK: true},
		{name: "theme beats darkbg", env: map[string]string{"TODO_TUI_THEME": "light", "TODO_TUI_DARKBG": "true"}, wantDark: false, wantOK: true},
		{name: "bad darkbg ignored", env: map[string]string{"TODO_TUI_DARKBG": "maybe"}, wantOK: false},
		{name: "colorfgbg dark", env: map[string]string{"COLORFGBG": "15;0"}, wantDark: true, wantOK: true},
		{name: "colorfgbg light", env: map[string]string{"COLORFGBG": "0;default;15"}, wantDark: false, wantOK: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dark, ok := themePreference(func(k string) string { return tc.env[k] })
			if ok != tc.wantOK || (ok && dark != tc.wantDark) {
				t.Fatalf("themePreference = (%v, %v), want (%v, %v)", dark, ok, tc.wantDark, tc.wantOK)
			}
		})
	}
}
