package capability

import "testing"

func envFrom(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		stdinTTY  bool
		stdoutTTY bool
		want      bool
		reason    string
	}{
		{"terminal", map[string]string{"TERM": "xterm-256color"}, true, true, true, ""},
		{"piped stdin", map[string]string{"TERM": "xterm"}, false, true, false, "stdin is not a terminal"},
		{"redirected stdout", map[string]string{"TERM": "xterm"}, true, false, false, "stdout is not a terminal"},
		{"ci", map[string]string{"TERM": "xterm", "CI": "true"}, true, true, false, "running under CI"},
		{"github actions", map[string]string{"GITHUB_ACTIONS": "true"}, true, true, false, "running under CI"},
		{"dumb terminal", map[string]string{"TERM": "DUMB"}, true, true, false, "TERM is dumb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detect(envFrom(tt.env), tt.stdinTTY, tt.stdoutTTY)
			if got.Interactive != tt.want {
				t.Errorf("Interactive = %v, want %v", got.Interactive, tt.want)
			}
			if got.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.reason)
			}
		})
	}
}

func TestDetectFixturePath(t *testing.T) {
	got := detect(envFrom(map[string]string{FixtureEnv: "  /tmp/brew.yaml "}), false, false)
	if got.FixturePath != "/tmp/brew.yaml" {
		t.Errorf("FixturePath = %q, want /tmp/brew.yaml", got.FixturePath)
	}

	got = detect(envFrom(nil), false, false)
	if got.FixturePath != "" {
		t.Errorf("FixturePath = %q, want empty", got.FixturePath)
	}
}

func TestDetectDoesNotPanic(t *testing.T) {
	// Under `go test` stdin is usually not a terminal; only check it runs.
	_ = Detect()
}
