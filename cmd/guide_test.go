package cmd

import "testing"

func TestGuide(t *testing.T) {
	t.Run("main guide", func(t *testing.T) {
		env := newBareEnv(t)
		out := env.run("guide")
		env.contains(out, "Quick start")
		env.contains(out, "Platforms")
	})

	t.Run("topics", func(t *testing.T) {
		env := newBareEnv(t)
		for topic, want := range map[string]string{
			"check":   "qgate check",
			"history": "qgate history",
			"diff":    "qgate diff",
			"config":  "sameness_threshold",
		} {
			out := env.run("guide", topic, "--raw")
			env.contains(out, want)
		}
	})

	t.Run("lists available on not found", func(t *testing.T) {
		env := newBareEnv(t)
		out, err := env.runErr("guide", "nonexistent")
		if err == nil {
			t.Error("guide nonexistent = nil, want error")
		}
		env.contains(out, "unknown guide topic")
		env.contains(out, "available: check, detect")
	})

	t.Run("list by group", func(t *testing.T) {
		env := newBareEnv(t)
		out := env.run("guide", "--list")
		env.contains(out, "Checking:")
		env.contains(out, "check, detect, count, platforms, buckets")
		env.contains(out, "Setup:")

		var groups []struct {
			Name   string   `json:"name"`
			Topics []string `json:"topics"`
		}
		env.runJSON(&groups, "guide", "--list")
		if len(groups) == 0 || groups[0].Name != "Checking" {
			t.Errorf("guide --list groups = %v, want Checking first", groups)
		}
	})

	t.Run("llm", func(t *testing.T) {
		env := newBareEnv(t)
		out := env.run("llm")
		env.contains(out, "qgate_check")
	})
}

func TestVersion(t *testing.T) {
	env := newBareEnv(t)
	out := env.run("version")
	env.contains(out, "Build Tag:")
	env.contains(out, "twitter")
}
