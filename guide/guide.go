// Package guide holds the help pages embedded in the qgate binary, served by
// "qgate guide", "qgate llm" and the qgate_guide MCP tool.
//
// Pages are grouped the way the commands are: checking a batch, reading
// reports back, managing stored batches, and setting up a store. The index
// page (guide.md) and the LLM primer sit outside the groups.
package guide

import (
	"embed"
	"errors"
	"fmt"
	"runtime"
	"strings"
)

//go:embed *.md
var files embed.FS

// ErrUnknownTopic is returned by Get for a topic with no page.
var ErrUnknownTopic = errors.New("unknown guide topic")

// Group is a set of topics shown together in the guide index.
type Group struct {
	Name   string   `json:"name"`
	Topics []string `json:"topics"`
}

// groups lists every topic page. "install" resolves to the page for the
// running OS.
var groups = []Group{
	{Name: "Checking", Topics: []string{"check", "detect", "count", "platforms", "buckets"}},
	{Name: "Reports", Topics: []string{"history", "show", "diff", "recheck", "stats"}},
	{Name: "Batches", Topics: []string{"ls", "rm", "restore"}},
	{Name: "Setup", Topics: []string{"init", "config", "db", "vacuum", "serve", "install"}},
	{Name: "Assistants", Topics: []string{"llm"}},
}

// Groups returns the topic groups in display order.
func Groups() []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{Name: g.Name, Topics: append([]string(nil), g.Topics...)}
	}
	return out
}

// List returns every topic in group order.
func List() []string {
	var names []string
	for _, g := range groups {
		names = append(names, g.Topics...)
	}
	return names
}

// Get returns the page for topic. An empty topic is the index page. Topics
// are matched case-insensitively and may be given as "qgate check".
func Get(topic string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(topic))
	name = strings.TrimSpace(strings.TrimPrefix(name, "qgate "))
	switch name {
	case "", "guide":
		name = "guide"
	case "install":
		name = "install-" + runtime.GOOS
	}

	data, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("%w %q (available: %s)", ErrUnknownTopic, topic, strings.Join(List(), ", "))
	}
	return string(data), nil
}
