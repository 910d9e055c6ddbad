package notekit

import (
	"sort"
	"strings"
)

// TopicRegistry maps anchor keys to topics. It is an explicit value passed
// into operations: resolving an unknown topic returns a new registry rather
// than mutating shared state, so registration is testable in isolation and
// nothing leaks across invocations.
type TopicRegistry map[string]Topic

// newTopicColors and newTopicIcons are cycled deterministically (by the
// registry size at creation time) when a topic is generated at runtime.
var newTopicColors = []string{
	"#e91e63", "#9c27b0", "#673ab7", "#3f51b5", "#03a9f4",
	"#00bcd4", "#009688", "#4caf50", "#8bc34a", "#cddc39",
	"#ffeb3b", "#ffc107", "#ff9800", "#ff5722", "#795548",
}

var newTopicIcons = []string{"📖", "💡", "🔧", "⚙️", "🛠️", "📦", "🎯", "✨", "🔥", "💻"}

// DefaultRegistry returns the built-in topic set used when the config file
// does not define one.
func DefaultRegistry() TopicRegistry {
	topics := []Topic{
		{Key: "git", Name: "Git & GitHub", Icon: "🔀", Color: "#f05032"},
		{Key: "github-actions", Name: "GitHub Actions", Icon: "⚡", Color: "#2088ff"},
		{Key: "linux", Name: "Linux", Icon: "🐧", Color: "#fcc624"},
		{Key: "docker", Name: "Docker", Icon: "🐳", Color: "#2496ed"},
		{Key: "kubernetes", Name: "Kubernetes", Icon: "☸️", Color: "#326ce5"},
		{Key: "terraform", Name: "Terraform", Icon: "🏗️", Color: "#7b42bc"},
		{Key: "ansible", Name: "Ansible", Icon: "🔧", Color: "#ee0000"},
		{Key: "cicd", Name: "CI/CD Pipelines", Icon: "🔄", Color: "#43a047"},
		{Key: "aws", Name: "AWS Cloud", Icon: "☁️", Color: "#ff9900"},
		{Key: "monitoring", Name: "Monitoring & Observability", Icon: "📊", Color: "#e65100"},
		{Key: "security", Name: "DevSecOps", Icon: "🔐", Color: "#d32f2f"},
		{Key: "networking", Name: "Networking", Icon: "🌐", Color: "#00796b"},
		{Key: "scripting", Name: "Shell Scripting", Icon: "📜", Color: "#4eaa25"},
		{Key: "databases", Name: "Databases", Icon: "🗄️", Color: "#336791"},
		{Key: "misc", Name: "Miscellaneous", Icon: "📚", Color: "#607d8b"},
	}
	r := make(TopicRegistry, len(topics))
	for _, t := range topics {
		r[t.Key] = t
	}
	return r
}

// Resolve finds the topic matching the caller-supplied input, or creates one.
// Matching order: exact key, partial key match (either direction), display
// name match. When nothing matches, the returned registry is a new value
// containing a generated topic; the receiver is never mutated.
func (r TopicRegistry) Resolve(input string) (key string, out TopicRegistry, created bool) {
	key = NormalizeAnchor(input)
	if key == "" {
		key = "misc"
	}

	if _, ok := r[key]; ok {
		return key, r, false
	}

	// Partial matches, scanned in sorted order for determinism.
	for _, k := range r.Keys() {
		t := r[k]
		if strings.Contains(k, key) || strings.Contains(key, k) {
			return k, r, false
		}
		if strings.Contains(NormalizeAnchor(t.Name), key) {
			return k, r, false
		}
	}

	out = make(TopicRegistry, len(r)+1)
	for k, t := range r {
		out[k] = t
	}
	out[key] = Topic{
		Key:   key,
		Name:  displayName(key),
		Icon:  newTopicIcons[len(r)%len(newTopicIcons)],
		Color: newTopicColors[len(r)%len(newTopicColors)],
	}
	return key, out, true
}

// Get returns the topic for key, falling back to a bare topic with a
// title-cased name when the key is not registered.
func (r TopicRegistry) Get(key string) Topic {
	if t, ok := r[key]; ok {
		return t
	}
	return Topic{Key: key, Name: displayName(key), Icon: "📚", Color: "#607d8b"}
}

// Keys returns the registry keys in sorted order.
func (r TopicRegistry) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// displayName turns a hyphenated key into a capitalized display name:
// "service-mesh" -> "Service Mesh".
func displayName(key string) string {
	words := strings.Split(key, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
