package markdown

import "strings"

// Rule renders an element from the already converted text of its children.
type Rule struct {
	Tag    string
	Render func(inner string) string
}

// rules is the tag table consulted after the structural tags (a, img, ul,
// ol) have been dispatched. Tags are unique, so lookup order never matters.
var rules = []Rule{
	{Tag: "h1", Render: heading(1)},
	{Tag: "h2", Render: heading(2)},
	{Tag: "h3", Render: heading(3)},
	{Tag: "h4", Render: heading(4)},
	{Tag: "h5", Render: heading(5)},
	{Tag: "h6", Render: heading(6)},
	{Tag: "p", Render: func(t string) string { return t + "\n\n" }},
	{Tag: "strong", Render: wrap("**")},
	{Tag: "b", Render: wrap("**")},
	{Tag: "em", Render: wrap("*")},
	{Tag: "i", Render: wrap("*")},
	{Tag: "code", Render: wrap("`")},
	{Tag: "pre", Render: func(t string) string { return "```\n" + t + "\n```\n\n" }},
	{Tag: "blockquote", Render: func(t string) string {
		return "> " + strings.ReplaceAll(t, "\n", "\n> ") + "\n\n"
	}},
	{Tag: "br", Render: func(string) string { return "\n" }},
	{Tag: "hr", Render: func(string) string { return "---\n\n" }},
}

// LookupRule returns the rule registered for tag.
func LookupRule(tag string) (Rule, bool) {
	for _, r := range rules {
		if r.Tag == tag {
			return r, true
		}
	}
	return Rule{}, false
}

// Tags returns the tags that have a rule, in table order.
func Tags() []string {
	tags := make([]string, 0, len(rules))
	for _, r := range rules {
		tags = append(tags, r.Tag)
	}
	return tags
}

func heading(level int) func(string) string {
	prefix := strings.Repeat("#", level) + " "
	return func(t string) string {
		return prefix + t + "\n\n"
	}
}

func wrap(marker string) func(string) string {
	return func(t string) string {
		return marker + t + marker
	}
}

// fallback renders elements that have no rule: non-empty content becomes
// its own block, empty content disappears.
func fallback(inner string) string {
	if inner == "" {
		return ""
	}
	return inner + "\n\n"
}
