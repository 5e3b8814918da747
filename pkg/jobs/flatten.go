package jobs

import (
	"strings"
)

// FlattenOptions controls how a structured document is rendered as text.
type FlattenOptions struct {
	// ConvertLists renders list fields as one bullet per line instead of a
	// single comma separated line.
	ConvertLists bool
	// StripWhitespace collapses runs of whitespace inside every value.
	StripWhitespace bool
	// Markdown renders sections as markdown headings.
	Markdown bool
}

type section struct {
	label string
	value string
	items []string
	list  bool
}

func (j JobOpening) sections() []section {
	s := []section{
		{label: "Position", value: j.Position},
		{label: "Category", value: j.Category},
		{label: "Type", value: j.Type},
		{label: "Schedule", value: j.Schedule},
		{label: "Location", value: j.Location},
		{label: "Salary Range", value: j.SalaryRange},
		{label: "Experience Required", value: j.ExperienceRequired},
		{label: "Description", value: j.Description},
		{label: "Key Responsibilities", items: j.KeyResponsibilities, list: true},
		{label: "Requirements", items: j.Requirements, list: true},
	}
	if len(j.Qualifications) > 0 {
		s = append(s, section{label: "Qualifications", items: j.Qualifications, list: true})
	}
	return s
}

// Flatten renders the document as plain text, one field per paragraph.
func Flatten(j JobOpening, opts FlattenOptions) string {
	clean := func(v string) string {
		if opts.StripWhitespace {
			return strings.Join(strings.Fields(v), " ")
		}
		return v
	}

	var b strings.Builder
	for i, s := range j.sections() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if opts.Markdown {
			b.WriteString("## ")
			b.WriteString(s.label)
			b.WriteString("\n")
		} else {
			b.WriteString(s.label)
			b.WriteString(":")
		}

		if !s.list {
			if !opts.Markdown {
				b.WriteString(" ")
			}
			b.WriteString(clean(s.value))
			continue
		}

		if opts.ConvertLists {
			for k, item := range s.items {
				if k > 0 || !opts.Markdown {
					b.WriteString("\n")
				}
				b.WriteString("- ")
				b.WriteString(clean(item))
			}
			continue
		}

		items := make([]string, len(s.items))
		for k, item := range s.items {
			items[k] = clean(item)
		}
		if !opts.Markdown {
			b.WriteString(" ")
		}
		b.WriteString(strings.Join(items, ", "))
	}
	return b.String()
}
