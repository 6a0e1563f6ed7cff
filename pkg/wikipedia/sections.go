package wikipedia

import (
	"strings"
)

// splitSections 把 explaintext 形式的正文拆成引言 + 顶级章节
// 顶级章节标题形如 "== Heading =="，更深层级的 "=== x ===" 归入当前章节内容
func splitSections(text string) (string, []Section) {
	lines := strings.Split(text, "\n")

	var summary []string
	var sections []Section
	current := -1

	for _, line := range lines {
		if title, ok := topLevelHeading(line); ok {
			sections = append(sections, Section{Title: title})
			current = len(sections) - 1
			continue
		}
		if current == -1 {
			summary = append(summary, line)
		} else {
			if sections[current].Content != "" {
				sections[current].Content += "\n"
			}
			sections[current].Content += line
		}
	}

	for i := range sections {
		sections[i].Content = strings.TrimSpace(sections[i].Content)
	}
	return strings.TrimSpace(strings.Join(summary, "\n")), sections
}

// topLevelHeading 判断是否为顶级章节标题行
func topLevelHeading(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "== ") || !strings.HasSuffix(trimmed, " ==") {
		return "", false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "== "), " ==")
	// "=== x ===" 去掉一层后还会带 =，说明不是顶级
	if strings.HasPrefix(inner, "=") || strings.HasSuffix(inner, "=") {
		return "", false
	}
	title := strings.TrimSpace(inner)
	if title == "" {
		return "", false
	}
	return title, true
}
