package filegen_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iceymoss/wiki-fetcher/internal/filegen"
	xerrors "github.com/iceymoss/wiki-fetcher/pkg/errors"
	"github.com/iceymoss/wiki-fetcher/pkg/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() filegen.Document {
	return filegen.Document{
		Topic:        "Java Programming",
		Title:        "Java Basics: Classes & Objects",
		Explanation:  "Java is an object-oriented language.\n包括中文在内的 Unicode 字符也要完整保留。",
		CodeExamples: "public class Main {}",
	}
}

func TestNormalizeFormat(t *testing.T) {
	cases := map[string]string{
		"pdf":      "pdf",
		"PDF":      "pdf",
		"text":     "text",
		"txt":      "text",
		"markdown": "markdown",
		"md":       "markdown",
	}
	for in, want := range cases {
		got, err := filegen.NormalizeFormat(in)
		require.NoError(t, err, "合法别名不应报错: %s", in)
		assert.Equal(t, want, got)
	}

	_, err := filegen.NormalizeFormat("docx")
	require.Error(t, err)
	assert.Equal(t, xerr.ErrUnsupportedFormat, xerrors.Code(err))
	assert.Equal(t, "Invalid format: docx", xerrors.Message(err))
}

// 文本格式原样保留全部内容，不截断不转义
func TestGenerateText(t *testing.T) {
	gen := filegen.NewGenerator(t.TempDir())

	filename, path, err := gen.Generate(sampleDoc(), "text")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "TOPIC: Java Programming")
	assert.Contains(t, text, "TITLE: Java Basics: Classes & Objects")
	assert.Contains(t, text, "包括中文在内的 Unicode 字符也要完整保留。")
	assert.Contains(t, text, "CODE EXAMPLES:")
	assert.Contains(t, text, "public class Main {}")
	assert.Contains(t, text, "Generated on: ")
}

func TestGenerateMarkdown(t *testing.T) {
	gen := filegen.NewGenerator(t.TempDir())

	doc := sampleDoc()
	doc.SourceURL = "https://en.wikipedia.org/wiki/Java"

	filename, path, err := gen.Generate(doc, "markdown")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".md"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(data)
	assert.Contains(t, md, "# Java Programming")
	assert.Contains(t, md, "## Java Basics: Classes & Objects")
	assert.Contains(t, md, "[Source](https://en.wikipedia.org/wiki/Java)", "文章渲染应带来源链接")
	assert.Contains(t, md, "### Code Examples")
	assert.Contains(t, md, "```\npublic class Main {}")
}

// 普通内容的 markdown 没有来源链接
func TestGenerateMarkdownWithoutSource(t *testing.T) {
	gen := filegen.NewGenerator(t.TempDir())

	_, path, err := gen.Generate(sampleDoc(), "markdown")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "[Source]")
}

func TestGeneratePDF(t *testing.T) {
	gen := filegen.NewGenerator(t.TempDir())

	filename, path, err := gen.Generate(sampleDoc(), "pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".pdf"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "PDF 文件不应为空")
}

// 超长正文也要能渲染出 PDF
func TestGeneratePDFLargeBody(t *testing.T) {
	gen := filegen.NewGenerator(t.TempDir())

	doc := sampleDoc()
	doc.Explanation = strings.Repeat("A fairly long paragraph about nothing in particular. ", 1000)

	_, path, err := gen.Generate(doc, "pdf")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

// 超长的多字节来源地址也不能让 PDF 渲染失败
func TestGeneratePDFLongMultibyteURL(t *testing.T) {
	gen := filegen.NewGenerator(t.TempDir())

	doc := sampleDoc()
	doc.SourceURL = "https://zh.wikipedia.org/wiki/" + strings.Repeat("围棋", 50)

	filename, path, err := gen.Generate(doc, "pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".pdf"), "不应降级成文本渲染")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

// 文件名只留字母数字下划线连字符
func TestFileNameSanitized(t *testing.T) {
	gen := filegen.NewGenerator(t.TempDir())

	doc := sampleDoc()
	doc.Title = `Weird/Name: "quotes" & <tags>?`

	filename, _, err := gen.Generate(doc, "text")
	require.NoError(t, err)

	base := strings.TrimSuffix(filename, ".txt")
	for _, r := range base {
		ok := r == '_' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, ok, "文件名不应包含字符 %q", r)
	}
	assert.NotContains(t, filename, " ")
	assert.NotContains(t, filename, "/")
}

func TestRemoveFile(t *testing.T) {
	dir := t.TempDir()
	gen := filegen.NewGenerator(dir)

	filename, _, err := gen.Generate(sampleDoc(), "text")
	require.NoError(t, err)

	assert.True(t, gen.RemoveFile(filename))
	assert.False(t, gen.RemoveFile(filename), "重复删除返回 false")
	assert.False(t, gen.RemoveFile("missing.txt"))
}

func TestCleanupOldFiles(t *testing.T) {
	dir := t.TempDir()
	gen := filegen.NewGenerator(dir)

	oldPath := filepath.Join(dir, "old.txt")
	newPath := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(oldPath, []byte("old"), 0644))
	require.NoError(t, os.WriteFile(newPath, []byte("new"), 0644))

	// 把一个文件的修改时间拨回 10 天前
	stale := time.Now().Add(-10 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, stale, stale))

	removed, err := gen.CleanupOldFiles(7)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err), "过期文件应被删除")
	_, err = os.Stat(newPath)
	assert.NoError(t, err, "新文件应保留")
}
