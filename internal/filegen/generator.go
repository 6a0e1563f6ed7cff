package filegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	xerrors "github.com/iceymoss/wiki-fetcher/pkg/errors"
	"github.com/iceymoss/wiki-fetcher/pkg/logger"
	"github.com/iceymoss/wiki-fetcher/pkg/xerr"

	"go.uber.org/zap"
)

// Document 一次渲染的输入
// 目录内容：Topic/Title/Explanation/CodeExamples
// 缓存文章：Title/Explanation(正文)/SourceURL，Topic 为抓取时的主题名
type Document struct {
	Topic        string
	Title        string
	Explanation  string
	CodeExamples string
	SourceURL    string
}

// IsArticle 带来源地址的是文章渲染，PDF 分支需要额外处理
func (d Document) IsArticle() bool {
	return d.SourceURL != ""
}

// Generator 负责把内容渲染成 pdf/text/markdown 文件并落盘
type Generator struct {
	dir string
}

// NewGenerator 创建生成器，保证输出目录存在
func NewGenerator(dir string) *Generator {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("create download dir failed", zap.String("dir", dir), zap.Error(err))
	}
	return &Generator{dir: dir}
}

// Dir 输出目录
func (g *Generator) Dir() string {
	return g.dir
}

// NormalizeFormat 边界上的格式别名归一：txt→text，md→markdown
// 其余值一律 UnsupportedFormat
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case "pdf":
		return "pdf", nil
	case "text", "txt":
		return "text", nil
	case "markdown", "md":
		return "markdown", nil
	default:
		return "", xerrors.New(xerr.ErrUnsupportedFormat, "Invalid format: "+format)
	}
}

// extension 规范格式名对应的文件后缀
func extension(format string) string {
	switch format {
	case "text":
		return "txt"
	case "markdown":
		return "md"
	default:
		return format
	}
}

// Generate 渲染并写盘，返回文件名和完整路径
// format 必须是规范值（调用方先过 NormalizeFormat）
func (g *Generator) Generate(doc Document, format string) (string, string, error) {
	switch format {
	case "pdf":
		return g.generatePDF(doc)
	case "text":
		return g.generateText(doc)
	case "markdown":
		return g.generateMarkdown(doc)
	default:
		return "", "", xerrors.New(xerr.ErrUnsupportedFormat, "Invalid format: "+format)
	}
}

// nowStamp 页脚用的生成时间
func nowStamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// fileName 标题 + 秒级时间戳，空格换下划线，只保留字母数字下划线连字符
func (g *Generator) fileName(title, format string) string {
	stamp := time.Now().Format("20060102_150405")
	raw := strings.ReplaceAll(title+"_"+stamp, " ", "_")

	var b strings.Builder
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String() + "." + extension(format)
}

func (g *Generator) generateText(doc Document) (string, string, error) {
	filename := g.fileName(doc.Title, "text")
	path := filepath.Join(g.dir, filename)

	var b strings.Builder
	rule := strings.Repeat("=", 80)
	sub := strings.Repeat("-", 80)

	b.WriteString(rule + "\n")
	b.WriteString("TOPIC: " + doc.Topic + "\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("TITLE: " + doc.Title + "\n")
	b.WriteString(sub + "\n\n")

	b.WriteString("EXPLANATION:\n")
	b.WriteString(sub + "\n")
	// 原样写入，不转义不截断，Unicode 完整保留
	b.WriteString(doc.Explanation)
	b.WriteString("\n\n")

	if doc.CodeExamples != "" {
		b.WriteString("CODE EXAMPLES:\n")
		b.WriteString(sub + "\n")
		b.WriteString(doc.CodeExamples)
		b.WriteString("\n\n")
	}

	b.WriteString(sub + "\n")
	b.WriteString("Generated on: " + nowStamp() + "\n")
	b.WriteString(rule + "\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", "", xerrors.Wrap(xerr.ErrRenderFailed, "Error generating file: "+err.Error(), err)
	}
	return filename, path, nil
}

func (g *Generator) generateMarkdown(doc Document) (string, string, error) {
	filename := g.fileName(doc.Title, "markdown")
	path := filepath.Join(g.dir, filename)

	var b strings.Builder
	b.WriteString("# " + doc.Topic + "\n\n")
	b.WriteString("## " + doc.Title + "\n\n")

	if doc.IsArticle() {
		// 来源链接紧跟标题
		b.WriteString(fmt.Sprintf("[Source](%s)\n\n", doc.SourceURL))
	}

	b.WriteString("### Explanation\n\n")
	b.WriteString(doc.Explanation)
	b.WriteString("\n\n")

	if doc.CodeExamples != "" {
		b.WriteString("### Code Examples\n\n")
		b.WriteString("```\n")
		b.WriteString(doc.CodeExamples)
		b.WriteString("\n```\n\n")
	}

	b.WriteString("---\n*Generated on " + nowStamp() + "*\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", "", xerrors.Wrap(xerr.ErrRenderFailed, "Error generating file: "+err.Error(), err)
	}
	return filename, path, nil
}

// RemoveFile 删除一个生成的文件
// 文件不存在返回 false，不算错误
func (g *Generator) RemoveFile(filename string) bool {
	path := filepath.Join(g.dir, filepath.Base(filename))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}
	if err := os.Remove(path); err != nil {
		logger.Error("remove file failed", zap.String("file", filename), zap.Error(err))
		return false
	}
	return true
}

// CleanupOldFiles 清理修改时间早于 days 天前的文件，返回删除数量
func (g *Generator) CleanupOldFiles(days int) (int, error) {
	if days <= 0 {
		days = 7
	}
	cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour)

	entries, err := os.ReadDir(g.dir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(g.dir, entry.Name())); err != nil {
				logger.Warn("cleanup remove failed", zap.String("file", entry.Name()), zap.Error(err))
				continue
			}
			removed++
		}
	}
	return removed, nil
}
