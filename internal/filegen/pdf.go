package filegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iceymoss/wiki-fetcher/pkg/logger"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// 文章渲染进 PDF 时的正文上限和来源地址行长度
const (
	pdfArticleBodyLimit = 5000
	pdfURLLimit         = 90
)

// generatePDF 渲染分页文档
// 任何生成失败都降级为纯文本渲染并返回文本结果，这是约定行为不是优化
func (g *Generator) generatePDF(doc Document) (string, string, error) {
	filename := g.fileName(doc.Title, "pdf")
	path := filepath.Join(g.dir, filename)

	err := g.writePDF(doc, path)
	if err == nil {
		return filename, path, nil
	}

	logger.Warn("pdf generation failed, falling back to text",
		zap.String("title", doc.Title), zap.Error(err))
	_ = os.Remove(path) // 丢掉半成品
	return g.generateText(doc)
}

func (g *Generator) writePDF(doc Document, path string) (err error) {
	// fpdf 内部遇到坏状态可能 panic，统一收敛成 error 走降级
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf renderer panic: %v", r)
		}
	}()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// 核心字体是 cp1252 编码，目录内容走转换器，文章正文直接压成 ASCII
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	body := doc.Explanation
	if doc.IsArticle() {
		runes := []rune(body)
		if len(runes) > pdfArticleBodyLimit {
			body = string(runes[:pdfArticleBodyLimit]) + "..."
		}
		body = asciiSafe(body)
	}

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Topic: "+doc.Topic), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	if doc.IsArticle() {
		url := doc.SourceURL
		// 按字符截，多字节地址不能截出半个字符
		if runes := []rune(url); len(runes) > pdfURLLimit {
			url = string(runes[:pdfURLLimit]) + "..."
		}
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(0, 6, tr("Source: "+url), "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Explanation:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 5, tr(body), "", "L", false)
	pdf.Ln(5)

	if doc.CodeExamples != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, "Code Examples:", "", 1, "L", false, 0, "")
		pdf.SetFont("Courier", "", 10)
		pdf.MultiCell(0, 4, tr(doc.CodeExamples), "", "L", false)
	}

	pdf.SetFont("Arial", "I", 8)
	pdf.Ln(5)
	pdf.CellFormat(0, 10, "Generated on "+nowStamp(), "", 0, "C", false, 0, "")

	if pdfErr := pdf.Error(); pdfErr != nil {
		return pdfErr
	}
	return pdf.OutputFileAndClose(path)
}

// asciiSafe 非 ASCII 字符统一换成 ?，保证编码安全
func asciiSafe(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
