package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rushteam/artrec/pkg/conv"
)

// 文章 CSV 列名
const (
	ColumnArticleID   = "article_id"
	ColumnTitle       = "doc_full_name"
	ColumnDescription = "doc_description"
)

// LoadCSV 从 CSV 读取文章目录，按 article_id 去重保留第一次出现。
func LoadCSV(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, name := range []string{ColumnArticleID, ColumnTitle, ColumnDescription} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var records []Record
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		id, err := conv.ParseArticleID(cell(row, cols[ColumnArticleID]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, Record{
			ArticleID:   id,
			Title:       cell(row, cols[ColumnTitle]),
			Description: cell(row, cols[ColumnDescription]),
		})
	}
	return New(records), nil
}

// LoadFile 从文件路径读取文章 CSV。
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open articles: %w", err)
	}
	defer f.Close()

	c, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load articles %s: %w", path, err)
	}
	return c, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
