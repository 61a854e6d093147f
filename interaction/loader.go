package interaction

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rushteam/artrec/pkg/conv"
)

// 交互 CSV 必需的列名
const (
	ColumnArticleID = "article_id"
	ColumnTitle     = "title"
	ColumnEmail     = "email"
)

// LoadCSV 从 CSV 读取交互事件，按 email 列通过 mapper 分配用户 ID。
// 其他列（例如导出时带出的行号列）被忽略；缺失 email 的行视为同一个匿名 key ""。
func LoadCSV(r io.Reader, mapper *IDMapper) (*Store, error) {
	if mapper == nil {
		mapper = NewIDMapper()
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := columnIndex(header, ColumnArticleID, ColumnTitle, ColumnEmail)
	if err != nil {
		return nil, err
	}

	var events []Interaction
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		articleID, err := conv.ParseArticleID(field(record, cols[ColumnArticleID]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, Interaction{
			UserID:    mapper.ID(field(record, cols[ColumnEmail])),
			ArticleID: articleID,
			Title:     field(record, cols[ColumnTitle]),
		})
	}
	return NewStore(events), nil
}

// LoadFile 从文件路径读取交互 CSV。
func LoadFile(path string, mapper *IDMapper) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open interactions: %w", err)
	}
	defer f.Close()

	s, err := LoadCSV(f, mapper)
	if err != nil {
		return nil, fmt.Errorf("load interactions %s: %w", path, err)
	}
	return s, nil
}

func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return idx, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
