package dbs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type uploadSourceKind int

const (
	sourceNone uploadSourceKind = iota
	sourcePath
	sourceStream
)

// UploadSource 上传内容来源：本地文件路径或已打开的流
// 只能通过 FromPath / FromReader 构造，零值无效
type UploadSource struct {
	kind   uploadSourceKind
	path   string
	reader io.Reader
}

// FromPath 以本地文件路径作为上传来源
func FromPath(path string) UploadSource {
	return UploadSource{kind: sourcePath, path: path}
}

// FromReader 以已打开的流作为上传来源
// 若流实现了 Name() string（如 *os.File），可省略文件名
func FromReader(r io.Reader) UploadSource {
	return UploadSource{kind: sourceStream, reader: r}
}

// UploadOptions 上传选项
type UploadOptions struct {
	// FileName 服务端保存的文件名；为空时取路径或流名称的 base name
	FileName string
	// Overwrite 同名文件存在时覆盖
	Overwrite bool
}

// UploadFile 已读入内存的上传内容，重试时可重复构建请求
type UploadFile struct {
	Name    string
	Content []byte
}

type namedReader interface {
	Name() string
}

// Resolve 读取来源内容并确定文件名
func (s UploadSource) Resolve(fileName string) (UploadFile, error) {
	switch s.kind {
	case sourcePath:
		content, err := os.ReadFile(s.path)
		if err != nil {
			return UploadFile{}, fmt.Errorf("read upload file: %w", err)
		}
		if fileName == "" {
			fileName = filepath.Base(s.path)
		}
		return UploadFile{Name: fileName, Content: content}, nil

	case sourceStream:
		if s.reader == nil {
			return UploadFile{}, fmt.Errorf("upload stream is nil")
		}
		if fileName == "" {
			if named, ok := s.reader.(namedReader); ok {
				fileName = filepath.Base(named.Name())
			}
		}
		if fileName == "" {
			return UploadFile{}, fmt.Errorf("file name is required for stream uploads")
		}
		content, err := io.ReadAll(s.reader)
		if err != nil {
			return UploadFile{}, fmt.Errorf("read upload stream: %w", err)
		}
		return UploadFile{Name: fileName, Content: content}, nil

	default:
		return UploadFile{}, fmt.Errorf("unsupported upload source")
	}
}
