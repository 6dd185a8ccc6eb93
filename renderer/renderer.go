// Package renderer 定义把分页结果输出为最终文件的接口。
package renderer

import "github.com/ByLCY/folio/document"

// Renderer 将排版结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(result *document.Result) ([]byte, error)
}
