package domain

import (
	"errors"
	"fmt"
)

// 错误分类; 所有错误对一次运行都是致命的
var (
	ErrMissingColumn  = errors.New("missing column")
	ErrMalformedRow   = errors.New("malformed row")
	ErrEmptyGroup     = errors.New("empty group")
	ErrDivisionByZero = errors.New("division by zero")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// ColumnError 表头缺少必需列
type ColumnError struct {
	File   string
	Column string
}

func (e *ColumnError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("missing required column %q", e.Column)
	}
	return fmt.Sprintf("%s: missing required column %q", e.File, e.Column)
}

func (e *ColumnError) Unwrap() error { return ErrMissingColumn }

// RowError 某一行的必需列无法解析为浮点数
// Row 从 1 开始计数，表头为第 1 行
type RowError struct {
	File   string
	Row    int
	Column string
	Value  string
}

func (e *RowError) Error() string {
	loc := fmt.Sprintf("row %d", e.Row)
	if e.File != "" {
		loc = fmt.Sprintf("%s: row %d", e.File, e.Row)
	}
	return fmt.Sprintf("%s: column %q: invalid number %q", loc, e.Column, e.Value)
}

func (e *RowError) Unwrap() error { return ErrMalformedRow }

// GroupError 分组中没有样本
type GroupError struct {
	Key float64
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("group %v has no samples", e.Key)
}

func (e *GroupError) Unwrap() error { return ErrEmptyGroup }

// ZeroDivisorError 换算时分母为零
type ZeroDivisorError struct {
	Quantity string // 被除的物理量, e.g. "number density"
}

func (e *ZeroDivisorError) Error() string {
	return fmt.Sprintf("division by zero: %s is zero", e.Quantity)
}

func (e *ZeroDivisorError) Unwrap() error { return ErrDivisionByZero }
