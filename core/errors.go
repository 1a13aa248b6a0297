package core

import (
	"errors"
	"fmt"
)

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 错误分级：
//   - VALIDATION_ERROR：单条记录/输入非法，仅该条目失败，不中断整体流程
//   - CONFIGURATION_ERROR：配置错误（维度不匹配、非法边界），立即失败，不做静默修正
//   - UNAVAILABLE：外部能力（LLM/模型服务/特征服务）不可用，本地降级兜底
type DomainError struct {
	Code    string // 错误代码（如 "VALIDATION_ERROR", "CONFIGURATION_ERROR"）
	Message string // 错误消息
	Module  string // 模块名称（如 "catalog", "recall", "slot"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// NewValidationError 创建一条 VALIDATION_ERROR。
func NewValidationError(module, format string, args ...any) *DomainError {
	return NewDomainError(module, ErrorCodeValidation, fmt.Sprintf(format, args...))
}

// NewConfigurationError 创建一条 CONFIGURATION_ERROR。
func NewConfigurationError(module, format string, args ...any) *DomainError {
	return NewDomainError(module, ErrorCodeConfiguration, fmt.Sprintf(format, args...))
}

// NewUnavailableError 创建一条 UNAVAILABLE。
func NewUnavailableError(module, format string, args ...any) *DomainError {
	return NewDomainError(module, ErrorCodeUnavailable, fmt.Sprintf(format, args...))
}

// GetDomainError 获取 DomainError（支持 %w 包装链），如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeValidation    = "VALIDATION_ERROR"    // 输入/记录非法
	ErrorCodeConfiguration = "CONFIGURATION_ERROR" // 配置非法
	ErrorCodeUnavailable   = "UNAVAILABLE"         // 外部能力不可用
	ErrorCodeNotFound      = "NOT_FOUND"           // 资源不存在
)

// 模块名称常量
const (
	ModuleCatalog = "catalog" // 促销目录
	ModuleExpand  = "expand"  // 查询扩展
	ModuleRecall  = "recall"  // 语义召回
	ModuleRank    = "rank"    // 排序
	ModuleSlot    = "slot"    // 槽位优化
	ModuleStore   = "store"   // 存储
	ModuleVector  = "vector"  // 向量
	ModuleService = "service" // 模型服务
)

// IsValidation 检查错误是否为 VALIDATION_ERROR。
func IsValidation(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeValidation
	}
	return false
}

// IsConfiguration 检查错误是否为 CONFIGURATION_ERROR。
func IsConfiguration(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeConfiguration
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE。
func IsUnavailable(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}
