package errors

import "errors"

// ErrOverrideChanged 条件清除未命中：覆盖记录已被其他评估清除，或已被用户重新设置
var ErrOverrideChanged = errors.New("覆盖记录已被其他操作修改")
