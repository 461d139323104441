package errors

import "errors"

// ErrConflict 条件更新冲突：记录已被其他操作修改（如预警已被他人处理）
var ErrConflict = errors.New("el registro fue modificado por otra operación")
