package errors

import (
	"errors"

	"gorm.io/gorm"
)

// ErrConflict 存储层约束冲突（唯一键、外键、主键竞争），事务已回滚
var ErrConflict = errors.New("数据冲突，操作已回滚，请刷新后重试")

// IsConstraintViolation 判断是否为约束冲突
// 依赖 gorm.Config.TranslateError 将驱动错误翻译为 gorm 的哨兵错误
func IsConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated)
}

// TranslateConstraint 将约束冲突统一转换为 ErrConflict，其他错误原样返回
func TranslateConstraint(err error) error {
	if err != nil && IsConstraintViolation(err) {
		return ErrConflict
	}
	return err
}
