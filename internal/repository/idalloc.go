package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// 允许分配 id 的表；表名会拼进 SQL，只能来自此白名单
var idTables = map[string]bool{
	"machines":       true,
	"drivers":        true,
	"counterparties": true,
	"records":        true,
}

// NextFreeID 返回表中未被占用的最小正整数 id
//
// 必须与随后的 INSERT 使用同一个事务 tx；并发插入算出相同 id 时，
// 后提交的一方会触发主键冲突，由调用方转换为 ErrConflict。
func NextFreeID(ctx context.Context, tx *gorm.DB, table string) (int64, error) {
	if !idTables[table] {
		return 0, fmt.Errorf("不支持分配 id 的表: %s", table)
	}

	var ids []int64
	if err := tx.WithContext(ctx).Table(table).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("读取 %s 已有 id 失败: %w", table, err)
	}

	next := int64(1)
	for _, id := range ids {
		if id < next {
			continue
		}
		if id > next {
			break
		}
		next++
	}
	return next, nil
}
