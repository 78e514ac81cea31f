package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为唯一索引冲突(MySQL错误码1062)
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

// duplicateKeyContains 冲突错误信息中是否出现指定索引/列名
// 一张表有多个唯一索引时(如users的email与username)，用它区分是哪一列冲突。
// 依赖MySQL的报错格式"Duplicate entry 'xxx' for key 'yyy'"
func duplicateKeyContains(err error, key string) bool {
	return err != nil && strings.Contains(err.Error(), key)
}
