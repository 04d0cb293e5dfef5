package domain

import "errors"

// ErrDuplicateKey 仓储层把各数据库的唯一约束冲突统一成这个错误
var ErrDuplicateKey = errors.New("duplicate key")
