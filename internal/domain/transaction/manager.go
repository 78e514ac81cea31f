package transaction

import "context"

// Manager 事务管理器接口
// 设计说明:
// 1. 由domain层定义接口，infrastructure层（mysql.TxManager）实现
// 2. fn内的所有Repository操作通过context共享同一事务:
//    fn返回error时自动ROLLBACK，返回nil时自动COMMIT
// 3. 应用层单元测试可以注入直通实现（直接调用fn），不依赖数据库
type Manager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
